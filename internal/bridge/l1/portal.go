package l1

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TokenPortal is a live handle to the deployed L1 portal contract. The
// portal custodies deposited assets and must be initialized exactly once
// with the rollup registry, the escrowed asset and the trusted L2 bridge.
type TokenPortal struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewTokenPortal binds a portal handle to an already deployed address.
func NewTokenPortal(address common.Address, contractABI abi.ABI, backend Backend) *TokenPortal {
	return &TokenPortal{
		address:  address,
		contract: bind.NewBoundContract(address, contractABI, backend, backend, backend),
	}
}

// Address returns the portal's L1 address.
func (p *TokenPortal) Address() common.Address {
	return p.address
}

// Initialize writes the portal's permanent configuration: the rollup
// registry, the underlying asset it escrows and the L2 bridge it trusts.
func (p *TokenPortal) Initialize(auth *bind.TransactOpts, registry, underlying common.Address, l2Bridge [32]byte) (*types.Transaction, error) {
	tx, err := p.contract.Transact(auth, "initialize", registry, underlying, l2Bridge)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize portal %s: %w", p.address.Hex(), err)
	}

	return tx, nil
}

// L2Bridge reads the L2 bridge address the portal trusts.
func (p *TokenPortal) L2Bridge(ctx context.Context) ([32]byte, error) {
	var out []any
	if err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "l2Bridge"); err != nil {
		return [32]byte{}, fmt.Errorf("failed to read portal l2Bridge: %w", err)
	}

	return *abi.ConvertType(out[0], new([32]byte)).(*[32]byte), nil
}

// Registry reads the rollup registry address the portal was initialized with.
func (p *TokenPortal) Registry(ctx context.Context) (common.Address, error) {
	var out []any
	if err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "registry"); err != nil {
		return common.Address{}, fmt.Errorf("failed to read portal registry: %w", err)
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// Underlying reads the escrowed asset address the portal was initialized with.
func (p *TokenPortal) Underlying(ctx context.Context) (common.Address, error) {
	var out []any
	if err := p.contract.Call(&bind.CallOpts{Context: ctx}, &out, "underlying"); err != nil {
		return common.Address{}, fmt.Errorf("failed to read portal underlying: %w", err)
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
