package l1

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PortalERC20 is a live handle to the mintable test asset the portal
// escrows. On dev networks anyone may mint it.
type PortalERC20 struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewPortalERC20 binds an asset handle to an already deployed address.
func NewPortalERC20(address common.Address, contractABI abi.ABI, backend Backend) *PortalERC20 {
	return &PortalERC20{
		address:  address,
		contract: bind.NewBoundContract(address, contractABI, backend, backend, backend),
	}
}

// Address returns the asset's L1 address.
func (a *PortalERC20) Address() common.Address {
	return a.address
}

// Mint creates amount new units for the given holder.
func (a *PortalERC20) Mint(auth *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	tx, err := a.contract.Transact(auth, "mint", to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to mint %s to %s: %w", amount, to.Hex(), err)
	}

	return tx, nil
}

// BalanceOf reads the asset balance of the given holder.
func (a *PortalERC20) BalanceOf(ctx context.Context, holder common.Address) (*big.Int, error) {
	var out []any
	if err := a.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", holder); err != nil {
		return nil, fmt.Errorf("failed to read balance of %s: %w", holder.Hex(), err)
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
