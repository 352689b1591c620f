package l2

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// TokenContract is a live handle to the deployed rollup token.
type TokenContract struct {
	wallet  *Wallet
	address Address
}

// NewTokenContract binds a token handle to an already deployed address.
func NewTokenContract(wallet *Wallet, address Address) *TokenContract {
	return &TokenContract{wallet: wallet, address: address}
}

// Address returns the token's rollup address.
func (t *TokenContract) Address() Address {
	return t.address
}

// Admin reads the token's admin account.
func (t *TokenContract) Admin(ctx context.Context) (Address, error) {
	var admin Address
	if err := t.wallet.view(ctx, t.address, "admin", &admin); err != nil {
		return ZeroAddress, err
	}

	return admin, nil
}

// SetMinter grants or revokes minting rights for the given account.
func (t *TokenContract) SetMinter(ctx context.Context, minter Address, allowed bool) (Tx, error) {
	return t.wallet.send(ctx, t.address, "setMinter", minter, allowed)
}

// IsMinter reads whether the given account holds minting rights.
func (t *TokenContract) IsMinter(ctx context.Context, candidate Address) (bool, error) {
	var allowed bool
	if err := t.wallet.view(ctx, t.address, "isMinter", &allowed, candidate); err != nil {
		return false, err
	}

	return allowed, nil
}

// BridgeContract is a live handle to the deployed rollup bridge.
type BridgeContract struct {
	wallet  *Wallet
	address Address
}

// NewBridgeContract binds a bridge handle to an already deployed address.
func NewBridgeContract(wallet *Wallet, address Address) *BridgeContract {
	return &BridgeContract{wallet: wallet, address: address}
}

// Address returns the bridge's rollup address.
func (b *BridgeContract) Address() Address {
	return b.address
}

// Token reads the token address the bridge mints and burns.
func (b *BridgeContract) Token(ctx context.Context) (Address, error) {
	var token Address
	if err := b.wallet.view(ctx, b.address, "token", &token); err != nil {
		return ZeroAddress, err
	}

	return token, nil
}

// Portal reads the L1 portal address the bridge trusts.
func (b *BridgeContract) Portal(ctx context.Context) (common.Address, error) {
	var portal common.Address
	if err := b.wallet.view(ctx, b.address, "portal", &portal); err != nil {
		return common.Address{}, err
	}

	return portal, nil
}
