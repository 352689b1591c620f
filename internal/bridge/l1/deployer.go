package l1

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrNoContractAddress reports an inclusion receipt that claims success but
// carries no created contract address. Such a receipt must never be treated
// as a successful deployment.
var ErrNoContractAddress = errors.New("deployment receipt carries no contract address")

// DeployContract submits a contract-creation transaction signed by auth,
// blocks until it is included and returns the created contract's address as
// reported by the receipt.
func DeployContract(ctx context.Context, auth *bind.TransactOpts, backend Backend, contractABI abi.ABI, bytecode []byte, args ...any) (common.Address, error) {
	auth.Context = ctx

	if auth.GasPrice == nil && auth.GasFeeCap == nil {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to get gas price: %w", err)
		}
		auth.GasPrice = gasPrice
	}

	_, tx, _, err := bind.DeployContract(auth, contractABI, bytecode, backend, args...)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to submit deployment transaction: %w", err)
	}

	slog.Debug("contract deployment transaction sent", "tx_hash", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to wait for deployment transaction %s: %w", tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Address{}, fmt.Errorf("deployment transaction %s reverted with status %d", tx.Hash().Hex(), receipt.Status)
	}

	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: transaction %s", ErrNoContractAddress, tx.Hash().Hex())
	}

	return receipt.ContractAddress, nil
}
