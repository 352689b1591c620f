// Package l1test provides an in-memory L1 backend for tests. It accepts
// signed transactions, mints a receipt per transaction and serves canned
// view-call results, without a running chain.
package l1test

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Backend implements l1.Backend against in-memory state.
type Backend struct {
	mu       sync.Mutex
	chainID  *big.Int
	nonce    uint64
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt

	// ReceiptFn, when set, decides the receipt for each sent transaction.
	// When nil, every transaction succeeds; creation transactions get a
	// deterministic contract address derived from sender and nonce.
	ReceiptFn func(tx *types.Transaction, from common.Address) *types.Receipt

	// CallFn, when set, serves eth_call view requests.
	CallFn func(msg ethereum.CallMsg) ([]byte, error)
}

// New creates a backend for the given chain ID. The chain ID must match the
// transactor used in the test so senders can be recovered from signatures.
func New(chainID *big.Int) *Backend {
	return &Backend{
		chainID:  chainID,
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

// Sent returns the transactions submitted so far, in order.
func (b *Backend) Sent() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*types.Transaction, len(b.sent))
	copy(out, b.sent)
	return out
}

func (b *Backend) CodeAt(_ context.Context, _ common.Address, _ *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (b *Backend) PendingCodeAt(_ context.Context, _ common.Address) ([]byte, error) {
	return []byte{0x01}, nil
}

func (b *Backend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if b.CallFn == nil {
		return nil, errors.New("l1test: no CallFn configured")
	}
	return b.CallFn(msg)
}

func (b *Backend) HeaderByNumber(_ context.Context, _ *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (b *Backend) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonce, nil
}

func (b *Backend) SuggestGasPrice(_ context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *Backend) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *Backend) EstimateGas(_ context.Context, _ ethereum.CallMsg) (uint64, error) {
	return 1_000_000, nil
}

func (b *Backend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	from, err := types.Sender(types.LatestSignerForChainID(b.chainID), tx)
	if err != nil {
		return err
	}

	receipt := b.defaultReceipt(tx, from)
	if b.ReceiptFn != nil {
		receipt = b.ReceiptFn(tx, from)
	}

	b.sent = append(b.sent, tx)
	b.receipts[tx.Hash()] = receipt
	b.nonce++

	return nil
}

func (b *Backend) defaultReceipt(tx *types.Transaction, from common.Address) *types.Receipt {
	receipt := &types.Receipt{
		TxHash:      tx.Hash(),
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(1),
	}
	if tx.To() == nil {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
	}
	return receipt
}

func (b *Backend) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	receipt, ok := b.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (b *Backend) FilterLogs(_ context.Context, _ ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (b *Backend) SubscribeFilterLogs(_ context.Context, _ ethereum.FilterQuery, _ chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("l1test: subscriptions not supported")
}
