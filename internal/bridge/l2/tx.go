package l2

import (
	"context"
	"fmt"
)

// TxStatus is the lifecycle state of a rollup transaction.
type TxStatus string

const (
	TxStatusPending  TxStatus = "pending"
	TxStatusMined    TxStatus = "mined"
	TxStatusDropped  TxStatus = "dropped"
	TxStatusReverted TxStatus = "reverted"
)

// Terminal reports whether the status can no longer change.
func (s TxStatus) Terminal() bool {
	return s == TxStatusMined || s == TxStatusDropped || s == TxStatusReverted
}

// TxReceipt is the outcome of a submitted rollup transaction.
type TxReceipt struct {
	TxHash string   `json:"txHash"`
	Status TxStatus `json:"status"`
	Error  string   `json:"error,omitempty"`
}

// Tx is a submitted rollup transaction that can be awaited to a terminal
// status.
type Tx interface {
	// Hash returns the transaction hash.
	Hash() string
	// Wait blocks until the transaction reaches a terminal status and
	// returns its receipt. A terminal status other than mined is not an
	// error here; callers decide what status they require.
	Wait(ctx context.Context) (*TxReceipt, error)
}

// StatusError reports a transaction that reached a terminal status other
// than the one the caller required.
type StatusError struct {
	Op   string
	Want TxStatus
	Got  TxStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: expected transaction status %s, got %s", e.Op, e.Want, e.Got)
}
