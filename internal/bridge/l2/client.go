package l2

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/lisaaztec/dev-rel/internal/bridge/clock"
	"github.com/lisaaztec/dev-rel/internal/logger"
)

const defaultPollInterval = 500 * time.Millisecond

// Client talks to a rollup node over its JSON-RPC dev API.
type Client struct {
	rpc    *rpc.Client
	logger *slog.Logger
}

// Dial connects to the rollup node RPC.
func Dial(ctx context.Context, url string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rollup node at %s: %w", url, err)
	}

	return NewClient(rpcClient), nil
}

// NewClient wraps an existing RPC connection.
func NewClient(rpcClient *rpc.Client) *Client {
	return &Client{
		rpc:    rpcClient,
		logger: logger.Named("l2_client"),
	}
}

// Close closes the underlying RPC connection.
func (c *Client) Close() {
	c.rpc.Close()
}

func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	if err := c.rpc.CallContext(ctx, result, method, args...); err != nil {
		return fmt.Errorf("rollup RPC %s failed: %w", method, err)
	}

	return nil
}

// Wallet signs and submits rollup transactions for a single account.
type Wallet struct {
	client       *Client
	address      Address
	pollInterval time.Duration
}

// NewWallet binds a wallet to the node connection and sender account.
func NewWallet(client *Client, address Address) *Wallet {
	return &Wallet{
		client:       client,
		address:      address,
		pollInterval: defaultPollInterval,
	}
}

// Address returns the wallet's rollup account address.
func (w *Wallet) Address() Address {
	return w.address
}

type (
	deployRequest struct {
		Contract string  `json:"contract"`
		From     Address `json:"from"`
		Args     []any   `json:"args"`
		// PortalContract attaches the deployed contract to an L1 portal.
		// Only meaningful for portal-aware contracts such as the bridge.
		PortalContract string `json:"portalContract,omitempty"`
	}

	deployResult struct {
		TxHash  string  `json:"txHash"`
		Address Address `json:"address"`
	}

	sendRequest struct {
		From   Address `json:"from"`
		To     Address `json:"to"`
		Method string  `json:"method"`
		Args   []any   `json:"args"`
	}

	callRequest struct {
		To     Address `json:"to"`
		Method string  `json:"method"`
		Args   []any   `json:"args"`
	}
)

// DeployToken deploys the rollup token contract with the given admin account
// and returns a live handle together with the pending deployment transaction.
func (w *Wallet) DeployToken(ctx context.Context, admin Address) (*TokenContract, Tx, error) {
	var res deployResult
	err := w.client.call(ctx, &res, "rollup_deployContract", deployRequest{
		Contract: "Token",
		From:     w.address,
		Args:     []any{admin},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to deploy rollup token: %w", err)
	}

	w.client.logger.Debug("token deployment submitted", "tx_hash", res.TxHash, "address", res.Address)

	return NewTokenContract(w, res.Address), w.pending(res.TxHash), nil
}

// DeployBridge deploys the rollup bridge contract referencing the token and
// attached to the L1 portal, and returns a live handle together with the
// pending deployment transaction.
func (w *Wallet) DeployBridge(ctx context.Context, token Address, portal common.Address) (*BridgeContract, Tx, error) {
	var res deployResult
	err := w.client.call(ctx, &res, "rollup_deployContract", deployRequest{
		Contract:       "TokenBridge",
		From:           w.address,
		Args:           []any{token},
		PortalContract: portal.Hex(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to deploy rollup bridge: %w", err)
	}

	w.client.logger.Debug("bridge deployment submitted", "tx_hash", res.TxHash, "address", res.Address)

	return NewBridgeContract(w, res.Address), w.pending(res.TxHash), nil
}

// send submits a contract method call transaction.
func (w *Wallet) send(ctx context.Context, to Address, method string, args ...any) (Tx, error) {
	var txHash string
	err := w.client.call(ctx, &txHash, "rollup_sendTransaction", sendRequest{
		From:   w.address,
		To:     to,
		Method: method,
		Args:   args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send %s to %s: %w", method, to, err)
	}

	return w.pending(txHash), nil
}

// view reads contract state without submitting a transaction.
func (w *Wallet) view(ctx context.Context, to Address, method string, result any, args ...any) error {
	err := w.client.call(ctx, result, "rollup_call", callRequest{
		To:     to,
		Method: method,
		Args:   args,
	})
	if err != nil {
		return fmt.Errorf("failed to call %s on %s: %w", method, to, err)
	}

	return nil
}

func (w *Wallet) pending(txHash string) *pendingTx {
	return &pendingTx{
		client:       w.client,
		txHash:       txHash,
		pollInterval: w.pollInterval,
	}
}

// pendingTx polls the node until the transaction reaches a terminal status.
type pendingTx struct {
	client       *Client
	txHash       string
	pollInterval time.Duration
}

func (t *pendingTx) Hash() string {
	return t.txHash
}

func (t *pendingTx) Wait(ctx context.Context) (*TxReceipt, error) {
	for {
		var receipt TxReceipt
		if err := t.client.call(ctx, &receipt, "rollup_getTransactionReceipt", t.txHash); err != nil {
			return nil, err
		}

		if receipt.Status.Terminal() {
			return &receipt, nil
		}

		if err := clock.Delay(ctx, t.pollInterval); err != nil {
			return nil, err
		}
	}
}
