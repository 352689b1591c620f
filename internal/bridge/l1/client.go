package l1

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/lisaaztec/dev-rel/internal/bridge/clock"
)

// Backend is the L1 client surface the bridge bootstrap needs: view calls,
// transaction submission and receipt polling. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

var _ Backend = (*ethclient.Client)(nil)

// Dial connects to the L1 execution layer RPC.
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to L1 RPC at %s: %w", url, err)
	}

	return client, nil
}

// WaitForRPC blocks until the L1 RPC at url answers a block number query.
func WaitForRPC(ctx context.Context, url string) error {
	for range 120 {
		client, err := ethclient.DialContext(ctx, url)
		if err == nil {
			_, err := client.BlockNumber(ctx)
			client.Close()
			if err == nil {
				return nil
			}
		}

		if err := clock.Delay(ctx, time.Second); err != nil {
			return err
		}
	}

	return fmt.Errorf("timed out waiting for L1 RPC at %s", url)
}

// TransactorFromKey builds a signing transactor for the chain the client is
// connected to and returns it together with the derived sender address.
func TransactorFromKey(ctx context.Context, client *ethclient.Client, privateKeyHex string) (*bind.TransactOpts, common.Address, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to parse L1 private key: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to get L1 chain ID: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to create transactor: %w", err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, common.Address{}, fmt.Errorf("failed to cast public key to ECDSA")
	}

	return auth, crypto.PubkeyToAddress(*publicKey), nil
}
