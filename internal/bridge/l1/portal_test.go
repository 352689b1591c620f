package l1_test

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lisaaztec/dev-rel/internal/bridge/l1"
	"github.com/lisaaztec/dev-rel/internal/bridge/l1/l1test"
)

const portalABIJSON = `[
	{"type":"function","name":"initialize","inputs":[{"name":"_registry","type":"address"},{"name":"_underlying","type":"address"},{"name":"_l2Bridge","type":"bytes32"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"registry","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"underlying","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"l2Bridge","inputs":[],"outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view"}
]`

const erc20ABIJSON = `[
	{"type":"function","name":"mint","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"balanceOf","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}
]`

// portalViews serves portal view calls by replaying the arguments of the
// initialize transaction recorded by the backend.
func portalViews(portalABI abi.ABI, backend *l1test.Backend) func(msg ethereum.CallMsg) ([]byte, error) {
	return func(msg ethereum.CallMsg) ([]byte, error) {
		method, err := portalABI.MethodById(msg.Data[:4])
		if err != nil {
			return nil, err
		}

		init := portalABI.Methods["initialize"]
		for _, tx := range backend.Sent() {
			data := tx.Data()
			if tx.To() == nil || len(data) < 4 || !bytes.Equal(data[:4], init.ID) {
				continue
			}

			args, err := init.Inputs.Unpack(data[4:])
			if err != nil {
				return nil, err
			}

			switch method.Name {
			case "registry":
				return method.Outputs.Pack(args[0].(common.Address))
			case "underlying":
				return method.Outputs.Pack(args[1].(common.Address))
			case "l2Bridge":
				return method.Outputs.Pack(args[2].([32]byte))
			}
		}

		return nil, fmt.Errorf("portal not initialized")
	}
}

func TestTokenPortal_InitializeAndViews(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	auth, err := bind.NewKeyedTransactorWithChainID(key, testChainID)
	require.NoError(t, err)

	backend := l1test.New(testChainID)
	portalABI := mustABI(t, portalABIJSON)
	backend.CallFn = portalViews(portalABI, backend)

	portalAddr := common.HexToAddress("0x1000000000000000000000000000000000000001")
	portal := l1.NewTokenPortal(portalAddr, portalABI, backend)
	assert.Equal(t, portalAddr, portal.Address())

	registry := common.HexToAddress("0x2000000000000000000000000000000000000002")
	underlying := common.HexToAddress("0x3000000000000000000000000000000000000003")
	var l2Bridge [32]byte
	l2Bridge[31] = 0x42

	tx, err := portal.Initialize(auth, registry, underlying, l2Bridge)
	require.NoError(t, err)

	sent := backend.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, &portalAddr, sent[0].To())
	assert.Equal(t, portalABI.Methods["initialize"].ID, sent[0].Data()[:4])
	assert.Equal(t, tx.Hash(), sent[0].Hash())

	gotRegistry, err := portal.Registry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, registry, gotRegistry)

	gotUnderlying, err := portal.Underlying(context.Background())
	require.NoError(t, err)
	assert.Equal(t, underlying, gotUnderlying)

	gotBridge, err := portal.L2Bridge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, l2Bridge, gotBridge)
}

func TestPortalERC20_MintAndBalance(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	auth, err := bind.NewKeyedTransactorWithChainID(key, testChainID)
	require.NoError(t, err)

	backend := l1test.New(testChainID)
	erc20ABI := mustABI(t, erc20ABIJSON)

	balance := big.NewInt(1_000_000)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) {
		method, err := erc20ABI.MethodById(msg.Data[:4])
		if err != nil {
			return nil, err
		}
		require.Equal(t, "balanceOf", method.Name)
		return method.Outputs.Pack(balance)
	}

	assetAddr := common.HexToAddress("0x4000000000000000000000000000000000000004")
	asset := l1.NewPortalERC20(assetAddr, erc20ABI, backend)
	assert.Equal(t, assetAddr, asset.Address())

	holder := common.HexToAddress("0x5000000000000000000000000000000000000005")
	_, err = asset.Mint(auth, holder, big.NewInt(500))
	require.NoError(t, err)

	sent := backend.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, erc20ABI.Methods["mint"].ID, sent[0].Data()[:4])

	got, err := asset.BalanceOf(context.Background(), holder)
	require.NoError(t, err)
	assert.Equal(t, balance, got)
}
