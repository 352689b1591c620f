package l1_test

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lisaaztec/dev-rel/internal/bridge/l1"
	"github.com/lisaaztec/dev-rel/internal/bridge/l1/l1test"
)

var testChainID = big.NewInt(1337)

func mustABI(t *testing.T, definition string) abi.ABI {
	t.Helper()

	parsed, err := abi.JSON(strings.NewReader(definition))
	require.NoError(t, err)
	return parsed
}

func TestDeployContract(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	auth, err := bind.NewKeyedTransactorWithChainID(key, testChainID)
	require.NoError(t, err)

	backend := l1test.New(testChainID)
	emptyABI := mustABI(t, `[]`)
	bytecode := []byte{0x60, 0x80, 0x60, 0x40, 0x52}

	addr, err := l1.DeployContract(context.Background(), auth, backend, emptyABI, bytecode)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(from, 0), addr)

	// A second deployment from the same account lands at a fresh address.
	second, err := l1.DeployContract(context.Background(), auth, backend, emptyABI, bytecode)
	require.NoError(t, err)
	assert.NotEqual(t, addr, second)
	assert.Equal(t, crypto.CreateAddress(from, 1), second)

	sent := backend.Sent()
	require.Len(t, sent, 2)
	assert.Nil(t, sent[0].To())
	assert.Equal(t, bytecode, sent[0].Data())
}

func TestDeployContract_MissingContractAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	auth, err := bind.NewKeyedTransactorWithChainID(key, testChainID)
	require.NoError(t, err)

	backend := l1test.New(testChainID)
	backend.ReceiptFn = func(tx *types.Transaction, _ common.Address) *types.Receipt {
		return &types.Receipt{
			TxHash:      tx.Hash(),
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(1),
		}
	}

	_, err = l1.DeployContract(context.Background(), auth, backend, mustABI(t, `[]`), []byte{0x60})
	require.ErrorIs(t, err, l1.ErrNoContractAddress)
}

func TestDeployContract_Reverted(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	auth, err := bind.NewKeyedTransactorWithChainID(key, testChainID)
	require.NoError(t, err)

	backend := l1test.New(testChainID)
	backend.ReceiptFn = func(tx *types.Transaction, _ common.Address) *types.Receipt {
		return &types.Receipt{
			TxHash:      tx.Hash(),
			Status:      types.ReceiptStatusFailed,
			BlockNumber: big.NewInt(1),
		}
	}

	_, err = l1.DeployContract(context.Background(), auth, backend, mustABI(t, `[]`), []byte{0x60})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverted")
}
