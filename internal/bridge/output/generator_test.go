package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lisaaztec/dev-rel/internal/bridge/artifacts"
	"github.com/lisaaztec/dev-rel/internal/bridge/crosschain"
	"github.com/lisaaztec/dev-rel/internal/bridge/l1"
	"github.com/lisaaztec/dev-rel/internal/bridge/l1/l1test"
	"github.com/lisaaztec/dev-rel/internal/bridge/l2"
)

const portalRawABI = `[
	{"type": "function", "name": "initialize"}
]`

const erc20RawABI = `[{"type":"function","name":"mint"}]`

func TestGenerate(t *testing.T) {
	backend := l1test.New(nil)

	portalAddr := common.HexToAddress("0x1000000000000000000000000000000000000001")
	assetAddr := common.HexToAddress("0x2000000000000000000000000000000000000002")
	registry := common.HexToAddress("0x3000000000000000000000000000000000000003")

	var tokenAddr, bridgeAddr l2.Address
	tokenAddr[31] = 0x01
	bridgeAddr[31] = 0x02

	deployment := &crosschain.Deployment{
		Token:         l2.NewTokenContract(nil, tokenAddr),
		Bridge:        l2.NewBridgeContract(nil, bridgeAddr),
		PortalAddress: portalAddr,
		Portal:        l1.NewTokenPortal(portalAddr, abi.ABI{}, backend),
		Asset:         l1.NewPortalERC20(assetAddr, abi.ABI{}, backend),
	}

	contracts := map[artifacts.ContractName]artifacts.CompiledContract{
		artifacts.ContractNameTokenPortal: {RawABI: portalRawABI},
		artifacts.ContractNamePortalERC20: {RawABI: erc20RawABI},
	}

	path := filepath.Join(t.TempDir(), "bridge.yaml")
	err := NewGenerator().Generate(path, "http://localhost:8545", "http://localhost:8080", registry, deployment, contracts)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var model Model
	require.NoError(t, yaml.Unmarshal(data, &model))

	assert.Equal(t, "http://localhost:8545", model.Bridge.L1.RPCURL)
	assert.Equal(t, registry.Hex(), model.Bridge.L1.Registry)
	assert.Equal(t, portalAddr.Hex(), model.Bridge.L1.Portal.Address)
	assert.Equal(t, assetAddr.Hex(), model.Bridge.L1.Asset.Address)
	assert.Equal(t, "http://localhost:8080", model.Bridge.L2.NodeURL)
	assert.Equal(t, tokenAddr.Hex(), model.Bridge.L2.Token)
	assert.Equal(t, bridgeAddr.Hex(), model.Bridge.L2.Bridge)

	// ABIs are compacted and single-quoted so downstream YAML parsers read
	// them as one scalar.
	assert.Equal(t, `[{"type":"function","name":"initialize"}]`, string(model.Bridge.L1.Portal.ABI))
	assert.Contains(t, string(data), `'[{"type":"function","name":"initialize"}]'`)
}

func TestCompactJSON_InvalidInputPassedThrough(t *testing.T) {
	broken := "not json"
	assert.Equal(t, broken, compactJSON(broken))
}

func TestSingleQuotedString(t *testing.T) {
	out, err := yaml.Marshal(map[string]SingleQuotedString{"abi": "[]"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "'[]'"))
}
