package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBridge() Bridge {
	return Bridge{
		L1: L1{
			RPCURL:     "http://localhost:8545",
			PrivateKey: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		},
		L2: L2{
			NodeURL:      "http://localhost:8080",
			OwnerAddress: "0x1100000000000000000000000000000000000000000000000000000000000000",
		},
		RegistryAddress: "0x0000000000000000000000000000000000000001",
		ArtifactsPath:   "contracts.json",
		OutputPath:      "bridge.yaml",
	}
}

func TestBridgeValidate(t *testing.T) {
	cfg := validBridge()
	require.NoError(t, cfg.Validate())

	// The asset address and initial mint are optional.
	cfg.AssetAddress = ""
	cfg.MintInitial = ""
	require.NoError(t, cfg.Validate())
}

func TestBridgeValidate_CollectsAllErrors(t *testing.T) {
	err := (&Bridge{}).Validate()
	require.Error(t, err)

	for _, key := range []string{
		"bridge.l1.rpc-url",
		"bridge.l1.private-key",
		"bridge.l2.node-url",
		"bridge.l2.owner-address",
		"bridge.registry-address",
		"bridge.artifacts-path",
		"bridge.output-path",
	} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestDevNodeValidate(t *testing.T) {
	cfg := DevNode{Image: "ghcr.io/foundry-rs/foundry:latest", RPCPort: 8545, ChainID: 31337}
	require.NoError(t, cfg.Validate())

	// A local build directory replaces the image.
	cfg.Image = ""
	cfg.BuildDir = "./devnode"
	require.NoError(t, cfg.Validate())
}

func TestDevNodeValidate_Missing(t *testing.T) {
	err := (&DevNode{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devnode.image or devnode.build-dir")
	assert.Contains(t, err.Error(), "devnode.rpc-port")
	assert.Contains(t, err.Error(), "devnode.chain-id")
}
