package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/lisaaztec/dev-rel/internal/bridge/artifacts"
	"github.com/lisaaztec/dev-rel/internal/bridge/crosschain"
)

type Generator struct {
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the deployment summary consumed by downstream tooling:
// every deployed address plus the ABIs needed to talk to the L1 side.
func (g *Generator) Generate(path, l1RPCURL, l2NodeURL string, registry common.Address, deployment *crosschain.Deployment, contracts map[artifacts.ContractName]artifacts.CompiledContract) error {
	model := &Model{
		Bridge: Bridge{
			L1: L1{
				RPCURL:   l1RPCURL,
				Registry: registry.Hex(),
				Portal: ContractConfig{
					Address: deployment.PortalAddress.Hex(),
					ABI:     SingleQuotedString(compactJSON(contracts[artifacts.ContractNameTokenPortal].RawABI)),
				},
				Asset: ContractConfig{
					Address: deployment.Asset.Address().Hex(),
					ABI:     SingleQuotedString(compactJSON(contracts[artifacts.ContractNamePortalERC20].RawABI)),
				},
			},
			L2: L2{
				NodeURL: l2NodeURL,
				Token:   deployment.Token.Address().Hex(),
				Bridge:  deployment.Bridge.Address().Hex(),
			},
		},
	}

	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("could not marshal output model: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write output file: %w", err)
	}

	return nil
}

func compactJSON(jsonStr string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(jsonStr)); err != nil {
		return jsonStr
	}
	return buf.String()
}
