package output

import (
	"gopkg.in/yaml.v3"
)

type (
	Model struct {
		Bridge Bridge `yaml:"bridge"`
	}

	Bridge struct {
		L1 L1 `yaml:"l1"`
		L2 L2 `yaml:"l2"`
	}

	L1 struct {
		RPCURL   string         `yaml:"rpc-url"`
		Registry string         `yaml:"registry-address"`
		Portal   ContractConfig `yaml:"portal"`
		Asset    ContractConfig `yaml:"asset"`
	}

	L2 struct {
		NodeURL string `yaml:"node-url"`
		Token   string `yaml:"token-address"`
		Bridge  string `yaml:"bridge-address"`
	}

	ContractConfig struct {
		Address string             `yaml:"address"`
		ABI     SingleQuotedString `yaml:"abi"`
	}

	SingleQuotedString string
)

func (s SingleQuotedString) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.SingleQuotedStyle,
		Value: string(s),
	}
	return node, nil
}
