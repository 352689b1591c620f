package configs

import (
	"errors"
	"fmt"
)

var Values Config

type (
	Config struct {
		Bridge  Bridge  `mapstructure:"bridge"`
		DevNode DevNode `mapstructure:"devnode"`
	}

	Bridge struct {
		L1              L1     `mapstructure:"l1"`
		L2              L2     `mapstructure:"l2"`
		RegistryAddress string `mapstructure:"registry-address"`
		AssetAddress    string `mapstructure:"asset-address"`
		ArtifactsPath   string `mapstructure:"artifacts-path"`
		OutputPath      string `mapstructure:"output-path"`
		MintInitial     string `mapstructure:"mint-initial"`
	}

	L1 struct {
		RPCURL     string `mapstructure:"rpc-url"`
		PrivateKey string `mapstructure:"private-key"`
	}

	L2 struct {
		NodeURL      string `mapstructure:"node-url"`
		OwnerAddress string `mapstructure:"owner-address"`
	}

	DevNode struct {
		Image    string `mapstructure:"image"`
		BuildDir string `mapstructure:"build-dir"`
		RPCPort  int    `mapstructure:"rpc-port"`
		ChainID  int    `mapstructure:"chain-id"`
	}
)

func (c *Bridge) Validate() error {
	var errs []error

	if c.L1.RPCURL == "" {
		errs = append(errs, errors.New("bridge.l1.rpc-url is required"))
	}
	if c.L1.PrivateKey == "" {
		errs = append(errs, errors.New("bridge.l1.private-key is required"))
	}
	if c.L2.NodeURL == "" {
		errs = append(errs, errors.New("bridge.l2.node-url is required"))
	}
	if c.L2.OwnerAddress == "" {
		errs = append(errs, errors.New("bridge.l2.owner-address is required"))
	}
	if c.RegistryAddress == "" {
		errs = append(errs, errors.New("bridge.registry-address is required"))
	}
	if c.ArtifactsPath == "" {
		errs = append(errs, errors.New("bridge.artifacts-path is required"))
	}
	if c.OutputPath == "" {
		errs = append(errs, errors.New("bridge.output-path is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("bridge configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

func (c *DevNode) Validate() error {
	var errs []error

	if c.Image == "" && c.BuildDir == "" {
		errs = append(errs, errors.New("devnode.image or devnode.build-dir is required"))
	}
	if c.RPCPort == 0 {
		errs = append(errs, errors.New("devnode.rpc-port is required"))
	}
	if c.ChainID == 0 {
		errs = append(errs, errors.New("devnode.chain-id is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("devnode configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}
