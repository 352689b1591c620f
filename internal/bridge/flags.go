package bridge

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag bound to a viper configuration key.
type (
	flagType interface {
		string | int | bool
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

var stringFlags = []flagDef[string]{
	// L1 connection
	{"l1-rpc-url", "bridge.l1.rpc-url", "", "L1 execution layer RPC URL"},
	{"l1-private-key", "bridge.l1.private-key", "", "L1 deployer private key"},

	// Rollup connection
	{"l2-node-url", "bridge.l2.node-url", "", "Rollup node RPC URL"},
	{"l2-owner-address", "bridge.l2.owner-address", "", "Rollup account that becomes the token admin"},

	// Bridge parameters
	{"registry-address", "bridge.registry-address", "", "L1 address of the rollup registry"},
	{"asset-address", "bridge.asset-address", "", "Existing L1 asset address (deploys a fresh test asset when empty)"},
	{"artifacts-path", "bridge.artifacts-path", "artifacts/contracts.json", "Path to the combined contract artifacts file"},
	{"output-path", "bridge.output-path", "bridge-deployment.yaml", "Path of the deployment summary file"},
	{"mint-initial", "bridge.mint-initial", "0", "Amount of the test asset minted to the deployer after setup"},
}

func init() {
	if err := declareFlags(deployCmd, stringFlags); err != nil {
		panic(err)
	}
	CMD.AddCommand(deployCmd)
}

// declareFlags declares multiple flags and binds them to viper keys.
func declareFlags[T flagType](cmd *cobra.Command, flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(cmd, flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single flag of type T and binds it to a viper key.
func declareFlag[T flagType](cmd *cobra.Command, flagName, viperKey string, defaultValue T, description string) error {
	var zero T
	switch any(zero).(type) {
	case string:
		cmd.Flags().String(flagName, any(defaultValue).(string), description)
	case int:
		cmd.Flags().Int(flagName, any(defaultValue).(int), description)
	case bool:
		cmd.Flags().Bool(flagName, any(defaultValue).(bool), description)
	}
	return viper.BindPFlag(viperKey, cmd.Flags().Lookup(flagName))
}
