package devnode

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lisaaztec/dev-rel/configs"
)

var CMD = &cobra.Command{
	Use:   "devnode",
	Short: "Run a throwaway local L1 dev node",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("starting devnode command. Validating config", slog.Any("config", configs.Values.DevNode))

		if err := configs.Values.DevNode.Validate(); err != nil {
			return err
		}

		if err := NewService().Execute(cmd.Context(), configs.Values.DevNode); err != nil {
			return fmt.Errorf("error occurred running dev node: %w", err)
		}

		return nil
	},
}

func init() {
	CMD.Flags().String("image", "ghcr.io/foundry-rs/foundry:latest", "Dev node image to run")
	CMD.Flags().String("build-dir", "", "Directory with a Dockerfile to build a custom node image")
	CMD.Flags().Int("rpc-port", 8545, "Host port to publish the node RPC on")
	CMD.Flags().Int("chain-id", 31337, "Chain ID of the dev chain")

	for flag, key := range map[string]string{
		"image":     "devnode.image",
		"build-dir": "devnode.build-dir",
		"rpc-port":  "devnode.rpc-port",
		"chain-id":  "devnode.chain-id",
	} {
		if err := viper.BindPFlag(key, CMD.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
