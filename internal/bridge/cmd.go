package bridge

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lisaaztec/dev-rel/configs"
)

var CMD = &cobra.Command{
	Use:   "bridge",
	Short: "Commands for bootstrapping the cross-chain token bridge",
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy and link the token bridge across L1 and the rollup",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("starting bridge deploy. Validating config", slog.Any("config", configs.Values.Bridge))

		if err := configs.Values.Bridge.Validate(); err != nil {
			return err
		}

		if err := Execute(cmd.Context(), configs.Values.Bridge); err != nil {
			return fmt.Errorf("error occurred deploying bridge: %w", err)
		}

		slog.Info("bridge deployed successfully")

		return nil
	},
}
