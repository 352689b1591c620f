package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lisaaztec/dev-rel/configs"
	"github.com/lisaaztec/dev-rel/internal/bridge"
	"github.com/lisaaztec/dev-rel/internal/devnode"
	"github.com/lisaaztec/dev-rel/internal/logger"
)

const appName = "bridgenet"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "CLI for bootstrapping a cross-chain token bridge between an L1 chain and a rollup",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.Initialize(logger.Level(verbose))

		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			viper.AddConfigPath(execDir)
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")

		// A config file is optional; flags can provide everything.
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				slog.Debug("no config file found, will rely on flags and defaults")
			} else {
				const errMsg = "error reading config file"
				slog.With("err", err.Error()).Error(errMsg)
				return errors.Join(err, errors.New(errMsg))
			}
		} else {
			slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
		}

		defaults, err := configs.DefaultConfig()
		if err != nil {
			slog.With("err", err.Error()).Error("unable to load embedded defaults")
			return err
		}
		configs.Values = defaults

		if err := viper.Unmarshal(&configs.Values); err != nil {
			const errMsg = "unable to decode application config"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(bridge.CMD)
	rootCmd.AddCommand(devnode.CMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
