package main

import (
	"flight-plan-service/internal/platform/obs"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "flightplan",
		Short:         "Enumerate single-aircraft flight plans over a route network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	root.PersistentFlags().String("config", "", "config file (toml, yaml or json)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log search progress to stderr")
	root.PersistentFlags().String("network", "", "network file (.toml or .json); builtin network when empty")
	_ = v.BindPFlag("NETWORK_PATH", root.PersistentFlags().Lookup("network"))

	root.AddCommand(newEnumerateCmd(v), newNetworkCmd(v))
	return root
}

// initConfig reads the optional config file and installs the CLI logger.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	level := "warn"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger, err := obs.NewLogger(level, true)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
