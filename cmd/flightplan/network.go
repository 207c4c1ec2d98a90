package main

import (
	"flight-plan-service/internal/adapters/network"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/render"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newNetworkCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Print the airports and arcs of the loaded network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWith(v)
			if err != nil {
				return err
			}
			flights, err := network.Source(cfg.Network.Path).LoadNetwork(cmd.Context())
			if err != nil {
				return fmt.Errorf("load network: %w", err)
			}
			return render.WriteNetwork(cmd.OutOrStdout(), flights)
		},
	}
}
