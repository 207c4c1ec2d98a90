package main

import (
	"flight-plan-service/internal/adapters/network"
	"flight-plan-service/internal/adapters/repositories"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/render"
	"flight-plan-service/internal/services"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEnumerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Print every maximal plan out of the hub inside the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnumerate(cmd, v)
		},
	}

	f := cmd.Flags()
	f.String("hub", "", "hub airport code")
	f.String("start", "", "window start (RFC3339 or HH:MM UTC today)")
	f.Duration("window", 0, "window length")
	f.Duration("turnaround", 0, "idle time after every landing")
	f.Float64("scale", 0, "multiplier applied to every arc duration")
	f.Duration("timeout", 0, "give up on the search after this long")
	f.Bool("close-at-hub", false, "trim plans back to their last hub landing")
	f.Bool("save", false, "record the run in the configured store")

	_ = v.BindPFlag("SEARCH_HUB", f.Lookup("hub"))
	_ = v.BindPFlag("SEARCH_START", f.Lookup("start"))
	_ = v.BindPFlag("SEARCH_WINDOW", f.Lookup("window"))
	_ = v.BindPFlag("SEARCH_TURNAROUND", f.Lookup("turnaround"))
	_ = v.BindPFlag("SEARCH_DURATION_SCALE", f.Lookup("scale"))
	_ = v.BindPFlag("SEARCH_TIMEOUT", f.Lookup("timeout"))

	return cmd
}

func runEnumerate(cmd *cobra.Command, v *viper.Viper) error {
	ctx := cmd.Context()

	cfg, err := config.LoadWith(v)
	if err != nil {
		return err
	}

	flights, err := network.Source(cfg.Network.Path).LoadNetwork(ctx)
	if err != nil {
		return fmt.Errorf("load network: %w", err)
	}

	start, err := cfg.Search.StartTime(time.Now())
	if err != nil {
		return err
	}

	planner := &services.Planner{Network: flights, Timeout: cfg.Search.Timeout}

	if save, _ := cmd.Flags().GetBool("save"); save {
		store, conn, err := repositories.OpenStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		if conn != nil {
			defer conn.Close()
		}
		planner.Store = store
	}

	closeAtHub, _ := cmd.Flags().GetBool("close-at-hub")
	run, err := planner.Plan(ctx, services.PlanFlightsRequest{
		Search: services.SearchRequest{
			Hub:           cfg.Search.Hub,
			Start:         start,
			End:           start.Add(cfg.Search.Window),
			Turnaround:    cfg.Search.Turnaround,
			DurationScale: cfg.Search.DurationScale,
		},
		CloseAtHub: closeAtHub,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Duration scale = %g\n", run.DurationScale)
	fmt.Fprintf(out, "Turnaround = %s\n\n", run.Turnaround)
	if err := render.WritePlans(out, run.Plans); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d plans from %s between %s and %s\n",
		len(run.Plans), run.Hub, run.Start.Format(time.RFC3339), run.End.Format(time.RFC3339))
	if planner.Store != nil {
		fmt.Fprintf(out, "saved run %s\n", run.ID)
	}
	return nil
}
