package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediflow/mediflow-sim/sim"
	"github.com/mediflow/mediflow-sim/sim/sweep"
	"github.com/mediflow/mediflow-sim/store"
)

var (
	minServers   int // Smallest staff count to simulate
	maxServers   int // Largest staff count to simulate
	sweepWorkers int // Concurrent simulations (0 = GOMAXPROCS)
)

// sweepCmd simulates a range of staff counts and recommends the smallest adequate one
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate a range of staff counts and recommend a staffing level",
	Run: func(cmd *cobra.Command, args []string) {
		params, sc, err := resolveParams(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid simulation parameters: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		report, err := sweep.Run(ctx, params, resolveSweepRange(cmd, sc))
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		renderSweepReport(os.Stdout, report)

		if exportResults {
			st, err := store.New(viper.GetString("results-dir"))
			if err != nil {
				logrus.Fatalf("Failed to open results directory: %v", err)
			}
			id, err := st.Save(store.KindSweep, report)
			if err != nil {
				logrus.Fatalf("Failed to export sweep: %v", err)
			}
			fmt.Printf("Results exported: %s\n", id)
		}
	},
}

// resolveSweepRange takes the scenario's sweep range when present; flags set
// on the command line win.
func resolveSweepRange(cmd *cobra.Command, sc *sim.Scenario) sim.SweepRange {
	r := sim.SweepRange{MinServers: minServers, MaxServers: maxServers, Workers: sweepWorkers}
	if sc == nil || sc.Sweep == nil {
		return r
	}
	if !cmd.Flags().Changed("min-servers") {
		r.MinServers = sc.Sweep.MinServers
	}
	if !cmd.Flags().Changed("max-servers") {
		r.MaxServers = sc.Sweep.MaxServers
	}
	if !cmd.Flags().Changed("workers") {
		r.Workers = sc.Sweep.Workers
	}
	return r
}

func init() {
	addParamFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&minServers, "min-servers", 1, "Smallest staff count to simulate")
	sweepCmd.Flags().IntVar(&maxServers, "max-servers", 8, "Largest staff count to simulate")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Concurrent simulations (0 = GOMAXPROCS)")
	sweepCmd.Flags().BoolVar(&exportResults, "export", false, "Save the sweep report to the results directory")
}
