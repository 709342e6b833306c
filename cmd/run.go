package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediflow/mediflow-sim/sim"
	"github.com/mediflow/mediflow-sim/sim/trace"
	"github.com/mediflow/mediflow-sim/store"
)

var (
	exportResults bool   // Save the result to the results directory
	traceLevel    string // Transition trace level
)

// runCmd executes one simulation using parameters from CLI flags or a scenario
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a patient-flow simulation and analyze staffing",
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		params, _, err := resolveParams(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid simulation parameters: %v", err)
		}

		startTime := time.Now()
		s, err := sim.NewSimulator(params, sim.WithTrace(trace.TraceLevel(traceLevel)))
		if err != nil {
			logrus.Fatalf("Invalid simulation parameters: %v", err)
		}
		s.Run()
		res := s.Result()

		renderRunReport(os.Stdout, res)
		if s.Trace != nil {
			renderTraceSummary(os.Stdout, trace.Summarize(s.Trace))
		}
		logrus.Infof("Simulation complete in %s", time.Since(startTime))

		if exportResults {
			st, err := store.New(viper.GetString("results-dir"))
			if err != nil {
				logrus.Fatalf("Failed to open results directory: %v", err)
			}
			id, err := st.Save(store.KindSimulation, res)
			if err != nil {
				logrus.Fatalf("Failed to export results: %v", err)
			}
			fmt.Printf("Results exported: %s\n", id)
		}
	},
}

func init() {
	addParamFlags(runCmd)
	runCmd.Flags().BoolVar(&exportResults, "export", false, "Save the result to the results directory")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Trace level (none, transitions)")
}
