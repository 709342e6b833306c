package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mediflow/mediflow-sim/sim"
)

var (
	// CLI flags shared by run and sweep
	arrivalRate  float64 // Patient arrivals per hour
	serviceRate  float64 // Patients one staff member serves per hour
	servers      int     // Number of staff
	hours        float64 // Simulated duration in hours
	seed         int64   // RNG seed
	scenarioPath string  // Optional YAML scenario
)

// addParamFlags registers the simulation parameter flags on cmd.
func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 10, "Patient arrivals per hour")
	cmd.Flags().Float64Var(&serviceRate, "service-rate", 4, "Patients served per hour by one staff member")
	cmd.Flags().IntVar(&servers, "servers", 3, "Number of staff")
	cmd.Flags().Float64Var(&hours, "hours", 8, "Simulated duration in hours")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random arrival and service times")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario; explicitly set flags override its values")
}

// resolveParams builds the run parameters from the flags, starting from the
// scenario file when one is given. Only flags the user set override it.
func resolveParams(flags *pflag.FlagSet) (sim.SimulationParameters, *sim.Scenario, error) {
	if scenarioPath == "" {
		p := sim.NewSimulationParameters(arrivalRate, serviceRate, servers, hours, seed)
		return p, nil, p.Validate()
	}

	sc, err := sim.LoadScenario(scenarioPath)
	if err != nil {
		return sim.SimulationParameters{}, nil, err
	}
	p := sc.SimulationParameters
	if flags.Changed("arrival-rate") {
		p.ArrivalRate = arrivalRate
	}
	if flags.Changed("service-rate") {
		p.ServiceRate = serviceRate
	}
	if flags.Changed("servers") {
		p.Servers = servers
	}
	if flags.Changed("hours") {
		p.Duration = hours
	}
	if flags.Changed("seed") {
		s := seed
		p.Seed = &s
	}
	return p, sc, p.Validate()
}
