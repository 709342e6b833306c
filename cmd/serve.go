package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediflow/mediflow-sim/server"
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		srv, err := server.New(server.Config{
			Host:        viper.GetString("host"),
			Port:        viper.GetInt("port"),
			ResultsDir:  viper.GetString("results-dir"),
			MaxArrivals: viper.GetFloat64("max-arrivals"),
		})
		if err != nil {
			logrus.Fatalf("Failed to create server: %v", err)
		}
		if err := srv.Start(); err != nil {
			logrus.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "Listen host")
	serveCmd.Flags().Int("port", 5000, "Listen port")
	serveCmd.Flags().Float64("max-arrivals", server.DefaultMaxArrivals, "Largest arrival_rate × hours accepted per run")
	_ = viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("max-arrivals", serveCmd.Flags().Lookup("max-arrivals"))
}
