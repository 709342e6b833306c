package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string // Optional config file (yaml, json or toml)
	logLevel   string // Log verbosity level
	resultsDir string // Directory for exported results
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mediflow",
	Short: "Discrete-event patient-flow simulator with staffing analysis",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(viper.GetString("log"))
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", viper.GetString("log"))
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig layers the config file and MEDIFLOW_* environment variables under the flags.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".mediflow")
	}

	viper.SetEnvPrefix("MEDIFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			logrus.Fatalf("Failed to read config: %v", err)
		}
		return
	}
	logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
}

// init sets up persistent flags and subcommands
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ./.mediflow.yaml or $HOME/.mediflow.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results-dir", "results", "Directory for exported results")

	_ = viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))
	_ = viper.BindPFlag("results-dir", rootCmd.PersistentFlags().Lookup("results-dir"))

	rootCmd.AddCommand(runCmd, sweepCmd, serveCmd, resultsCmd)
}
