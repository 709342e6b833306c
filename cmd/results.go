package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediflow/mediflow-sim/store"
)

// resultsCmd groups commands that inspect exported results
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect exported results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported results, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := openStore().List()
		if err != nil {
			logrus.Fatalf("Failed to list results: %v", err)
		}
		renderResultsList(os.Stdout, entries)
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <export-id>",
	Short: "Print an exported result as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := showResult(os.Stdout, openStore(), args[0]); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func openStore() *store.Store {
	st, err := store.New(viper.GetString("results-dir"))
	if err != nil {
		logrus.Fatalf("Failed to open results directory: %v", err)
	}
	return st
}

// showResult writes the stored JSON for id, re-indented.
func showResult(w io.Writer, st *store.Store, id string) error {
	data, err := st.Raw(id)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func init() {
	resultsCmd.AddCommand(resultsListCmd, resultsShowCmd)
}
