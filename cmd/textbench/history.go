package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/textbench/internal/bench"
)

var historyFlags struct {
	path   string
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored benchmark results, oldest first",
	RunE:  listHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.path, "history", "textbench.db", "Path to the bbolt history file")
	f.StringVar(&historyFlags.format, "format", "",
		"Output format: text or json (default: text on a terminal)")
}

func listHistory(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(historyFlags.format)
	if err != nil {
		return err
	}

	h, err := bench.OpenHistory(historyFlags.path)
	if err != nil {
		return err
	}
	defer h.Close()

	results, err := h.List()
	if err != nil {
		return err
	}

	if format == formatJSON {
		return printResultsJSON(os.Stdout, results)
	}
	return printResultsTable(os.Stdout, results)
}
