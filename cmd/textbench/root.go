package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "textbench",
	Short: "Benchmark collaborative text replication engines on recorded editing traces",
	Long: `textbench replays recorded editing sessions against interchangeable
text replication engines and measures patch throughput in two directions:
upstream (applying local edits) and downstream (merging captured updates
into a remote replica).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd, enginesCmd, tracesCmd, historyCmd)
}

func setupLogging(level string) error {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q (use debug, info, warn, error)", level)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// resolveFormat applies the terminal heuristic: humans at a terminal get the
// table, pipes get JSON.
func resolveFormat(format string) (string, error) {
	switch format {
	case formatText, formatJSON:
		return format, nil
	case "":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return formatText, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q (use text or json)", format)
	}
}
