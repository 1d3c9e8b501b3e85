package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/textbench/internal/bench"
)

// printResultsTable renders results for humans. Counts and throughput go
// through the English printer so corpus-scale numbers stay readable.
func printResultsTable(w io.Writer, results []*bench.Result) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "ENGINE\tTRACE\tDIRECTION\tUNIT\tPATCHES\tMEAN\tP95\tPATCHES/S")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Engine,
			r.Trace,
			r.Direction,
			r.Unit,
			p.Sprintf("%d", r.Patches),
			formatDuration(r.Stats.Mean),
			formatDuration(r.Stats.P95),
			p.Sprintf("%.0f", r.PatchesPerSec))
	}
	return tw.Flush()
}

func printResultsJSON(w io.Writer, results []*bench.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}
