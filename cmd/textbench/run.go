package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/textbench/internal/bench"
	"github.com/dshills/textbench/internal/engine"
	"github.com/dshills/textbench/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark matrix and report throughput",
	Long: `Run measures every selected engine against every selected trace.
Upstream cells replay the trace as local edits; downstream cells apply the
captured update stream to a fresh replica. A cell that fails its final
length check is reported and the run continues with the remaining cells.`,
	RunE: runBenchmarks,
}

var runFlags struct {
	config     string
	traces     []string
	engines    []string
	downstream []string
	trials     int
	warmup     int
	format     string
	history    string
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.config, "config", "", "Path to TOML run configuration")
	f.StringSliceVar(&runFlags.traces, "trace", nil, "Trace to run (repeatable, default all configured)")
	f.StringSliceVar(&runFlags.engines, "engine", nil, "Engine to run upstream (repeatable, default all configured)")
	f.StringSliceVar(&runFlags.downstream, "downstream", nil, "Engine to run downstream (repeatable)")
	f.IntVar(&runFlags.trials, "trials", 0, "Timed trials per cell (overrides config)")
	f.IntVar(&runFlags.warmup, "warmup", 0, "Untimed warmup runs per cell (overrides config)")
	f.StringVar(&runFlags.format, "format", "", "Output format: text or json (default: text on a terminal)")
	f.StringVar(&runFlags.history, "history", "", "Append results to this bbolt history file")
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(runFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadPlan(cmd)
	if err != nil {
		return err
	}

	traceNames, err := selectTraces(&cfg.Corpus, runFlags.traces)
	if err != nil {
		return err
	}

	runner, err := bench.NewRunner(cfg.Run, slog.Default())
	if err != nil {
		return err
	}

	results, failed := executeMatrix(runner, cfg, traceNames)

	if runFlags.history != "" {
		if err := appendHistory(runFlags.history, results); err != nil {
			return err
		}
	}

	if format == formatJSON {
		err = printResultsJSON(os.Stdout, results)
	} else {
		err = printResultsTable(os.Stdout, results)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d benchmark cell(s) failed", failed)
	}
	return nil
}

// loadPlan resolves the run plan: config file (or defaults) with flag
// overrides applied on top, validated as a whole.
func loadPlan(cmd *cobra.Command) (*bench.Config, error) {
	var cfg *bench.Config
	if runFlags.config != "" {
		c, err := bench.LoadConfig(runFlags.config)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = bench.DefaultConfig()
	}

	if cmd.Flags().Changed("engine") {
		cfg.Engines.Upstream = runFlags.engines
		if !cmd.Flags().Changed("downstream") {
			// Named engines keep their downstream cells only when capable;
			// an explicit --downstream still fails loudly on a gap.
			cfg.Engines.Downstream = downstreamSubset(runFlags.engines)
		}
	}
	if cmd.Flags().Changed("downstream") {
		cfg.Engines.Downstream = runFlags.downstream
	}
	if cmd.Flags().Changed("trials") {
		cfg.Run.Trials = runFlags.trials
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Run.Warmup = runFlags.warmup
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func downstreamSubset(names []string) []string {
	var out []string
	for _, name := range names {
		if _, err := engine.Downstream(name); err == nil {
			out = append(out, name)
		}
	}
	return out
}

func selectTraces(reg *trace.Registry, names []string) ([]string, error) {
	if len(names) == 0 {
		return reg.Names(), nil
	}
	for _, name := range names {
		if _, err := reg.Path(name); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// executeMatrix runs one cell at a time; interleaving measurements would
// perturb timings. Cell failures are reported and counted, not fatal.
func executeMatrix(runner *bench.Runner, cfg *bench.Config, traceNames []string) ([]*bench.Result, int) {
	var results []*bench.Result
	failed := 0

	for _, traceName := range traceNames {
		tr, err := cfg.Corpus.Load(traceName)
		if err != nil {
			slog.Error("loading trace failed", "trace", traceName, "error", err)
			failed += len(cfg.Engines.Upstream) + len(cfg.Engines.Downstream)
			continue
		}
		slog.Info("trace loaded", "trace", traceName, "patches", tr.NumPatches())

		for _, name := range cfg.Engines.Upstream {
			e, err := engine.Lookup(name)
			if err != nil {
				slog.Error("engine lookup failed", "engine", name, "error", err)
				failed++
				continue
			}
			res, err := runner.Upstream(e, tr)
			if err != nil {
				slog.Error("upstream cell failed", "engine", name, "trace", traceName, "error", err)
				failed++
				continue
			}
			results = append(results, res)
		}

		for _, name := range cfg.Engines.Downstream {
			de, err := engine.Downstream(name)
			if err != nil {
				slog.Error("engine lookup failed", "engine", name, "error", err)
				failed++
				continue
			}
			res, err := runner.Downstream(de, tr)
			if err != nil {
				slog.Error("downstream cell failed", "engine", name, "trace", traceName, "error", err)
				failed++
				continue
			}
			results = append(results, res)
		}
	}

	return results, failed
}

func appendHistory(path string, results []*bench.Result) error {
	h, err := bench.OpenHistory(path)
	if err != nil {
		return err
	}
	defer h.Close()

	for _, res := range results {
		if err := h.Save(res); err != nil {
			return err
		}
	}
	slog.Info("results saved", "history", path, "count", len(results))
	return nil
}
