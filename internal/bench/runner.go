package bench

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dshills/textbench/internal/engine"
	"github.com/dshills/textbench/internal/trace"
)

// RunConfig controls how many times each measurement body runs.
type RunConfig struct {
	// Warmup is the number of untimed runs before measurement.
	Warmup int `toml:"warmup" json:"warmup"`

	// Trials is the number of timed runs per measurement.
	Trials int `toml:"trials" json:"trials"`
}

// DefaultRunConfig returns the standard measurement plan.
func DefaultRunConfig() RunConfig {
	return RunConfig{Warmup: 1, Trials: 10}
}

func (c RunConfig) validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("trials = %d: %w", c.Trials, ErrNoTrials)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup = %d: %w", c.Warmup, ErrNegativeWarmup)
	}
	return nil
}

// Runner measures engines against traces one cell at a time.
type Runner struct {
	cfg RunConfig
	log *slog.Logger
}

// NewRunner validates the plan and builds a runner. A nil logger falls back
// to the process default.
func NewRunner(cfg RunConfig, log *slog.Logger) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{cfg: cfg, log: log}, nil
}

// Upstream measures local replay throughput of one engine on one trace.
func (r *Runner) Upstream(e engine.Engine, tr *trace.Trace) (*Result, error) {
	prepared, err := PrepareTrace(e, tr)
	if err != nil {
		return nil, err
	}

	r.log.Debug("measuring upstream",
		"engine", e.Name(),
		"trace", tr.Name,
		"patches", prepared.NumPatches(),
		"unit", engine.UnitOf(e))

	trials, err := r.measure(func() error { return ReplayUpstream(e, prepared) })
	if err != nil {
		return nil, err
	}
	return newResult(e, prepared, DirectionUpstream, prepared.NumPatches(), trials), nil
}

// Downstream measures update-merge throughput of one engine on one trace.
// Derivation runs once, outside all timed regions.
func (r *Runner) Downstream(de engine.DownstreamEngine, tr *trace.Trace) (*Result, error) {
	run, err := DeriveDownstream(de, tr)
	if err != nil {
		return nil, err
	}

	r.log.Debug("measuring downstream",
		"engine", de.Name(),
		"trace", tr.Name,
		"updates", run.NumUpdates(),
		"unit", engine.UnitOf(de))

	trials, err := r.measure(run.Trial)
	if err != nil {
		return nil, err
	}
	return newResult(de, tr, DirectionDownstream, run.NumUpdates(), trials), nil
}

// measure runs the warmups untimed, then times each trial with wall-clock
// durations. Any trial error aborts the whole measurement.
func (r *Runner) measure(trial func() error) ([]time.Duration, error) {
	for i := 0; i < r.cfg.Warmup; i++ {
		if err := trial(); err != nil {
			return nil, fmt.Errorf("warmup %d: %w", i, err)
		}
	}

	trials := make([]time.Duration, 0, r.cfg.Trials)
	for i := 0; i < r.cfg.Trials; i++ {
		start := time.Now()
		if err := trial(); err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		trials = append(trials, time.Since(start))
	}
	return trials, nil
}
