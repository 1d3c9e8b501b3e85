package bench

import (
	"errors"
	"fmt"
)

// Errors returned by measurement configuration.
var (
	// ErrNoTrials indicates a run was configured without any timed trials.
	ErrNoTrials = errors.New("at least one trial is required")

	// ErrNegativeWarmup indicates a negative warmup count.
	ErrNegativeWarmup = errors.New("warmup count cannot be negative")

	// ErrUnitMismatch indicates a trace whose offset unit the engine cannot
	// consume.
	ErrUnitMismatch = errors.New("trace offset unit does not match engine")

	// ErrNoTraces indicates a run plan without any corpus entries.
	ErrNoTraces = errors.New("no traces configured")

	// ErrNoEngines indicates a run plan without any engines selected.
	ErrNoEngines = errors.New("no engines selected")
)

// LengthError reports a replay that ended on the wrong document length.
// It names the engine and the trace; this is the harness's core
// correctness check and is always fatal for the affected measurement.
type LengthError struct {
	Engine string
	Trace  string
	Unit   string
	Got    int
	Want   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("engine %s on trace %s: final length %d %s, want %d",
		e.Engine, e.Trace, e.Got, e.Unit, e.Want)
}
