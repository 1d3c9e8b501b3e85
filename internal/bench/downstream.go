package bench

import (
	"fmt"

	"github.com/dshills/textbench/internal/engine"
	"github.com/dshills/textbench/internal/trace"
)

// DownstreamRun holds everything one downstream measurement needs: the
// pristine baseline replica, the captured updates, and the expected end
// length. Derivation happens once; trials reuse the run.
type DownstreamRun struct {
	engineName string
	traceName  string
	unit       string
	baseline   engine.Replica
	updates    []engine.Update
	wantLen    int
}

// DeriveDownstream unit-matches the trace, derives the update sequence, and
// verifies the derivation with one untimed trial.
func DeriveDownstream(de engine.DownstreamEngine, tr *trace.Trace) (*DownstreamRun, error) {
	prepared, err := PrepareTrace(de, tr)
	if err != nil {
		return nil, err
	}

	baseline, updates, err := de.DeriveUpdates(prepared)
	if err != nil {
		return nil, fmt.Errorf("engine %s: deriving updates from %s: %w", de.Name(), tr.Name, err)
	}

	r := &DownstreamRun{
		engineName: de.Name(),
		traceName:  prepared.Name,
		unit:       engine.UnitOf(de),
		baseline:   baseline,
		updates:    updates,
		wantLen:    prepared.EndLen(),
	}

	if err := r.Trial(); err != nil {
		return nil, fmt.Errorf("verifying derivation: %w", err)
	}
	return r, nil
}

// Trial clones the baseline, applies every captured update in order, and
// verifies the final length. One call is one trial; the clone is mandatory
// because updates are bound to the baseline's causal state.
func (r *DownstreamRun) Trial() error {
	rep, err := r.baseline.Clone()
	if err != nil {
		return fmt.Errorf("engine %s: cloning baseline for %s: %w", r.engineName, r.traceName, err)
	}

	for i, u := range r.updates {
		if err := rep.ApplyUpdate(u); err != nil {
			return fmt.Errorf("engine %s: trace %s update %d: %w", r.engineName, r.traceName, i, err)
		}
	}

	if got := rep.Len(); got != r.wantLen {
		return &LengthError{
			Engine: r.engineName,
			Trace:  r.traceName,
			Unit:   r.unit,
			Got:    got,
			Want:   r.wantLen,
		}
	}
	return nil
}

// NumUpdates returns the number of captured updates, one per trace patch.
func (r *DownstreamRun) NumUpdates() int { return len(r.updates) }
