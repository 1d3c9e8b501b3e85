package bench

import (
	"fmt"

	"github.com/dshills/textbench/internal/engine"
	"github.com/dshills/textbench/internal/trace"
)

// PrepareTrace returns the trace variant whose offsets match the engine's
// declared unit. This is the single place the offset-unit flag is
// consulted; it must run before any timed work.
func PrepareTrace(e engine.Engine, tr *trace.Trace) (*trace.Trace, error) {
	if e.ByteOffsets() {
		out, err := tr.CharsToBytes()
		if err != nil {
			return nil, fmt.Errorf("preparing trace %s for engine %s: %w", tr.Name, e.Name(), err)
		}
		return out, nil
	}
	if tr.ByteOffsets {
		return nil, fmt.Errorf("trace %s carries byte offsets, engine %s needs codepoints: %w",
			tr.Name, e.Name(), ErrUnitMismatch)
	}
	return tr, nil
}

// ReplayUpstream replays a unit-matched trace against a fresh document and
// verifies the final length. This is the upstream measurement body; one
// call is one trial.
func ReplayUpstream(e engine.Engine, tr *trace.Trace) error {
	d, err := e.New(tr.StartContent)
	if err != nil {
		return fmt.Errorf("engine %s: seeding from %s: %w", e.Name(), tr.Name, err)
	}

	for ti := range tr.Txns {
		for pi, p := range tr.Txns[ti].Patches {
			if err := engine.Replace(d, p.Pos, p.Pos+p.Del, p.Ins); err != nil {
				return fmt.Errorf("engine %s: trace %s txn %d patch %d: %w",
					e.Name(), tr.Name, ti, pi, err)
			}
		}
	}

	if got, want := d.Len(), tr.EndLen(); got != want {
		return &LengthError{
			Engine: e.Name(),
			Trace:  tr.Name,
			Unit:   engine.UnitOf(e),
			Got:    got,
			Want:   want,
		}
	}
	return nil
}
