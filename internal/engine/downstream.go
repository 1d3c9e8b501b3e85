package engine

import "github.com/dshills/textbench/internal/trace"

// Update is one engine-specific captured change. Updates are immutable
// values; every adapter type-asserts its own concrete update type and fails
// with ErrUpdateType on a foreign one.
type Update any

// DownstreamEngine is implemented by engines that can capture the updates a
// local editing session would send to a remote peer.
type DownstreamEngine interface {
	Engine

	// DeriveUpdates replays the whole trace against an internal source
	// instance and captures exactly one update per patch. It returns a
	// baseline replica holding the trace's start content, causally
	// prepared to merge the captured updates, plus the updates in replay
	// order. The trace must already be unit-matched to the engine.
	DeriveUpdates(t *trace.Trace) (Replica, []Update, error)
}

// Replica is a document instance that can merge previously captured
// updates.
type Replica interface {
	Doc

	// Clone returns an independent copy sharing no mutable state with the
	// receiver. Trials clone the pristine baseline so every trial starts
	// from the same causal state.
	Clone() (Replica, error)

	// ApplyUpdate merges one captured update, advancing the replica's
	// causal state. Updates must be applied in capture order.
	ApplyUpdate(u Update) error
}
