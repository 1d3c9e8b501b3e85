// Package bench drives engines through recorded traces and measures them.
//
// Two replay directions exist. Upstream measures local editing: every patch
// of a trace is applied to a fresh document via the engine's replace path.
// Downstream measures update propagation: the updates a local session would
// emit are derived once, then each trial clones a pristine baseline replica
// and merges all updates in order.
//
// Both directions end in the same verification: the final document length
// must equal the trace's end-content length in the engine's offset unit.
// A mismatch is a correctness failure of the engine under test and aborts
// the measurement as a *LengthError; it is never reported as a timing.
//
// Measurement itself is deliberately plain: warmup runs, then timed trials
// with wall-clock durations, summarized as min/max/mean and nearest-rank
// percentiles, with throughput normalized by the trace's patch count.
package bench
