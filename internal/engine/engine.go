package engine

// Engine describes one text-replication backend and builds document
// instances for it.
type Engine interface {
	// Name returns the stable identifier used in configuration, CLI
	// arguments, and results.
	Name() string

	// ByteOffsets reports the engine's offset unit: UTF-8 bytes when true,
	// Unicode codepoints when false. The unit is a constant property of
	// the engine, never a per-call choice.
	ByteOffsets() bool

	// New builds a fresh document seeded with the initial content. The
	// instance reports Len() equal to the initial content's length in the
	// engine's offset unit.
	New(initial string) (Doc, error)
}

// Doc is one mutable document instance owned by a single adapter.
// Offsets are in the owning engine's declared unit.
type Doc interface {
	// Insert places text at the given offset. Fails when at > Len().
	Insert(at int, text string) error

	// Remove deletes the half-open range [start, end). Fails when the
	// range exceeds the document bounds or start > end.
	Remove(start, end int) error

	// Len returns the current document size.
	Len() int
}

// Replacer is implemented by documents with a native single-operation
// replace. Replace prefers it over the remove+insert composition.
type Replacer interface {
	Replace(start, end int, text string) error
}

// Replace applies one patch to a document: delete [start, end), then insert
// text at start.
//
// When the document implements Replacer and the call is not fully
// degenerate, the native implementation is used. Otherwise Remove runs only
// for a non-empty range and Insert only for non-empty text; some backends
// reject zero-length operations, so the degenerate halves are skipped
// rather than forwarded.
func Replace(d Doc, start, end int, text string) error {
	if start == end && text == "" {
		return nil
	}
	if r, ok := d.(Replacer); ok {
		return r.Replace(start, end, text)
	}
	if start != end {
		if err := d.Remove(start, end); err != nil {
			return err
		}
	}
	if text != "" {
		if err := d.Insert(start, text); err != nil {
			return err
		}
	}
	return nil
}

// UnitOf names an engine's offset unit for reporting.
func UnitOf(e Engine) string {
	if e.ByteOffsets() {
		return "bytes"
	}
	return "codepoints"
}
