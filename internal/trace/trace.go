package trace

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/textbench/internal/rope"
)

// Patch is one atomic edit: at Pos, delete Del units, then insert Ins.
// Pos and Del are expressed in the owning trace's offset unit.
type Patch struct {
	Pos int
	Del int
	Ins string
}

// Txn groups the patches of one recorded transaction.
// Patches apply strictly in order; each position is relative to the document
// state after all prior patches in the whole trace.
type Txn struct {
	Patches []Patch
}

// Trace is a recorded editing session with known start and end content.
// A Trace is immutable once created; derived variants are new values.
type Trace struct {
	Name         string
	StartContent string
	EndContent   string
	Txns         []Txn

	// ByteOffsets reports the offset unit of Pos and Del: UTF-8 bytes when
	// true, Unicode codepoints when false. Loaded traces use codepoints.
	ByteOffsets bool
}

// NumPatches returns the total patch count across all transactions.
func (t *Trace) NumPatches() int {
	n := 0
	for i := range t.Txns {
		n += len(t.Txns[i].Patches)
	}
	return n
}

// StartLen returns the length of StartContent in the trace's offset unit.
func (t *Trace) StartLen() int {
	return t.contentLen(t.StartContent)
}

// EndLen returns the length of EndContent in the trace's offset unit.
// Replaying the trace must yield a document of exactly this length.
func (t *Trace) EndLen() int {
	return t.contentLen(t.EndContent)
}

func (t *Trace) contentLen(s string) int {
	if t.ByteOffsets {
		return len(s)
	}
	return utf8.RuneCountInString(s)
}

// CharsToBytes returns a variant of the trace whose positions and delete
// counts are byte offsets. The receiver is never mutated; a trace already
// using byte offsets is returned unchanged.
//
// Byte positions depend on the document state at each patch, so the general
// case replays the trace over a rope that maps codepoint indices to byte
// offsets. All-ASCII traces convert without replay since the units coincide.
func (t *Trace) CharsToBytes() (*Trace, error) {
	if t.ByteOffsets {
		return t, nil
	}

	if t.allASCII() {
		out := *t
		out.ByteOffsets = true
		return &out, nil
	}

	doc := rope.FromString(t.StartContent)
	txns := make([]Txn, len(t.Txns))

	for ti := range t.Txns {
		patches := make([]Patch, len(t.Txns[ti].Patches))
		for pi, p := range t.Txns[ti].Patches {
			start, err := doc.OffsetOfRune(uint64(p.Pos))
			if err != nil {
				return nil, fmt.Errorf("trace %s: txn %d patch %d: %w", t.Name, ti, pi, err)
			}
			end, err := doc.OffsetOfRune(uint64(p.Pos + p.Del))
			if err != nil {
				return nil, fmt.Errorf("trace %s: txn %d patch %d: %w", t.Name, ti, pi, err)
			}

			patches[pi] = Patch{
				Pos: int(start),
				Del: int(end - start),
				Ins: p.Ins,
			}

			doc, err = doc.Replace(start, end, p.Ins)
			if err != nil {
				return nil, fmt.Errorf("trace %s: txn %d patch %d: %w", t.Name, ti, pi, err)
			}
		}
		txns[ti] = Txn{Patches: patches}
	}

	return &Trace{
		Name:         t.Name,
		StartContent: t.StartContent,
		EndContent:   t.EndContent,
		Txns:         txns,
		ByteOffsets:  true,
	}, nil
}

// allASCII reports whether every piece of content the trace touches is ASCII.
func (t *Trace) allASCII() bool {
	if !isASCII(t.StartContent) {
		return false
	}
	for i := range t.Txns {
		for _, p := range t.Txns[i].Patches {
			if !isASCII(p.Ins) {
				return false
			}
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
