package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fmpwizard/go-quilljs-delta/delta"

	"github.com/dshills/textbench/internal/trace"
)

// deltaEngine represents the document as a Quill delta of insert ops. Every
// patch becomes a retain/insert/delete change delta composed onto the
// document; the library counts in runes, so positions are codepoint
// offsets.
type deltaEngine struct{}

func (deltaEngine) Name() string      { return "quill-delta" }
func (deltaEngine) ByteOffsets() bool { return false }

func (deltaEngine) New(initial string) (Doc, error) {
	return newDeltaDoc(initial), nil
}

type deltaDoc struct {
	doc    *delta.Delta
	length int
}

func newDeltaDoc(initial string) *deltaDoc {
	d := delta.New(nil)
	if initial != "" {
		d = d.Insert(initial, nil)
	}
	return &deltaDoc{doc: d, length: utf8.RuneCountInString(initial)}
}

func (d *deltaDoc) Insert(at int, text string) error {
	_, err := d.apply(at, at, text)
	return err
}

func (d *deltaDoc) Remove(start, end int) error {
	_, err := d.apply(start, end, "")
	return err
}

func (d *deltaDoc) Replace(start, end int, text string) error {
	_, err := d.apply(start, end, text)
	return err
}

func (d *deltaDoc) Len() int { return d.length }

func (d *deltaDoc) String() string {
	var sb strings.Builder
	for _, op := range d.doc.Ops {
		if len(op.Insert) > 0 {
			sb.WriteString(string(op.Insert))
		}
	}
	return sb.String()
}

// apply composes one patch onto the document and returns the change delta
// that did it.
func (d *deltaDoc) apply(start, end int, text string) (*delta.Delta, error) {
	if start < 0 || start > end {
		return nil, fmt.Errorf("quill-delta: range [%d, %d): %w", start, end, ErrRangeInvalid)
	}
	if end > d.length {
		return nil, fmt.Errorf("quill-delta: range [%d, %d) of %d: %w", start, end, d.length, ErrOffsetOutOfRange)
	}

	ch := changeDelta(start, end, text)
	if start != end || text != "" {
		d.doc = d.doc.Compose(*ch)
		d.length += utf8.RuneCountInString(text) - (end - start)
	}
	return ch, nil
}

// changeDelta builds the canonical change for replacing [start, end) with
// text: retain up to start, insert, then delete the replaced span.
func changeDelta(start, end int, text string) *delta.Delta {
	ch := delta.New(nil)
	if start > 0 {
		ch = ch.Retain(start, nil)
	}
	if text != "" {
		ch = ch.Insert(text, nil)
	}
	if end > start {
		ch = ch.Delete(end - start)
	}
	return ch
}

// DeriveUpdates replays the trace against a source document, capturing each
// patch's change delta as one update. The baseline replica is seeded
// independently from the start content; composing the captured changes in
// order reproduces the source document.
func (e deltaEngine) DeriveUpdates(tr *trace.Trace) (Replica, []Update, error) {
	src := newDeltaDoc(tr.StartContent)

	updates := make([]Update, 0, tr.NumPatches())
	for ti := range tr.Txns {
		for pi, p := range tr.Txns[ti].Patches {
			ch, err := src.apply(p.Pos, p.Pos+p.Del, p.Ins)
			if err != nil {
				return nil, nil, fmt.Errorf("quill-delta: trace %s txn %d patch %d: %w", tr.Name, ti, pi, err)
			}
			updates = append(updates, ch)
		}
	}

	return &deltaReplica{*newDeltaDoc(tr.StartContent)}, updates, nil
}

type deltaReplica struct {
	deltaDoc
}

func (r *deltaReplica) Clone() (Replica, error) {
	return &deltaReplica{deltaDoc{
		doc:    delta.New(append([]delta.Op(nil), r.doc.Ops...)),
		length: r.length,
	}}, nil
}

func (r *deltaReplica) ApplyUpdate(u Update) error {
	ch, ok := u.(*delta.Delta)
	if !ok {
		return fmt.Errorf("quill-delta: applying %T: %w", u, ErrUpdateType)
	}
	r.doc = r.doc.Compose(*ch)

	// The change delta carries the length shift; rescanning the document
	// here would tax the timed path.
	for _, op := range ch.Ops {
		if len(op.Insert) > 0 {
			r.length += len(op.Insert)
		}
		if op.Delete != nil {
			r.length -= *op.Delete
		}
	}
	return nil
}
