package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/brunokim/causal-tree/crdt"
	"github.com/google/uuid"

	"github.com/dshills/textbench/internal/trace"
)

// causalEngine drives the causal-tree CRDT. The tree's own operations are
// per-character, so spans are applied one rune at a time; positions are
// codepoint offsets.
type causalEngine struct{}

func (causalEngine) Name() string      { return "causal-tree" }
func (causalEngine) ByteOffsets() bool { return false }

func (causalEngine) New(initial string) (Doc, error) {
	return newCausalDoc(initial)
}

type causalDoc struct {
	tree   *crdt.CausalTree
	length int
	stale  bool
}

func newCausalDoc(initial string) (*causalDoc, error) {
	d := &causalDoc{tree: crdt.NewCausalTree()}
	if err := d.Insert(0, initial); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *causalDoc) Insert(at int, text string) error {
	if at < 0 || at > d.Len() {
		return fmt.Errorf("causal-tree: insert at %d of %d: %w", at, d.Len(), ErrOffsetOutOfRange)
	}

	// InsertCharAt positions are "after atom i", with -1 meaning the
	// document start. The first rune seeds the cursor; the rest ride it as
	// it advances.
	first := true
	for _, r := range text {
		var err error
		if first {
			err = d.tree.InsertCharAt(r, at-1)
			first = false
		} else {
			err = d.tree.InsertChar(r)
		}
		if err != nil {
			return fmt.Errorf("causal-tree: insert at %d: %w", at, err)
		}
	}

	d.length += utf8.RuneCountInString(text)
	return nil
}

func (d *causalDoc) Remove(start, end int) error {
	if start < 0 || start > end {
		return fmt.Errorf("causal-tree: range [%d, %d): %w", start, end, ErrRangeInvalid)
	}
	if end > d.Len() {
		return fmt.Errorf("causal-tree: range [%d, %d) of %d: %w", start, end, d.Len(), ErrOffsetOutOfRange)
	}

	// Deleting at start shifts the next survivor into the same position.
	for i := start; i < end; i++ {
		if err := d.tree.DeleteCharAt(start); err != nil {
			return fmt.Errorf("causal-tree: remove [%d, %d): %w", start, end, err)
		}
	}

	d.length -= end - start
	return nil
}

func (d *causalDoc) Len() int {
	if d.stale {
		d.length = utf8.RuneCountInString(d.tree.ToString())
		d.stale = false
	}
	return d.length
}

func (d *causalDoc) String() string { return d.tree.ToString() }

// DeriveUpdates replays the trace against a source tree and snapshots the
// full tree state after every patch; merging those snapshots in order is
// idempotent and converges the receiver onto the source. The baseline
// replica is forked from the seeded source before any patch, so it shares
// the source's causal history for the start content.
func (e causalEngine) DeriveUpdates(tr *trace.Trace) (Replica, []Update, error) {
	src, err := newCausalDoc(tr.StartContent)
	if err != nil {
		return nil, nil, fmt.Errorf("causal-tree: seeding %s: %w", tr.Name, err)
	}

	baseTree, err := src.tree.Fork()
	if err != nil {
		return nil, nil, fmt.Errorf("causal-tree: forking baseline for %s: %w", tr.Name, err)
	}
	base := &causalReplica{causalDoc{tree: baseTree, length: src.length}}

	updates := make([]Update, 0, tr.NumPatches())
	for ti := range tr.Txns {
		for pi, p := range tr.Txns[ti].Patches {
			if err := Replace(src, p.Pos, p.Pos+p.Del, p.Ins); err != nil {
				return nil, nil, fmt.Errorf("causal-tree: trace %s txn %d patch %d: %w", tr.Name, ti, pi, err)
			}
			updates = append(updates, cloneTree(src.tree))
		}
	}

	return base, updates, nil
}

type causalReplica struct {
	causalDoc
}

func (r *causalReplica) Clone() (Replica, error) {
	return &causalReplica{causalDoc{
		tree:   cloneTree(r.tree),
		length: r.length,
		stale:  r.stale,
	}}, nil
}

func (r *causalReplica) ApplyUpdate(u Update) error {
	remote, ok := u.(*crdt.CausalTree)
	if !ok {
		return fmt.Errorf("causal-tree: applying %T: %w", u, ErrUpdateType)
	}
	r.tree.Merge(remote)
	r.stale = true
	return nil
}

// cloneTree deep-copies a tree without registering a new site. Fork would
// also bump the site map, and sites are capped at 2^16, far below the patch
// counts of real traces.
func cloneTree(t *crdt.CausalTree) *crdt.CausalTree {
	out := &crdt.CausalTree{
		Weave:     append([]crdt.Atom(nil), t.Weave...),
		Cursor:    t.Cursor,
		Yarns:     make([][]crdt.Atom, len(t.Yarns)),
		Sitemap:   append([]uuid.UUID(nil), t.Sitemap...),
		SiteID:    t.SiteID,
		Timestamp: t.Timestamp,
	}
	for i, yarn := range t.Yarns {
		out.Yarns[i] = append([]crdt.Atom(nil), yarn...)
	}
	return out
}
