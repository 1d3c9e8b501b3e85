package engine

import "github.com/dshills/textbench/internal/rope"

// ropeEngine wraps the in-repo persistent rope. Edits return new rope
// versions; the adapter holds the current version and swaps it on each
// edit.
type ropeEngine struct{}

func (ropeEngine) Name() string      { return "rope" }
func (ropeEngine) ByteOffsets() bool { return true }

func (ropeEngine) New(initial string) (Doc, error) {
	return &ropeDoc{r: rope.FromString(initial)}, nil
}

type ropeDoc struct {
	r rope.Rope
}

func (d *ropeDoc) Insert(at int, text string) error {
	r, err := d.r.Insert(rope.ByteOffset(at), text)
	if err != nil {
		return err
	}
	d.r = r
	return nil
}

func (d *ropeDoc) Remove(start, end int) error {
	r, err := d.r.Delete(rope.ByteOffset(start), rope.ByteOffset(end))
	if err != nil {
		return err
	}
	d.r = r
	return nil
}

func (d *ropeDoc) Replace(start, end int, text string) error {
	r, err := d.r.Replace(rope.ByteOffset(start), rope.ByteOffset(end), text)
	if err != nil {
		return err
	}
	d.r = r
	return nil
}

func (d *ropeDoc) Len() int { return int(d.r.Len()) }

func (d *ropeDoc) String() string { return d.r.String() }
