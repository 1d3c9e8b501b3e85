package engine

import "fmt"

// bytesEngine is the naive baseline: the document is one contiguous byte
// buffer and every edit shifts the tail. Fast on small documents, which is
// exactly why it anchors comparisons.
type bytesEngine struct{}

func (bytesEngine) Name() string      { return "bytes" }
func (bytesEngine) ByteOffsets() bool { return true }

func (bytesEngine) New(initial string) (Doc, error) {
	return &bytesDoc{buf: []byte(initial)}, nil
}

type bytesDoc struct {
	buf []byte
}

func (d *bytesDoc) Insert(at int, text string) error {
	if at < 0 || at > len(d.buf) {
		return fmt.Errorf("bytes: insert at %d of %d: %w", at, len(d.buf), ErrOffsetOutOfRange)
	}
	d.splice(at, at, text)
	return nil
}

func (d *bytesDoc) Remove(start, end int) error {
	if err := d.check(start, end); err != nil {
		return err
	}
	d.splice(start, end, "")
	return nil
}

func (d *bytesDoc) Replace(start, end int, text string) error {
	if err := d.check(start, end); err != nil {
		return err
	}
	d.splice(start, end, text)
	return nil
}

func (d *bytesDoc) Len() int { return len(d.buf) }

func (d *bytesDoc) String() string { return string(d.buf) }

func (d *bytesDoc) check(start, end int) error {
	if start < 0 || start > end {
		return fmt.Errorf("bytes: range [%d, %d): %w", start, end, ErrRangeInvalid)
	}
	if end > len(d.buf) {
		return fmt.Errorf("bytes: range [%d, %d) of %d: %w", start, end, len(d.buf), ErrOffsetOutOfRange)
	}
	return nil
}

// splice replaces buf[start:end] with text, shifting the tail in place when
// capacity allows.
func (d *bytesDoc) splice(start, end int, text string) {
	tail := d.buf[end:]
	n := start + len(text) + len(tail)

	if n > cap(d.buf) {
		out := make([]byte, n)
		copy(out, d.buf[:start])
		copy(out[start:], text)
		copy(out[start+len(text):], tail)
		d.buf = out
		return
	}

	d.buf = d.buf[:n]
	copy(d.buf[start+len(text):], tail)
	copy(d.buf[start:], text)
}
