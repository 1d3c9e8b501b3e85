package rope

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and safe concurrent read access.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// buildFromChunks builds a rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	// Build leaf nodes
	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	// Build tree bottom-up
	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	return Rope{root: nodes[0]}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// Runes returns the total codepoint count.
func (r Rope) Runes() uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.Runes()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
// Out-of-range bounds are clamped.
func (r Rope) Slice(start, end ByteOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// Insert inserts text at the given byte offset.
// Returns a new rope; the original is unchanged.
// Fails with ErrOffsetOutOfRange if offset is past the end of the rope.
func (r Rope) Insert(offset ByteOffset, text string) (Rope, error) {
	if offset > r.Len() {
		return Rope{}, fmt.Errorf("insert at %d in rope of %d bytes: %w", offset, r.Len(), ErrOffsetOutOfRange)
	}

	if len(text) == 0 {
		return r, nil
	}

	if r.root == nil || r.Len() == 0 {
		return FromString(text), nil
	}

	if offset == 0 {
		return FromString(text).Concat(r), nil
	}

	if offset == r.Len() {
		return r.Concat(FromString(text)), nil
	}

	// Split at offset, insert in middle
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right), nil
}

// Delete removes text in the byte range [start, end).
// Returns a new rope; the original is unchanged.
// Fails with ErrRangeInvalid when end < start and with ErrOffsetOutOfRange
// when the range extends past the end of the rope.
func (r Rope) Delete(start, end ByteOffset) (Rope, error) {
	if start > end {
		return Rope{}, fmt.Errorf("delete range [%d, %d): %w", start, end, ErrRangeInvalid)
	}
	if end > r.Len() {
		return Rope{}, fmt.Errorf("delete range [%d, %d) in rope of %d bytes: %w", start, end, r.Len(), ErrOffsetOutOfRange)
	}

	if start == end {
		return r, nil
	}

	ropeLen := r.Len()
	if start == 0 && end == ropeLen {
		return New(), nil
	}
	if start == 0 {
		_, right := r.Split(end)
		return right, nil
	}
	if end == ropeLen {
		left, _ := r.Split(start)
		return left, nil
	}

	// Split around the deleted region
	left, temp := r.Split(start)
	_, right := temp.Split(end - start)

	return left.Concat(right), nil
}

// Replace replaces text in the byte range [start, end) with new text.
// Returns a new rope; the original is unchanged.
func (r Rope) Replace(start, end ByteOffset, text string) (Rope, error) {
	if start == end && len(text) == 0 {
		return r, nil
	}

	if start == end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}

	out, err := r.Delete(start, end)
	if err != nil {
		return Rope{}, err
	}
	return out.Insert(start, text)
}

// Split splits the rope at offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
// Offsets past the end split at the end.
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset == 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
// Returns a new rope; originals are unchanged.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}

	return Rope{root: concat(r.root, other.root)}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// OffsetOfRune returns the byte offset of the rune at index n.
// An index equal to Runes() maps to Len().
// Fails with ErrOffsetOutOfRange when n > Runes().
func (r Rope) OffsetOfRune(n uint64) (ByteOffset, error) {
	if n > r.Runes() {
		return 0, fmt.Errorf("rune index %d in rope of %d runes: %w", n, r.Runes(), ErrOffsetOutOfRange)
	}
	if r.root == nil || n == 0 {
		return 0, nil
	}
	if n == r.Runes() {
		return r.Len(), nil
	}

	// Descend using the cached per-subtree rune counts.
	var offset ByteOffset
	node := r.root
	for !node.IsLeaf() {
		for i := range node.children {
			cs := node.childSummaries[i]
			if n < cs.Runes {
				node = node.children[i]
				break
			}
			n -= cs.Runes
			offset += cs.Bytes
		}
	}

	for _, chunk := range node.chunks {
		cs := chunk.Summary()
		if n >= cs.Runes {
			n -= cs.Runes
			offset += cs.Bytes
			continue
		}

		data := chunk.String()
		idx := 0
		for n > 0 {
			_, size := utf8.DecodeRuneInString(data[idx:])
			idx += size
			n--
		}
		return offset + ByteOffset(idx), nil
	}

	return offset, nil
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks in the rope.
// Useful for debugging.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals returns true if two ropes contain the same text.
// Note: this compares content, not structure.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}

	iter1 := r.Chunks()
	iter2 := other.Chunks()

	var buf1, buf2 string
	for {
		if buf1 == "" {
			if !iter1.Next() {
				break
			}
			buf1 = iter1.Chunk().String()
		}
		if buf2 == "" {
			if !iter2.Next() {
				return false
			}
			buf2 = iter2.Chunk().String()
		}

		n := len(buf1)
		if len(buf2) < n {
			n = len(buf2)
		}
		if buf1[:n] != buf2[:n] {
			return false
		}
		buf1, buf2 = buf1[n:], buf2[n:]
	}
	return buf2 == "" && !iter2.Next()
}
