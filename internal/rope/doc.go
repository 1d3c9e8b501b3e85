// Package rope provides an immutable rope data structure for efficient text storage and editing.
//
// A rope is a tree whose leaf nodes contain text chunks and whose internal nodes
// store aggregated metrics (byte and codepoint counts). This implementation uses
// a B+ tree variant for better cache locality and worst-case performance.
//
// Key features:
//   - O(log n) insertion, deletion, and slicing
//   - Immutable operations return new ropes; originals are never modified
//   - Structure sharing makes snapshots cheap
//   - Byte and codepoint lengths cached per subtree
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r, _ = r.Insert(5, ",")        // "hello, world"
//	r, _ = r.Delete(0, 7)          // "world"
//	text := r.String()             // "world"
//
// Edit operations validate their offsets and return an error when a position
// falls outside the rope; offsets are byte positions and must land on rune
// boundaries.
package rope
