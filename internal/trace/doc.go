// Package trace models recorded editing sessions and loads the trace corpus.
//
// A trace is a sequence of transactions, each a sequence of patches
// (position, delete count, insert text), together with the expected start and
// end document content. Traces are replayed as benchmark workloads; they are
// immutable once loaded.
//
// # Offset units
//
// Positions and delete counts in a loaded trace are Unicode codepoint
// offsets. CharsToBytes derives a variant with all offsets reinterpreted as
// UTF-8 byte offsets; replaying either variant over matching semantics
// produces the same document.
//
// # Corpus format
//
// Traces are stored as gzip-compressed JSON:
//
//	{
//	  "startContent": "...",
//	  "endContent": "...",
//	  "txns": [ {"patches": [[pos, del, "ins"], ...]}, ... ]
//	}
//
// Unknown keys are ignored. Load decompresses transparently; Save writes the
// same shape back.
package trace
