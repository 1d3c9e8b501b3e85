package rope

import "errors"

// Errors returned by rope edit operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid rope range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (end < start).
	ErrRangeInvalid = errors.New("invalid range")
)
