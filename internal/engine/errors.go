package engine

import "errors"

// Errors returned by engine adapters and the registry.
var (
	// ErrUnknownEngine indicates an engine name is not registered.
	ErrUnknownEngine = errors.New("unknown engine")

	// ErrNotDownstream indicates an engine cannot capture or merge updates.
	ErrNotDownstream = errors.New("engine does not support downstream replay")

	// ErrUpdateType indicates an update's concrete type belongs to a
	// different engine.
	ErrUpdateType = errors.New("update type does not match engine")

	// ErrOffsetOutOfRange indicates an edit position is outside the document.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")
)
