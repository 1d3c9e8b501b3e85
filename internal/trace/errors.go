package trace

import (
	"errors"
	"fmt"
)

// Errors returned by trace loading and lookup.
var (
	// ErrUnknownTrace indicates a trace name is not present in the registry.
	ErrUnknownTrace = errors.New("unknown trace")
)

// FormatError describes a malformed trace document.
type FormatError struct {
	Name   string // trace name or source path
	Txn    int    // transaction index, -1 when not tied to one
	Patch  int    // patch index within the transaction, -1 when not tied to one
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Txn >= 0 && e.Patch >= 0:
		return fmt.Sprintf("trace %s: txn %d patch %d: %s", e.Name, e.Txn, e.Patch, e.Reason)
	case e.Txn >= 0:
		return fmt.Sprintf("trace %s: txn %d: %s", e.Name, e.Txn, e.Reason)
	default:
		return fmt.Sprintf("trace %s: %s", e.Name, e.Reason)
	}
}
