package lexical

import (
	"errors"
	"fmt"
)

// Tree errors
var (
	// ErrNodeNotFound indicates that a node key does not exist in the state.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNotElement indicates that a child operation was attempted on a
	// node that cannot carry children.
	ErrNotElement = errors.New("node is not an element")

	// ErrAlreadyAttached indicates that a node with an assigned key was
	// passed where a detached node is required.
	ErrAlreadyAttached = errors.New("node is already attached")

	// ErrDetachRoot indicates an attempt to remove or reparent the root.
	ErrDetachRoot = errors.New("root node cannot be detached")

	// ErrNotText indicates that a text operation was attempted on a
	// non-text shape.
	ErrNotText = errors.New("node is not a text node")

	// ErrWouldCycle indicates a reparent that would place a node inside
	// its own subtree.
	ErrWouldCycle = errors.New("reparent would create a cycle")

	// ErrNoRoot indicates a serialized state without a root record.
	ErrNoRoot = errors.New("serialized state has no root")
)

// DuplicateTypeError is returned by registry construction when two
// descriptors share a type tag. Never silently deduplicated.
type DuplicateTypeError struct {
	Tag string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("node type %q registered twice", e.Tag)
}

// UnknownTypeError is returned when a serialized record names a type tag
// absent from the registry. Rejected before the node is constructed.
type UnknownTypeError struct {
	Tag string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown node type %q", e.Tag)
}

// SchemaMismatchError is returned when a serialized record carries a
// version the registered behavior for its tag cannot interpret. The
// document-load path surfaces it instead of attempting a partial import.
type SchemaMismatchError struct {
	Tag       string
	Version   int
	Supported int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("node type %q: unsupported version %d (supported: %d)", e.Tag, e.Version, e.Supported)
}
