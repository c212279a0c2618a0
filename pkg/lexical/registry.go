package lexical

import (
	"fmt"

	"doc-engine-be/pkg/lexical/dom"
)

// NodeType describes one node variant: its identity (tag, schema version),
// its capability flags and its behavior table. Behaviors are plain functions
// over Node values so that dispatch is always an explicit registry lookup.
type NodeType struct {
	// Tag uniquely identifies the type among registered types.
	Tag string

	// Version is bumped on schema change. Positive.
	Version int

	// Inline reports whether instances participate in inline flow.
	Inline bool

	// ExcludeFromCopy marks instances to be omitted from clipboard export;
	// their children are spliced up into the parent's position.
	ExcludeFromCopy bool

	// Create constructs a detached instance.
	Create func() Node

	// Clone copies an instance under the same key, for structural-sharing
	// update cycles. Element clones must not alias the source child list.
	Clone func(Node) Node

	// Import constructs an instance from a serialized record. The version
	// gate runs before Import is called; Import only applies fields.
	Import func(*SerializedNode) (Node, error)

	// Export emits the instance's fields plus the {type, version} envelope.
	// Children are appended by the tree walk, not by Export.
	Export func(Node) (*SerializedNode, error)

	// Render produces the node's DOM anchor element. Child rendering is
	// driven by the tree walk.
	Render func(Node, Theme) *dom.Element

	// UpdateDOM decides whether the anchor must be replaced when the node
	// changes. Nil means never: attribute patches go through a separate
	// host path.
	UpdateDOM func(prev, next Node) bool

	// TextContent overrides the plain-text projection. Constant per type
	// for decorators. Nil falls back to the shape default.
	TextContent func(Node) string

	// Decorate returns the externally managed embedded view for decorator
	// instances. The host mounts it at the node's anchor.
	Decorate func(Node) any
}

func (t *NodeType) supportsVersion(v int) bool {
	return v >= 1 && v <= t.Version
}

// ShouldUpdateDOM reports whether a change from prev to next forces the DOM
// anchor to be rebuilt. Types without an UpdateDOM hook never do.
func ShouldUpdateDOM(t *NodeType, prev, next Node) bool {
	if t == nil || t.UpdateDOM == nil {
		return false
	}
	return t.UpdateDOM(prev, next)
}

// Registry is an immutable mapping from type tag to behavior. It is built
// once from an ordered sequence of descriptors and passed into editor
// construction; there is no ambient global registration.
type Registry struct {
	types map[string]*NodeType
	order []string
}

// NewRegistry builds a registry from the given descriptors. A duplicate tag
// fails with *DuplicateTypeError, never a silent overwrite.
func NewRegistry(types ...*NodeType) (*Registry, error) {
	r := &Registry{types: make(map[string]*NodeType, len(types))}
	for _, t := range types {
		if t == nil {
			return nil, fmt.Errorf("nil node type")
		}
		if t.Tag == "" {
			return nil, fmt.Errorf("node type with empty tag")
		}
		if t.Version < 1 {
			return nil, fmt.Errorf("node type %q: version must be positive, got %d", t.Tag, t.Version)
		}
		if t.Create == nil {
			return nil, fmt.Errorf("node type %q: missing Create", t.Tag)
		}
		if _, exists := r.types[t.Tag]; exists {
			return nil, &DuplicateTypeError{Tag: t.Tag}
		}
		r.types[t.Tag] = t
		r.order = append(r.order, t.Tag)
	}
	return r, nil
}

// Lookup returns the behavior registered for tag.
func (r *Registry) Lookup(tag string) (*NodeType, bool) {
	t, ok := r.types[tag]
	return t, ok
}

// Type returns the behavior for tag, or *UnknownTypeError.
func (r *Registry) Type(tag string) (*NodeType, error) {
	t, ok := r.types[tag]
	if !ok {
		return nil, &UnknownTypeError{Tag: tag}
	}
	return t, nil
}

// Types returns the descriptors in registration order.
func (r *Registry) Types() []*NodeType {
	out := make([]*NodeType, 0, len(r.order))
	for _, tag := range r.order {
		out = append(out, r.types[tag])
	}
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}
