// Package lexical implements a typed, versioned document-node model: node
// shapes, a behavior registry keyed by type tag, serialized editor states and
// a headless editor applying one update transaction at a time. Rendering
// produces detached dom.Element trees; mounting them is the host's concern.
package lexical

// NodeKey identifies a node within one editor state. Keys are assigned when
// the node is attached to the tree and are never reused after removal.
type NodeKey string

// RootKey is the fixed key of the tree root.
const RootKey NodeKey = "root"

// Node is implemented by every node shape. Concrete node structs embed one of
// ElementNode, TextNode or DecoratorNode; behavior beyond the plain data
// shape lives in the NodeType table and is dispatched through the registry by
// tag, never through the node value itself.
type Node interface {
	// Type returns the registered type tag.
	Type() string

	// Key returns the tree key, or "" while the node is detached.
	Key() NodeKey

	// ParentKey returns the key of the owning element, "" for the root and
	// for detached nodes. The reference is resolved through the state's node
	// map on demand; it never drives the parent's lifetime.
	ParentKey() NodeKey

	base() *baseNode
}

// baseNode carries the identity fields shared by all shapes.
type baseNode struct {
	nodeType string
	key      NodeKey
	parent   NodeKey
}

func newBase(tag string) baseNode {
	return baseNode{nodeType: tag}
}

func (b *baseNode) Type() string       { return b.nodeType }
func (b *baseNode) Key() NodeKey       { return b.key }
func (b *baseNode) ParentKey() NodeKey { return b.parent }
func (b *baseNode) base() *baseNode    { return b }

// IsAttached reports whether the node has been inserted into a tree.
func IsAttached(n Node) bool {
	return n.base().key != ""
}
