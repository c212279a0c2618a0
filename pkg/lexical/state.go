package lexical

import (
	"fmt"
	"strconv"
)

// EditorState holds one version of the document tree: a node map keyed by
// NodeKey plus the root key. Committed states are never mutated again; update
// transactions work on a clone and swap it in on commit, so a state handed
// out to a reader stays stable.
type EditorState struct {
	nodes map[NodeKey]Node
	root  NodeKey

	// nextKey only grows, also across update clones, so removed keys are
	// never handed out again.
	nextKey uint64
}

func newEditorState() *EditorState {
	return &EditorState{nodes: make(map[NodeKey]Node)}
}

func (s *EditorState) newKey() NodeKey {
	s.nextKey++
	return NodeKey(strconv.FormatUint(s.nextKey, 10))
}

// clone copies the node map shallowly; node values are shared with the
// source until a transaction clones them for writing.
func (s *EditorState) clone() *EditorState {
	cp := &EditorState{
		nodes:   make(map[NodeKey]Node, len(s.nodes)),
		root:    s.root,
		nextKey: s.nextKey,
	}
	for k, n := range s.nodes {
		cp.nodes[k] = n
	}
	return cp
}

// Root returns the root node, or nil for an empty state.
func (s *EditorState) Root() Node {
	if s.root == "" {
		return nil
	}
	return s.nodes[s.root]
}

// Node returns the node stored under key.
func (s *EditorState) Node(key NodeKey) (Node, bool) {
	n, ok := s.nodes[key]
	return n, ok
}

// Parent resolves the node's parent reference, or nil for the root and for
// detached nodes.
func (s *EditorState) Parent(n Node) Node {
	pk := n.ParentKey()
	if pk == "" {
		return nil
	}
	return s.nodes[pk]
}

// Children resolves an element's children in order. Nil for leaf shapes.
func (s *EditorState) Children(n Node) []Node {
	el := elementOf(n)
	if el == nil || len(el.children) == 0 {
		return nil
	}
	out := make([]Node, 0, len(el.children))
	for _, k := range el.children {
		if child, ok := s.nodes[k]; ok {
			out = append(out, child)
		}
	}
	return out
}

// NodeCount returns the number of attached nodes.
func (s *EditorState) NodeCount() int {
	return len(s.nodes)
}

// Walk visits the tree in document order (preorder). Returning an error from
// the visitor stops the walk and is passed through.
func (s *EditorState) Walk(visit func(n Node, depth int) error) error {
	if s.root == "" {
		return nil
	}
	return s.walk(s.root, 0, visit)
}

func (s *EditorState) walk(key NodeKey, depth int, visit func(n Node, depth int) error) error {
	n, ok := s.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, key)
	}
	if err := visit(n, depth); err != nil {
		return err
	}
	if el := elementOf(n); el != nil {
		for _, childKey := range el.children {
			if err := s.walk(childKey, depth+1, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// attachRoot installs n as the tree root under the fixed root key. The root
// must be an element shape.
func (s *EditorState) attachRoot(n Node) error {
	if IsAttached(n) {
		return ErrAlreadyAttached
	}
	if elementOf(n) == nil {
		return fmt.Errorf("%w: root must carry children", ErrNotElement)
	}
	b := n.base()
	b.key = RootKey
	b.parent = ""
	s.nodes[RootKey] = n
	s.root = RootKey
	return nil
}

// append attaches a detached node as the last child of parent, assigning its
// key. The caller is responsible for parent being writable in this state.
func (s *EditorState) append(parent NodeKey, n Node) (NodeKey, error) {
	return s.insertAt(parent, -1, n)
}

// insertAt attaches a detached node at index i of parent's child list;
// i == -1 appends.
func (s *EditorState) insertAt(parent NodeKey, i int, n Node) (NodeKey, error) {
	if IsAttached(n) {
		return "", ErrAlreadyAttached
	}
	p, ok := s.nodes[parent]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNodeNotFound, parent)
	}
	el := elementOf(p)
	if el == nil {
		return "", fmt.Errorf("%w: %q", ErrNotElement, parent)
	}
	if i < 0 || i > len(el.children) {
		i = len(el.children)
	}

	key := s.newKey()
	b := n.base()
	b.key = key
	b.parent = parent
	el.insertChildAt(i, key)
	s.nodes[key] = n
	return key, nil
}

// destroy removes the subtree rooted at key from the node map. Ownership
// flows parent to children, so destroying an element takes its whole
// subtree; the freed keys stay retired.
func (s *EditorState) destroy(key NodeKey) {
	n, ok := s.nodes[key]
	if !ok {
		return
	}
	if el := elementOf(n); el != nil {
		for _, childKey := range el.children {
			s.destroy(childKey)
		}
	}
	delete(s.nodes, key)
}
