package lexical

import "fmt"

// Update is the handle passed to an update transaction. It owns a working
// copy of the state; nodes are cloned copy-on-write the first time they are
// made writable, under the same key, so committed snapshots keep their old
// versions untouched.
type Update struct {
	editor *Editor
	state  *EditorState
	dirty  map[NodeKey]bool
}

// State exposes the working state for reads during the transaction.
func (u *Update) State() *EditorState {
	return u.state
}

func (u *Update) dirtyKeys() []NodeKey {
	out := make([]NodeKey, 0, len(u.dirty))
	for k := range u.dirty {
		out = append(out, k)
	}
	return out
}

func (u *Update) markDirty(keys ...NodeKey) {
	for _, k := range keys {
		u.dirty[k] = true
	}
}

// Writable returns the transaction's own copy of the node under key,
// cloning it on first access. Mutating the returned node is safe for the
// rest of the transaction.
func (u *Update) Writable(key NodeKey) (Node, error) {
	n, ok := u.state.nodes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, key)
	}
	if u.dirty[key] {
		return n, nil
	}
	t, err := u.editor.registry.Type(n.Type())
	if err != nil {
		return nil, err
	}
	if t.Clone == nil {
		return nil, fmt.Errorf("node type %q: missing Clone", t.Tag)
	}
	clone := t.Clone(n)
	if clone.Key() != key {
		return nil, fmt.Errorf("node type %q: clone changed key %q to %q", t.Tag, key, clone.Key())
	}
	u.state.nodes[key] = clone
	u.dirty[key] = true
	return clone, nil
}

// Append attaches a detached node as the last child of parent and returns
// its newly assigned key.
func (u *Update) Append(parent NodeKey, n Node) (NodeKey, error) {
	return u.InsertAt(parent, -1, n)
}

// InsertAt attaches a detached node at index i of parent's child list;
// i == -1 appends.
func (u *Update) InsertAt(parent NodeKey, i int, n Node) (NodeKey, error) {
	if _, err := u.Writable(parent); err != nil {
		return "", err
	}
	key, err := u.state.insertAt(parent, i, n)
	if err != nil {
		return "", err
	}
	u.markDirty(parent, key)
	return key, nil
}

// InsertBefore attaches a detached node as the immediate previous sibling
// of sibling.
func (u *Update) InsertBefore(sibling NodeKey, n Node) (NodeKey, error) {
	sib, ok := u.state.nodes[sibling]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNodeNotFound, sibling)
	}
	parent := sib.ParentKey()
	if parent == "" {
		return "", ErrDetachRoot
	}
	p, err := u.Writable(parent)
	if err != nil {
		return "", err
	}
	el := elementOf(p)
	if el == nil {
		return "", fmt.Errorf("%w: %q", ErrNotElement, parent)
	}
	return u.InsertAt(parent, el.indexOf(sibling), n)
}

// Remove detaches the node under key and destroys its subtree. The keys of
// destroyed nodes are retired for the rest of the editor's life.
func (u *Update) Remove(key NodeKey) error {
	if key == u.state.root {
		return ErrDetachRoot
	}
	n, ok := u.state.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, key)
	}
	// Unlink through the writable parent only. The removed node instance is
	// shared with earlier snapshots, so its own fields stay untouched; the
	// subtree simply leaves the working map.
	if parent := n.ParentKey(); parent != "" {
		p, err := u.Writable(parent)
		if err != nil {
			return err
		}
		if el := elementOf(p); el != nil {
			el.removeChild(key)
		}
		u.markDirty(parent)
	}
	u.state.destroy(key)
	u.markDirty(key)
	return nil
}

// Move reparents the node under key to the end of newParent's child list,
// keeping its key. Fails when the destination lies inside the moved subtree.
func (u *Update) Move(key, newParent NodeKey) error {
	if key == u.state.root {
		return ErrDetachRoot
	}
	for k := newParent; k != ""; {
		if k == key {
			return ErrWouldCycle
		}
		p, ok := u.state.nodes[k]
		if !ok {
			break
		}
		k = p.ParentKey()
	}

	n, err := u.Writable(key)
	if err != nil {
		return err
	}
	np, err := u.Writable(newParent)
	if err != nil {
		return err
	}
	nel := elementOf(np)
	if nel == nil {
		return fmt.Errorf("%w: %q", ErrNotElement, newParent)
	}

	oldParent := n.ParentKey()
	if oldParent != "" {
		op, err := u.Writable(oldParent)
		if err != nil {
			return err
		}
		if el := elementOf(op); el != nil {
			el.removeChild(key)
		}
		u.markDirty(oldParent)
	}

	nel.children = append(nel.children, key)
	n.base().parent = newParent
	u.markDirty(newParent, key)
	return nil
}

// SetText replaces the payload of a text node.
func (u *Update) SetText(key NodeKey, text string) error {
	n, err := u.Writable(key)
	if err != nil {
		return err
	}
	t := textOf(n)
	if t == nil {
		return fmt.Errorf("%w: %q", ErrNotText, key)
	}
	t.Text = text
	return nil
}
