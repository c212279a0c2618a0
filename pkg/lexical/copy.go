package lexical

// ExportForCopy serializes the state for clipboard export. Nodes whose type
// reports ExcludeFromCopy are omitted; their children are spliced into the
// parent's position, keeping document order.
func ExportForCopy(reg *Registry, st *EditorState) (*SerializedEditorState, error) {
	if st.Root() == nil {
		return nil, ErrNoRoot
	}
	rec, err := copySubtree(reg, st, st.root)
	if err != nil {
		return nil, err
	}
	return &SerializedEditorState{Root: *rec}, nil
}

func copySubtree(reg *Registry, st *EditorState, key NodeKey) (*SerializedNode, error) {
	n, ok := st.Node(key)
	if !ok {
		return nil, ErrNodeNotFound
	}
	rec, err := ExportNode(reg, n)
	if err != nil {
		return nil, err
	}
	if el := elementOf(n); el != nil {
		if err := copyChildren(reg, st, el, &rec.Children); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func copyChildren(reg *Registry, st *EditorState, el *ElementNode, out *[]SerializedNode) error {
	for _, childKey := range el.children {
		child, ok := st.Node(childKey)
		if !ok {
			continue
		}
		t, err := reg.Type(child.Type())
		if err != nil {
			return err
		}
		if t.ExcludeFromCopy {
			// Splice grandchildren up; an excluded leaf drops entirely.
			if cel := elementOf(child); cel != nil {
				if err := copyChildren(reg, st, cel, out); err != nil {
					return err
				}
			}
			continue
		}
		rec, err := copySubtree(reg, st, childKey)
		if err != nil {
			return err
		}
		*out = append(*out, *rec)
	}
	return nil
}
