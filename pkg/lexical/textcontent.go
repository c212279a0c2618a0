package lexical

import "strings"

// StateTextContent returns the plain-text projection of the state: text
// nodes contribute their payload, decorators their type's fixed projection,
// and a boundary with a block node on either side contributes a newline.
func StateTextContent(reg *Registry, st *EditorState) string {
	if st.Root() == nil {
		return ""
	}
	var sb strings.Builder
	writeTextContent(reg, st, st.root, &sb)
	return sb.String()
}

func writeTextContent(reg *Registry, st *EditorState, key NodeKey, sb *strings.Builder) {
	n, ok := st.Node(key)
	if !ok {
		return
	}
	if t, ok := reg.Lookup(n.Type()); ok && t.TextContent != nil {
		sb.WriteString(t.TextContent(n))
		return
	}
	if tx := textOf(n); tx != nil {
		sb.WriteString(tx.Text)
		return
	}
	el := elementOf(n)
	if el == nil {
		return
	}
	for i, childKey := range el.children {
		if i > 0 && (isBlockChild(reg, st, childKey) || isBlockChild(reg, st, el.children[i-1])) {
			sb.WriteString("\n")
		}
		writeTextContent(reg, st, childKey, sb)
	}
}

// isBlockChild reports whether the node under key starts a new line in the
// plain-text projection: any non-inline element or decorator.
func isBlockChild(reg *Registry, st *EditorState, key NodeKey) bool {
	n, ok := st.Node(key)
	if !ok {
		return false
	}
	if textOf(n) != nil {
		return false
	}
	if t, ok := reg.Lookup(n.Type()); ok {
		return !t.Inline
	}
	return true
}
