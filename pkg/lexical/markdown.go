package lexical

import (
	"fmt"
	"strings"
)

// ExportMarkdown converts the state to semantic Markdown.
func ExportMarkdown(reg *Registry, st *EditorState) (string, error) {
	root := st.Root()
	if root == nil {
		return "", ErrNoRoot
	}
	el := elementOf(root)
	if el == nil {
		return "", ErrNotElement
	}

	w := &markdownWalker{reg: reg, st: st}
	var sb strings.Builder
	for _, childKey := range el.children {
		w.walkNode(childKey, &sb, 0)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// MarkdownFromJSON converts serialized-state JSON to Markdown. Content that
// does not look like a serialized state, or that fails to import against the
// registry, is returned unchanged.
func MarkdownFromJSON(reg *Registry, content string) string {
	trimmed := strings.TrimSpace(content)
	if !LooksLikeState(trimmed) {
		return content
	}
	ser, err := ParseEditorState([]byte(trimmed))
	if err != nil {
		return content
	}
	st, err := ImportEditorState(reg, ser)
	if err != nil {
		return content
	}
	md, err := ExportMarkdown(reg, st)
	if err != nil {
		return content
	}
	return md
}

// markdownWalker traverses the typed node graph and writes markdown.
type markdownWalker struct {
	reg *Registry
	st  *EditorState
}

func (w *markdownWalker) walkNode(key NodeKey, sb *strings.Builder, depth int) {
	n, ok := w.st.Node(key)
	if !ok {
		return
	}

	switch n.Type() {
	case TypeParagraph:
		w.handleParagraph(n, sb, depth)

	case TypeText, TypeLineBreak:
		w.handleText(n, sb)

	case TypeList:
		w.handleList(n, sb, depth)

	// List items are handled by handleList to get the marker right
	// (bullet/number/check); loose ones just recurse.
	case TypeListItem:
		w.walkChildren(n, sb, depth)

	case TypeTable:
		w.handleTable(n, sb)

	case TypeLink:
		w.handleLink(n, sb)

	case TypeHorizontalRule:
		sb.WriteString("---\n")

	default:
		// Custom decorators contribute their fixed projection; anything
		// else recurses generically.
		if t, ok := w.reg.Lookup(n.Type()); ok && t.TextContent != nil {
			sb.WriteString(t.TextContent(n))
			return
		}
		w.walkChildren(n, sb, depth)
	}
}

func (w *markdownWalker) walkChildren(n Node, sb *strings.Builder, depth int) {
	el := elementOf(n)
	if el == nil {
		return
	}
	for _, childKey := range el.children {
		w.walkNode(childKey, sb, depth)
	}
}

func (w *markdownWalker) handleParagraph(n Node, sb *strings.Builder, depth int) {
	el := elementOf(n)
	align := AlignName(el.Format)
	if align == "left" {
		align = ""
	}

	if align != "" {
		sb.WriteString(fmt.Sprintf("<div align=\"%s\">", align))
	}

	w.walkChildren(n, sb, depth)

	if align != "" {
		sb.WriteString("</div>")
	}
	sb.WriteString("\n")
}

func (w *markdownWalker) handleText(n Node, sb *strings.Builder) {
	t := textOf(n)
	if t == nil {
		return
	}

	// Annotations
	openTag := ParseStyle(t.Style).BuildAnnotatedOpenTag()
	if openTag != "" {
		sb.WriteString(openTag)
	}

	isBold := t.HasFormat(FormatBold)
	isItalic := t.HasFormat(FormatItalic)
	isUnderline := t.HasFormat(FormatUnderline)
	isCode := t.HasFormat(FormatCode)
	isStrike := t.HasFormat(FormatStrikethrough)

	// Apply wrappers (Code > Bold > Italic > Underline > Strike)
	// Markdown doesn't support underline natively everywhere, using HTML <u>
	if isCode {
		sb.WriteString("`")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isUnderline {
		sb.WriteString("<u>")
	}
	if isStrike {
		sb.WriteString("~~")
	}

	sb.WriteString(t.Text)

	if isStrike {
		sb.WriteString("~~")
	}
	if isUnderline {
		sb.WriteString("</u>")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isCode {
		sb.WriteString("`")
	}

	if openTag != "" {
		sb.WriteString("</span>")
	}
}

func (w *markdownWalker) handleLink(n Node, sb *strings.Builder) {
	l, ok := n.(*LinkNode)
	if !ok {
		return
	}
	// Standard MD link: [text](url)
	sb.WriteString("[")
	w.walkChildren(n, sb, 0)
	sb.WriteString(fmt.Sprintf("](%s)", l.URL))
}

func (w *markdownWalker) handleList(n Node, sb *strings.Builder, depth int) {
	l, ok := n.(*ListNode)
	if !ok {
		return
	}
	index := 1
	if l.Start > 0 {
		index = l.Start
	}

	for _, childKey := range l.children {
		child, ok := w.st.Node(childKey)
		if !ok {
			continue
		}
		item, ok := child.(*ListItemNode)
		if !ok {
			continue
		}

		// Indentation for nested lists (2 spaces per depth level)
		sb.WriteString(strings.Repeat("  ", depth))

		switch l.ListType {
		case ListNumber:
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		case ListCheck:
			if item.Checked {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		default:
			sb.WriteString("- ")
		}

		// A nested list appears as a child of the list item and restarts
		// one level deeper.
		for _, grandKey := range item.children {
			grand, ok := w.st.Node(grandKey)
			if !ok {
				continue
			}
			if grand.Type() == TypeList {
				sb.WriteString("\n")
				w.handleList(grand, sb, depth+1)
			} else {
				w.walkNode(grandKey, sb, depth)
			}
		}
		sb.WriteString("\n")
	}
	// Extra newline after a top-level list
	if depth == 0 {
		sb.WriteString("\n")
	}
}

func (w *markdownWalker) handleTable(n Node, sb *strings.Builder) {
	el := elementOf(n)
	if el == nil {
		return
	}

	// 1. Extract grid data
	var rows [][]string
	maxCols := 0

	for _, rowKey := range el.children {
		row, ok := w.st.Node(rowKey)
		if !ok || row.Type() != TypeTableRow {
			continue
		}
		rowEl := elementOf(row)
		if rowEl == nil {
			continue
		}

		var rowData []string
		for _, cellKey := range rowEl.children {
			cell, ok := w.st.Node(cellKey)
			if !ok {
				continue
			}
			cellEl := elementOf(cell)
			if cellEl == nil {
				continue
			}
			var cellSb strings.Builder
			for _, contentKey := range cellEl.children {
				w.walkNode(contentKey, &cellSb, 0)
			}
			// Newlines break MD tables, flatten them
			rowData = append(rowData, strings.ReplaceAll(cellSb.String(), "\n", " "))
		}
		rows = append(rows, rowData)
		if len(rowData) > maxCols {
			maxCols = len(rowData)
		}
	}

	if len(rows) == 0 {
		return
	}

	// 2. Render Markdown Table
	// Header
	sb.WriteString("|")
	for i := 0; i < maxCols; i++ {
		if i < len(rows[0]) {
			sb.WriteString(" " + rows[0][i] + " |")
		} else {
			sb.WriteString("  |")
		}
	}
	sb.WriteString("\n")

	// Separator
	sb.WriteString("|")
	for i := 0; i < maxCols; i++ {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	// Body (row 0 is the header)
	for i := 1; i < len(rows); i++ {
		sb.WriteString("|")
		for j := 0; j < maxCols; j++ {
			if j < len(rows[i]) {
				sb.WriteString(" " + rows[i][j] + " |")
			} else {
				sb.WriteString("  |")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}
