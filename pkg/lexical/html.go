package lexical

import (
	"fmt"
	"strconv"
	"strings"

	"doc-engine-be/pkg/lexical/dom"
)

// renderContainer returns a Render behavior producing a fixed anchor tag
// with the theme class for slot. The anchor tag is part of the type's
// contract and stays stable across versions of the tag.
func renderContainer(tag, slot string) func(Node, Theme) *dom.Element {
	return func(n Node, th Theme) *dom.Element {
		e := dom.NewElement(tag)
		if cls := th.Class(slot); cls != "" {
			e.SetAttr("class", cls)
		}
		if el := elementOf(n); el != nil {
			applyElementAttrs(el, e)
		}
		return e
	}
}

func applyElementAttrs(el *ElementNode, e *dom.Element) {
	if el.Direction != DirectionNone {
		e.SetAttr("dir", string(el.Direction))
	}
	if a := AlignName(el.Format); a != "" && a != "left" {
		e.SetAttr("style", "text-align: "+a+";")
	}
}

func renderParagraph(n Node, th Theme) *dom.Element {
	return renderContainer("p", "paragraph")(n, th)
}

func renderLineBreak(n Node, th Theme) *dom.Element {
	return dom.NewElement("br")
}

func renderHorizontalRule(n Node, th Theme) *dom.Element {
	return dom.NewElement("hr")
}

// renderText wraps the payload per format bit, innermost first, and closes
// with an annotated span when whitelisted inline styles are present. The
// wrapper order mirrors the markdown exporter: code > bold > italic >
// underline > strikethrough.
func renderText(n Node, th Theme) *dom.Element {
	t := textOf(n)
	if t == nil {
		return dom.Text("")
	}

	cur := dom.Text(t.Text)
	wrap := func(tag string) {
		cur = dom.NewElement(tag).Append(cur)
	}

	if t.HasFormat(FormatHighlight) {
		wrap("mark")
	}
	if t.HasFormat(FormatSuperscript) {
		wrap("sup")
	}
	if t.HasFormat(FormatSubscript) {
		wrap("sub")
	}
	if t.HasFormat(FormatStrikethrough) {
		wrap("s")
	}
	if t.HasFormat(FormatUnderline) {
		wrap("u")
	}
	if t.HasFormat(FormatItalic) {
		wrap("em")
	}
	if t.HasFormat(FormatBold) {
		wrap("strong")
	}
	if t.HasFormat(FormatCode) {
		wrap("code")
	}

	if decl := ParseStyle(t.Style).Whitelisted(); decl != "" {
		span := dom.NewElement("span").SetAttr("style", decl)
		if cls := th.Class("text"); cls != "" {
			span.SetAttr("class", cls)
		}
		cur = span.Append(cur)
	}
	return cur
}

func renderLink(n Node, th Theme) *dom.Element {
	l := n.(*LinkNode)
	e := dom.NewElement("a").SetAttr("href", l.URL)
	if l.Rel != "" {
		e.SetAttr("rel", l.Rel)
	}
	if l.Target != "" {
		e.SetAttr("target", l.Target)
	}
	if l.Title != "" {
		e.SetAttr("title", l.Title)
	}
	if cls := th.Class("link"); cls != "" {
		e.SetAttr("class", cls)
	}
	applyElementAttrs(&l.ElementNode, e)
	return e
}

func renderList(n Node, th Theme) *dom.Element {
	l := n.(*ListNode)
	tag := l.Tag
	if tag == "" {
		tag = "ul"
	}
	e := dom.NewElement(tag)
	if tag == "ol" && l.Start > 1 {
		e.SetAttr("start", strconv.Itoa(l.Start))
	}
	if cls := th.Class("list." + tag); cls != "" {
		e.SetAttr("class", cls)
	}
	applyElementAttrs(&l.ElementNode, e)
	return e
}

func renderListItem(n Node, th Theme) *dom.Element {
	li := n.(*ListItemNode)
	e := dom.NewElement("li")
	if li.Checked {
		e.SetAttr("aria-checked", "true")
	}
	if li.Value > 0 {
		e.SetAttr("value", strconv.Itoa(li.Value))
	}
	if cls := th.Class("listitem"); cls != "" {
		e.SetAttr("class", cls)
	}
	applyElementAttrs(&li.ElementNode, e)
	return e
}

func renderTableCell(n Node, th Theme) *dom.Element {
	c := n.(*TableCellNode)
	tag := "td"
	if c.HeaderState == CellHeader {
		tag = "th"
	}
	e := dom.NewElement(tag)
	if c.ColSpan > 1 {
		e.SetAttr("colspan", strconv.Itoa(c.ColSpan))
	}
	if c.RowSpan > 1 {
		e.SetAttr("rowspan", strconv.Itoa(c.RowSpan))
	}
	if cls := th.Class(TypeTableCell); cls != "" {
		e.SetAttr("class", cls)
	}
	applyElementAttrs(&c.ElementNode, e)
	return e
}

// defaultAnchor renders types without a Render behavior by shape: elements
// get a div, decorators a span, text its plain payload.
func defaultAnchor(n Node) *dom.Element {
	if t := textOf(n); t != nil {
		return dom.Text(t.Text)
	}
	if decoratorOf(n) != nil {
		return dom.NewElement("span")
	}
	return dom.NewElement("div")
}

// RenderToDOM renders the whole state into a detached element tree rooted at
// the root node's anchor. Embedded decorator views are not expanded; hosts
// mount those at the anchors via the types' Decorate behaviors.
func RenderToDOM(reg *Registry, st *EditorState, th Theme) (*dom.Element, error) {
	if st.Root() == nil {
		return nil, ErrNoRoot
	}
	return renderSubtree(reg, st, th, st.root)
}

func renderSubtree(reg *Registry, st *EditorState, th Theme, key NodeKey) (*dom.Element, error) {
	n, ok := st.Node(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, key)
	}
	t, err := reg.Type(n.Type())
	if err != nil {
		return nil, err
	}

	var anchor *dom.Element
	if t.Render != nil {
		anchor = t.Render(n, th)
	} else {
		anchor = defaultAnchor(n)
	}

	if el := elementOf(n); el != nil {
		for _, childKey := range el.children {
			child, err := renderSubtree(reg, st, th, childKey)
			if err != nil {
				return nil, err
			}
			anchor.Append(child)
		}
	}
	return anchor, nil
}

// RenderHTML renders the state to an HTML fragment: the concatenated HTML of
// the root's children, without a root wrapper.
func RenderHTML(reg *Registry, st *EditorState, th Theme) (string, error) {
	root := st.Root()
	if root == nil {
		return "", ErrNoRoot
	}
	el := elementOf(root)
	if el == nil {
		return "", ErrNotElement
	}

	var sb strings.Builder
	for _, childKey := range el.children {
		child, err := renderSubtree(reg, st, th, childKey)
		if err != nil {
			return "", err
		}
		sb.WriteString(child.HTML())
	}
	return sb.String(), nil
}
