// Package dom describes detached DOM element trees. The node engine renders
// into these descriptions; mounting them into a live view layer is the host's
// responsibility, not this package's.
package dom

import (
	"html"
	"sort"
	"strings"
)

// Element is one element in a detached DOM description.
// A text leaf has Tag == "" and carries its payload in Text.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []*Element
	Text     string
}

// Void elements render without a closing tag.
var voidTags = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// NewElement creates an element with the given tag and no attributes.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Text creates a text leaf.
func Text(s string) *Element {
	return &Element{Text: s}
}

// SetAttr sets an attribute and returns the element for chaining.
func (e *Element) SetAttr(key, value string) *Element {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[key] = value
	return e
}

// Attr returns the attribute value, or "" when unset.
func (e *Element) Attr(key string) string {
	return e.Attrs[key]
}

// Append adds children and returns the element for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// TextContent concatenates the text leaves under this element.
func (e *Element) TextContent() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	if e.Tag == "" {
		sb.WriteString(e.Text)
		return
	}
	for _, child := range e.Children {
		child.writeText(sb)
	}
}

// HTML serializes the element tree to an HTML fragment.
// Attributes are emitted in sorted order so output is deterministic.
func (e *Element) HTML() string {
	var sb strings.Builder
	e.writeHTML(&sb)
	return sb.String()
}

func (e *Element) writeHTML(sb *strings.Builder) {
	if e.Tag == "" {
		sb.WriteString(html.EscapeString(e.Text))
		return
	}

	sb.WriteString("<")
	sb.WriteString(e.Tag)

	if len(e.Attrs) > 0 {
		keys := make([]string, 0, len(e.Attrs))
		for k := range e.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(e.Attrs[k]))
			sb.WriteString(`"`)
		}
	}

	if voidTags[e.Tag] {
		sb.WriteString("/>")
		return
	}

	sb.WriteString(">")
	for _, child := range e.Children {
		child.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteString(">")
}
