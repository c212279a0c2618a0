// Package lexicaltest provides editor scaffolding for tests: a ready-made
// editor wired to fail loud, the fixed set of test-only node variants, and
// small builders for serialized documents.
package lexicaltest

import (
	"testing"

	"doc-engine-be/pkg/lexical"
)

// Tags of the test-only node variants.
const (
	TagElem            = "test_elem"
	TagInlineElem      = "test_inline_elem"
	TagExcludeFromCopy = "test_exclude_from_copy"
	TagSegmented       = "test_segmented"
	TagDecorator       = "test_decorator"
)

// DecoratorText is the fixed plain-text projection of the test decorator.
const DecoratorText = "Hello world"

// ElemType returns the plain block container variant.
func ElemType() *lexical.NodeType {
	return lexical.NewElementType(TagElem, 1)
}

// InlineElemType returns the container variant participating in inline flow.
func InlineElemType() *lexical.NodeType {
	t := lexical.NewElementType(TagInlineElem, 1)
	t.Inline = true
	return t
}

// ExcludeFromCopyType returns the container variant omitted from clipboard
// export; the copy path splices its children up into the parent.
func ExcludeFromCopyType() *lexical.NodeType {
	t := lexical.NewElementType(TagExcludeFromCopy, 1)
	t.ExcludeFromCopy = true
	return t
}

// SegmentedType returns the text variant whose mode is pinned to segmented:
// the factory forces it and import re-forces it whatever the record says.
func SegmentedType() *lexical.NodeType {
	create := func() *lexical.TextNode {
		n := lexical.NewTextNode(TagSegmented, "")
		n.Mode = lexical.ModeSegmented
		return n
	}

	t := lexical.NewTextType(TagSegmented, 1)
	t.Create = func() lexical.Node { return create() }
	t.Import = func(rec *lexical.SerializedNode) (lexical.Node, error) {
		n := create()
		lexical.ImportTextFields(n, rec)
		n.Mode = lexical.ModeSegmented
		return n, nil
	}
	return t
}

// DecoratorView is the externally managed embedded view the test decorator
// produces. A real host would mount it at the node's span anchor.
type DecoratorView struct {
	Kind string
}

// DecoratorType returns the decorator variant: span anchor, fixed text
// projection, stub embedded view.
func DecoratorType() *lexical.NodeType {
	t := lexical.NewDecoratorType(TagDecorator, 1)
	t.TextContent = func(lexical.Node) string { return DecoratorText }
	t.Decorate = func(lexical.Node) any { return &DecoratorView{Kind: TagDecorator} }
	return t
}

// TestNodes returns the five test variants in registration order.
func TestNodes() []*lexical.NodeType {
	return []*lexical.NodeType{
		ElemType(),
		InlineElemType(),
		ExcludeFromCopyType(),
		SegmentedType(),
		DecoratorType(),
	}
}

// Option adjusts the test editor's config.
type Option func(*lexical.Config)

// WithState seeds the editor with a serialized document.
func WithState(ser *lexical.SerializedEditorState) Option {
	return func(cfg *lexical.Config) { cfg.EditorState = ser }
}

// WithNodes registers extra node types after the defaults.
func WithNodes(extra ...*lexical.NodeType) Option {
	return func(cfg *lexical.Config) { cfg.Nodes = append(cfg.Nodes, extra...) }
}

// WithTheme replaces the default test theme.
func WithTheme(th lexical.Theme) Option {
	return func(cfg *lexical.Config) { cfg.Theme = th }
}

// Theme returns the class mapping used by rendering tests.
func Theme() lexical.Theme {
	return lexical.Theme{
		"paragraph": "de-paragraph",
		"link":      "de-link",
		"list.ul":   "de-list-ul",
		"list.ol":   "de-list-ol",
		"listitem":  "de-listitem",
		"text":      "de-text",
	}
}

// NewTestEditor builds an editor over the built-in node set plus the test
// variants, namespace "test". Every error surfaced through the editor's
// callback fails the test immediately.
func NewTestEditor(tb testing.TB, opts ...Option) *lexical.Editor {
	tb.Helper()

	cfg := lexical.Config{
		Namespace: "test",
		Nodes:     append(lexical.CoreNodes(), TestNodes()...),
		Theme:     Theme(),
		OnError: func(err error) {
			tb.Helper()
			tb.Fatalf("editor error: %v", err)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ed, err := lexical.NewEditor(cfg)
	if err != nil {
		tb.Fatalf("failed to construct test editor: %v", err)
	}
	return ed
}

// Doc wraps children in a root record.
func Doc(children ...lexical.SerializedNode) *lexical.SerializedEditorState {
	return &lexical.SerializedEditorState{
		Root: lexical.SerializedNode{
			Type:     lexical.TypeRoot,
			Version:  1,
			Children: children,
		},
	}
}

// Para wraps children in a paragraph record.
func Para(children ...lexical.SerializedNode) lexical.SerializedNode {
	return lexical.SerializedNode{
		Type:     lexical.TypeParagraph,
		Version:  1,
		Children: children,
	}
}

// Text builds a plain text record in normal mode.
func Text(text string) lexical.SerializedNode {
	return lexical.SerializedNode{
		Type:    lexical.TypeText,
		Version: 1,
		Text:    text,
		Mode:    string(lexical.ModeNormal),
	}
}

// FormattedText builds a text record carrying a format bitmask.
func FormattedText(text string, format int) lexical.SerializedNode {
	rec := Text(text)
	rec.Format = format
	return rec
}
