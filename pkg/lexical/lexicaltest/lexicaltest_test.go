package lexicaltest_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-engine-be/pkg/lexical"
	"doc-engine-be/pkg/lexical/lexicaltest"
)

func TestVariantCapabilityFlags(t *testing.T) {
	tests := []struct {
		name            string
		typ             *lexical.NodeType
		inline          bool
		excludeFromCopy bool
	}{
		{"block element", lexicaltest.ElemType(), false, false},
		{"inline element", lexicaltest.InlineElemType(), true, false},
		{"excluded element", lexicaltest.ExcludeFromCopyType(), false, true},
		{"segmented text", lexicaltest.SegmentedType(), true, false},
		{"decorator", lexicaltest.DecoratorType(), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.typ.Inline != tt.inline {
				t.Errorf("Inline = %v, want %v", tt.typ.Inline, tt.inline)
			}
			if tt.typ.ExcludeFromCopy != tt.excludeFromCopy {
				t.Errorf("ExcludeFromCopy = %v, want %v", tt.typ.ExcludeFromCopy, tt.excludeFromCopy)
			}
		})
	}
}

func TestSegmentedModeForcedAtCreate(t *testing.T) {
	n := lexicaltest.SegmentedType().Create()
	if got := n.(*lexical.TextNode).Mode; got != lexical.ModeSegmented {
		t.Errorf("mode = %q, want %q", got, lexical.ModeSegmented)
	}
}

func TestSegmentedModeForcedOnImport(t *testing.T) {
	reg, err := lexical.NewRegistry(lexicaltest.SegmentedType())
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	for _, mode := range []string{"", "normal", "token", "segmented"} {
		name := mode
		if name == "" {
			name = "unset"
		}
		t.Run(name, func(t *testing.T) {
			n, err := lexical.ImportNode(reg, &lexical.SerializedNode{
				Type:    lexicaltest.TagSegmented,
				Version: 1,
				Text:    "hi",
				Mode:    mode,
			})
			if err != nil {
				t.Fatalf("import: %v", err)
			}
			txt := n.(*lexical.TextNode)
			if txt.Mode != lexical.ModeSegmented {
				t.Errorf("mode = %q, want %q", txt.Mode, lexical.ModeSegmented)
			}
			if txt.Text != "hi" {
				t.Errorf("text = %q, want %q", txt.Text, "hi")
			}
		})
	}
}

func TestSegmentedModeSurvivesEditing(t *testing.T) {
	ed := lexicaltest.NewTestEditor(t)

	var key lexical.NodeKey
	err := ed.Update(func(u *lexical.Update) error {
		para, err := u.Append(lexical.RootKey, lexical.NewParagraphNode())
		if err != nil {
			return err
		}
		key, err = u.Append(para, lexicaltest.SegmentedType().Create())
		return err
	})
	assert.NoError(t, err)

	err = ed.Update(func(u *lexical.Update) error {
		return u.SetText(key, "rewritten")
	})
	assert.NoError(t, err)

	n, ok := ed.State().Node(key)
	assert.True(t, ok)
	assert.Equal(t, lexical.ModeSegmented, n.(*lexical.TextNode).Mode)
	assert.Equal(t, "rewritten", n.(*lexical.TextNode).Text)
}

func TestSegmentedModeNormalizedOnRoundTrip(t *testing.T) {
	ed := lexicaltest.NewTestEditor(t, lexicaltest.WithState(lexicaltest.Doc(
		lexicaltest.Para(lexical.SerializedNode{
			Type:    lexicaltest.TagSegmented,
			Version: 1,
			Text:    "hi",
			Mode:    "normal",
		}),
	)))

	out, err := ed.Export()
	assert.NoError(t, err)
	assert.Equal(t, "segmented", out.Root.Children[0].Children[0].Mode)
}

func TestDecoratorFixedTextProjection(t *testing.T) {
	typ := lexicaltest.DecoratorType()

	created := typ.Create()
	if got := typ.TextContent(created); got != lexicaltest.DecoratorText {
		t.Errorf("TextContent = %q, want %q", got, lexicaltest.DecoratorText)
	}

	// Import ignores whatever text fields the record claims to carry.
	imported, err := typ.Import(&lexical.SerializedNode{
		Type:    lexicaltest.TagDecorator,
		Version: 1,
		Text:    "not this",
		Style:   "color: red;",
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := typ.TextContent(imported); got != lexicaltest.DecoratorText {
		t.Errorf("TextContent after import = %q, want %q", got, lexicaltest.DecoratorText)
	}

	rec, err := typ.Export(imported)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := lexical.SerializedNode{Type: lexicaltest.TagDecorator, Version: 1}
	if !reflect.DeepEqual(*rec, want) {
		t.Errorf("export = %+v, want envelope only", *rec)
	}
}

func TestDecoratorProducesView(t *testing.T) {
	typ := lexicaltest.DecoratorType()
	view, ok := typ.Decorate(typ.Create()).(*lexicaltest.DecoratorView)
	if !ok {
		t.Fatal("expected a *DecoratorView")
	}
	if view.Kind != lexicaltest.TagDecorator {
		t.Errorf("view kind = %q, want %q", view.Kind, lexicaltest.TagDecorator)
	}
}

func TestDecoratorAnchorIsSpan(t *testing.T) {
	typ := lexicaltest.DecoratorType()
	anchor := typ.Render(typ.Create(), nil)
	if anchor.Tag != "span" {
		t.Errorf("anchor tag = %q, want span", anchor.Tag)
	}
}

func TestContainerDocumentRoundTrip(t *testing.T) {
	raw := `{"root":{"type":"container","version":1,"indent":0,"format":0,"direction":"ltr","children":[{"type":"test_segmented","version":1,"text":"hi","format":0,"detail":0,"mode":"segmented","style":""}]}}`

	ser, err := lexical.ParseEditorState([]byte(raw))
	assert.NoError(t, err)

	ed, err := lexical.NewEditor(lexical.Config{
		Namespace: "test",
		Nodes: []*lexical.NodeType{
			lexical.NewElementType("container", 1),
			lexicaltest.SegmentedType(),
			lexicaltest.DecoratorType(),
		},
		EditorState: ser,
	})
	assert.NoError(t, err)

	out, err := ed.Export()
	assert.NoError(t, err)
	assert.Equal(t, ser, out)

	root := ed.State().Root().(*lexical.ElementNode)
	assert.Equal(t, lexical.DirectionLTR, root.Direction)
	assert.Equal(t, 1, root.ChildCount())
}

func TestExportForCopySplicesExcludedNodes(t *testing.T) {
	ed := lexicaltest.NewTestEditor(t, lexicaltest.WithState(lexicaltest.Doc(
		lexical.SerializedNode{
			Type:    lexicaltest.TagExcludeFromCopy,
			Version: 1,
			Children: []lexical.SerializedNode{
				lexicaltest.Para(lexicaltest.Text("hi")),
			},
		},
		lexicaltest.Para(lexicaltest.Text("yo")),
	)))

	out, err := lexical.ExportForCopy(ed.Registry(), ed.State())
	assert.NoError(t, err)
	assert.Equal(t, []lexical.SerializedNode{
		lexicaltest.Para(lexicaltest.Text("hi")),
		lexicaltest.Para(lexicaltest.Text("yo")),
	}, out.Root.Children)
}

func TestExportForCopyDropsExcludedLeaf(t *testing.T) {
	ed := lexicaltest.NewTestEditor(t, lexicaltest.WithState(lexicaltest.Doc(
		lexical.SerializedNode{Type: lexicaltest.TagExcludeFromCopy, Version: 1},
		lexicaltest.Para(lexicaltest.Text("kept")),
	)))

	out, err := lexical.ExportForCopy(ed.Registry(), ed.State())
	assert.NoError(t, err)
	assert.Equal(t, []lexical.SerializedNode{
		lexicaltest.Para(lexicaltest.Text("kept")),
	}, out.Root.Children)
}

func TestExportIncludesExcludedNodes(t *testing.T) {
	doc := lexicaltest.Doc(
		lexical.SerializedNode{
			Type:    lexicaltest.TagExcludeFromCopy,
			Version: 1,
			Children: []lexical.SerializedNode{
				lexicaltest.Para(lexicaltest.Text("hi")),
			},
		},
	)
	ed := lexicaltest.NewTestEditor(t, lexicaltest.WithState(doc))

	// Persistence keeps the full tree; only the copy path splices.
	out, err := ed.Export()
	assert.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestTextContentWithDecorator(t *testing.T) {
	ed := lexicaltest.NewTestEditor(t, lexicaltest.WithState(lexicaltest.Doc(
		lexicaltest.Para(lexicaltest.Text("intro")),
		lexical.SerializedNode{Type: lexicaltest.TagDecorator, Version: 1},
		lexicaltest.Para(lexicaltest.Text("after")),
	)))

	assert.Equal(t, "intro\nHello world\nafter", ed.TextContent())
}

func TestTextContentInlineElement(t *testing.T) {
	ed := lexicaltest.NewTestEditor(t, lexicaltest.WithState(lexicaltest.Doc(
		lexicaltest.Para(
			lexicaltest.Text("a"),
			lexical.SerializedNode{
				Type:     lexicaltest.TagInlineElem,
				Version:  1,
				Children: []lexical.SerializedNode{lexicaltest.Text("b")},
			},
			lexicaltest.Text("c"),
		),
		lexicaltest.Para(
			lexicaltest.Text("d"),
			lexical.SerializedNode{
				Type:     lexicaltest.TagElem,
				Version:  1,
				Children: []lexical.SerializedNode{lexicaltest.Text("e")},
			},
		),
	)))

	// Inline children join without separators; block children break lines.
	assert.Equal(t, "abc\nd\ne", ed.TextContent())
}

func TestNewTestEditorRegistersVariants(t *testing.T) {
	ed := lexicaltest.NewTestEditor(t)

	tags := []string{
		lexical.TypeRoot,
		lexical.TypeParagraph,
		lexical.TypeText,
		lexicaltest.TagElem,
		lexicaltest.TagInlineElem,
		lexicaltest.TagExcludeFromCopy,
		lexicaltest.TagSegmented,
		lexicaltest.TagDecorator,
	}
	for _, tag := range tags {
		if _, ok := ed.Registry().Lookup(tag); !ok {
			t.Errorf("tag %q not registered", tag)
		}
	}
}
