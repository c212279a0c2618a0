package lexical_test

import (
	"errors"
	"reflect"
	"testing"

	"doc-engine-be/pkg/lexical"
)

func TestElementFieldsRoundTrip(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.NewElementType("block", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		rec  lexical.SerializedNode
	}{
		{"zero values", lexical.SerializedNode{Type: "block", Version: 1}},
		{"aligned", lexical.SerializedNode{Type: "block", Version: 1, Format: lexical.ElementFormatCenter, Direction: "ltr"}},
		{"indented rtl", lexical.SerializedNode{Type: "block", Version: 1, Indent: 3, Direction: "rtl"}},
		{"justified", lexical.SerializedNode{Type: "block", Version: 1, Format: lexical.ElementFormatJustify, Indent: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := lexical.ImportNode(reg, &tt.rec)
			if err != nil {
				t.Fatalf("import: %v", err)
			}
			el, ok := n.(*lexical.ElementNode)
			if !ok {
				t.Fatalf("expected *ElementNode, got %T", n)
			}
			if el.Format != tt.rec.Format || el.Indent != tt.rec.Indent || string(el.Direction) != tt.rec.Direction {
				t.Errorf("imported fields %d/%d/%q, want %d/%d/%q",
					el.Format, el.Indent, el.Direction, tt.rec.Format, tt.rec.Indent, tt.rec.Direction)
			}

			out, err := lexical.ExportNode(reg, n)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if !reflect.DeepEqual(*out, tt.rec) {
				t.Errorf("round trip changed the record:\n got %+v\nwant %+v", *out, tt.rec)
			}
		})
	}
}

func TestTextFieldsRoundTrip(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		rec  lexical.SerializedNode
	}{
		{"plain", lexical.SerializedNode{Type: lexical.TypeText, Version: 1, Text: "hello", Mode: "normal"}},
		{"bold italic", lexical.SerializedNode{Type: lexical.TypeText, Version: 1, Text: "x", Format: lexical.FormatBold | lexical.FormatItalic, Mode: "normal"}},
		{"styled", lexical.SerializedNode{Type: lexical.TypeText, Version: 1, Text: "x", Mode: "normal", Style: "color: #F97316;"}},
		{"token", lexical.SerializedNode{Type: lexical.TypeText, Version: 1, Text: "if", Mode: "token", Detail: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := lexical.ImportNode(reg, &tt.rec)
			if err != nil {
				t.Fatalf("import: %v", err)
			}
			out, err := lexical.ExportNode(reg, n)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if !reflect.DeepEqual(*out, tt.rec) {
				t.Errorf("round trip changed the record:\n got %+v\nwant %+v", *out, tt.rec)
			}
		})
	}
}

func TestImportTextEmptyModeKeepsFactoryMode(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := lexical.ImportNode(reg, &lexical.SerializedNode{Type: lexical.TypeText, Version: 1, Text: "x"})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	txt := n.(*lexical.TextNode)
	if txt.Mode != lexical.ModeNormal {
		t.Errorf("expected factory mode %q, got %q", lexical.ModeNormal, txt.Mode)
	}
}

func TestImportNodeVersionGate(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.NewElementType("block", 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		version int
		ok      bool
	}{
		{"older supported", 1, true},
		{"current", 2, true},
		{"newer rejected", 3, false},
		{"zero rejected", 0, false},
		{"negative rejected", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lexical.ImportNode(reg, &lexical.SerializedNode{Type: "block", Version: tt.version})
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var mismatch *lexical.SchemaMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected SchemaMismatchError, got %v", err)
			}
			if mismatch.Tag != "block" || mismatch.Version != tt.version || mismatch.Supported != 2 {
				t.Errorf("unexpected error fields: %+v", mismatch)
			}
		})
	}
}

func TestImportNodeUnknownType(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = lexical.ImportNode(reg, &lexical.SerializedNode{Type: "mystery", Version: 1})
	var unknown *lexical.UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
}

func TestImportNodeIgnoresChildren(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.NewElementType("block", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := &lexical.SerializedNode{
		Type:     "block",
		Version:  1,
		Children: []lexical.SerializedNode{{Type: "block", Version: 1}},
	}
	n, err := lexical.ImportNode(reg, rec)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := n.(*lexical.ElementNode).ChildCount(); got != 0 {
		t.Errorf("single-node import attached %d children", got)
	}
}

func TestEditorStateRoundTrip(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ser := &lexical.SerializedEditorState{
		Root: lexical.SerializedNode{
			Type:    lexical.TypeRoot,
			Version: 1,
			Children: []lexical.SerializedNode{
				{
					Type:    lexical.TypeParagraph,
					Version: 1,
					Format:  lexical.ElementFormatCenter,
					Children: []lexical.SerializedNode{
						{Type: lexical.TypeText, Version: 1, Text: "hello ", Format: lexical.FormatBold, Mode: "normal"},
						{Type: lexical.TypeLineBreak, Version: 1},
						{
							Type:    lexical.TypeLink,
							Version: 1,
							URL:     "https://example.com",
							Rel:     "noopener",
							Children: []lexical.SerializedNode{
								{Type: lexical.TypeText, Version: 1, Text: "a link", Mode: "normal"},
							},
						},
					},
				},
				{
					Type:     lexical.TypeList,
					Version:  1,
					ListType: lexical.ListCheck,
					Start:    1,
					Tag:      "ul",
					Children: []lexical.SerializedNode{
						{
							Type:    lexical.TypeListItem,
							Version: 1,
							Checked: true,
							Value:   1,
							Children: []lexical.SerializedNode{
								{Type: lexical.TypeText, Version: 1, Text: "done", Mode: "normal"},
							},
						},
					},
				},
				{
					Type:    lexical.TypeTable,
					Version: 1,
					Children: []lexical.SerializedNode{
						{
							Type:    lexical.TypeTableRow,
							Version: 1,
							Children: []lexical.SerializedNode{
								{
									Type:        lexical.TypeTableCell,
									Version:     1,
									ColSpan:     1,
									RowSpan:     1,
									HeaderState: lexical.CellHeader,
									Children: []lexical.SerializedNode{
										{Type: lexical.TypeText, Version: 1, Text: "h1", Mode: "normal"},
									},
								},
							},
						},
					},
				},
				{Type: lexical.TypeHorizontalRule, Version: 1},
			},
		},
	}

	st, err := lexical.ImportEditorState(reg, ser)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	out, err := lexical.ExportEditorState(reg, st)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !reflect.DeepEqual(out, ser) {
		t.Errorf("round trip changed the document:\n got %+v\nwant %+v", out, ser)
	}
}

func TestImportEditorStateRejectsBadChild(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		child lexical.SerializedNode
		want  any
	}{
		{"unknown tag", lexical.SerializedNode{Type: "mystery", Version: 1}, new(*lexical.UnknownTypeError)},
		{"future version", lexical.SerializedNode{Type: lexical.TypeParagraph, Version: 99}, new(*lexical.SchemaMismatchError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ser := &lexical.SerializedEditorState{
				Root: lexical.SerializedNode{
					Type:     lexical.TypeRoot,
					Version:  1,
					Children: []lexical.SerializedNode{tt.child},
				},
			}
			_, err := lexical.ImportEditorState(reg, ser)
			if err == nil {
				t.Fatal("expected import to fail")
			}
			if !errors.As(err, tt.want) {
				t.Errorf("unexpected error type: %v", err)
			}
		})
	}
}

func TestParseEditorStateFormatTolerance(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"integer", `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1,"format":2}]}}`, lexical.ElementFormatCenter},
		{"keyword", `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1,"format":"center"}]}}`, lexical.ElementFormatCenter},
		{"empty string", `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1,"format":""}]}}`, 0},
		{"null direction ignored", `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1,"format":0,"direction":null}]}}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ser, err := lexical.ParseEditorState([]byte(tt.raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := ser.Root.Children[0].Format; got != tt.want {
				t.Errorf("format = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseEditorStateRejectsMissingRoot(t *testing.T) {
	for _, raw := range []string{`{}`, `{"root":{}}`, `{"version":1}`} {
		if _, err := lexical.ParseEditorState([]byte(raw)); err == nil {
			t.Errorf("expected %s to be rejected", raw)
		}
	}
}

func TestLooksLikeState(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`{"root":{"type":"root"}}`, true},
		{"  {\"root\":{}}", true},
		{"plain markdown text", false},
		{`{"notroot":{}}`, false},
		{"", false},
	}

	for _, tt := range tests {
		if got := lexical.LooksLikeState(tt.raw); got != tt.want {
			t.Errorf("LooksLikeState(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
