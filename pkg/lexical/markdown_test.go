package lexical_test

import (
	"strings"
	"testing"

	"doc-engine-be/pkg/lexical"
)

// sampleDocJSON is a document captured from a web editor. It carries the
// field shapes those editors actually write (format as empty string, null
// direction, extra textFormat/textStyle/backgroundColor fields) and covers
// bold text, an annotated color span, a table with a header row and a
// check list.
const sampleDocJSON = `{"root":{"children":[
  {"children":[{"detail":0,"format":1,"mode":"normal","style":"","text":"asdasdasdasd","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"paragraph","version":1,"textFormat":1,"textStyle":""},
  {"children":[{"detail":0,"format":66,"mode":"normal","style":"color: #F97316;","text":"adasdsdadaads","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"paragraph","version":1,"textFormat":66,"textStyle":"color: #F97316;"},
  {"children":[
    {"children":[
      {"children":[{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Cell 1","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"paragraph","version":1}],"direction":null,"format":"","indent":0,"type":"tablecell","version":1,"backgroundColor":null,"colSpan":1,"headerState":1,"rowSpan":1},
      {"children":[{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Cell 2","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"paragraph","version":1}],"direction":null,"format":"","indent":0,"type":"tablecell","version":1,"backgroundColor":null,"colSpan":1,"headerState":1,"rowSpan":1}
    ],"direction":null,"format":"","indent":0,"type":"tablerow","version":1},
    {"children":[
      {"children":[{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Row 2 Col 1","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"paragraph","version":1}],"direction":null,"format":"","indent":0,"type":"tablecell","version":1,"backgroundColor":null,"colSpan":1,"headerState":0,"rowSpan":1},
      {"children":[{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Row 2 Col 2","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"paragraph","version":1}],"direction":null,"format":"","indent":0,"type":"tablecell","version":1,"backgroundColor":null,"colSpan":1,"headerState":0,"rowSpan":1}
    ],"direction":null,"format":"","indent":0,"type":"tablerow","version":1}
  ],"direction":null,"format":"","indent":0,"type":"table","version":1},
  {"children":[
    {"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Unchecked Item","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"listitem","version":1,"checked":false,"value":1},
    {"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Checked Item","type":"text","version":1}],"direction":null,"format":"","indent":0,"type":"listitem","version":1,"checked":true,"value":2}
  ],"direction":null,"format":"","indent":0,"type":"list","version":1,"listType":"check","start":1,"tag":"ul"}
],"direction":null,"format":"","indent":0,"type":"root","version":1}}`

func coreRegistry(t *testing.T) *lexical.Registry {
	t.Helper()
	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return reg
}

func TestMarkdownFromJSONSampleDocument(t *testing.T) {
	reg := coreRegistry(t)
	md := lexical.MarkdownFromJSON(reg, sampleDocJSON)

	wants := []struct {
		name string
		frag string
	}{
		{"bold text", "**asdasdasdasd**"},
		{"color annotation", "color: #F97316"},
		{"table header cell", "| Cell 1 |"},
		{"table separator", "|---|"},
		{"table body cell", "| Row 2 Col 1 |"},
		{"unchecked item", "- [ ] Unchecked Item"},
		{"checked item", "- [x] Checked Item"},
	}

	for _, tt := range wants {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(md, tt.frag) {
				t.Errorf("markdown missing %q:\n%s", tt.frag, md)
			}
		})
	}
}

func TestMarkdownFromJSONPassThrough(t *testing.T) {
	reg := coreRegistry(t)

	tests := []struct {
		name    string
		content string
	}{
		{"plain text", "already markdown, leave it alone"},
		{"empty", ""},
		{"truncated document", `{"root":{"type":"root","children":[`},
		{"unknown node type", `{"root":{"type":"root","version":1,"children":[{"type":"mystery","version":1}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lexical.MarkdownFromJSON(reg, tt.content); got != tt.content {
				t.Errorf("content was rewritten:\n got %q\nwant %q", got, tt.content)
			}
		})
	}
}

func buildDoc(t *testing.T, children ...lexical.SerializedNode) *lexical.EditorState {
	t.Helper()
	st, err := lexical.ImportEditorState(coreRegistry(t), &lexical.SerializedEditorState{
		Root: lexical.SerializedNode{Type: lexical.TypeRoot, Version: 1, Children: children},
	})
	if err != nil {
		t.Fatalf("failed to import document: %v", err)
	}
	return st
}

func textRec(text string, format int) lexical.SerializedNode {
	return lexical.SerializedNode{Type: lexical.TypeText, Version: 1, Text: text, Format: format, Mode: "normal"}
}

func TestExportMarkdownTextFormats(t *testing.T) {
	reg := coreRegistry(t)

	tests := []struct {
		name   string
		format int
		want   string
	}{
		{"plain", 0, "x"},
		{"bold", lexical.FormatBold, "**x**"},
		{"italic", lexical.FormatItalic, "_x_"},
		{"strikethrough", lexical.FormatStrikethrough, "~~x~~"},
		{"underline", lexical.FormatUnderline, "<u>x</u>"},
		{"code", lexical.FormatCode, "`x`"},
		{"bold italic", lexical.FormatBold | lexical.FormatItalic, "**_x_**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := buildDoc(t, lexical.SerializedNode{
				Type:     lexical.TypeParagraph,
				Version:  1,
				Children: []lexical.SerializedNode{textRec("x", tt.format)},
			})
			md, err := lexical.ExportMarkdown(reg, st)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if !strings.Contains(md, tt.want) {
				t.Errorf("markdown %q missing %q", md, tt.want)
			}
		})
	}
}

func TestExportMarkdownAlignedParagraph(t *testing.T) {
	reg := coreRegistry(t)
	st := buildDoc(t,
		lexical.SerializedNode{
			Type:     lexical.TypeParagraph,
			Version:  1,
			Format:   lexical.ElementFormatCenter,
			Children: []lexical.SerializedNode{textRec("centered", 0)},
		},
		lexical.SerializedNode{
			Type:     lexical.TypeParagraph,
			Version:  1,
			Format:   lexical.ElementFormatLeft,
			Children: []lexical.SerializedNode{textRec("plain left", 0)},
		},
	)

	md, err := lexical.ExportMarkdown(reg, st)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(md, `<div align="center">centered</div>`) {
		t.Errorf("centered paragraph not wrapped:\n%s", md)
	}
	// Left alignment is the default and stays unwrapped.
	if strings.Contains(md, `align="left"`) {
		t.Errorf("left alignment should not be wrapped:\n%s", md)
	}
}

func TestExportMarkdownLink(t *testing.T) {
	reg := coreRegistry(t)
	st := buildDoc(t, lexical.SerializedNode{
		Type:    lexical.TypeParagraph,
		Version: 1,
		Children: []lexical.SerializedNode{
			textRec("see ", 0),
			{
				Type:     lexical.TypeLink,
				Version:  1,
				URL:      "https://example.com",
				Children: []lexical.SerializedNode{textRec("the docs", 0)},
			},
		},
	})

	md, err := lexical.ExportMarkdown(reg, st)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(md, "see [the docs](https://example.com)") {
		t.Errorf("link not rendered:\n%s", md)
	}
}

func TestExportMarkdownNestedLists(t *testing.T) {
	reg := coreRegistry(t)
	st := buildDoc(t, lexical.SerializedNode{
		Type:     lexical.TypeList,
		Version:  1,
		ListType: lexical.ListNumber,
		Start:    3,
		Tag:      "ol",
		Children: []lexical.SerializedNode{
			{
				Type:     lexical.TypeListItem,
				Version:  1,
				Value:    3,
				Children: []lexical.SerializedNode{textRec("third", 0)},
			},
			{
				Type:    lexical.TypeListItem,
				Version: 1,
				Value:   4,
				Children: []lexical.SerializedNode{
					{
						Type:     lexical.TypeList,
						Version:  1,
						ListType: lexical.ListBullet,
						Start:    1,
						Tag:      "ul",
						Children: []lexical.SerializedNode{
							{
								Type:     lexical.TypeListItem,
								Version:  1,
								Value:    1,
								Children: []lexical.SerializedNode{textRec("nested", 0)},
							},
						},
					},
				},
			},
		},
	})

	md, err := lexical.ExportMarkdown(reg, st)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(md, "3. third") {
		t.Errorf("numbered list should start at 3:\n%s", md)
	}
	if !strings.Contains(md, "  - nested") {
		t.Errorf("nested bullet should be indented:\n%s", md)
	}
}

func TestExportMarkdownHorizontalRule(t *testing.T) {
	reg := coreRegistry(t)
	st := buildDoc(t,
		lexical.SerializedNode{Type: lexical.TypeParagraph, Version: 1, Children: []lexical.SerializedNode{textRec("above", 0)}},
		lexical.SerializedNode{Type: lexical.TypeHorizontalRule, Version: 1},
		lexical.SerializedNode{Type: lexical.TypeParagraph, Version: 1, Children: []lexical.SerializedNode{textRec("below", 0)}},
	)

	md, err := lexical.ExportMarkdown(reg, st)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(md, "---") {
		t.Errorf("rule missing:\n%s", md)
	}
	if strings.Index(md, "above") > strings.Index(md, "---") {
		t.Errorf("rule out of order:\n%s", md)
	}
}

func TestExportMarkdownLineBreak(t *testing.T) {
	reg := coreRegistry(t)
	st := buildDoc(t, lexical.SerializedNode{
		Type:    lexical.TypeParagraph,
		Version: 1,
		Children: []lexical.SerializedNode{
			textRec("one", 0),
			{Type: lexical.TypeLineBreak, Version: 1},
			textRec("two", 0),
		},
	})

	md, err := lexical.ExportMarkdown(reg, st)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(md, "one\ntwo") {
		t.Errorf("line break not preserved:\n%s", md)
	}
}
