package lexical

// TextMode controls how the host's caret and deletion logic treats the text
// payload. Segmented text is one atomic unit for boundary navigation: a
// single editing step selects or deletes the whole span.
type TextMode string

const (
	ModeNormal    TextMode = "normal"
	ModeToken     TextMode = "token"
	ModeSegmented TextMode = "segmented"
)

// Text format bitmask.
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatStrikethrough = 4
	FormatUnderline     = 8
	FormatCode          = 16
	FormatSubscript     = 32
	FormatSuperscript   = 64
	FormatHighlight     = 1 << 7
)

// TextNode is the leaf shape owning a string payload.
type TextNode struct {
	baseNode
	Text   string
	Format int
	Detail int
	Mode   TextMode
	Style  string
}

func newText(tag, text string) TextNode {
	return TextNode{baseNode: newBase(tag), Text: text, Mode: ModeNormal}
}

// HasFormat reports whether the given format bit is set.
func (t *TextNode) HasFormat(format int) bool {
	return t.Format&format != 0
}

// ToggleFormat flips the given format bit.
func (t *TextNode) ToggleFormat(format int) {
	t.Format ^= format
}

// textOf unwraps the text shape from a node, or nil for non-text shapes.
func textOf(n Node) *TextNode {
	type textCarrier interface{ text() *TextNode }
	if c, ok := n.(textCarrier); ok {
		return c.text()
	}
	return nil
}

func (t *TextNode) text() *TextNode { return t }
