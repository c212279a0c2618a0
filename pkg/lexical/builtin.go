package lexical

// Built-in type tags. All built-ins are at schema version 1.
const (
	TypeRoot           = "root"
	TypeParagraph      = "paragraph"
	TypeText           = "text"
	TypeLineBreak      = "linebreak"
	TypeLink           = "link"
	TypeList           = "list"
	TypeListItem       = "listitem"
	TypeTable          = "table"
	TypeTableRow       = "tablerow"
	TypeTableCell      = "tablecell"
	TypeHorizontalRule = "horizontalrule"
)

// NewElementNode creates a detached element shape under a custom tag. Types
// with no fields beyond the element shape use this directly; the tag alone
// routes behavior through the registry.
func NewElementNode(tag string) *ElementNode {
	e := newElement(tag)
	return &e
}

// NewTextNode creates a detached text node under a custom tag.
func NewTextNode(tag, text string) *TextNode {
	t := newText(tag, text)
	return &t
}

// NewDecoratorNode creates a detached decorator shape under a custom tag.
func NewDecoratorNode(tag string) *DecoratorNode {
	d := newDecorator(tag)
	return &d
}

// NewRootNode creates a detached root element.
func NewRootNode() *ElementNode { return NewElementNode(TypeRoot) }

// NewParagraphNode creates a detached paragraph.
func NewParagraphNode() *ElementNode { return NewElementNode(TypeParagraph) }

// NewPlainTextNode creates a detached text node with the built-in tag.
func NewPlainTextNode(text string) *TextNode { return NewTextNode(TypeText, text) }

// NewLineBreakNode creates a detached line break. The payload is fixed and
// token mode keeps it atomic for caret navigation.
func NewLineBreakNode() *TextNode {
	t := NewTextNode(TypeLineBreak, "\n")
	t.Mode = ModeToken
	return t
}

// NewHorizontalRuleNode creates a detached horizontal rule.
func NewHorizontalRuleNode() *DecoratorNode { return NewDecoratorNode(TypeHorizontalRule) }

// NewElementType returns the behavior table for a plain element node under
// tag: block container, no extra fields, renders a div, never replaces its
// DOM anchor. Callers adjust flags or behaviors on the returned descriptor.
func NewElementType(tag string, version int) *NodeType {
	return &NodeType{
		Tag:     tag,
		Version: version,
		Create:  func() Node { return NewElementNode(tag) },
		Clone: func(n Node) Node {
			cp := n.(*ElementNode).cloneShape()
			return &cp
		},
		Import: func(rec *SerializedNode) (Node, error) {
			e := NewElementNode(tag)
			ImportElementFields(e, rec)
			return e, nil
		},
		Export: func(n Node) (*SerializedNode, error) {
			rec := &SerializedNode{Type: tag, Version: version}
			ExportElementFields(n.(*ElementNode), rec)
			return rec, nil
		},
		Render: renderContainer("div", tag),
	}
}

// NewTextType returns the behavior table for a plain text node under tag.
func NewTextType(tag string, version int) *NodeType {
	return &NodeType{
		Tag:     tag,
		Version: version,
		Inline:  true,
		Create:  func() Node { return NewTextNode(tag, "") },
		Clone: func(n Node) Node {
			cp := *n.(*TextNode)
			return &cp
		},
		Import: func(rec *SerializedNode) (Node, error) {
			t := NewTextNode(tag, "")
			ImportTextFields(t, rec)
			return t, nil
		},
		Export: func(n Node) (*SerializedNode, error) {
			rec := &SerializedNode{Type: tag, Version: version}
			ExportTextFields(n.(*TextNode), rec)
			return rec, nil
		},
		Render: renderText,
	}
}

// NewDecoratorType returns the behavior table for a decorator under tag:
// span anchor, no serialized fields beyond the envelope, empty text
// projection. Callers set Decorate and TextContent as needed.
func NewDecoratorType(tag string, version int) *NodeType {
	return &NodeType{
		Tag:     tag,
		Version: version,
		Create:  func() Node { return NewDecoratorNode(tag) },
		Clone: func(n Node) Node {
			cp := *n.(*DecoratorNode)
			return &cp
		},
		// Import ignores every field beyond the envelope: there is no
		// mutable state to restore on this shape.
		Import: func(rec *SerializedNode) (Node, error) {
			return NewDecoratorNode(tag), nil
		},
		Export: func(n Node) (*SerializedNode, error) {
			return &SerializedNode{Type: tag, Version: version}, nil
		},
		Render: renderContainer("span", tag),
	}
}

func rootType() *NodeType {
	return NewElementType(TypeRoot, 1)
}

func paragraphType() *NodeType {
	t := NewElementType(TypeParagraph, 1)
	t.Render = renderParagraph
	return t
}

func textType() *NodeType {
	return NewTextType(TypeText, 1)
}

func lineBreakType() *NodeType {
	t := &NodeType{
		Tag:     TypeLineBreak,
		Version: 1,
		Inline:  true,
		Create:  func() Node { return NewLineBreakNode() },
		Clone: func(n Node) Node {
			cp := *n.(*TextNode)
			return &cp
		},
		Render: renderLineBreak,
	}
	return t
}

func horizontalRuleType() *NodeType {
	t := NewDecoratorType(TypeHorizontalRule, 1)
	t.Render = renderHorizontalRule
	return t
}

// CoreNodes returns descriptors for the built-in node set, in registration
// order. Each call builds fresh descriptors; nothing is registered globally.
func CoreNodes() []*NodeType {
	return []*NodeType{
		rootType(),
		paragraphType(),
		textType(),
		lineBreakType(),
		linkType(),
		listType(),
		listItemType(),
		tableType(),
		tableRowType(),
		tableCellType(),
		horizontalRuleType(),
	}
}
