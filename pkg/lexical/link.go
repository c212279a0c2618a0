package lexical

// LinkNode is an inline element wrapping its children in a hyperlink.
type LinkNode struct {
	ElementNode
	URL    string
	Rel    string
	Target string
	Title  string
}

// NewLinkNode creates a detached link with the given destination.
func NewLinkNode(url string) *LinkNode {
	return &LinkNode{ElementNode: newElement(TypeLink), URL: url}
}

func linkType() *NodeType {
	return &NodeType{
		Tag:     TypeLink,
		Version: 1,
		Inline:  true,
		Create:  func() Node { return NewLinkNode("") },
		Clone: func(n Node) Node {
			l := n.(*LinkNode)
			cp := *l
			cp.ElementNode = l.cloneShape()
			return &cp
		},
		Import: func(rec *SerializedNode) (Node, error) {
			l := NewLinkNode(rec.URL)
			ImportElementFields(&l.ElementNode, rec)
			l.Rel = rec.Rel
			l.Target = rec.Target
			l.Title = rec.Title
			return l, nil
		},
		Export: func(n Node) (*SerializedNode, error) {
			l := n.(*LinkNode)
			rec := &SerializedNode{Type: TypeLink, Version: 1}
			ExportElementFields(&l.ElementNode, rec)
			rec.URL = l.URL
			rec.Rel = l.Rel
			rec.Target = l.Target
			rec.Title = l.Title
			return rec, nil
		},
		Render: renderLink,
	}
}
