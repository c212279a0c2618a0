package lexical

// List kinds carried in the listType field.
const (
	ListBullet = "bullet"
	ListNumber = "number"
	ListCheck  = "check"
)

// ListNode is a block element holding list items. Tag carries the HTML list
// tag ("ul" or "ol") alongside ListType, matching the serialized form.
type ListNode struct {
	ElementNode
	ListType string
	Start    int
	Tag      string
}

// NewListNode creates a detached list of the given kind.
func NewListNode(listType string) *ListNode {
	htmlTag := "ul"
	if listType == ListNumber {
		htmlTag = "ol"
	}
	return &ListNode{
		ElementNode: newElement(TypeList),
		ListType:    listType,
		Start:       1,
		Tag:         htmlTag,
	}
}

// ListItemNode is a block element for one list entry. Checked only applies
// inside check lists; Value is the ordinal within a numbered list.
type ListItemNode struct {
	ElementNode
	Checked bool
	Value   int
}

// NewListItemNode creates a detached list item.
func NewListItemNode() *ListItemNode {
	return &ListItemNode{ElementNode: newElement(TypeListItem)}
}

func listType() *NodeType {
	return &NodeType{
		Tag:     TypeList,
		Version: 1,
		Create:  func() Node { return NewListNode(ListBullet) },
		Clone: func(n Node) Node {
			l := n.(*ListNode)
			cp := *l
			cp.ElementNode = l.cloneShape()
			return &cp
		},
		Import: func(rec *SerializedNode) (Node, error) {
			l := NewListNode(rec.ListType)
			ImportElementFields(&l.ElementNode, rec)
			if rec.Start > 0 {
				l.Start = rec.Start
			}
			if rec.Tag != "" {
				l.Tag = rec.Tag
			}
			return l, nil
		},
		Export: func(n Node) (*SerializedNode, error) {
			l := n.(*ListNode)
			rec := &SerializedNode{Type: TypeList, Version: 1}
			ExportElementFields(&l.ElementNode, rec)
			rec.ListType = l.ListType
			rec.Start = l.Start
			rec.Tag = l.Tag
			return rec, nil
		},
		Render: renderList,
	}
}

func listItemType() *NodeType {
	return &NodeType{
		Tag:     TypeListItem,
		Version: 1,
		Create:  func() Node { return NewListItemNode() },
		Clone: func(n Node) Node {
			li := n.(*ListItemNode)
			cp := *li
			cp.ElementNode = li.cloneShape()
			return &cp
		},
		Import: func(rec *SerializedNode) (Node, error) {
			li := NewListItemNode()
			ImportElementFields(&li.ElementNode, rec)
			li.Checked = rec.Checked
			li.Value = rec.Value
			return li, nil
		},
		Export: func(n Node) (*SerializedNode, error) {
			li := n.(*ListItemNode)
			rec := &SerializedNode{Type: TypeListItem, Version: 1}
			ExportElementFields(&li.ElementNode, rec)
			rec.Checked = li.Checked
			rec.Value = li.Value
			return rec, nil
		},
		Render: renderListItem,
	}
}
