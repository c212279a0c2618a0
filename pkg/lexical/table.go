package lexical

// Header state values for table cells.
const (
	CellNormal = 0
	CellHeader = 1
)

// TableCellNode is a block element for one table cell.
type TableCellNode struct {
	ElementNode
	ColSpan     int
	RowSpan     int
	HeaderState int
}

// NewTableCellNode creates a detached cell spanning one row and column.
func NewTableCellNode(headerState int) *TableCellNode {
	return &TableCellNode{
		ElementNode: newElement(TypeTableCell),
		ColSpan:     1,
		RowSpan:     1,
		HeaderState: headerState,
	}
}

func tableType() *NodeType {
	t := NewElementType(TypeTable, 1)
	t.Render = renderContainer("table", TypeTable)
	return t
}

func tableRowType() *NodeType {
	t := NewElementType(TypeTableRow, 1)
	t.Render = renderContainer("tr", TypeTableRow)
	return t
}

func tableCellType() *NodeType {
	return &NodeType{
		Tag:     TypeTableCell,
		Version: 1,
		Create:  func() Node { return NewTableCellNode(CellNormal) },
		Clone: func(n Node) Node {
			c := n.(*TableCellNode)
			cp := *c
			cp.ElementNode = c.cloneShape()
			return &cp
		},
		Import: func(rec *SerializedNode) (Node, error) {
			c := NewTableCellNode(rec.HeaderState)
			ImportElementFields(&c.ElementNode, rec)
			if rec.ColSpan > 0 {
				c.ColSpan = rec.ColSpan
			}
			if rec.RowSpan > 0 {
				c.RowSpan = rec.RowSpan
			}
			return c, nil
		},
		Export: func(n Node) (*SerializedNode, error) {
			c := n.(*TableCellNode)
			rec := &SerializedNode{Type: TypeTableCell, Version: 1}
			ExportElementFields(&c.ElementNode, rec)
			rec.ColSpan = c.ColSpan
			rec.RowSpan = c.RowSpan
			rec.HeaderState = c.HeaderState
			return rec, nil
		},
		Render: renderTableCell,
	}
}
