package lexical

// Direction is the text direction of an element.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionLTR  Direction = "ltr"
	DirectionRTL  Direction = "rtl"
)

// Element format values. Stored in the element's format field; 0 means unset.
const (
	ElementFormatLeft    = 1
	ElementFormatCenter  = 2
	ElementFormatRight   = 3
	ElementFormatJustify = 4
	ElementFormatStart   = 5
	ElementFormatEnd     = 6
)

var elementFormatAlign = map[int]string{
	ElementFormatLeft:    "left",
	ElementFormatCenter:  "center",
	ElementFormatRight:   "right",
	ElementFormatJustify: "justify",
	ElementFormatStart:   "start",
	ElementFormatEnd:     "end",
}

// AlignName maps an element format value to its CSS text-align keyword.
// Returns "" for 0 and for values outside the known set.
func AlignName(format int) string {
	return elementFormatAlign[format]
}

func elementFormatFromName(name string) int {
	for f, a := range elementFormatAlign {
		if a == name {
			return f
		}
	}
	return 0
}

// ElementNode is the children-bearing shape. An element owns its children:
// detaching an element destroys its subtree. The child list holds keys only;
// child nodes live in the state's node map.
type ElementNode struct {
	baseNode
	Format    int
	Indent    int
	Direction Direction

	children []NodeKey
}

func newElement(tag string) ElementNode {
	return ElementNode{baseNode: newBase(tag)}
}

// Children returns a copy of the ordered child keys.
func (e *ElementNode) Children() []NodeKey {
	if len(e.children) == 0 {
		return nil
	}
	out := make([]NodeKey, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of children.
func (e *ElementNode) ChildCount() int {
	return len(e.children)
}

// cloneShape copies the element shape, including the child list, so that a
// writable clone never aliases the slice held by the previous state.
func (e *ElementNode) cloneShape() ElementNode {
	cp := *e
	if e.children != nil {
		cp.children = make([]NodeKey, len(e.children))
		copy(cp.children, e.children)
	}
	return cp
}

func (e *ElementNode) indexOf(key NodeKey) int {
	for i, k := range e.children {
		if k == key {
			return i
		}
	}
	return -1
}

func (e *ElementNode) insertChildAt(i int, key NodeKey) {
	e.children = append(e.children, "")
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = key
}

func (e *ElementNode) removeChild(key NodeKey) bool {
	i := e.indexOf(key)
	if i < 0 {
		return false
	}
	e.children = append(e.children[:i], e.children[i+1:]...)
	return true
}

// elementOf unwraps the element shape from a node, or nil when the node's
// shape cannot carry children.
func elementOf(n Node) *ElementNode {
	type elementCarrier interface{ element() *ElementNode }
	if c, ok := n.(elementCarrier); ok {
		return c.element()
	}
	return nil
}

func (e *ElementNode) element() *ElementNode { return e }
