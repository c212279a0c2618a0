package lexical

// DecoratorNode is the opaque leaf shape. It carries no child tree and no
// mutable payload; its visual representation is an externally managed view
// produced by the type's Decorate behavior and mounted by the host at the
// node's DOM anchor. Its plain-text projection is fixed per type.
type DecoratorNode struct {
	baseNode
}

func newDecorator(tag string) DecoratorNode {
	return DecoratorNode{baseNode: newBase(tag)}
}

// decoratorOf unwraps the decorator shape, or nil for other shapes.
func decoratorOf(n Node) *DecoratorNode {
	type decoratorCarrier interface{ decorator() *DecoratorNode }
	if c, ok := n.(decoratorCarrier); ok {
		return c.decorator()
	}
	return nil
}

func (d *DecoratorNode) decorator() *DecoratorNode { return d }
