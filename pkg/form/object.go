package form

import (
	"slices"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ObjectNode owns one child node per `properties` member, in declared order.
type ObjectNode struct {
	Base
	children []PropertyNode
}

// NewObjectNode is the Constructor for object schemas. Children are built
// through the Builder's type table with this node's input name as their
// ancestor path.
func NewObjectNode(b *Builder, ancestorPath, name string, node *schema.Node) (PropertyNode, error) {
	base, err := NewBase(b, ancestorPath, name, node)
	if err != nil {
		return nil, err
	}
	object := &ObjectNode{Base: base}
	for _, prop := range node.Properties() {
		child, err := b.Build(base.InputName(), prop.Key, prop.Schema)
		if err != nil {
			return nil, err
		}
		object.children = append(object.children, child)
	}
	return object, nil
}

// Children returns the child nodes in declared order.
func (n *ObjectNode) Children() []PropertyNode {
	return slices.Clone(n.children)
}

// Child looks up a direct child by key.
func (n *ObjectNode) Child(name string) (PropertyNode, bool) {
	for _, child := range n.children {
		if child.Name() == name {
			return child, true
		}
	}
	return nil, false
}

// Markup renders the children. Nested objects are wrapped in a fieldset; the
// root object contributes its children only.
func (n *ObjectNode) Markup() (markup.Fragment, error) {
	children, err := nodeCombiner.Combine(n.children)
	if err != nil {
		return nil, err
	}
	if n.InputName() == "" {
		return children, nil
	}

	legend := markup.El("legend", markup.Text(n.Label()))
	field := markup.El("fieldset",
		markup.Class("fg-object"),
		markup.Attr("data-component", "object"),
		markup.Attr("id", n.ControlID()),
		markup.Children(legend),
		markup.Children(children...),
	)
	return markup.Fragment{field}, nil
}
