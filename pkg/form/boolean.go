package form

import (
	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// BooleanNode renders a checkbox.
type BooleanNode struct {
	Base
}

// NewBooleanNode is the Constructor for boolean schemas.
func NewBooleanNode(b *Builder, ancestorPath, name string, node *schema.Node) (PropertyNode, error) {
	base, err := NewBase(b, ancestorPath, name, node)
	if err != nil {
		return nil, err
	}
	return &BooleanNode{Base: base}, nil
}

// Checked reports whether the schema default is true.
func (n *BooleanNode) Checked() bool {
	value, ok := n.Schema().Default()
	checked, isBool := value.(bool)
	return ok && isBool && checked
}

func (n *BooleanNode) Markup() (markup.Fragment, error) {
	input := markup.El("input",
		markup.Attr("type", "checkbox"),
		markup.Attr("id", n.ControlID()),
		markup.Attr("name", n.FieldName()),
		markup.Attr("value", "true"),
		markup.Flag("checked", n.Checked()),
	)
	label := markup.El("label", markup.Attr("for", n.ControlID()), markup.Children(input))
	if text := n.Label(); text != "" {
		markup.Text(" " + text)(label)
	}
	field := markup.El("div",
		markup.Class("fg-field"),
		markup.Attr("data-component", "boolean"),
		markup.Children(label),
	)
	return markup.Fragment{field}, nil
}
