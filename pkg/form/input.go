package form

import (
	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// SingleInputNode renders one text or number input for integer, number, and
// string schemas.
type SingleInputNode struct {
	Base
	valueKind schema.Kind
}

// NewSingleInputNode is the Constructor for integer, number, and string
// schemas.
func NewSingleInputNode(b *Builder, ancestorPath, name string, node *schema.Node) (PropertyNode, error) {
	base, err := NewBase(b, ancestorPath, name, node)
	if err != nil {
		return nil, err
	}
	return &SingleInputNode{Base: base, valueKind: schema.ValueKind(node)}, nil
}

// ValueKind is the type hint rendered on the input.
func (n *SingleInputNode) ValueKind() schema.Kind {
	return n.valueKind
}

// InputType is the HTML input type.
func (n *SingleInputNode) InputType() string {
	switch n.valueKind {
	case schema.KindInteger, schema.KindNumber:
		return "number"
	default:
		return "text"
	}
}

func (n *SingleInputNode) step() string {
	switch n.valueKind {
	case schema.KindInteger:
		return "1"
	case schema.KindNumber:
		return "any"
	default:
		return ""
	}
}

func (n *SingleInputNode) Markup() (markup.Fragment, error) {
	value, hasDefault := defaultText(n.Schema())
	label := markup.El("label",
		markup.Attr("for", n.ControlID()),
		markup.Text(n.Label()),
	)
	input := markup.El("input",
		markup.Attr("type", n.InputType()),
		markup.Attr("id", n.ControlID()),
		markup.Attr("name", n.FieldName()),
		markup.Attr("data-type", string(n.valueKind)),
		markup.AttrIf("step", n.step()),
	)
	if hasDefault {
		markup.Attr("value", value)(input)
	}
	field := markup.El("div",
		markup.Class("fg-field"),
		markup.Attr("data-component", "input"),
		markup.Children(label, input),
	)
	return markup.Fragment{field}, nil
}
