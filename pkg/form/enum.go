package form

import (
	"bytes"
	"slices"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Choice is one selectable enum member.
type Choice struct {
	Value any
	Text  string
}

// EnumNode renders a radio group over the schema's enum members.
type EnumNode struct {
	Base
	choices []Choice
}

// NewEnumNode is the Constructor for schemas carrying `enum`.
func NewEnumNode(b *Builder, ancestorPath, name string, node *schema.Node) (PropertyNode, error) {
	base, err := NewBase(b, ancestorPath, name, node)
	if err != nil {
		return nil, err
	}
	members, _ := node.Enum()
	choices := make([]Choice, 0, len(members))
	for _, member := range members {
		choices = append(choices, Choice{Value: member, Text: NormalizeValue(member)})
	}
	return &EnumNode{Base: base, choices: choices}, nil
}

// Choices returns the members in declared order.
func (n *EnumNode) Choices() []Choice {
	return slices.Clone(n.choices)
}

// ValueKind is the type submitted members decode to.
func (n *EnumNode) ValueKind() schema.Kind {
	return schema.ValueKind(n.Schema())
}

// DefaultIndex is the position of the choice matching the default, or -1.
// Members equal to the default as JSON values win over members that merely
// share its text.
func (n *EnumNode) DefaultIndex() int {
	value, ok := n.Schema().Default()
	if !ok {
		return -1
	}
	if encoded, err := gojson.Marshal(value); err == nil {
		for idx, choice := range n.choices {
			if member, err := gojson.Marshal(choice.Value); err == nil && bytes.Equal(member, encoded) {
				return idx
			}
		}
	}
	selected := NormalizeValue(value)
	for idx, choice := range n.choices {
		if choice.Text == selected {
			return idx
		}
	}
	return -1
}

func (n *EnumNode) Markup() (markup.Fragment, error) {
	checked := n.DefaultIndex()
	options := make([]any, 0, len(n.choices))
	for idx, choice := range n.choices {
		id := n.ControlID() + "-" + strconv.Itoa(idx)
		radio := markup.El("input",
			markup.Attr("type", "radio"),
			markup.Attr("id", id),
			markup.Attr("name", n.FieldName()),
			markup.Attr("value", choice.Text),
			markup.Flag("checked", idx == checked),
		)
		options = append(options, markup.El("label",
			markup.Attr("for", id),
			markup.Children(radio),
			markup.Text(" "+choice.Text),
		))
	}

	body, err := markup.Combine(markup.El("legend", markup.Text(n.Label())), options)
	if err != nil {
		return nil, err
	}
	field := markup.El("fieldset",
		markup.Class("fg-field"),
		markup.Attr("data-component", "radio"),
		markup.Attr("id", n.ControlID()),
		markup.Children(body...),
	)
	return markup.Fragment{field}, nil
}
