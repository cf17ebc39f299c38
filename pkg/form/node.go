package form

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// PropertyNode is one compiled, renderable schema node.
type PropertyNode interface {
	markup.Renderer
	// AncestorPath is the dotted input name of the containing object.
	AncestorPath() string
	// Name is the property key within the parent, empty at the root.
	Name() string
	InputName() string
	Label() string
	Schema() *schema.Node
}

// Base carries the attributes every PropertyNode shares. Custom constructors
// embed it and add a Markup method.
type Base struct {
	ancestorPath string
	name         string
	node         *schema.Node
	label        string
}

// NewBase validates the node's default and enum values against the node and
// resolves its label.
func NewBase(b *Builder, ancestorPath, name string, node *schema.Node) (Base, error) {
	base := Base{ancestorPath: ancestorPath, name: name, node: node}
	if err := validation.SelfValidate(node); err != nil {
		return Base{}, validation.WithPath(err, base.InputName())
	}
	if label, ok := node.Label(); ok {
		base.label = label
	} else {
		base.label = b.Label(FieldName(name))
	}
	return base, nil
}

func (b Base) AncestorPath() string { return b.ancestorPath }

func (b Base) Name() string { return b.name }

func (b Base) InputName() string { return schema.InputName(b.ancestorPath, b.name) }

func (b Base) Label() string { return b.label }

func (b Base) Schema() *schema.Node { return b.node }

// FieldName is the name attribute submitted for the node's control.
func (b Base) FieldName() string { return FieldName(b.InputName()) }

// ControlID is the id attribute used for the node's control.
func (b Base) ControlID() string {
	return ControlIDFor(b.FieldName())
}

// RootFieldName names the control of a form whose root schema is a leaf.
// Form.Decode files values submitted under it at the root input name "".
const RootFieldName = "value"

// FieldName maps an input name to the submitted name attribute. Only the
// root has an empty input name.
func FieldName(inputName string) string {
	if inputName == "" {
		return RootFieldName
	}
	return inputName
}

// ControlIDFor maps an input name to the id attribute of its control.
func ControlIDFor(inputName string) string {
	if inputName == "" {
		return ""
	}
	return "fg-" + inputName
}

// NormalizeValue renders a schema value as option or attribute text: strings
// as-is, null as "", numbers and booleans in their JSON spelling, anything
// else through fmt.
func NormalizeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func defaultText(node *schema.Node) (string, bool) {
	value, ok := node.Default()
	if !ok {
		return "", false
	}
	return NormalizeValue(value), true
}
