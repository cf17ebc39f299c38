package form

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/goliatone/go-schemaform/pkg/decode"
	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Option configures compilation.
type Option func(*config)

type config struct {
	table   TypeTable
	attrs   map[string]string
	labeler func(string) string
	logger  *slog.Logger
}

// WithTypeTable registers constructors over the defaults. A nil constructor
// disables its kind.
func WithTypeTable(table TypeTable) Option {
	return func(cfg *config) {
		for kind, construct := range table {
			cfg.table[kind] = construct
		}
	}
}

// WithConstructor registers a single constructor for kind.
func WithConstructor(kind schema.Kind, construct Constructor) Option {
	return func(cfg *config) {
		cfg.table[kind] = construct
	}
}

// WithAttrs sets attributes forwarded verbatim to the <form> element.
func WithAttrs(attrs map[string]string) Option {
	return func(cfg *config) {
		for key, value := range attrs {
			cfg.attrs[key] = value
		}
	}
}

// WithLabeler overrides how labels are derived from property keys when the
// schema has no `label`.
func WithLabeler(labeler func(string) string) Option {
	return func(cfg *config) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// WithLogger sets the logger used while compiling.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Form is a compiled schema: the validated root schema, its PropertyNode tree
// and the flattened leaf schemas used to decode submissions.
type Form struct {
	schema *schema.Node
	root   PropertyNode
	flat   schema.FlatSchema
	attrs  map[string]string
}

// Compile validates node against the draft-4 meta-schema and builds its
// PropertyNode tree. Failures are returned as *validation.SchemaInvalidError
// or *UnsupportedKindError.
func Compile(node *schema.Node, options ...Option) (*Form, error) {
	if node == nil {
		return nil, errors.New("form: schema is required")
	}
	cfg := config{
		table:   DefaultTypeTable(),
		attrs:   make(map[string]string),
		labeler: DefaultLabeler,
		logger:  discardLogger(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validation.ValidateMetaSchema(node); err != nil {
		return nil, err
	}

	builder := NewBuilder(cfg.table, cfg.labeler, cfg.logger)
	root, err := builder.Build("", "", node)
	if err != nil {
		return nil, err
	}

	return &Form{
		schema: node,
		root:   root,
		flat:   schema.Flatten(node),
		attrs:  cfg.attrs,
	}, nil
}

// New parses a JSON or YAML schema document and compiles it.
func New(raw []byte, options ...Option) (*Form, error) {
	node, err := schema.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}
	return Compile(node, options...)
}

// Schema returns the root schema.
func (f *Form) Schema() *schema.Node {
	return f.schema
}

// Root returns the root PropertyNode.
func (f *Form) Root() PropertyNode {
	return f.root
}

// Attrs returns a copy of the <form> attributes.
func (f *Form) Attrs() map[string]string {
	return maps.Clone(f.attrs)
}

// FlatSchema returns a copy of the flattened leaf schemas.
func (f *Form) FlatSchema() schema.FlatSchema {
	return maps.Clone(f.flat)
}

// Walk visits every node depth first, parents before children.
func (f *Form) Walk(fn func(PropertyNode) error) error {
	return walk(f.root, fn)
}

func walk(node PropertyNode, fn func(PropertyNode) error) error {
	if err := fn(node); err != nil {
		return err
	}
	object, ok := node.(*ObjectNode)
	if !ok {
		return nil
	}
	for _, child := range object.children {
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Markup renders the form element around the property tree.
func (f *Form) Markup() (markup.Fragment, error) {
	return f.MarkupWith()
}

// MarkupWith renders the form and appends extra items (hidden fields, buttons,
// raw fragments, or sequences of them) inside the form element.
func (f *Form) MarkupWith(extra ...any) (markup.Fragment, error) {
	body, err := nodeCombiner.Combine(f.root, extra)
	if err != nil {
		return nil, err
	}
	element := markup.El("form", markup.Attrs(f.attrs), markup.Children(body...))
	return markup.Fragment{element}, nil
}

// HTML renders the form to a string.
func (f *Form) HTML() (string, error) {
	fragment, err := f.Markup()
	if err != nil {
		return "", err
	}
	return fragment.HTML()
}

// Decode converts raw submitted values keyed by input name into typed values.
// When the root schema is a leaf, a value submitted under RootFieldName is
// filed under the root input name "".
func (f *Form) Decode(values map[string]any) map[string]any {
	if f.rootIsLeaf() {
		if raw, ok := values[RootFieldName]; ok {
			if _, taken := values[""]; !taken {
				values = maps.Clone(values)
				delete(values, RootFieldName)
				values[""] = raw
			}
		}
	}
	return decode.Values(values, f.flat)
}

// Validate decodes values and validates the nested result against the root
// schema. A leaf root validates the value stored under "" directly.
func (f *Form) Validate(values map[string]any) (map[string]any, validation.SchemaValidationResult, error) {
	decoded := f.Decode(values)
	if f.rootIsLeaf() {
		result, err := validation.ValidateField(f.schema, decoded[""])
		return decoded, result, err
	}
	result, err := validation.ValidateSubmission(f.schema, decode.Nest(decoded))
	return decoded, result, err
}

func (f *Form) rootIsLeaf() bool {
	_, ok := f.flat.Lookup("")
	return ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
