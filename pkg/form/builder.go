package form

import (
	"log/slog"
	"maps"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// nodeCombiner also descends into []PropertyNode.
var nodeCombiner = markup.NewCombiner(markup.SequenceOf[PropertyNode]())

// Constructor builds the PropertyNode for one schema node.
type Constructor func(b *Builder, ancestorPath, name string, node *schema.Node) (PropertyNode, error)

// TypeTable maps display kinds to constructors.
type TypeTable map[schema.Kind]Constructor

// DefaultTypeTable returns a fresh copy of the built-in table.
func DefaultTypeTable() TypeTable {
	return TypeTable{
		schema.KindBoolean: NewBooleanNode,
		schema.KindInteger: NewSingleInputNode,
		schema.KindNumber:  NewSingleInputNode,
		schema.KindString:  NewSingleInputNode,
		schema.KindEnum:    NewEnumNode,
		schema.KindObject:  NewObjectNode,
	}
}

// Builder dispatches schema nodes to constructors.
type Builder struct {
	table   TypeTable
	labeler func(string) string
	logger  *slog.Logger
}

// NewBuilder returns a Builder over a copy of table.
func NewBuilder(table TypeTable, labeler func(string) string, logger *slog.Logger) *Builder {
	if labeler == nil {
		labeler = DefaultLabeler
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Builder{table: maps.Clone(table), labeler: labeler, logger: logger}
}

// Build constructs the node for schema n named name under ancestorPath.
func (b *Builder) Build(ancestorPath, name string, n *schema.Node) (PropertyNode, error) {
	kind := schema.DisplayKind(n)
	construct := b.table[kind]
	if construct == nil {
		return nil, &UnsupportedKindError{Kind: kind, InputName: schema.InputName(ancestorPath, name)}
	}
	prop, err := construct(b, ancestorPath, name, n)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("built property", "input_name", prop.InputName(), "kind", string(kind))
	return prop, nil
}

// Label derives a display label for a property key.
func (b *Builder) Label(name string) string {
	return b.labeler(name)
}
