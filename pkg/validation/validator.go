package validation

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	gojson "github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

//go:embed draft-04.json
var draft4MetaSchema []byte

// rootContext is how gojsonschema names the document root in field paths.
const rootContext = "(root)"

var (
	metaOnce   sync.Once
	metaSchema *gojsonschema.Schema
	metaErr    error
)

func draft4() (*gojsonschema.Schema, error) {
	metaOnce.Do(func() {
		loader := gojsonschema.NewSchemaLoader()
		loader.Draft = gojsonschema.Draft4
		metaSchema, metaErr = loader.Compile(gojsonschema.NewBytesLoader(draft4MetaSchema))
	})
	return metaSchema, metaErr
}

// ValidateMetaSchema checks the document against the draft-4 meta-schema.
func ValidateMetaSchema(n *schema.Node) error {
	meta, err := draft4()
	if err != nil {
		return fmt.Errorf("validation: load draft-4 meta-schema: %w", err)
	}
	doc, err := n.MarshalJSON()
	if err != nil {
		return fmt.Errorf("validation: encode schema: %w", err)
	}

	result, err := meta.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &SchemaInvalidError{Check: CheckMetaSchema, Index: -1, Err: err}
	}
	if !result.Valid() {
		return &SchemaInvalidError{Check: CheckMetaSchema, Index: -1, Issues: issuesFromResult(result)}
	}
	return nil
}

// ValidateDefault checks that a present `default` satisfies the node itself.
// An explicit null default is validated like any other value.
func ValidateDefault(n *schema.Node) error {
	value, ok := n.Default()
	if !ok {
		return nil
	}
	compiled, err := compileNode(n)
	if err != nil {
		return &SchemaInvalidError{Check: CheckDefault, Value: value, Index: -1, Err: err}
	}
	return checkValue(compiled, CheckDefault, value, -1)
}

// ValidateEnum checks that every `enum` member satisfies the node itself.
func ValidateEnum(n *schema.Node) error {
	values, ok := n.Enum()
	if !ok {
		return nil
	}
	compiled, err := compileNode(n)
	if err != nil {
		return &SchemaInvalidError{Check: CheckEnum, Index: -1, Err: err}
	}
	for idx, value := range values {
		if err := checkValue(compiled, CheckEnum, value, idx); err != nil {
			return err
		}
	}
	return nil
}

// SelfValidate runs ValidateDefault then ValidateEnum, compiling the node once.
// Only the node's own data is checked, never its descendants.
func SelfValidate(n *schema.Node) error {
	value, hasDefault := n.Default()
	members, hasEnum := n.Enum()
	if !hasDefault && !hasEnum {
		return nil
	}

	compiled, err := compileNode(n)
	if err != nil {
		check := CheckDefault
		if !hasDefault {
			check = CheckEnum
		}
		return &SchemaInvalidError{Check: check, Index: -1, Err: err}
	}

	if hasDefault {
		if err := checkValue(compiled, CheckDefault, value, -1); err != nil {
			return err
		}
	}
	for idx, member := range members {
		if err := checkValue(compiled, CheckEnum, member, idx); err != nil {
			return err
		}
	}
	return nil
}

func compileNode(n *schema.Node) (*gojsonschema.Schema, error) {
	doc, err := n.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft4
	return loader.Compile(gojsonschema.NewBytesLoader(doc))
}

func checkValue(compiled *gojsonschema.Schema, check Check, value any, index int) error {
	result, err := validateValue(compiled, value)
	if err != nil {
		return &SchemaInvalidError{Check: check, Value: value, Index: index, Err: err}
	}
	if !result.Valid() {
		return &SchemaInvalidError{Check: check, Value: value, Index: index, Issues: issuesFromResult(result)}
	}
	return nil
}

func validateValue(compiled *gojsonschema.Schema, value any) (*gojsonschema.Result, error) {
	payload, err := gojson.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return compiled.Validate(gojsonschema.NewBytesLoader(payload))
}

func issuesFromResult(result *gojsonschema.Result) []SchemaIssue {
	if result == nil || len(result.Errors()) == 0 {
		return nil
	}
	issues := make([]SchemaIssue, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		field := resultErr.Field()
		if field == rootContext {
			field = ""
		}
		issues = append(issues, SchemaIssue{
			Path:    pointerFromField(field),
			Field:   field,
			Message: strings.TrimSpace(resultErr.Description()),
		})
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Field != issues[j].Field {
			return issues[i].Field < issues[j].Field
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}

func pointerFromField(field string) string {
	if field == "" {
		return ""
	}
	segments := strings.Split(field, ".")
	for idx, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segments[idx] = strings.ReplaceAll(segment, "/", "~1")
	}
	return "/" + strings.Join(segments, "/")
}
