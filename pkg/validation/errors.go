package validation

import (
	"errors"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
)

// ErrSchemaInvalid matches every SchemaInvalidError through errors.Is.
var ErrSchemaInvalid = errors.New("validation: schema invalid")

// Check names the validation step that rejected a schema.
type Check string

const (
	CheckMetaSchema Check = "meta-schema"
	CheckDefault    Check = "default"
	CheckEnum       Check = "enum"
)

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i SchemaIssue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// SchemaInvalidError reports a schema that fails the draft-4 meta-schema or
// whose default/enum values do not satisfy the schema they annotate.
type SchemaInvalidError struct {
	Check Check
	// Path is the dotted input name of the offending node, empty at the root.
	Path string
	// Value holds the rejected default or enum member.
	Value any
	// Index is the enum member position, -1 for other checks.
	Index  int
	Issues []SchemaIssue
	Err    error
}

func (e *SchemaInvalidError) Error() string {
	var b strings.Builder
	b.WriteString("validation: schema invalid")
	switch e.Check {
	case CheckMetaSchema:
		b.WriteString(", does not conform to the draft-4 meta-schema")
	case CheckDefault:
		fmt.Fprintf(&b, ", default value %s does not satisfy its own schema", formatValue(e.Value))
	case CheckEnum:
		fmt.Fprintf(&b, ", enum member %d (%s) does not satisfy its own schema", e.Index, formatValue(e.Value))
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %q", e.Path)
	}

	switch {
	case len(e.Issues) > 0:
		messages := make([]string, 0, len(e.Issues))
		for _, issue := range e.Issues {
			messages = append(messages, issue.String())
		}
		b.WriteString(": ")
		b.WriteString(strings.Join(messages, "; "))
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is ErrSchemaInvalid.
func (e *SchemaInvalidError) Is(target error) bool {
	return target == ErrSchemaInvalid
}

func (e *SchemaInvalidError) Unwrap() error {
	return e.Err
}

// WithPath attaches the dotted input name of the node to a SchemaInvalidError.
// Other errors are returned unchanged.
func WithPath(err error, path string) error {
	var invalid *SchemaInvalidError
	if errors.As(err, &invalid) && invalid.Path == "" {
		invalid.Path = path
	}
	return err
}

func formatValue(value any) string {
	payload, err := gojson.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(payload)
}
