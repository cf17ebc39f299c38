package validation

import (
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// SchemaValidationResult captures the outcome of validating submitted values.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// Payload groups issue messages by dotted field, with root level messages
// under "". The shape matches render.MapErrorPayload input.
func (r SchemaValidationResult) Payload() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// ValidateSubmission validates a decoded, nested submission against the root
// schema. Errors are reserved for schemas that cannot be compiled; data
// problems are reported through the result.
func ValidateSubmission(root *schema.Node, document map[string]any) (SchemaValidationResult, error) {
	compiled, err := compileNode(root)
	if err != nil {
		return SchemaValidationResult{}, fmt.Errorf("validation: compile schema: %w", err)
	}
	if document == nil {
		document = map[string]any{}
	}
	result, err := validateValue(compiled, document)
	if err != nil {
		return SchemaValidationResult{}, fmt.Errorf("validation: validate submission: %w", err)
	}
	if result.Valid() {
		return SchemaValidationResult{Valid: true}, nil
	}
	return SchemaValidationResult{Issues: issuesFromResult(result)}, nil
}

// ValidateField validates one decoded value against a leaf schema, such as an
// entry of schema.FlatSchema. Issues carry no field path.
func ValidateField(leaf *schema.Node, value any) (SchemaValidationResult, error) {
	compiled, err := compileNode(leaf)
	if err != nil {
		return SchemaValidationResult{}, fmt.Errorf("validation: compile field schema: %w", err)
	}
	result, err := validateValue(compiled, value)
	if err != nil {
		return SchemaValidationResult{}, fmt.Errorf("validation: validate field: %w", err)
	}
	if result.Valid() {
		return SchemaValidationResult{Valid: true}, nil
	}
	return SchemaValidationResult{Issues: issuesFromResult(result)}, nil
}
