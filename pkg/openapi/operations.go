package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ErrOperationNotFound is returned when no operation matches the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// requestMediaTypes are consulted in order when picking the body schema.
var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// Operation is one OpenAPI operation with its request body schema.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	// Schema is nil when the operation has no request body.
	Schema *schema.Node
}

// Options controls document loading.
type Options struct {
	// AllowExternalRefs lets the loader follow $refs into other files or URLs.
	AllowExternalRefs bool
	// Validate runs kin-openapi document validation before extraction.
	Validate bool
}

// Operations loads raw (JSON or YAML) and returns its operations keyed by
// operationId. Operations without an id are keyed "method:path".
func Operations(ctx context.Context, raw []byte, opts Options) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			operations[id] = Operation{
				ID:          id,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     op.Summary,
				Description: op.Description,
				Schema:      requestSchema(op.RequestBody),
			}
		}
	}
	return operations, nil
}

// RequestSchema returns the request body schema of operationID.
func RequestSchema(ctx context.Context, raw []byte, operationID string, opts Options) (*schema.Node, error) {
	operations, err := Operations(ctx, raw, opts)
	if err != nil {
		return nil, err
	}
	op, ok := operations[operationID]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrOperationNotFound, operationID, strings.Join(sortedIDs(operations), ", "))
	}
	if op.Schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}
	return op.Schema, nil
}

func sortedIDs(operations map[string]Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func requestSchema(body *openapi3.RequestBodyRef) *schema.Node {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return schema.FromMap(convertSchema(mt.Schema, nil))
		}
	}
	return nil
}
