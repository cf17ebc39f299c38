package form

import (
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// UnsupportedKindError reports a schema node whose kind has no constructor in
// the type table.
type UnsupportedKindError struct {
	Kind      schema.Kind
	InputName string
}

func (e *UnsupportedKindError) Error() string {
	if e.InputName == "" {
		return fmt.Sprintf("form: no constructor registered for kind %q at the root", e.Kind)
	}
	return fmt.Sprintf("form: no constructor registered for kind %q at %q", e.Kind, e.InputName)
}
