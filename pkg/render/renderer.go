package render

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/form"
)

// Renderer turns a compiled form into a byte representation (HTML, terminal
// prompts, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
