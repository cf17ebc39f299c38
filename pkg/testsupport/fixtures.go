package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// LoadDocument reads a schema fixture into a Document with a file source.
func LoadDocument(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T so
// fixtures can be wired in setup functions.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustCompile compiles inline schema source.
func MustCompile(t *testing.T, raw string, options ...form.Option) *form.Form {
	t.Helper()

	f, err := form.New([]byte(raw), options...)
	if err != nil {
		t.Fatalf("compile form: %v", err)
	}
	return f
}

// LoadForm compiles a schema fixture from disk.
func LoadForm(t *testing.T, path string, options ...form.Option) *form.Form {
	t.Helper()

	node, err := LoadDocument(t, path).Node()
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	f, err := form.Compile(node, options...)
	if err != nil {
		t.Fatalf("compile form: %v", err)
	}
	return f
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs a render function that also writes to an
// io.Writer, returning both the result and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
