package schemaform_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	schemaform "github.com/goliatone/go-schemaform"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

func TestGenerateHTMLFromFS(t *testing.T) {
	files := fstest.MapFS{
		"signup.yaml": {Data: []byte("type: object\nproperties:\n  email:\n    type: string\n  plan:\n    enum: [free, pro]\n")},
	}
	loader := schemaform.NewLoader(schema.WithFileSystem(files))

	out, err := schemaform.GenerateHTML(context.Background(), schema.SourceFromFS("signup.yaml"), "", "vanilla", orchestrator.WithLoader(loader))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `name="email"`) || !strings.Contains(html, `type="radio"`) {
		t.Fatalf("unexpected output:\n%s", html)
	}
	if strings.Index(html, `name="email"`) > strings.Index(html, `name="plan"`) {
		t.Fatalf("expected declared property order to be preserved:\n%s", html)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(schemaform.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	data, err := fs.ReadFile(schemaform.EmbeddedAssets(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".fg-form") {
		t.Fatalf("expected vanilla stylesheet content")
	}
}

func TestLoadSchema(t *testing.T) {
	files := fstest.MapFS{
		"signup.json": {Data: []byte(`{"type":"object","properties":{"plan":{"enum":["free","pro"]},"email":{"type":"string"}}}`)},
	}

	node, err := schemaform.LoadSchema(context.Background(), schema.SourceFromFS("signup.json"), schema.WithFileSystem(files))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var keys []string
	for _, prop := range node.Properties() {
		keys = append(keys, prop.Key)
	}
	if strings.Join(keys, ",") != "plan,email" {
		t.Fatalf("unexpected property order %v", keys)
	}

	if _, err := schemaform.LoadSchema(context.Background(), schema.SourceFromFS("signup.json")); err == nil {
		t.Fatal("expected error without a file system")
	}
}
