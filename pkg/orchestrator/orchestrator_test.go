package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const contactAPI = `
openapi: 3.0.3
info: {title: Contacts, version: "1"}
paths:
  /contacts:
    post:
      operationId: createContact
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                email: {type: string, title: Email}
                priority: {type: string, enum: [low, high]}
      responses:
        "201": {description: created}
`

func TestGenerate_DefaultsToVanillaRenderer(t *testing.T) {
	files := fstest.MapFS{"contact.json": {Data: []byte(contactSchema)}}
	orch := New(WithLoader(loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))))

	out, err := orch.Generate(context.Background(), Request{Source: schema.SourceFromFS("contact.json")})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`<form`, `name="name"`, `type="checkbox"`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestCompile_OpenAPIOperation(t *testing.T) {
	orch := New()
	doc := schema.MustNewDocument(stubSource{}, []byte(contactAPI))

	f, err := orch.Compile(context.Background(), Request{Document: &doc, OperationID: "createContact"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	root := f.Root().(*form.ObjectNode)
	email, ok := root.Child("email")
	if !ok || email.Label() != "Email" {
		t.Fatalf("expected email child labelled from title, got %+v", email)
	}
	if _, ok := root.Child("priority"); !ok {
		t.Fatalf("expected priority child")
	}

	_, err = orch.Compile(context.Background(), Request{Document: &doc, OperationID: "deleteContact"})
	if !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestCompile_AppliesRequestFormOptions(t *testing.T) {
	orch := New(WithFormOptions(form.WithAttrs(map[string]string{"action": "/contacts"})))
	doc := schema.MustNewDocument(stubSource{}, []byte(contactSchema))

	f, err := orch.Compile(context.Background(), Request{
		Document:    &doc,
		FormOptions: []form.Option{form.WithAttrs(map[string]string{"id": "contact"})},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if f.Attrs()["id"] != "contact" {
		t.Fatalf("expected request attrs, got %v", f.Attrs())
	}
}

func TestGenerate_Errors(t *testing.T) {
	orch := New()
	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error without source or document")
	}

	doc := schema.MustNewDocument(stubSource{}, []byte(contactSchema))
	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Renderer: "missing"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}

	invalid := schema.MustNewDocument(stubSource{}, []byte(`{"type":"object","properties":{"tags":{"type":"array"}}}`))
	var unsupported *form.UnsupportedKindError
	if _, err := orch.Generate(context.Background(), Request{Document: &invalid}); !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedKindError, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, Request{Document: &doc}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRendererFor_FallsBackToFirstRegistered(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(&captureRenderer{})
	orch := New(WithRegistry(registry), WithDefaultRenderer("vanilla"))

	renderer, err := orch.rendererFor("")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if renderer.Name() != "capture" {
		t.Fatalf("expected capture renderer, got %s", renderer.Name())
	}
}

func TestGenerate_SelectsRendererByContentType(t *testing.T) {
	html, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla: %v", err)
	}
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(capture)
	orch := New(WithRegistry(registry))
	doc := schema.MustNewDocument(stubSource{}, []byte(contactSchema))

	out, err := orch.Generate(context.Background(), Request{Document: &doc, ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(string(out), "<form") {
		t.Fatalf("expected plain text output, got %s", out)
	}

	out, err = orch.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "<form") {
		t.Fatalf("expected default html renderer, got %s", out)
	}

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, ContentType: "application/xml"}); err == nil {
		t.Fatal("expected error for unknown content type")
	}
}
