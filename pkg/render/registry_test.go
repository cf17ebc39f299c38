package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, *form.Form, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	if _, ok := registry.Default(); ok {
		t.Fatal("empty registry should have no default")
	}
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "tui", contentType: "application/json"})

	if err := registry.Register(stubRenderer{name: "tui", contentType: "application/json"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{contentType: "text/plain"}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
	if err := registry.Register(stubRenderer{name: "broken", contentType: "not a media type"}); err == nil {
		t.Fatalf("expected error for invalid content type")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("tui") || registry.Has("preact") {
		t.Fatalf("unexpected Has results")
	}

	_, err := registry.Get("preact")
	if err == nil || !strings.Contains(err.Error(), "registered: vanilla, tui") {
		t.Fatalf("expected missing renderer error listing registrations, got %v", err)
	}

	def, ok := registry.Default()
	if !ok || def.Name() != "vanilla" {
		t.Fatalf("default should be the first registered renderer, got %v", def)
	}
}

func TestRegistry_ForContentType(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "tui", contentType: "application/json"})
	registry.MustRegister(stubRenderer{name: "tui-form", contentType: "application/x-www-form-urlencoded"})

	cases := map[string]string{
		"text/html":                         "vanilla",
		"TEXT/HTML; charset=x":              "vanilla",
		"application/json":                  "tui",
		"application/x-www-form-urlencoded": "tui-form",
	}
	for mediaType, want := range cases {
		got, err := registry.ForContentType(mediaType)
		if err != nil {
			t.Fatalf("%s: %v", mediaType, err)
		}
		if got.Name() != want {
			t.Fatalf("%s: got %s want %s", mediaType, got.Name(), want)
		}
	}

	if _, err := registry.ForContentType("application/xml"); err == nil {
		t.Fatal("expected error for unregistered media type")
	}
	if _, err := registry.ForContentType(""); err == nil {
		t.Fatal("expected error for empty media type")
	}
}
