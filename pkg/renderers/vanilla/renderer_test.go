package vanilla_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/testsupport"
)

func loadContactForm(t *testing.T) *form.Form {
	t.Helper()
	return testsupport.LoadForm(t, filepath.Join("testdata", "contact.json"),
		form.WithAttrs(map[string]string{"action": "/contact", "method": "post"}))
}

func renderString(t *testing.T, r *vanilla.Renderer, f *form.Form, options render.RenderOptions) string {
	t.Helper()
	output, err := r.Render(testsupport.Context(), f, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("missing %s in\n%s", fragment, output)
		}
	}
}

func TestRenderer_RendersFormChrome(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected identity %s %s", renderer.Name(), renderer.ContentType())
	}

	output := renderString(t, renderer, loadContactForm(t), render.RenderOptions{
		Hidden:      []render.HiddenField{render.CSRFToken("_csrf", "tok")},
		SubmitLabel: "Send",
	})

	assertContains(t, output,
		`<div class="fg-form">`,
		`<form action="/contact" method="post">`,
		`<input type="text" id="fg-name" name="name" data-type="string"/>`,
		`<label for="fg-email">E-mail</label>`,
		`<input type="checkbox" id="fg-subscribe" name="subscribe" value="true"/>`,
		`<input type="radio" id="fg-topic-0" name="topic" value="sales"/>`,
		`name="address.city"`,
		`<input type="hidden" name="_csrf" value="tok"/><div class="fg-actions"><button type="submit">Send</button></div></form>`,
	)
	if strings.Contains(output, "fg-errors") || strings.Contains(output, "<style>") {
		t.Fatalf("unexpected chrome:\n%s", output)
	}
}

func TestRenderer_MethodOverride(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderString(t, renderer, loadContactForm(t), render.RenderOptions{Method: "patch"})
	assertContains(t, output,
		`<form action="/contact" method="post">`,
		`<input type="hidden" name="_method" value="PATCH"/>`,
	)
}

func TestRenderer_Errors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := loadContactForm(t)
	mapped := render.MapErrorPayload(f.FlatSchema(), map[string][]string{
		"/email":        {"Email is required"},
		"address.city":  {"Unknown city"},
		"topic":         {"Pick one"},
		"/body/missing": {"Something else failed"},
		"":              {"Try again"},
	})

	output := renderString(t, renderer, f, render.RenderOptions{Errors: mapped.Payload()})

	assertContains(t, output,
		`<ul class="fg-errors" role="alert"><li>Try again</li><li>Something else failed</li></ul>`,
		`<div class="fg-field fg-invalid" data-component="input" data-validation="invalid"><label for="fg-email">E-mail</label><input type="text" id="fg-email" name="email" data-type="string" aria-invalid="true"/><ul class="fg-field-errors"><li>Email is required</li></ul></div>`,
		`<ul class="fg-field-errors"><li>Unknown city</li></ul>`,
		`<fieldset class="fg-field fg-invalid" data-component="radio" id="fg-topic" aria-invalid="true" data-validation="invalid">`,
		`<ul class="fg-field-errors"><li>Pick one</li></ul></fieldset>`,
	)
}

func TestRenderer_ThemeAndStyles(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithDefaultStyles(), vanilla.WithWrapperClass("card fg-hijack"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output := renderString(t, renderer, loadContactForm(t), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--radius": "2px", "--brand": "#123456"},
		},
	})
	assertContains(t, output,
		`<style>.fg-form { --brand: #123456; --radius: 2px; }</style>`,
		`<div class="fg-form card" data-theme="acme" data-theme-variant="dark">`,
		`.fg-object {`,
	)
	if strings.Contains(output, "fg-hijack") {
		t.Fatalf("reserved class leaked:\n%s", output)
	}

	linked, err := vanilla.New(vanilla.WithStylesheet("/static/form.css"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output = renderString(t, linked, loadContactForm(t), render.RenderOptions{
		Theme: &theme.RendererConfig{
			AssetURL: func(key string) string {
				if key == vanilla.ThemeStylesheetKey {
					return "/themes/acme/form.css"
				}
				return ""
			},
		},
	})
	assertContains(t, output, `<link rel="stylesheet" href="/themes/acme/form.css">`)
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl": {Data: []byte(`<main>{{ form|safe }}</main>`)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderString(t, renderer, testsupport.MustCompile(t, `{"type": "boolean"}`), render.RenderOptions{})
	want := `<main><form><div class="fg-field" data-component="boolean"><label><input type="checkbox" value="true"/></label></div></form></main>`
	if output != want {
		t.Fatalf("want %s\n got %s", want, output)
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, loadContactForm(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderer_PrefillValues(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := testsupport.MustCompile(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "default": "anon"},
			"agree": {"type": "boolean", "default": true},
			"size": {"type": "integer", "enum": [1, 2], "default": 1},
			"ignored": {"type": "string"}
		}
	}`)

	output := renderString(t, renderer, f, render.RenderOptions{
		Values: map[string]any{"name": "Ada", "agree": "off", "size": 2, "unknown": "x"},
	})
	assertContains(t, output,
		`<input type="text" id="fg-name" name="name" data-type="string" value="Ada"/>`,
		`<input type="checkbox" id="fg-agree" name="agree" value="true"/>`,
		`<input type="radio" id="fg-size-0" name="size" value="1"/>`,
		`<input type="radio" id="fg-size-1" name="size" value="2" checked=""/>`,
	)
}

func TestRenderer_MergesFormErrors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output := renderString(t, renderer, loadContactForm(t), render.RenderOptions{
		FormErrors: []string{"Session expired", " Try again "},
		Errors: map[string][]string{
			"":      {"Try again"},
			"ghost": {"Ghost failed"},
		},
	})
	assertContains(t, output,
		`<ul class="fg-errors" role="alert"><li>Session expired</li><li>Try again</li><li>Ghost failed</li></ul>`,
	)
}
