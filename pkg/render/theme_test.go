package render_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/pkg/render"
)

func TestThemeConfig_MergesVariant(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456", "radius": "4px"},
			Templates: map[string]string{
				"forms.input": "themes/acme/input.tmpl",
			},
			Assets: theme.Assets{
				Prefix: "/assets/themes/acme/",
				Files:  map[string]string{"vanilla.stylesheet": "theme.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{"brand": "#654321"},
					Assets: theme.Assets{
						Files: map[string]string{"vanilla.script": "https://cdn.example.com/dark.js"},
					},
				},
			},
		},
	}

	cfg := render.ThemeConfig(selection, map[string]string{"forms.input": "fallback", "forms.radio": "radio.tmpl"})

	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected identity %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" || cfg.Partials["forms.radio"] != "radio.tmpl" {
		t.Fatalf("partials not merged: %v", cfg.Partials)
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" || cfg.CSSVars["--radius"] != "4px" {
		t.Fatalf("tokens not merged: %v %v", cfg.Tokens, cfg.CSSVars)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("stylesheet url %q", got)
	}
	if got := cfg.AssetURL("vanilla.script"); got != "https://cdn.example.com/dark.js" {
		t.Fatalf("script url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset url %q", got)
	}
}

func TestThemeConfig_Nil(t *testing.T) {
	if render.ThemeConfig(nil, nil) != nil {
		t.Fatalf("expected nil config")
	}
}
