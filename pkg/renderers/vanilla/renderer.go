package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/render"
	rendertemplate "github.com/goliatone/go-schemaform/pkg/render/template"
	"github.com/goliatone/go-schemaform/pkg/render/template/gotemplate"
)

const formTemplate = "templates/form"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	wrapperClass     string
	inlineStyles     bool
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWrapperClass adds classes to the wrapper element. Classes using the
// reserved fg- prefix are dropped.
func WithWrapperClass(class string) Option {
	return func(cfg *config) {
		cfg.wrapperClass = sanitizeClassList(class)
	}
}

// WithDefaultStyles inlines the embedded stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet instead of inlining one. A theme
// stylesheet asset takes precedence.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// Renderer produces an HTML page fragment: the compiled form plus errors,
// hidden fields, a submit button and theme chrome.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	wrapperClass string
	inlineStyles string
	stylesheet   string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates:    templates,
		wrapperClass: strings.TrimSpace(string(ClassWrapper) + " " + cfg.wrapperClass),
		stylesheet:   cfg.stylesheet,
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, f *form.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if f == nil {
		return nil, fmt.Errorf("vanilla renderer: form is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method, override := options.ResolveMethod(f.Attrs())
	hidden := options.Hidden
	if override != nil {
		hidden = append(append([]render.HiddenField(nil), hidden...), *override)
	}

	extras := make([]any, 0, len(hidden)+1)
	for _, field := range render.SortedHiddenFields(hidden...) {
		extras = append(extras, field)
	}
	if label := strings.TrimSpace(options.SubmitLabel); label != "" {
		extras = append(extras, markup.El("div",
			markup.Class(string(ClassActions)),
			markup.Children(markup.El("button", markup.Attr("type", "submit"), markup.Text(label))),
		))
	}

	fragment, err := f.MarkupWith(extras...)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: build markup: %w", err)
	}
	if method != "" && len(fragment) > 0 {
		markup.Attr("method", method)(fragment[0])
	}
	applyValues(fragment, f, options.Values)
	formErrors := render.MergeFormErrors(options.FormErrors, annotateErrors(fragment, options.Errors)...)

	body, err := fragment.HTML()
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: serialize markup: %w", err)
	}

	data := map[string]any{
		"form":        body,
		"form_errors": formErrors,
		"classes": map[string]any{
			"wrapper": r.wrapperClass,
			"errors":  string(ClassFormErrors),
		},
		"theme":           themeContext(options.Theme),
		"stylesheet_href": r.stylesheetHref(options.Theme),
		"inline_styles":   r.inlineStyles,
	}
	result, err := r.templates.RenderTemplate(templateFor(options.Theme), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// templateFor lets a theme swap the chrome template through its
// ThemePartialForm partial.
func templateFor(cfg *theme.RendererConfig) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[ThemePartialForm]); name != "" {
			return name
		}
	}
	return formTemplate
}

func (r *Renderer) stylesheetHref(cfg *theme.RendererConfig) string {
	if cfg != nil && cfg.AssetURL != nil {
		if href := strings.TrimSpace(cfg.AssetURL(ThemeStylesheetKey)); href != "" {
			return href
		}
	}
	return r.stylesheet
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"css_vars": cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".fg-form {")
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}
