package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(l schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithFormOptions appends compiler options applied to every request.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// WithOpenAPIOptions configures OpenAPI document loading.
func WithOpenAPIOptions(options openapi.Options) Option {
	return func(o *Orchestrator) {
		o.openapi = options
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used when a theme does not define them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = maps.Clone(fallbacks)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from schema document to rendered
// output. Missing dependencies default to the built-in loader and the vanilla
// renderer.
type Orchestrator struct {
	loader          schema.Loader
	registry        *render.Registry
	defaultRenderer string
	formOptions     []form.Option
	openapi         openapi.Options
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		themeFallbacks:  defaultThemeFallbacks(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source schema.Source

	// Document bypasses the loader when the payload is already in memory.
	Document *schema.Document

	// OperationID selects an OpenAPI operation. When empty the document is
	// treated as a plain JSON schema.
	OperationID string

	// Renderer names the renderer to use; empty falls back to the default.
	Renderer string

	// ContentType picks the first renderer producing this media type when
	// Renderer is empty.
	ContentType string

	// RenderOptions carries per-request method overrides, prefilled values,
	// and server-side errors.
	RenderOptions render.RenderOptions

	// FormOptions are appended to the orchestrator-wide compiler options.
	FormOptions []form.Option

	// ThemeName and ThemeVariant are handed to the theme selector.
	ThemeName    string
	ThemeVariant string
}

// Compile loads the request document and compiles it into a form without
// rendering.
func (o *Orchestrator) Compile(ctx context.Context, req Request) (*form.Form, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	node, err := o.resolveSchema(ctx, doc, req.OperationID)
	if err != nil {
		return nil, err
	}

	options := append([]form.Option{form.WithLogger(o.logger)}, o.formOptions...)
	options = append(options, req.FormOptions...)
	f, err := form.Compile(node, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: compile form: %w", err)
	}
	return f, nil
}

// Generate executes load → schema extraction → compile → render and returns
// the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	f, err := o.Compile(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.selectRenderer(req)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.themeConfig(req)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	o.logger.Debug("render form", "renderer", renderer.Name(), "location", locationOf(req), "operation", req.OperationID)
	output, err := renderer.Render(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveSchema(ctx context.Context, doc schema.Document, operationID string) (*schema.Node, error) {
	if operationID == "" {
		node, err := doc.Node()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: parse schema %s: %w", doc.Location(), err)
		}
		return node, nil
	}
	node, err := openapi.RequestSchema(ctx, doc.Raw(), operationID, o.openapi)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return node, nil
}

func (o *Orchestrator) themeConfig(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return render.ThemeConfig(selection, o.themeFallbacks), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, ok := o.registry.Default()
	if !ok {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

func (o *Orchestrator) selectRenderer(req Request) (render.Renderer, error) {
	if req.Renderer == "" && req.ContentType != "" && o.registry != nil {
		renderer, err := o.registry.ForContentType(req.ContentType)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}
	return o.rendererFor(req.Renderer)
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.loader == nil {
		o.loader = loader.New(schema.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		vanilla.ThemePartialForm: "templates/form",
	}
}

func locationOf(req Request) string {
	if req.Document != nil {
		return req.Document.Location()
	}
	if req.Source != nil {
		return req.Source.Location()
	}
	return ""
}
