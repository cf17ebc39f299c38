package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/tui"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

type options struct {
	mode      string
	source    string
	operation string
	renderer  string
	output    string
	values    string
	format    string
	action    string
	method    string
	logLevel  string
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "render", "render, flatten, fill, or validate")
	flag.StringVar(&opts.source, "source", "", "schema or OpenAPI document path or URL")
	flag.StringVar(&opts.operation, "operation", "", "OpenAPI operation ID (empty treats source as a JSON schema)")
	flag.StringVar(&opts.renderer, "renderer", "vanilla", "renderer used by -mode render")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.values, "values", "", "JSON file of values keyed by input name, used to prefill or validate")
	flag.StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "fill output format: json, form, or pretty")
	flag.StringVar(&opts.action, "action", "", "form action attribute")
	flag.StringVar(&opts.method, "method", "", "form method attribute")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemaform: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := run(ctx, opts, logger)
	if err != nil {
		var invalid errInvalidSubmission
		if errors.As(err, &invalid) {
			_ = write(opts.output, out)
			os.Exit(1)
		}
		logger.Error("schemaform failed", "mode", opts.mode, "error", err)
		os.Exit(1)
	}
	if err := write(opts.output, out); err != nil {
		logger.Error("write output", "path", opts.output, "error", err)
		os.Exit(1)
	}
}

type errInvalidSubmission struct{}

func (errInvalidSubmission) Error() string { return "submission is invalid" }

func run(ctx context.Context, opts options, logger *slog.Logger) ([]byte, error) {
	src := schema.ParseSource(opts.source)
	if src == nil {
		return nil, errors.New("-source is required")
	}

	gen, err := newOrchestrator(opts, logger)
	if err != nil {
		return nil, err
	}

	var formOptions []form.Option
	if attrs := formAttrs(opts); len(attrs) > 0 {
		formOptions = append(formOptions, form.WithAttrs(attrs))
	}
	req := orchestrator.Request{
		Source:      src,
		OperationID: opts.operation,
		Renderer:    opts.renderer,
		FormOptions: formOptions,
	}

	values, err := readValues(opts.values)
	if err != nil {
		return nil, err
	}

	switch opts.mode {
	case "render", "fill":
		if opts.mode == "fill" {
			req.Renderer = "tui"
		}
		req.RenderOptions = render.RenderOptions{Values: values}
		return gen.Generate(ctx, req)
	case "flatten":
		f, err := gen.Compile(ctx, req)
		if err != nil {
			return nil, err
		}
		return flatten(f), nil
	case "validate":
		f, err := gen.Compile(ctx, req)
		if err != nil {
			return nil, err
		}
		_, result, err := f.Validate(values)
		if err != nil {
			return nil, err
		}
		out, err := gojson.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, err
		}
		out = append(out, '\n')
		if !result.Valid {
			return out, errInvalidSubmission{}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func newOrchestrator(opts options, logger *slog.Logger) (*orchestrator.Orchestrator, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)

	prompts, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(opts.format)),
		tui.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	registry.MustRegister(prompts)

	return orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoader(newLoader()),
		orchestrator.WithLogger(logger),
	), nil
}

func formAttrs(opts options) map[string]string {
	attrs := map[string]string{}
	if opts.action != "" {
		attrs["action"] = opts.action
	}
	if opts.method != "" {
		attrs["method"] = opts.method
	}
	return attrs
}

func readValues(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	values := map[string]any{}
	if err := gojson.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return values, nil
}

func flatten(f *form.Form) []byte {
	flat := f.FlatSchema()
	var b strings.Builder
	for _, path := range flat.Paths() {
		leaf, _ := flat.Lookup(path)
		fmt.Fprintf(&b, "%s\t%s\t%s\n", path, schema.DisplayKind(leaf), schema.ValueKind(leaf))
	}
	return []byte(b.String())
}

func write(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
