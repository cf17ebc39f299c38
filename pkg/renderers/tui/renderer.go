package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/pkg/decode"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Renderer fills a compiled form through terminal prompts and serializes the
// decoded answers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	logger            *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{SectionPrefix: "== ", ErrorPrefix: "! "},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field and serializes the answers.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Fill(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// Fill prompts for every field in declared order and returns the decoded
// answers keyed by input name. Prefilled values and schema defaults seed the
// prompts; opts.Errors are shown before the field they belong to.
func (r *Renderer) Fill(ctx context.Context, f *form.Form, opts render.RenderOptions) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}

	state := NewState(opts.Values, opts.Errors)
	if err := r.showErrors(ctx, state.ErrorsFor("")); err != nil {
		return nil, err
	}

	err := f.Walk(func(node form.PropertyNode) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if node.InputName() != "" {
			if err := r.showErrors(ctx, state.ErrorsFor(node.InputName())); err != nil {
				return err
			}
		}
		r.logger.Debug("prompt", "input_name", node.InputName(), "kind", string(schema.DisplayKind(node.Schema())))
		return r.prompt(ctx, node, state)
	})
	if err != nil {
		return nil, err
	}
	return state.Values(), nil
}

func (r *Renderer) prompt(ctx context.Context, node form.PropertyNode, state *State) error {
	switch n := node.(type) {
	case *form.ObjectNode:
		if n.InputName() == "" {
			return nil
		}
		return r.driver.Info(ctx, r.theme.SectionPrefix+n.Label())
	case *form.BooleanNode:
		return r.promptBoolean(ctx, n, state)
	case *form.EnumNode:
		return r.promptEnum(ctx, n, state)
	default:
		return r.promptInput(ctx, node, state)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, n *form.BooleanNode, state *State) error {
	current := n.Checked()
	if value, ok := state.Prefill(n.InputName()); ok {
		if decoded, isBool := decode.Decode(value, n.Schema()).(bool); isBool {
			current = decoded
		}
	}
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: n.Label(),
		Default: current,
		Help:    description(n.Schema()),
	})
	if err != nil {
		return err
	}
	state.Set(n.InputName(), answer)
	return nil
}

func (r *Renderer) promptEnum(ctx context.Context, n *form.EnumNode, state *State) error {
	choices := n.Choices()
	options := make([]string, len(choices))
	for idx, choice := range choices {
		options[idx] = choice.Text
	}

	selected := n.DefaultIndex()
	if value, ok := state.Prefill(n.InputName()); ok {
		text := form.NormalizeValue(value)
		for idx, option := range options {
			if option == text {
				selected = idx
				break
			}
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      n.Label(),
		Options:      options,
		DefaultIndex: selected,
		Help:         description(n.Schema()),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("%w for %q", ErrNoSelection, n.InputName())
	}
	state.Set(n.InputName(), choices[idx].Value)
	return nil
}

func (r *Renderer) promptInput(ctx context.Context, node form.PropertyNode, state *State) error {
	leaf := node.Schema()
	initial := ""
	if value, ok := leaf.Default(); ok {
		initial = form.NormalizeValue(value)
	}
	if value, ok := state.Prefill(node.InputName()); ok {
		initial = form.NormalizeValue(value)
	}

	answer, err := r.driver.Input(ctx, InputConfig{
		Message:   node.Label(),
		Default:   initial,
		Help:      description(leaf),
		Validator: fieldValidator(leaf),
	})
	if err != nil {
		return err
	}
	if answer == "" && schema.ValueKind(leaf) != schema.KindString {
		return nil
	}
	state.Set(node.InputName(), decode.Decode(answer, leaf))
	return nil
}

func (r *Renderer) showErrors(ctx context.Context, messages []string) error {
	for _, message := range messages {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	return nil
}

// fieldValidator decodes an answer the way a submission would be decoded and
// checks it against the leaf schema. Empty answers are accepted and left out.
func fieldValidator(leaf *schema.Node) func(string) error {
	return func(answer string) error {
		if answer == "" {
			return nil
		}
		result, err := validation.ValidateField(leaf, decode.Decode(answer, leaf))
		if err != nil {
			return err
		}
		if result.Valid {
			return nil
		}
		messages := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			messages = append(messages, issue.Message)
		}
		return errors.New(strings.Join(messages, "; "))
	}
}

func description(n *schema.Node) string {
	value, ok := n.Get("description")
	if !ok {
		return ""
	}
	text, _ := value.(string)
	return text
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, form.NormalizeValue(value))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		payload, err := json.MarshalIndent(decode.Nest(values), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return payload, nil
	}
}

func prettyPrint(values map[string]any) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(form.NormalizeValue(values[name]))
		b.WriteString("\n")
	}
	return b.String()
}
