package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data renderers use without recompiling the
// form.
type RenderOptions struct {
	// Method overrides the form's method attribute. Verbs other than GET and
	// POST are sent as POST with a hidden _method field.
	Method string
	// Values pre-populates controls, keyed by dotted input name.
	Values map[string]any
	// Errors holds validation messages keyed by dotted input name, usually the
	// output of MapErrorPayload. Messages under "" are form level.
	Errors map[string][]string
	// FormErrors are shown above the fields, ahead of any Errors entry that
	// matches no control.
	FormErrors []string
	// Hidden fields are appended inside the form element.
	Hidden []HiddenField
	// SubmitLabel is the text of the submit button. Empty means no button.
	SubmitLabel string
	// Theme carries the resolved theme: name, variant, tokens as CSS
	// variables and asset URLs.
	Theme *theme.RendererConfig
}

// ResolveMethod returns the method to place on the form element and the hidden
// override field, if one is needed.
func (o RenderOptions) ResolveMethod(attrs map[string]string) (string, *HiddenField) {
	method := strings.ToUpper(strings.TrimSpace(o.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(attrs["method"]))
	}
	switch method {
	case "":
		return "", nil
	case "GET", "POST":
		return strings.ToLower(method), nil
	default:
		override := Hidden("_method", method)
		return "post", &override
	}
}
