package vanilla

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-schemaform/pkg/decode"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/markup"
)

// annotateErrors attaches field messages to the control whose id matches the
// input name and returns the messages it could not place. Messages under ""
// are always form level.
func annotateErrors(fragment markup.Fragment, errs map[string][]string) []string {
	if len(errs) == 0 {
		return nil
	}

	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	var unplaced []string
	for _, name := range names {
		messages := cleanMessages(errs[name])
		if len(messages) == 0 {
			continue
		}
		control := fragment.FindByID(form.ControlIDFor(name))
		if name == "" || control == nil {
			unplaced = append(unplaced, messages...)
			continue
		}

		markup.Attr("aria-invalid", "true")(control)
		container := markup.Closest(control, markup.HasAttr("data-component"))
		if container == nil {
			container = control.Parent
		}
		if container == nil {
			unplaced = append(unplaced, messages...)
			continue
		}
		appendClass(container, string(ClassInvalid))
		markup.Attr("data-validation", "invalid")(container)
		container.AppendChild(errorList(string(ClassFieldErrors), messages))
	}
	return unplaced
}

func errorList(class string, messages []string) *html.Node {
	items := make([]*html.Node, 0, len(messages))
	for _, message := range messages {
		items = append(items, markup.El("li", markup.Text(message)))
	}
	return markup.El("ul", markup.Class(class), markup.Children(items...))
}

func appendClass(n *html.Node, class string) {
	existing, _ := markup.AttrValue(n, "class")
	markup.Class(append(strings.Fields(existing), class)...)(n)
}

func cleanMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "fg-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// applyValues overrides schema defaults with prefilled values. Checkboxes use
// boolean decoding, radio groups match the normalized option text and other
// inputs receive the normalized value.
func applyValues(fragment markup.Fragment, f *form.Form, values map[string]any) {
	flat := f.FlatSchema()
	for name, value := range values {
		control := fragment.FindByID(form.ControlIDFor(form.FieldName(name)))
		if control == nil {
			continue
		}
		switch kind, _ := markup.AttrValue(control, "type"); {
		case control.Data == "fieldset":
			text := form.NormalizeValue(value)
			for _, radio := range (markup.Fragment{control}).FindAll(isRadio) {
				option, _ := markup.AttrValue(radio, "value")
				markup.RemoveAttr("checked")(radio)
				markup.Flag("checked", option == text)(radio)
			}
		case kind == "checkbox":
			checked := value
			leaf, ok := flat.Lookup(name)
			if !ok && name == form.RootFieldName {
				leaf, ok = flat.Lookup("")
			}
			if ok {
				checked = decode.Decode(value, leaf)
			}
			on, _ := checked.(bool)
			markup.RemoveAttr("checked")(control)
			markup.Flag("checked", on)(control)
		case control.Data == "input":
			markup.Attr("value", form.NormalizeValue(value))(control)
		}
	}
}

func isRadio(n *html.Node) bool {
	kind, _ := markup.AttrValue(n, "type")
	return n.Data == "input" && kind == "radio"
}
