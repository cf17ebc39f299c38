package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/markup"
)

// HiddenField is a hidden input emitted alongside the schema controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds the hidden field carrying a CSRF token under the name the
// backend expects, for example "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField builds a hidden field used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// Markup renders the field as an <input type="hidden">.
func (h HiddenField) Markup() (markup.Fragment, error) {
	name := strings.TrimSpace(h.Name)
	if name == "" {
		return nil, fmt.Errorf("render: hidden field name is required")
	}
	return markup.Fragment{markup.El("input",
		markup.Attr("type", "hidden"),
		markup.Attr("name", name),
		markup.Attr("value", h.Value),
	)}, nil
}

// SortedHiddenFields drops unnamed fields, lets later fields win on name
// collisions and sorts the result by name.
func SortedHiddenFields(fields ...HiddenField) []HiddenField {
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: byName[name]})
	}
	return out
}
