package markup

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is an ordered list of sibling nodes.
type Fragment []*html.Node

// Renderer is implemented by anything that can produce its own markup.
type Renderer interface {
	Markup() (Fragment, error)
}

// Render writes the serialized fragment to w.
func (f Fragment) Render(w io.Writer) error {
	for _, node := range f {
		if node == nil {
			continue
		}
		if err := html.Render(w, node); err != nil {
			return fmt.Errorf("markup: render %s: %w", describe(node), err)
		}
	}
	return nil
}

// HTML serializes the fragment.
func (f Fragment) HTML() (string, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markup lets a Fragment stand wherever a Renderer is expected.
func (f Fragment) Markup() (Fragment, error) {
	return f, nil
}

var (
	rawPolicyOnce sync.Once
	rawPolicy     *bluemonday.Policy
)

// Raw sanitizes caller supplied HTML and parses it into a Fragment. Scripts,
// event handlers, and other active content are removed; form controls and
// layout elements survive.
func Raw(source string) (Fragment, error) {
	clean := rawSanitizer().Sanitize(source)
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(clean), context)
	if err != nil {
		return nil, fmt.Errorf("markup: parse raw fragment: %w", err)
	}
	return Fragment(nodes), nil
}

// MustRaw panics when Raw fails. Useful for static headers and fixtures.
func MustRaw(source string) Fragment {
	fragment, err := Raw(source)
	if err != nil {
		panic(err)
	}
	return fragment
}

func rawSanitizer() *bluemonday.Policy {
	rawPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements(
			"form", "fieldset", "legend", "label", "input", "button",
			"select", "option", "textarea", "small", "section", "header", "footer",
		)
		policy.AllowAttrs("class", "id", "title").Globally()
		policy.AllowAttrs("type", "name", "value", "checked", "disabled", "placeholder", "step").
			OnElements("input", "button", "select", "option", "textarea")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("method", "action").OnElements("form")
		policy.AllowDataAttributes()
		rawPolicy = policy
	})
	return rawPolicy
}

func describe(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return "<" + n.Data + ">"
	case html.TextNode:
		return "text node"
	default:
		return "node"
	}
}
