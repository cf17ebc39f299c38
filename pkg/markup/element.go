package markup

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Option configures an element created by El.
type Option func(*html.Node)

// El creates an element node, applying options in order.
func El(tag string, options ...Option) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(node)
		}
	}
	return node
}

// Attr sets an attribute, replacing an existing value.
func Attr(key, value string) Option {
	return func(n *html.Node) {
		setAttr(n, key, value)
	}
}

// AttrIf sets an attribute only when value is non-empty.
func AttrIf(key, value string) Option {
	return func(n *html.Node) {
		if value != "" {
			setAttr(n, key, value)
		}
	}
}

// Flag sets a valueless boolean attribute such as checked or required.
func Flag(key string, enabled bool) Option {
	return func(n *html.Node) {
		if enabled {
			setAttr(n, key, "")
		}
	}
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(key string) Option {
	return func(n *html.Node) {
		kept := n.Attr[:0]
		for _, attr := range n.Attr {
			if attr.Key != key {
				kept = append(kept, attr)
			}
		}
		n.Attr = kept
	}
}

// Attrs sets every attribute in attrs, in key order for stable output.
func Attrs(attrs map[string]string) Option {
	return func(n *html.Node) {
		keys := make([]string, 0, len(attrs))
		for key := range attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			setAttr(n, key, attrs[key])
		}
	}
}

// Class sets the class attribute. Empty names are dropped.
func Class(names ...string) Option {
	return func(n *html.Node) {
		var keep []string
		for _, name := range names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				keep = append(keep, trimmed)
			}
		}
		if len(keep) > 0 {
			setAttr(n, "class", strings.Join(keep, " "))
		}
	}
}

// Text appends a text node. Empty text is ignored.
func Text(text string) Option {
	return func(n *html.Node) {
		if text == "" {
			return
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Children appends nodes. Nodes already attached elsewhere are copied.
func Children(nodes ...*html.Node) Option {
	return func(n *html.Node) {
		for _, child := range nodes {
			if child == nil {
				continue
			}
			n.AppendChild(detached(child))
		}
	}
}

// AttrValue returns the value of key on n.
func AttrValue(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, value string) {
	for idx := range n.Attr {
		if n.Attr[idx].Key == key {
			n.Attr[idx].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func detached(n *html.Node) *html.Node {
	if n.Parent == nil && n.PrevSibling == nil && n.NextSibling == nil {
		return n
	}
	return cloneNode(n)
}

func cloneNode(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		clone.AppendChild(cloneNode(child))
	}
	return clone
}
