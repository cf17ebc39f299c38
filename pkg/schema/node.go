package schema

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sort"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Node is an immutable JSON-Schema fragment. The raw keyword map is kept
// alongside the declared order of the `properties` members so object children
// render in the order the author wrote them.
type Node struct {
	raw   map[string]any
	props []Property
}

// Property pairs an object member key with its schema.
type Property struct {
	Key    string
	Schema *Node
}

// Parse decodes a JSON or YAML schema document. Documents starting with `{`
// are read as JSON, anything else as YAML. Object member order inside every
// `properties` map is preserved.
func Parse(raw []byte) (*Node, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil, errors.New("schema: document is empty")
	}
	if data[0] == '{' {
		return parseJSON(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	root := resolveAlias(&doc)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolveAlias(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("schema: document root must be an object")
	}
	return fromYAML(root)
}

// MustParse panics when raw cannot be parsed. Useful for tests and fixtures.
func MustParse(raw string) *Node {
	node, err := Parse([]byte(raw))
	if err != nil {
		panic(err)
	}
	return node
}

// FromMap builds a Node from decoded Go values. Go maps carry no order, so
// properties are sorted by key.
func FromMap(m map[string]any) *Node {
	node := &Node{raw: cloneMap(m)}
	props, ok := m["properties"].(map[string]any)
	if !ok {
		return node
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		child, ok := props[key].(map[string]any)
		if !ok {
			continue
		}
		node.props = append(node.props, Property{Key: key, Schema: FromMap(child)})
	}
	return node
}

func fromYAML(n *yaml.Node) (*Node, error) {
	value, err := decodeValue(n)
	if err != nil {
		return nil, err
	}
	raw, _ := value.(map[string]any)
	node := &Node{raw: raw}

	props := mappingValue(n, "properties")
	if props == nil || props.Kind != yaml.MappingNode {
		return node, nil
	}
	for i := 0; i+1 < len(props.Content); i += 2 {
		child := resolveAlias(props.Content[i+1])
		if child.Kind != yaml.MappingNode {
			continue
		}
		childNode, err := fromYAML(child)
		if err != nil {
			return nil, err
		}
		node.props = append(node.props, Property{Key: props.Content[i].Value, Schema: childNode})
	}
	return node, nil
}

func decodeValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeValue(n.Content[0])
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := decodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = value
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			value, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	default:
		var value any
		if err := n.Decode(&value); err != nil {
			return nil, fmt.Errorf("schema: decode scalar at line %d: %w", n.Line, err)
		}
		return value, nil
	}
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1])
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Raw returns a deep copy of the keyword map.
func (n *Node) Raw() map[string]any {
	if n == nil {
		return map[string]any{}
	}
	return cloneMap(n.raw)
}

// Get returns a copy of the value stored under key.
func (n *Node) Get(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	value, ok := n.raw[key]
	if !ok {
		return nil, false
	}
	return cloneValue(value), true
}

// Has reports whether key is present, even when its value is null.
func (n *Node) Has(key string) bool {
	if n == nil {
		return false
	}
	_, ok := n.raw[key]
	return ok
}

// Type returns the declared `type`, or "" when absent. A single-element type
// array is treated like its only member.
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	switch value := n.raw["type"].(type) {
	case string:
		return value
	case []any:
		if len(value) == 1 {
			if name, ok := value[0].(string); ok {
				return name
			}
		}
	}
	return ""
}

// Enum returns the `enum` members in declared order.
func (n *Node) Enum() ([]any, bool) {
	if n == nil {
		return nil, false
	}
	values, ok := n.raw["enum"].([]any)
	if !ok {
		return nil, false
	}
	return cloneValue(values).([]any), true
}

// Default returns the `default` value. Presence is what counts: an explicit
// null default reports ok.
func (n *Node) Default() (any, bool) {
	return n.Get("default")
}

// Label returns the display label when the schema declares one.
func (n *Node) Label() (string, bool) {
	if n == nil {
		return "", false
	}
	label, ok := n.raw["label"].(string)
	return label, ok
}

// Properties returns the object members in declared order.
func (n *Node) Properties() []Property {
	if n == nil {
		return nil
	}
	return slices.Clone(n.props)
}

// Property looks up a single member schema by key.
func (n *Node) Property(key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, prop := range n.props {
		if prop.Key == key {
			return prop.Schema, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the keyword map.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	return gojson.Marshal(n.raw)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
