package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// jsonObject is a decoded JSON object that remembers member order.
type jsonObject struct {
	keys   []string
	values map[string]any
}

func parseJSON(data []byte) (*Node, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := readJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("schema: parse document: trailing data after root object")
	}
	root, ok := value.(*jsonObject)
	if !ok {
		return nil, errors.New("schema: document root must be an object")
	}
	return nodeFromJSON(root), nil
}

func readJSON(dec *gojson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			obj := &jsonObject{values: map[string]any{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				member, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				if _, seen := obj.values[key]; !seen {
					obj.keys = append(obj.keys, key)
				}
				obj.values[key] = member
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				item, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case gojson.Number:
		return jsonNumber(v)
	default:
		return v, nil
	}
}

// jsonNumber decodes integers to int, like the YAML path, and everything
// else to float64.
func jsonNumber(n gojson.Number) (any, error) {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.Atoi(text); err == nil {
			return i, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return f, nil
}

func plainJSON(value any) any {
	switch v := value.(type) {
	case *jsonObject:
		out := make(map[string]any, len(v.values))
		for key, member := range v.values {
			out[key] = plainJSON(member)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainJSON(item)
		}
		return out
	default:
		return v
	}
}

func nodeFromJSON(obj *jsonObject) *Node {
	node := &Node{raw: plainJSON(obj).(map[string]any)}
	props, ok := obj.values["properties"].(*jsonObject)
	if !ok {
		return node
	}
	for _, key := range props.keys {
		child, ok := props.values[key].(*jsonObject)
		if !ok {
			continue
		}
		node.props = append(node.props, Property{Key: key, Schema: nodeFromJSON(child)})
	}
	return node
}
