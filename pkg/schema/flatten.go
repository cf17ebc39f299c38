package schema

import "sort"

// FlatSchema maps dotted input names to leaf schemas.
type FlatSchema map[string]*Node

// Flatten walks object nodes through their properties and records every leaf
// under its dotted path. A later leaf at the same path replaces an earlier one.
func Flatten(n *Node) FlatSchema {
	out := make(FlatSchema)
	flattenInto(n, "", out)
	return out
}

func flattenInto(n *Node, path string, out FlatSchema) {
	if DisplayKind(n) != KindObject {
		out[path] = n
		return
	}
	for _, prop := range n.props {
		flattenInto(prop.Schema, InputName(path, prop.Key), out)
	}
}

// Paths returns the flattened keys in sorted order.
func (f FlatSchema) Paths() []string {
	paths := make([]string, 0, len(f))
	for path := range f {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Lookup returns the leaf schema stored for an input name.
func (f FlatSchema) Lookup(name string) (*Node, bool) {
	node, ok := f[name]
	return node, ok
}

// Prefixes returns every dotted path known to the schema, including the object
// paths that lead to leaves. The empty root path is omitted.
func (f FlatSchema) Prefixes() map[string]struct{} {
	out := make(map[string]struct{}, len(f))
	for path := range f {
		for current := path; current != ""; current = parentPath(current) {
			out[current] = struct{}{}
		}
	}
	return out
}

func parentPath(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return ""
}
