package schema

// Kind is the semantic kind of a schema node.
type Kind string

const (
	KindObject  Kind = "object"
	KindBoolean Kind = "boolean"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindEnum    Kind = "enum"
)

// DisplayKind selects how a node is presented. `enum` wins over `type`, and a
// missing type means string.
func DisplayKind(n *Node) Kind {
	if n.Has("enum") {
		return KindEnum
	}
	return ValueKind(n)
}

// ValueKind is the native type a submission decodes to. It ignores `enum`,
// since enum members are still typed by `type`.
func ValueKind(n *Node) Kind {
	if name := n.Type(); name != "" {
		return Kind(name)
	}
	return KindString
}
