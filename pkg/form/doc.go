// Package form compiles a draft-4 JSON Schema into a tree of renderable
// property nodes and maps submissions back onto typed values.
//
// Compile validates the document against the draft-4 meta-schema, then walks
// it through a Builder whose TypeTable maps each display kind (object,
// boolean, integer, number, string, enum) to a Constructor. Every node checks
// that its own default and enum members satisfy its schema when constructed.
// Callers can register custom constructors for any kind with WithConstructor.
package form
