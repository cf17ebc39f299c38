package schema

// InputName joins an ancestor path and a key with ".", skipping empty sides.
// Markup names and FlatSchema keys are both built here so a submitted field
// maps back to exactly one flattened entry.
func InputName(ancestorPath, name string) string {
	switch {
	case ancestorPath == "":
		return name
	case name == "":
		return ancestorPath
	default:
		return ancestorPath + "." + name
	}
}
