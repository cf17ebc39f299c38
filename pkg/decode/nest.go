package decode

import (
	"sort"
	"strings"
)

// Nest expands dotted input names into nested objects so the result can be
// validated against the original schema tree. Keys are applied in sorted
// order; when a scalar and an object claim the same path, the object wins.
func Nest(values map[string]any) map[string]any {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, key := range keys {
		segments := strings.Split(key, ".")
		current := out
		for _, segment := range segments[:len(segments)-1] {
			next, ok := current[segment].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[segment] = next
			}
			current = next
		}
		last := segments[len(segments)-1]
		if _, isObject := current[last].(map[string]any); isObject {
			continue
		}
		current[last] = values[key]
	}
	return out
}
