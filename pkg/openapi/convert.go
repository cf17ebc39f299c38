package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// convertSchema rewrites an OpenAPI schema as a draft-4 keyword map with every
// $ref inlined. allOf members are merged into the parent. A schema that
// refers back to one of its ancestors is cut to a bare object.
func convertSchema(ref *openapi3.SchemaRef, ancestors []*openapi3.Schema) map[string]any {
	out := map[string]any{}
	if ref == nil || ref.Value == nil {
		return out
	}
	src := ref.Value
	for _, seen := range ancestors {
		if seen == src {
			out["type"] = "object"
			return out
		}
	}
	ancestors = append(ancestors, src)

	if src.Type != nil {
		switch types := src.Type.Slice(); len(types) {
		case 0:
		case 1:
			out["type"] = types[0]
		default:
			list := make([]any, len(types))
			for i, name := range types {
				list[i] = name
			}
			out["type"] = list
		}
	}
	if src.Title != "" {
		out["title"] = src.Title
		out["label"] = src.Title
	}
	if src.Description != "" {
		out["description"] = src.Description
	}
	if src.Format != "" {
		out["format"] = src.Format
	}
	if src.Default != nil {
		out["default"] = src.Default
	}
	if len(src.Enum) > 0 {
		out["enum"] = append([]any(nil), src.Enum...)
	}
	if src.Min != nil {
		out["minimum"] = *src.Min
	}
	if src.Max != nil {
		out["maximum"] = *src.Max
	}
	if src.MultipleOf != nil {
		out["multipleOf"] = *src.MultipleOf
	}
	if src.MinLength != 0 {
		out["minLength"] = src.MinLength
	}
	if src.MaxLength != nil {
		out["maxLength"] = *src.MaxLength
	}
	if src.Pattern != "" {
		out["pattern"] = src.Pattern
	}
	if src.Items != nil {
		out["items"] = convertSchema(src.Items, ancestors)
	}

	properties := map[string]any{}
	var required []any
	for name, prop := range src.Properties {
		properties[name] = convertSchema(prop, ancestors)
	}
	for _, name := range src.Required {
		required = append(required, name)
	}
	for _, member := range src.AllOf {
		merged := convertSchema(member, ancestors)
		if props, ok := merged["properties"].(map[string]any); ok {
			for name, prop := range props {
				if _, exists := properties[name]; !exists {
					properties[name] = prop
				}
			}
		}
		if names, ok := merged["required"].([]any); ok {
			required = append(required, names...)
		}
		if _, ok := out["type"]; !ok {
			if kind, ok := merged["type"]; ok {
				out["type"] = kind
			}
		}
	}
	if len(properties) > 0 {
		out["properties"] = properties
		if _, ok := out["type"]; !ok {
			out["type"] = "object"
		}
	}
	if len(required) > 0 {
		out["required"] = uniqueStrings(required)
	}
	return out
}

func uniqueStrings(values []any) []any {
	seen := make(map[any]struct{}, len(values))
	out := make([]any, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
