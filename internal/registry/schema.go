package registry

import "github.com/goliatone/go-sections/internal/contracts"

// ContentSchema renders field descriptors as a closed JSON Schema object.
func ContentSchema(fields []contracts.Field) map[string]any {
	return objectSchema(fields, false)
}

// SettingsSchema renders settings descriptors as an open JSON Schema object.
// Unknown settings keys are accepted; known keys must match their kind.
func SettingsSchema(fields []contracts.Field) map[string]any {
	return objectSchema(fields, true)
}

func objectSchema(fields []contracts.Field, open bool) map[string]any {
	properties := make(map[string]any, len(fields))
	required := []any{}
	for _, field := range fields {
		properties[field.Name] = fieldSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}
	out := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": open,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func fieldSchema(field contracts.Field) map[string]any {
	switch field.Kind {
	case contracts.KindNumber:
		return map[string]any{"type": "number"}
	case contracts.KindBool:
		return map[string]any{"type": "boolean"}
	case contracts.KindObject:
		return objectSchema(field.Fields, false)
	case contracts.KindList:
		return map[string]any{"type": "array", "items": objectSchema(field.Fields, false)}
	case contracts.KindStringList:
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	default:
		return map[string]any{"type": "string"}
	}
}
