package schema

import (
	"strconv"
	"strings"
	"time"
)

// Validate checks raw against s and returns a normalized copy: declared
// defaults are supplied for absent optional fields, nullable fields gain an
// explicit null entry, and date strings are parsed into time.Time. The input
// map is never mutated. Validation failures return a *ValidationError.
func Validate(s *Schema, raw map[string]any) (map[string]any, error) {
	out, err := validateObject(s.Properties, raw, "")
	if err != nil {
		return nil, err
	}

	return out, nil
}

func validateObject(props map[string]*Property, raw map[string]any, path string) (map[string]any, *ValidationError) {
	if raw == nil {
		raw = map[string]any{}
	}

	for key := range raw {
		if _, ok := props[key]; !ok {
			return nil, newError(childPath(path, key), "definition for this key is missing")
		}
	}

	out := make(map[string]any, len(props))

	for key, prop := range props {
		fieldPath := childPath(path, key)

		value, present := raw[key]
		if !present {
			switch {
			case prop.Required:
				return nil, newError(fieldPath, "expected value of type [%s] but got [undefined]", typeList(prop.Types))
			case prop.Default != nil:
				out[key] = prop.Default
			case prop.nullable():
				out[key] = nil
			}

			continue
		}

		normalized, err := validateValue(prop, value, fieldPath)
		if err != nil {
			return nil, err
		}

		out[key] = normalized
	}

	return out, nil
}

// validateValue tries each declared type alternative in order and returns
// the first match. When no alternative matches, same-path type mismatches
// are reported together; a failure inside a nested object or array element
// carries a deeper path and is propagated as-is so the caller sees the
// exact field that failed.
func validateValue(prop *Property, value any, path string) (any, *ValidationError) {
	var (
		reasons []string
		nested  *ValidationError
	)

	for _, t := range prop.Types {
		normalized, err := checkType(t, prop, value, path)
		if err == nil {
			return normalized, nil
		}

		if err.Path != path {
			if nested == nil {
				nested = err
			}

			continue
		}

		reasons = append(reasons, err.Reason)
	}

	if nested != nil {
		return nil, nested
	}

	return nil, newError(path, "%s", strings.Join(reasons, ", or "))
}

func checkType(t Type, prop *Property, value any, path string) (any, *ValidationError) {
	switch t {
	case TypeNull:
		if value == nil {
			return nil, nil
		}

		return nil, newError(path, "expected value to equal [null] but got [%s]", typeName(value))

	case TypeString:
		if s, ok := value.(string); ok {
			return s, nil
		}

	case TypeNumber:
		switch n := value.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}

	case TypeBoolean:
		if b, ok := value.(bool); ok {
			return b, nil
		}

	case TypeDate:
		switch d := value.(type) {
		case time.Time:
			return d, nil
		case string:
			parsed, err := time.Parse(time.RFC3339, d)
			if err == nil {
				return parsed, nil
			}

			return nil, newError(path, "expected value of type [date] but got an unparseable date string")
		}

	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			break
		}

		if prop.Items == nil {
			return append([]any(nil), items...), nil
		}

		normalized := make([]any, len(items))

		for i, item := range items {
			v, err := validateValue(prop.Items, item, childPath(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}

			normalized[i] = v
		}

		return normalized, nil

	case TypeObject:
		m, ok := value.(map[string]any)
		if !ok {
			break
		}

		if prop.Properties == nil {
			copied := make(map[string]any, len(m))
			for k, v := range m {
				copied[k] = v
			}

			return copied, nil
		}

		return validateObject(prop.Properties, m, path)
	}

	return nil, newError(path, "expected value of type [%s] but got [%s]", string(t), typeName(value))
}

func typeList(types []Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	return strings.Join(names, "|")
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, float32, int, int32, int64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case time.Time:
		return "date"
	default:
		return "unknown"
	}
}
