// Package schema provides declarative shape descriptions for action type
// configuration and parameters, plus a validator that normalizes untyped
// input into a typed record.
package schema

// Type identifies a value kind a Property accepts.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	// TypeDate accepts time.Time values or RFC 3339 strings and normalizes
	// both to time.Time.
	TypeDate Type = "date"
	// TypeNull accepts exactly the literal null. Combined with another type
	// in Types it expresses a nullable field.
	TypeNull Type = "null"
)

// Schema describes the shape of a top-level configuration or parameters
// object. Keys not present in Properties are rejected.
type Schema struct {
	Properties map[string]*Property
}

// Property describes one field of an object. Types lists the accepted
// alternatives, tried in order; validation succeeds on the first match.
type Property struct {
	Types    []Type
	Required bool

	// Default is supplied when an optional field is absent from input.
	// Optional fields whose Types include TypeNull normalize to an explicit
	// null entry even without a Default.
	Default any

	// Items describes array elements when Types includes TypeArray.
	Items *Property

	// Properties describes nested object fields when Types includes
	// TypeObject. A nil Properties map marks an open record: any keys, any
	// values.
	Properties map[string]*Property
}

// nullable reports whether the property accepts the literal null.
func (p *Property) nullable() bool {
	for _, t := range p.Types {
		if t == TypeNull {
			return true
		}
	}

	return false
}
