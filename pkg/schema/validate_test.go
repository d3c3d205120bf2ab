package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullableStringSchema() *Schema {
	return &Schema{
		Properties: map[string]*Property{
			"index": {Types: []Type{TypeString, TypeNull}},
		},
	}
}

func TestValidate_NullableFieldDefaultsToNull(t *testing.T) {
	out, err := Validate(nullableStringSchema(), map[string]any{})

	require.NoError(t, err)

	value, present := out["index"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestValidate_NullableFieldKeepsSuppliedValue(t *testing.T) {
	out, err := Validate(nullableStringSchema(), map[string]any{"index": "logs"})

	require.NoError(t, err)
	assert.Equal(t, "logs", out["index"])
}

func TestValidate_UnknownKeyFails(t *testing.T) {
	_, err := Validate(nullableStringSchema(), map[string]any{"indexx": "logs"})

	require.Error(t, err)
	assert.EqualError(t, err, "[indexx]: definition for this key is missing")
}

func TestValidate_MissingRequiredField(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"documents": {Types: []Type{TypeArray}, Required: true},
		},
	}

	_, err := Validate(s, map[string]any{})

	require.Error(t, err)
	assert.EqualError(t, err, "[documents]: expected value of type [array] but got [undefined]")
}

func TestValidate_WrongTypeNamesExpectedAndActual(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"message": {Types: []Type{TypeString}, Required: true},
		},
	}

	_, err := Validate(s, map[string]any{"message": float64(42)})

	require.Error(t, err)
	assert.EqualError(t, err, "[message]: expected value of type [string] but got [number]")
}

func TestValidate_UnionReportsAllFailedAlternatives(t *testing.T) {
	_, err := Validate(nullableStringSchema(), map[string]any{"index": true})

	require.Error(t, err)
	assert.EqualError(t, err,
		"[index]: expected value of type [string] but got [boolean], "+
			"or expected value to equal [null] but got [boolean]")
}

func TestValidate_UnionTriesAlternativesInOrder(t *testing.T) {
	out, err := Validate(nullableStringSchema(), map[string]any{"index": nil})

	require.NoError(t, err)
	assert.Nil(t, out["index"])
}

func TestValidate_DefaultSupplied(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"level": {Types: []Type{TypeString}, Default: "info"},
		},
	}

	tests := []struct {
		name     string
		input    map[string]any
		expected string
	}{
		{name: "absent gets default", input: map[string]any{}, expected: "info"},
		{name: "supplied value kept", input: map[string]any{"level": "debug"}, expected: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Validate(s, tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, out["level"])
		})
	}
}

func TestValidate_OptionalFieldWithoutDefaultStaysAbsent(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"refresh": {Types: []Type{TypeBoolean}},
		},
	}

	out, err := Validate(s, map[string]any{})

	require.NoError(t, err)

	_, present := out["refresh"]
	assert.False(t, present)
}

func TestValidate_ArrayElementErrorIncludesIndex(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"documents": {
				Types:    []Type{TypeArray},
				Required: true,
				Items:    &Property{Types: []Type{TypeObject}},
			},
		},
	}

	_, err := Validate(s, map[string]any{
		"documents": []any{map[string]any{"a": 1}, "not-an-object"},
	})

	require.Error(t, err)
	assert.EqualError(t, err, "[documents.1]: expected value of type [object] but got [string]")
}

func TestValidate_NestedObject(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"retry": {
				Types: []Type{TypeObject},
				Properties: map[string]*Property{
					"attempts": {Types: []Type{TypeNumber}, Required: true},
					"delay":    {Types: []Type{TypeNumber}, Default: float64(0)},
				},
			},
		},
	}

	t.Run("valid nested object normalized with defaults", func(t *testing.T) {
		out, err := Validate(s, map[string]any{
			"retry": map[string]any{"attempts": float64(3)},
		})

		require.NoError(t, err)

		retry, ok := out["retry"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(3), retry["attempts"])
		assert.Equal(t, float64(0), retry["delay"])
	})

	t.Run("nested unknown key carries dotted path", func(t *testing.T) {
		_, err := Validate(s, map[string]any{
			"retry": map[string]any{"attempts": float64(3), "backoff": "exp"},
		})

		require.Error(t, err)
		assert.EqualError(t, err, "[retry.backoff]: definition for this key is missing")
	})

	t.Run("nested missing required carries dotted path", func(t *testing.T) {
		_, err := Validate(s, map[string]any{
			"retry": map[string]any{},
		})

		require.Error(t, err)
		assert.EqualError(t, err, "[retry.attempts]: expected value of type [number] but got [undefined]")
	})
}

func TestValidate_NestedFailureKeepsDeepPathAcrossAlternatives(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"retry": {
				Types: []Type{TypeNull, TypeObject},
				Properties: map[string]*Property{
					"attempts": {Types: []Type{TypeNumber}, Required: true},
				},
			},
			"documents": {
				Types: []Type{TypeArray},
				Items: &Property{Types: []Type{TypeObject}},
			},
		},
	}

	t.Run("nested missing required not collapsed to parent", func(t *testing.T) {
		_, err := Validate(s, map[string]any{
			"retry": map[string]any{},
		})

		require.Error(t, err)
		assert.EqualError(t, err, "[retry.attempts]: expected value of type [number] but got [undefined]")
	})

	t.Run("array element failure not collapsed to parent", func(t *testing.T) {
		_, err := Validate(s, map[string]any{
			"documents": []any{map[string]any{}, "oops", map[string]any{}},
		})

		require.Error(t, err)
		assert.EqualError(t, err, "[documents.1]: expected value of type [object] but got [string]")
	})
}

func TestValidate_OpenRecordAllowsArbitraryKeys(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"payload": {Types: []Type{TypeObject}},
		},
	}

	out, err := Validate(s, map[string]any{
		"payload": map[string]any{"jim": "bob", "deep": map[string]any{"x": 1}},
	})

	require.NoError(t, err)

	payload, ok := out["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bob", payload["jim"])
}

func TestValidate_DateType(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"at": {Types: []Type{TypeDate}, Required: true},
		},
	}

	t.Run("time value passes through", func(t *testing.T) {
		now := time.Now().UTC()

		out, err := Validate(s, map[string]any{"at": now})

		require.NoError(t, err)
		assert.Equal(t, now, out["at"])
	})

	t.Run("RFC 3339 string normalized to time", func(t *testing.T) {
		out, err := Validate(s, map[string]any{"at": "2026-08-26T10:30:00Z"})

		require.NoError(t, err)

		at, ok := out["at"].(time.Time)
		require.True(t, ok)
		assert.Equal(t, 2026, at.Year())
	})

	t.Run("unparseable string fails", func(t *testing.T) {
		_, err := Validate(s, map[string]any{"at": "yesterday"})

		require.Error(t, err)
		assert.EqualError(t, err, "[at]: expected value of type [date] but got an unparseable date string")
	})
}

func TestValidate_NumberKinds(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"n": {Types: []Type{TypeNumber}, Required: true},
		},
	}

	tests := []struct {
		name  string
		value any
	}{
		{name: "float64", value: float64(1.5)},
		{name: "int", value: 2},
		{name: "int64", value: int64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Validate(s, map[string]any{"n": tt.value})

			require.NoError(t, err)
			assert.IsType(t, float64(0), out["n"])
		})
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Property{
			"index": {Types: []Type{TypeString, TypeNull}},
			"level": {Types: []Type{TypeString}, Default: "info"},
		},
	}

	input := map[string]any{}

	_, err := Validate(s, input)

	require.NoError(t, err)
	assert.Empty(t, input)
}

func TestValidate_NilInputTreatedAsEmpty(t *testing.T) {
	out, err := Validate(nullableStringSchema(), nil)

	require.NoError(t, err)
	assert.Contains(t, out, "index")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Path: "a.b", Reason: "bad"}
	assert.Equal(t, "[a.b]: bad", err.Error())

	err = &ValidationError{Reason: "bad"}
	assert.Equal(t, "bad", err.Error())
}
