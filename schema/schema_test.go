package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_NilSchema(t *testing.T) {
	s, err := Compile(nil)

	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, s.Validate(map[string]any{"anything": "goes"}))
	assert.Nil(t, s.Raw())
}

func TestCompile_InvalidSchema(t *testing.T) {
	s, err := Compile(map[string]any{
		"type": 12345,
	})

	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestMustCompile_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{"type": 12345})
	})
}

func TestSchema_Validate(t *testing.T) {
	type input struct {
		data any
	}

	type expected struct {
		valid bool
	}

	s := MustCompile(Object(map[string]*Property{
		"query": String("Search query"),
		"limit": Integer("Max results").Min(1).Max(50),
	}, "query"))

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "valid with required only",
			input:    input{data: map[string]any{"query": "go"}},
			expected: expected{valid: true},
		},
		{
			name:     "valid with optional",
			input:    input{data: map[string]any{"query": "go", "limit": 10.0}},
			expected: expected{valid: true},
		},
		{
			name:     "missing required",
			input:    input{data: map[string]any{"limit": 10.0}},
			expected: expected{valid: false},
		},
		{
			name:     "wrong type",
			input:    input{data: map[string]any{"query": 42.0}},
			expected: expected{valid: false},
		},
		{
			name:     "out of range",
			input:    input{data: map[string]any{"query": "go", "limit": 100.0}},
			expected: expected{valid: false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Validate(tc.input.data)

			if tc.expected.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
			}
		})
	}
}

func TestObject(t *testing.T) {
	raw := Object(map[string]*Property{
		"name": String("User name"),
		"age":  Integer("User age").Min(0),
	}, "name")

	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, []string{"name"}, raw["required"])

	props := raw["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, "User name", name["description"])

	age := props["age"].(map[string]any)
	assert.Equal(t, "integer", age["type"])
	assert.Equal(t, 0.0, age["minimum"])
}

func TestPropertyModifiers(t *testing.T) {
	prop := String("Status").
		Enum("active", "inactive").
		Pattern("^[a-z]+$").
		Default("active")

	built := prop.build()

	assert.Equal(t, []any{"active", "inactive"}, built["enum"])
	assert.Equal(t, "^[a-z]+$", built["pattern"])
	assert.Equal(t, "active", built["default"])
}

func TestArray(t *testing.T) {
	s := MustCompile(Object(map[string]*Property{
		"tags": Array("List of tags", map[string]any{"type": "string"}),
	}))

	assert.NoError(t, s.Validate(map[string]any{"tags": []any{"a", "b"}}))
	assert.Error(t, s.Validate(map[string]any{"tags": []any{1.0}}))
}

func TestSchema_ValidateScalar(t *testing.T) {
	s := MustCompile(map[string]any{"type": "string"})

	assert.NoError(t, s.Validate("hello"))
	assert.Error(t, s.Validate(42.0))
}
