package where

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	tests := map[string]Operator{
		"eq":          OpEq,
		"=":           OpEq,
		"NE":          OpNe,
		"<>":          OpNe,
		"!=":          OpNe,
		" gte ":       OpGte,
		"like":        OpLike,
		"not like":    OpNotLike,
		"not_in":      OpNotIn,
		"IN":          OpIn,
		"is_null":     OpIsNull,
		"IS NOT NULL": OpIsNotNull,
	}

	for in, want := range tests {
		got, err := ParseOperator(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOperator("between")
	assert.Error(t, err)
}

func TestOperator_Registry(t *testing.T) {
	for op, info := range operators {
		assert.True(t, op.Valid())
		assert.Equal(t, info.name, op.String())
		assert.Equal(t, info.token, op.Token())

		parsed, err := ParseOperator(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}

	assert.False(t, Operator(0).Valid())
	assert.Equal(t, "Operator(0)", Operator(0).String())
}

func TestLogic_String(t *testing.T) {
	assert.Equal(t, "AND", LogicAnd.String())
	assert.Equal(t, "OR", LogicOr.String())
	assert.Equal(t, "Logic(9)", Logic(9).String())
}
