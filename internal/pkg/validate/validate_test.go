package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name" validate:"required"`
}

type envelope struct {
	Items []item `json:"items" validate:"required,min=1,dive"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(envelope{Items: []item{{Name: "a"}}}))
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(envelope{Items: []item{{Name: "a"}, {}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envelope.items[1].name")
	assert.Contains(t, err.Error(), "'required'")
}

func TestStruct_EmptyList(t *testing.T) {
	err := Struct(envelope{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items")
}
