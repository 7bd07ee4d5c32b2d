package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticekit/lattice/pkg/result"
)

func TestSuccess(t *testing.T) {
	r := result.Success(42)

	assert.True(t, r.Ok())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Nil(t, r.Input())
	assert.Empty(t, r.Message())
}

func TestFailure(t *testing.T) {
	input := map[string]any{"x": "bad"}
	r := result.Failure[int](input, "x is bad")

	assert.False(t, r.Ok())
	_, ok := r.Value()
	assert.False(t, ok)
	assert.Equal(t, input, r.Input())
	assert.Equal(t, "x is bad", r.Message())
}
