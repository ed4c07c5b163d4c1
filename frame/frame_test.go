package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelscript/pixelscript/values"
)

func TestFrame_GetUnboundNameFails(t *testing.T) {
	f := New()
	_, ok := f.Get("x")
	assert.False(t, ok)
}

func TestFrame_SetThenGet(t *testing.T) {
	f := New()
	f.Set("x", values.Number(42))
	v, ok := f.Get("x")
	assert.True(t, ok)
	assert.Equal(t, values.Number(42), v)
}

func TestFrame_SetOverwritesExistingBinding(t *testing.T) {
	f := New()
	f.Set("x", values.Number(1))
	f.Set("x", values.Number(2))
	v, _ := f.Get("x")
	assert.Equal(t, values.Number(2), v)
}

func TestFrame_BindingsAreIndependentAcrossFrames(t *testing.T) {
	a, b := New(), New()
	a.Set("x", values.Number(1))
	_, ok := b.Get("x")
	assert.False(t, ok, "frames share no parent chain and must not see each other's bindings")
}
