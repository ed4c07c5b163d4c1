package builtins

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelscript/pixelscript/values"
)

func call(t *testing.T, name string, args ...values.Value) values.Value {
	t.Helper()
	b, ok := Init()[name]
	require.True(t, ok, "builtin %q not registered", name)
	v, err := b.Callback(args)
	require.NoError(t, err)
	return v
}

func TestInit_RegistersExactlyTheBuiltInMathTable(t *testing.T) {
	tbl := Init()
	want := []string{"sin", "cos", "tan", "asin", "acos", "atan", "abs", "sqrt", "log", "len"}
	assert.Len(t, tbl, len(want))
	for _, name := range want {
		assert.Contains(t, tbl, name)
	}
}

func TestInit_IsIdempotent(t *testing.T) {
	assert.Same(t, Init()["sin"], Init()["sin"])
}

func TestTrig_Sin(t *testing.T) {
	v := call(t, "sin", values.Number(0))
	assert.InDelta(t, 0, float64(v.(values.Number)), 1e-9)
}

func TestAbs_NegatesNegativeInput(t *testing.T) {
	v := call(t, "abs", values.Number(-3.5))
	assert.Equal(t, values.Number(3.5), v)
}

func TestSqrt_NegativeInputIsNaN(t *testing.T) {
	v := call(t, "sqrt", values.Number(-1))
	assert.True(t, math.IsNaN(float64(v.(values.Number))))
}

func TestLog_ZeroAndBelowIsNaN(t *testing.T) {
	for _, x := range []float64{0, -1, -100} {
		v := call(t, "log", values.Number(x))
		assert.True(t, math.IsNaN(float64(v.(values.Number))), "log(%v) should be NaN", x)
	}
}

func TestLog_PositiveInputMatchesMathLog(t *testing.T) {
	v := call(t, "log", values.Number(math.E))
	assert.InDelta(t, 1, float64(v.(values.Number)), 1e-9)
}

func TestLen_SequenceLength(t *testing.T) {
	v := call(t, "len", values.Sequence{values.Number(1), values.Number(2), values.Number(3)})
	assert.Equal(t, values.Number(3), v)
}

func TestLen_EmptySequenceIsZero(t *testing.T) {
	v := call(t, "len", values.Sequence{})
	assert.Equal(t, values.Number(0), v)
}

func TestLen_OnNumberIsAnError(t *testing.T) {
	_, ok := Init()["len"]
	require.True(t, ok)
	_, err := Init()["len"].Callback([]values.Value{values.Number(5)})
	assert.Error(t, err)
}

func TestUnary_WrongArgCountIsAnError(t *testing.T) {
	_, err := Init()["sin"].Callback([]values.Value{values.Number(1), values.Number(2)})
	assert.Error(t, err)
}

func TestUnary_NonNumberArgIsAnError(t *testing.T) {
	_, err := Init()["sin"].Callback([]values.Value{values.Sequence{}})
	assert.Error(t, err)
}
