package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelscript/pixelscript/frame"
	"github.com/pixelscript/pixelscript/function"
	"github.com/pixelscript/pixelscript/parser"
	"github.com/pixelscript/pixelscript/values"
)

func run(t *testing.T, src string) (*frame.Frame, *Evaluator) {
	t.Helper()
	prog, perr := parser.Parse(src)
	require.Nil(t, perr, "parse error: %v", perr)

	fns := function.BuildTable(prog.Functions)
	ev := New(fns)
	top := frame.New()
	err := ev.Run(top, prog.Body)
	require.Nil(t, err, "eval error: %v", err)
	return top, ev
}

func TestEval_Arithmetic(t *testing.T) {
	top, _ := run(t, "x = 1 + 2 * 3;")
	v, ok := top.Get("x")
	require.True(t, ok)
	assert.Equal(t, values.Number(7), v)
}

func TestEval_PowRightAssociative(t *testing.T) {
	top, _ := run(t, "x = 2 ** 3 ** 2;") // 2 ** (3**2) = 2**9 = 512
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(512), v)
}

func TestEval_DivByZero(t *testing.T) {
	top, _ := run(t, "x = 1 / 0;")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(math.Inf(1)), v)
}

func TestEval_ModSignFollowsDividend(t *testing.T) {
	top, _ := run(t, "x = -5 % 3;")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(-2), v)
}

func TestEval_BitwiseAndShift(t *testing.T) {
	top, _ := run(t, "x = (6 & 3) | (1 << 4);")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(2|16), v)
}

func TestEval_ShiftCountIsMasked(t *testing.T) {
	top, _ := run(t, "x = 1 << 33;") // 33 & 0x1F == 1
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(2), v)
}

func TestEval_Comparisons(t *testing.T) {
	top, _ := run(t, "x = 3 < 5;")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(1), v)
}

func TestEval_LogicalShortCircuit(t *testing.T) {
	// undefinedVar would error if evaluated; && must not evaluate it
	// when the left side is already false.
	top, _ := run(t, "x = 0 && undefinedVar;")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(0), v)
}

func TestEval_LogicalResultIsBooleanCoerced(t *testing.T) {
	top, _ := run(t, "x = 5 || 0;")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(1), v) // not 5
}

func TestEval_UnaryNegateAndNot(t *testing.T) {
	top, _ := run(t, "x = -3; y = !0; z = !5;")
	x, _ := top.Get("x")
	y, _ := top.Get("y")
	z, _ := top.Get("z")
	assert.Equal(t, values.Number(-3), x)
	assert.Equal(t, values.Number(1), y)
	assert.Equal(t, values.Number(0), z)
}

func TestEval_SequenceIndexAndLen(t *testing.T) {
	top, _ := run(t, "s = [10, 20, 30]; x = s[1]; n = len(s);")
	x, _ := top.Get("x")
	n, _ := top.Get("n")
	assert.Equal(t, values.Number(20), x)
	assert.Equal(t, values.Number(3), n)
}

func TestEval_SequenceIndexOutOfBounds(t *testing.T) {
	prog, perr := parser.Parse("s = [1, 2, 3]; x = s[3];")
	require.Nil(t, perr)
	ev := New(function.BuildTable(prog.Functions))
	err := ev.Run(frame.New(), prog.Body)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "index out of bounds")
}

func TestEval_NumberBitExtraction(t *testing.T) {
	top, _ := run(t, "x = 5[0]; y = 5[1]; z = 5[2]; w = 5[31]; v = 5[32];")
	x, _ := top.Get("x")
	y, _ := top.Get("y")
	z, _ := top.Get("z")
	w, _ := top.Get("w")
	v, _ := top.Get("v")
	assert.Equal(t, values.Number(1), x) // 5 = 0b101
	assert.Equal(t, values.Number(0), y)
	assert.Equal(t, values.Number(1), z)
	assert.Equal(t, values.Number(0), w)
	assert.Equal(t, values.Number(0), v) // out of [0,31] -> 0
}

func TestEval_IfElse(t *testing.T) {
	top, _ := run(t, "x = 0; if (1) { x = 1; } else { x = 2; }")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(1), v)
}

func TestEval_RepeatBindsCounter(t *testing.T) {
	top, _ := run(t, "sum = 0; repeat (i until 5) { sum = sum + i; }")
	v, _ := top.Get("sum")
	assert.Equal(t, values.Number(0+1+2+3+4), v)
}

func TestEval_RepeatNonPositiveBoundRunsZeroTimes(t *testing.T) {
	top, _ := run(t, "x = 1; repeat (i until 0) { x = 2; }")
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(1), v)
}

func TestEval_UserFunctionCallAndReturn(t *testing.T) {
	top, _ := run(t, `
	function add(a, b) {
		return a + b;
	}
	x = add(2, 3);
	`)
	v, _ := top.Get("x")
	assert.Equal(t, values.Number(5), v)
}

func TestEval_FunctionArityMismatch(t *testing.T) {
	prog, perr := parser.Parse(`
	function add(a, b) { return a + b; }
	x = add(1);
	`)
	require.Nil(t, perr)
	ev := New(function.BuildTable(prog.Functions))
	err := ev.Run(frame.New(), prog.Body)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "wrong number of arguments")
}

func TestEval_FunctionFallsOffEndProducesUnit(t *testing.T) {
	prog, perr := parser.Parse(`
	function noop() {
		x = 1;
	}
	y = noop();
	`)
	require.Nil(t, perr)
	ev := New(function.BuildTable(prog.Functions))
	err := ev.Run(frame.New(), prog.Body)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "unit value used in an expression")
}

func TestEval_BuiltinMathFunctions(t *testing.T) {
	top, _ := run(t, "x = sqrt(16); y = abs(-3);")
	x, _ := top.Get("x")
	y, _ := top.Get("y")
	assert.Equal(t, values.Number(4), x)
	assert.Equal(t, values.Number(3), y)
}

func TestEval_BudgetExceeded(t *testing.T) {
	prog, perr := parser.Parse("repeat (i until 100) { x = i; }")
	require.Nil(t, perr)
	ev := NewWithBudget(function.BuildTable(prog.Functions), 10)
	err := ev.Run(frame.New(), prog.Body)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "exceeded evaluation budget")
}
