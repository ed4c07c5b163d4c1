package eval

import (
	"math"

	"github.com/pixelscript/pixelscript/apierr"
	"github.com/pixelscript/pixelscript/frame"
	"github.com/pixelscript/pixelscript/function"
	"github.com/pixelscript/pixelscript/parser"
	"github.com/pixelscript/pixelscript/span"
	"github.com/pixelscript/pixelscript/values"
)

// requireValue rejects Unit wherever an expression's result is about to
// be consumed by another expression or statement — the only place a
// Unit may legitimately appear is as the direct result handed back from
// evaluating a Call whose body fell off the end.
func requireValue(v values.Value, sp span.Span) (values.Value, *apierr.Error) {
	if _, isUnit := v.(values.Unit); isUnit {
		return nil, runtimeErr(sp, "unit value used in an expression")
	}
	return v, nil
}

func (e *Evaluator) evalExpr(x parser.Expr) (values.Value, *apierr.Error) {
	if err := e.tick(); err != nil {
		return nil, err
	}
	switch n := x.(type) {
	case *parser.NumberLit:
		return values.Number(n.Value), nil
	case *parser.Ident:
		return e.evalIdent(n)
	case *parser.SeqLit:
		return e.evalSeqLit(n)
	case *parser.Call:
		return e.evalCall(n)
	case *parser.Index:
		return e.evalIndex(n)
	case *parser.Unary:
		return e.evalUnary(n)
	case *parser.Binary:
		return e.evalBinary(n)
	default:
		return nil, runtimeErr(x.Span(), "unsupported expression")
	}
}

func (e *Evaluator) evalIdent(n *parser.Ident) (values.Value, *apierr.Error) {
	v, ok := e.currentFrame().Get(n.Name)
	if !ok {
		return nil, runtimeErr(n.Sp, "undefined identifier %q", n.Name)
	}
	return v, nil
}

func (e *Evaluator) evalSeqLit(n *parser.SeqLit) (values.Value, *apierr.Error) {
	elems := make(values.Sequence, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.evalExpr(el)
		if err != nil {
			return nil, err
		}
		v, err = requireValue(v, el.Span())
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return elems, nil
}

func (e *Evaluator) evalCall(n *parser.Call) (values.Value, *apierr.Error) {
	args := make([]values.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		v, err = requireValue(v, a.Span())
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn, ok := e.functions[n.Name]; ok {
		return e.callUserFunction(fn, args, n.Sp)
	}
	if b, ok := e.builtins[n.Name]; ok {
		v, goErr := b.Callback(args)
		if goErr != nil {
			return nil, runtimeErr(n.Sp, "%s", goErr.Error())
		}
		return v, nil
	}
	return nil, runtimeErr(n.Sp, "undefined function %q", n.Name)
}

func (e *Evaluator) callUserFunction(fn *function.Function, args []values.Value, callSp span.Span) (values.Value, *apierr.Error) {
	if len(args) != len(fn.Params) {
		return nil, runtimeErr(callSp, "wrong number of arguments to %q: want %d, got %d", fn.Name, len(fn.Params), len(args))
	}

	callFrame := frame.New()
	for i, p := range fn.Params {
		callFrame.Set(p, args[i])
	}

	e.frames = append(e.frames, callFrame)
	c, err := e.execBlock(fn.Body)
	e.frames = e.frames[:len(e.frames)-1]
	if err != nil {
		return nil, err
	}
	if c.kind == ctrlReturn {
		return c.value, nil
	}
	return values.Unit{}, nil
}

func (e *Evaluator) evalIndex(n *parser.Index) (values.Value, *apierr.Error) {
	base, err := e.evalExpr(n.Base)
	if err != nil {
		return nil, err
	}
	base, err = requireValue(base, n.Base.Span())
	if err != nil {
		return nil, err
	}
	idxVal, err := e.evalExpr(n.Idx)
	if err != nil {
		return nil, err
	}
	idxVal, err = requireValue(idxVal, n.Idx.Span())
	if err != nil {
		return nil, err
	}
	idxNum, ok := idxVal.(values.Number)
	if !ok {
		return nil, runtimeErr(n.Idx.Span(), "index must be a number, got %s", idxVal.Kind())
	}
	k := int(idxNum)

	switch b := base.(type) {
	case values.Sequence:
		if k < 0 || k >= len(b) {
			return nil, runtimeErr(n.Idx.Span(), "index out of bounds")
		}
		return b[k], nil
	case values.Number:
		if k < 0 || k > 31 {
			return values.Number(0), nil
		}
		u := toU32(float64(b))
		return values.Number((u >> uint(k)) & 1), nil
	default:
		return nil, runtimeErr(n.Base.Span(), "cannot index %s", base.Kind())
	}
}

func (e *Evaluator) evalUnary(n *parser.Unary) (values.Value, *apierr.Error) {
	v, err := e.evalExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	v, err = requireValue(v, n.Operand.Span())
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case parser.OpNeg:
		num, ok := v.(values.Number)
		if !ok {
			return nil, runtimeErr(n.Operand.Span(), "operand to %q must be a number, got %s", n.Op, v.Kind())
		}
		return values.Number(-float64(num)), nil
	case parser.OpNot:
		// Truthiness, not just Number equality: any Sequence is truthy,
		// so !seq is 0 the same way !nonZeroNumber is.
		truthy, berr := coerceBool(v, n.Operand.Span())
		if berr != nil {
			return nil, berr
		}
		return values.Bool(!truthy), nil
	default:
		return nil, runtimeErr(n.Sp, "unsupported unary operator %q", n.Op)
	}
}

func (e *Evaluator) evalBinary(n *parser.Binary) (values.Value, *apierr.Error) {
	switch n.Op {
	case parser.OpAnd:
		return e.evalLogical(n, false)
	case parser.OpOr:
		return e.evalLogical(n, true)
	}

	left, err := e.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	left, err = requireValue(left, n.Left.Span())
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	right, err = requireValue(right, n.Right.Span())
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case parser.OpAdd, parser.OpSub, parser.OpMul, parser.OpDiv, parser.OpMod, parser.OpPow:
		return evalArith(n, left, right)
	case parser.OpBitOr, parser.OpBitXor, parser.OpBitAnd, parser.OpShl, parser.OpShr:
		return evalBitwise(n, left, right)
	case parser.OpEq, parser.OpNe, parser.OpLt, parser.OpGt, parser.OpLe, parser.OpGe:
		return evalCompare(n, left, right)
	default:
		return nil, runtimeErr(n.Sp, "unsupported binary operator %q", n.Op)
	}
}

// evalLogical implements && (shortCircuitOnTrue=false) and ||
// (shortCircuitOnTrue=true): evaluate left, and only evaluate right if
// left didn't already decide the outcome. The result is always the
// boolean-coerced Number(0|1) of whichever operand decided it, not the
// operand's own value.
func (e *Evaluator) evalLogical(n *parser.Binary, shortCircuitOnTrue bool) (values.Value, *apierr.Error) {
	left, err := e.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	leftTruthy, berr := coerceBool(left, n.Left.Span())
	if berr != nil {
		return nil, berr
	}
	if leftTruthy == shortCircuitOnTrue {
		return values.Bool(leftTruthy), nil
	}

	right, err := e.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	rightTruthy, berr := coerceBool(right, n.Right.Span())
	if berr != nil {
		return nil, berr
	}
	return values.Bool(rightTruthy), nil
}

func evalArith(n *parser.Binary, left, right values.Value) (values.Value, *apierr.Error) {
	l, lok := left.(values.Number)
	r, rok := right.(values.Number)
	if !lok || !rok {
		return nil, runtimeErr(n.Sp, "arithmetic operands must be numbers, got %s and %s", left.Kind(), right.Kind())
	}
	a, b := float64(l), float64(r)
	switch n.Op {
	case parser.OpAdd:
		return values.Number(a + b), nil
	case parser.OpSub:
		return values.Number(a - b), nil
	case parser.OpMul:
		return values.Number(a * b), nil
	case parser.OpDiv:
		return values.Number(a / b), nil
	case parser.OpMod:
		return values.Number(math.Mod(a, b)), nil
	case parser.OpPow:
		return values.Number(math.Pow(a, b)), nil
	default:
		return nil, runtimeErr(n.Sp, "unsupported arithmetic operator %q", n.Op)
	}
}

func evalCompare(n *parser.Binary, left, right values.Value) (values.Value, *apierr.Error) {
	l, lok := left.(values.Number)
	r, rok := right.(values.Number)
	if !lok || !rok {
		return nil, runtimeErr(n.Sp, "comparison operands must be numbers, got %s and %s", left.Kind(), right.Kind())
	}
	a, b := float64(l), float64(r)
	switch n.Op {
	case parser.OpEq:
		return values.Bool(a == b), nil
	case parser.OpNe:
		return values.Bool(a != b), nil
	case parser.OpLt:
		return values.Bool(a < b), nil
	case parser.OpGt:
		return values.Bool(a > b), nil
	case parser.OpLe:
		return values.Bool(a <= b), nil
	case parser.OpGe:
		return values.Bool(a >= b), nil
	default:
		return nil, runtimeErr(n.Sp, "unsupported comparison operator %q", n.Op)
	}
}
