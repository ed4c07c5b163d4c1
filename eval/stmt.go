package eval

import (
	"github.com/pixelscript/pixelscript/apierr"
	"github.com/pixelscript/pixelscript/parser"
	"github.com/pixelscript/pixelscript/values"
)

// ctrlKind distinguishes ordinary fall-through from an unwinding
// return, the only non-local control flow the language has (no
// break/continue — a repeat body runs its full bound unless a return
// unwinds it).
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlReturn
)

// ctrl carries a statement's control-flow effect up through
// execBlock/execStmt: either "keep going" or "a return happened,
// unwind with this value".
type ctrl struct {
	kind  ctrlKind
	value values.Value
}

var ctrlFallthrough = ctrl{kind: ctrlNone}

// execBlock runs stmts in the current frame, stopping early on the
// first return. Blocks never introduce a new frame: if/repeat bodies
// share the enclosing call's single frame, per the language's no
// lexical-chain scoping rule.
func (e *Evaluator) execBlock(stmts []parser.Statement) (ctrl, *apierr.Error) {
	for _, s := range stmts {
		c, err := e.execStmt(s)
		if err != nil {
			return ctrlFallthrough, err
		}
		if c.kind == ctrlReturn {
			return c, nil
		}
	}
	return ctrlFallthrough, nil
}

func (e *Evaluator) execStmt(s parser.Statement) (ctrl, *apierr.Error) {
	if err := e.tick(); err != nil {
		return ctrlFallthrough, err
	}
	switch n := s.(type) {
	case *parser.Assignment:
		return e.execAssignment(n)
	case *parser.If:
		return e.execIf(n)
	case *parser.Repeat:
		return e.execRepeat(n)
	case *parser.Return:
		return e.execReturn(n)
	default:
		return ctrlFallthrough, runtimeErr(s.Span(), "unsupported statement")
	}
}

func (e *Evaluator) execAssignment(n *parser.Assignment) (ctrl, *apierr.Error) {
	v, err := e.evalExpr(n.Value)
	if err != nil {
		return ctrlFallthrough, err
	}
	v, err = requireValue(v, n.Value.Span())
	if err != nil {
		return ctrlFallthrough, err
	}
	e.currentFrame().Set(n.Name, v)
	return ctrlFallthrough, nil
}

func (e *Evaluator) execIf(n *parser.If) (ctrl, *apierr.Error) {
	cond, err := e.evalExpr(n.Cond)
	if err != nil {
		return ctrlFallthrough, err
	}
	truthy, berr := coerceBool(cond, n.Cond.Span())
	if berr != nil {
		return ctrlFallthrough, berr
	}
	if truthy {
		return e.execBlock(n.Then)
	}
	return e.execBlock(n.Else)
}

func (e *Evaluator) execRepeat(n *parser.Repeat) (ctrl, *apierr.Error) {
	bound := int(n.Bound)
	if bound < 0 {
		bound = 0
	}
	for k := 0; k < bound; k++ {
		if err := e.tick(); err != nil {
			return ctrlFallthrough, err
		}
		e.currentFrame().Set(n.Counter, values.Number(k))
		c, err := e.execBlock(n.Body)
		if err != nil {
			return ctrlFallthrough, err
		}
		if c.kind == ctrlReturn {
			return c, nil
		}
	}
	return ctrlFallthrough, nil
}

func (e *Evaluator) execReturn(n *parser.Return) (ctrl, *apierr.Error) {
	v, err := e.evalExpr(n.Value)
	if err != nil {
		return ctrlFallthrough, err
	}
	return ctrl{kind: ctrlReturn, value: v}, nil
}
