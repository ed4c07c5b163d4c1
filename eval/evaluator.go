/*
Package eval is a tree-walking interpreter for pixelscript. It plays
the role go-mix's eval package does (an Evaluator struct driving a
switch-per-node-type Eval), narrowed to the language's own semantics: a
single flat frame.Frame per call instead of a scope.Scope chain, three
value kinds instead of go-mix's dozen, and an instruction budget that
bounds the cost of a single evaluation the way a shader language must.
*/
package eval

import (
	"github.com/pixelscript/pixelscript/apierr"
	"github.com/pixelscript/pixelscript/builtins"
	"github.com/pixelscript/pixelscript/frame"
	"github.com/pixelscript/pixelscript/function"
	"github.com/pixelscript/pixelscript/parser"
	"github.com/pixelscript/pixelscript/span"
	"github.com/pixelscript/pixelscript/values"
)

// DefaultBudget bounds the number of AST nodes a single Run may
// evaluate before aborting with a budget-exceeded error. It is sized
// generously for a single pixel's worth of shader logic; the renderer
// may override it via NewWithBudget.
const DefaultBudget = 200000

// Evaluator walks a Program's AST against a stack of frames, a fixed
// user function table, and the built-in table.
type Evaluator struct {
	functions function.Table
	builtins  builtins.Table
	frames    []*frame.Frame

	budget    int
	budgetMax int
}

// New creates an Evaluator for fns, using the built-in table the
// builtins package maintains, with the default instruction budget.
func New(fns function.Table) *Evaluator {
	return NewWithBudget(fns, DefaultBudget)
}

// NewWithBudget is New with an explicit instruction budget, used by
// callers (tests, a host with tighter per-pixel latency needs) that
// want a non-default bound.
func NewWithBudget(fns function.Table, budgetMax int) *Evaluator {
	return &Evaluator{
		functions: fns,
		builtins:  builtins.Init(),
		budgetMax: budgetMax,
	}
}

// Run evaluates body against a fresh call stack seeded with top as the
// sole (top-level) frame, resetting the instruction budget. A
// top-level return terminates evaluation with its value discarded, per
// the language's top-level-return rule; Run reports only whether an
// error occurred.
func (e *Evaluator) Run(top *frame.Frame, body []parser.Statement) *apierr.Error {
	e.budget = 0
	e.frames = []*frame.Frame{top}
	_, err := e.execBlock(body)
	return err
}

func (e *Evaluator) currentFrame() *frame.Frame {
	return e.frames[len(e.frames)-1]
}

// tick advances the instruction budget, returning a budget-exceeded
// error once exhausted. It is called once per evaluated statement,
// once per evaluated expression node, and once per repeat iteration,
// so deeply nested expressions cost proportionally to their size.
func (e *Evaluator) tick() *apierr.Error {
	e.budget++
	if e.budget > e.budgetMax {
		return apierr.NewRuntimeErrorNoLocation("program exceeded evaluation budget")
	}
	return nil
}

func runtimeErr(sp span.Span, format string, a ...interface{}) *apierr.Error {
	return apierr.NewRuntimeError(sp, format, a...)
}

// coerceBool implements the language's truthiness rule for conditions,
// turning a Unit operand into a RuntimeError rather than silently
// treating it as false.
func coerceBool(v values.Value, sp span.Span) (bool, *apierr.Error) {
	truthy, ok := values.Truthy(v)
	if !ok {
		return false, runtimeErr(sp, "unit value used in a boolean context")
	}
	return truthy, nil
}
