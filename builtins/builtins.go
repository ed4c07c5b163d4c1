/*
Package builtins holds the fixed set of built-in functions callable
from pixelscript programs. It follows go-mix's objects.Builtin registry
pattern (a Name paired with a Callback), but trimmed to exactly the
language's built-in math namespace — no print/println/typeof/range,
since the language has no I/O and no type-reflection operations.

Builtins operate on values.Value rather than go-mix's many-typed
GoMixObject, and report errors as plain Go errors (the eval package
wraps them with a call-site span) rather than constructing an error
value themselves.
*/
package builtins

import (
	"fmt"
	"math"

	"github.com/pixelscript/pixelscript/values"
)

// Callback is the signature every builtin function implements.
type Callback func(args []values.Value) (values.Value, error)

// Builtin pairs a name with its implementation, mirroring go-mix's
// objects.Builtin.
type Builtin struct {
	Name     string
	Callback Callback
}

// Table maps a builtin's name to its definition.
type Table map[string]*Builtin

var registry Table

// Init (idempotent) builds and returns the fixed builtin table. Unlike
// go-mix's package-level init() functions that append to a shared
// slice across several files, pixelscript has one small, fixed set, so
// a single lazily-built table avoids import-order-dependent
// registration entirely.
func Init() Table {
	if registry != nil {
		return registry
	}
	registry = Table{}
	for _, b := range []*Builtin{
		{Name: "sin", Callback: unary(math.Sin)},
		{Name: "cos", Callback: unary(math.Cos)},
		{Name: "tan", Callback: unary(math.Tan)},
		{Name: "asin", Callback: unary(math.Asin)},
		{Name: "acos", Callback: unary(math.Acos)},
		{Name: "atan", Callback: unary(math.Atan)},
		{Name: "abs", Callback: unary(math.Abs)},
		{Name: "sqrt", Callback: unary(math.Sqrt)},
		{Name: "log", Callback: unary(naturalLog)},
		{Name: "len", Callback: lengthOf},
	} {
		registry[b.Name] = b
	}
	return registry
}

// unary adapts a float64->float64 math function into a Callback that
// takes exactly one Number argument.
func unary(fn func(float64) float64) Callback {
	return func(args []values.Value) (values.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("wrong number of arguments: want 1, got %d", len(args))
		}
		n, ok := args[0].(values.Number)
		if !ok {
			return nil, fmt.Errorf("argument must be a number, got %s", args[0].Kind())
		}
		return values.Number(fn(float64(n))), nil
	}
}

// naturalLog is math.Log with the language's own edge-case rule: the
// built-in table calls for NaN on any non-positive input, not the
// IEEE-754 convention of log(0) = -Inf.
func naturalLog(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}
	return math.Log(x)
}

// lengthOf implements len: a Sequence's element count as a Number.
// Calling it on a Number is an error, per the language's built-in
// table — there is no implicit "bit width" interpretation of length.
func lengthOf(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("wrong number of arguments: want 1, got %d", len(args))
	}
	seq, ok := args[0].(values.Sequence)
	if !ok {
		return nil, fmt.Errorf("argument to len must be a sequence, got %s", args[0].Kind())
	}
	return values.Number(len(seq)), nil
}
