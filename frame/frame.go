/*
Package frame holds the variable bindings an evaluation runs against.

Unlike go-mix's scope.Scope, a Frame has no Parent: the language has a
single flat namespace per evaluation, not a lexical scope chain. A
function call does not capture the caller's frame (no closures) — it
gets a fresh Frame seeded only with its bound parameters, and returns
control to the caller's own Frame on return. This file plays the role
scope.go does for go-mix, trimmed to exactly what single-frame
semantics need: lookup, bind, and a constructor.
*/
package frame

import "github.com/pixelscript/pixelscript/values"

// Frame is a flat table of variable bindings.
type Frame struct {
	vars map[string]values.Value
}

// New creates an empty Frame.
func New() *Frame {
	return &Frame{vars: make(map[string]values.Value)}
}

// Get looks up a variable by name. ok is false if it is unbound.
func (f *Frame) Get(name string) (values.Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}

// Set binds name to v in this frame, creating or overwriting the
// binding. There is no notion of declaration separate from assignment:
// the first assignment to a name creates it.
func (f *Frame) Set(name string, v values.Value) {
	f.vars[name] = v
}
