/*
Package function represents user-defined functions as callable values
built once from a parsed Program. It plays the role go-mix's function
package does, minus the Scp field: a pixelscript Function never
captures its defining frame, since the language has no closures — every
call starts from a fresh frame.Frame seeded only with bound parameters.
*/
package function

import "github.com/pixelscript/pixelscript/parser"

// Function is a user-defined function: its name, parameter names, and
// body. It is immutable once built and shared by every call.
type Function struct {
	Name   string
	Params []string
	Body   []parser.Statement
}

// Table maps function names to their definitions.
type Table map[string]*Function

// BuildTable converts a Program's function definitions into a Table
// keyed by name. A later definition with a duplicate name silently
// overrides an earlier one, matching how the evaluator treats
// top-level assignment as last-write-wins.
func BuildTable(defs []*parser.FunctionDef) Table {
	t := make(Table, len(defs))
	for _, d := range defs {
		t[d.Name] = &Function{Name: d.Name, Params: d.Params, Body: d.Body}
	}
	return t
}
