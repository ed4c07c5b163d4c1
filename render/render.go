/*
Package render implements the renderer driver described by the core
API: a handle holding the most recently parsed program, exposing
Parse and Execute. It plays the role go-mix's main/repl packages do of
driving an Evaluator end to end, but instead of a line-oriented REPL it
drives one evaluation per pixel of an RGBA buffer.
*/
package render

import (
	"fmt"

	"github.com/pixelscript/pixelscript/apierr"
	"github.com/pixelscript/pixelscript/eval"
	"github.com/pixelscript/pixelscript/frame"
	"github.com/pixelscript/pixelscript/function"
	"github.com/pixelscript/pixelscript/parser"
	"github.com/pixelscript/pixelscript/values"
)

// Renderer owns a parsed program handle. The zero value is not usable;
// construct one with New.
type Renderer struct {
	budget int

	prog *parser.Program
	fns  function.Table
}

// New creates a Renderer with no program loaded yet and the default
// instruction budget. Call Parse before Execute.
func New() *Renderer {
	return &Renderer{budget: eval.DefaultBudget}
}

// SetBudget overrides the instruction budget; the host may tune this
// for its own real-time requirements (§5). The budget applies to each
// pixel's evaluation separately and is reset for every pixel; an
// Execute call as a whole has no total budget.
func (r *Renderer) SetBudget(n int) {
	r.budget = n
}

// Parse replaces the current program with source. On failure the
// previously parsed program, if any, is retained.
func (r *Renderer) Parse(source string) *apierr.Error {
	prog, err := parser.Parse(source)
	if err != nil {
		return err
	}
	r.prog = prog
	r.fns = function.BuildTable(prog.Functions)
	return nil
}

// Ready reports whether a program has been successfully parsed.
func (r *Renderer) Ready() bool {
	return r.prog != nil
}

// Execute evaluates the current program once per pixel of a
// width*height RGBA buffer, in row-major order, per §4.3. buffer must
// be at least 4*width*height bytes. A runtime error aborts immediately;
// the buffer's contents from that call are then unspecified.
func (r *Renderer) Execute(buffer []byte, width, height int, time, random float64) *apierr.Error {
	if r.prog == nil {
		return apierr.NewRuntimeErrorNoLocation("no program has been parsed")
	}
	need := 4 * width * height
	if len(buffer) < need {
		return apierr.NewRuntimeErrorNoLocation(
			fmt.Sprintf("buffer too small: need %d bytes, got %d", need, len(buffer)))
	}

	ev := eval.NewWithBudget(r.fns, r.budget)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			top := frame.New()
			top.Set("x", values.Number(x))
			top.Set("y", values.Number(y))
			top.Set("time", values.Number(time))
			top.Set("random", values.Number(random))
			top.Set("r", values.Number(0))
			top.Set("g", values.Number(0))
			top.Set("b", values.Number(0))

			if err := ev.Run(top, r.prog.Body); err != nil {
				return err
			}

			off := 4 * (y*width + x)
			buffer[off+0] = toU8(top, "r")
			buffer[off+1] = toU8(top, "g")
			buffer[off+2] = toU8(top, "b")
			buffer[off+3] = 255
		}
	}
	return nil
}

// toU8 reads name out of f and floors/clamps it to [0, 255], mapping
// NaN (and a missing or non-Number binding) to 0.
func toU8(f *frame.Frame, name string) byte {
	v, ok := f.Get(name)
	if !ok {
		return 0
	}
	n, ok := v.(values.Number)
	if !ok {
		return 0
	}
	x := float64(n)
	if x != x { // NaN
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return byte(x)
}
