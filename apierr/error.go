/*
Package apierr defines the stable, host-visible error shape described in
the core API: a Parser or Runtime error carrying a message and a
location that is either a Span, a point Pos, or no location at all.

This mirrors how go-mix's evaluator builds errors (Evaluator.CreateError
prefixes a formatted message with "[line:col] "), generalized so the
host can render an editor underline instead of a plain-text prefix.
*/
package apierr

import (
	"encoding/json"
	"fmt"

	"github.com/pixelscript/pixelscript/span"
)

// Kind discriminates where an error originated.
type Kind string

const (
	Parser  Kind = "Parser"
	Runtime Kind = "Runtime"
)

// locKind tags which variant a Location holds.
type locKind string

const (
	locSpan locKind = "Span"
	locPos  locKind = "Pos"
	locNone locKind = "None"
)

// Location is a sum type over {Span, Pos, None}. Exactly one of the
// three is meaningful, selected by the unexported kind field; use
// AtSpan, AtPos, or NoLocation to construct one.
type Location struct {
	kind locKind
	span span.Span
	pos  span.Pos
}

// AtSpan builds a Location covering a source range.
func AtSpan(s span.Span) Location { return Location{kind: locSpan, span: s} }

// AtPos builds a Location pointing at a single token.
func AtPos(p span.Pos) Location { return Location{kind: locPos, pos: p} }

// NoLocation builds a Location carrying no position information, used
// for errors with no single offending node (e.g. budget exhaustion
// reported at the top-level boundary).
func NoLocation() Location { return Location{kind: locNone} }

// Span returns the span and true if this Location is span-shaped.
func (l Location) Span() (span.Span, bool) { return l.span, l.kind == locSpan }

// Pos returns the point and true if this Location is point-shaped.
func (l Location) Pos() (span.Pos, bool) { return l.pos, l.kind == locPos }

func (l Location) String() string {
	switch l.kind {
	case locSpan:
		return l.span.String()
	case locPos:
		return l.pos.String()
	default:
		return "none"
	}
}

// MarshalJSON renders a Location in the wire shape documented for the
// core API: {"Span": ...} | {"Pos": ...} | "None".
func (l Location) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case locSpan:
		return json.Marshal(struct {
			Span span.Span `json:"Span"`
		}{l.span})
	case locPos:
		return json.Marshal(struct {
			Pos span.Pos `json:"Pos"`
		}{l.pos})
	default:
		return json.Marshal("None")
	}
}

// Error is the stable, host-visible error value. A Parser error is
// always produced with a Location; a Runtime error carries the location
// of the AST node that failed, or NoLocation when no single node is
// responsible (budget exhaustion, driver-level errors).
type Error struct {
	Type     Kind     `json:"error_type"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// Error implements the error interface so apierr.Error can be returned
// and compared like any other Go error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil apierr.Error>"
	}
	return fmt.Sprintf("[%s] %s: %s", e.Location, e.Type, e.Message)
}

// NewParserError builds a Parser-kind error at a span.
func NewParserError(s span.Span, format string, a ...interface{}) *Error {
	return &Error{Type: Parser, Message: fmt.Sprintf(format, a...), Location: AtSpan(s)}
}

// NewParserErrorAt builds a Parser-kind error at a single point.
func NewParserErrorAt(p span.Pos, format string, a ...interface{}) *Error {
	return &Error{Type: Parser, Message: fmt.Sprintf(format, a...), Location: AtPos(p)}
}

// NewRuntimeError builds a Runtime-kind error located at a span.
func NewRuntimeError(s span.Span, format string, a ...interface{}) *Error {
	return &Error{Type: Runtime, Message: fmt.Sprintf(format, a...), Location: AtSpan(s)}
}

// NewRuntimeErrorNoLocation builds a Runtime-kind error with no
// meaningful location (budget exhaustion at the top-level boundary).
func NewRuntimeErrorNoLocation(format string, a ...interface{}) *Error {
	return &Error{Type: Runtime, Message: fmt.Sprintf(format, a...), Location: NoLocation()}
}
