package apierr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelscript/pixelscript/span"
)

func TestNewParserError_CarriesSpanLocation(t *testing.T) {
	sp := span.Span{Start: span.Pos{Line: 1, Col: 1}, End: span.Pos{Line: 1, Col: 4}}
	err := NewParserError(sp, "unexpected %s", "token")
	assert.Equal(t, Parser, err.Type)
	assert.Equal(t, "unexpected token", err.Message)
	got, ok := err.Location.Span()
	require.True(t, ok)
	assert.Equal(t, sp, got)
}

func TestNewParserErrorAt_CarriesPosLocation(t *testing.T) {
	p := span.Pos{Line: 2, Col: 5}
	err := NewParserErrorAt(p, "bad token")
	got, ok := err.Location.Pos()
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestNewRuntimeError_IsRuntimeKind(t *testing.T) {
	sp := span.Span{Start: span.Pos{Line: 1, Col: 1}, End: span.Pos{Line: 1, Col: 2}}
	err := NewRuntimeError(sp, "undefined identifier %q", "x")
	assert.Equal(t, Runtime, err.Type)
	assert.Equal(t, `undefined identifier "x"`, err.Message)
}

func TestNewRuntimeErrorNoLocation_HasNoneLocation(t *testing.T) {
	err := NewRuntimeErrorNoLocation("program exceeded evaluation budget")
	_, spanOk := err.Location.Span()
	_, posOk := err.Location.Pos()
	assert.False(t, spanOk)
	assert.False(t, posOk)
	assert.Equal(t, "none", err.Location.String())
}

func TestError_ErrorMethodOnNilReceiverDoesNotPanic(t *testing.T) {
	var err *Error
	assert.Equal(t, "<nil apierr.Error>", err.Error())
}

func TestLocation_MarshalJSON_SpanShape(t *testing.T) {
	sp := span.Span{Start: span.Pos{Line: 1, Col: 1}, End: span.Pos{Line: 1, Col: 2}}
	err := NewParserError(sp, "boom")
	out, jerr := json.Marshal(err)
	require.NoError(t, jerr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	loc, ok := decoded["location"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, loc, "Span")
}

func TestLocation_MarshalJSON_NoneShape(t *testing.T) {
	err := NewRuntimeErrorNoLocation("budget exceeded")
	out, jerr := json.Marshal(err)
	require.NoError(t, jerr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "None", decoded["location"])
}
