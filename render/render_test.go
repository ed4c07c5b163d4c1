package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_SolidColor(t *testing.T) {
	r := New()
	require.Nil(t, r.Parse("r=255; g=0; b=0;"))

	buf := make([]byte, 4*2*2)
	require.Nil(t, r.Execute(buf, 2, 2, 0, 0.5))

	for i := 0; i < 4; i++ {
		off := i * 4
		assert.Equal(t, []byte{0xFF, 0x00, 0x00, 0xFF}, buf[off:off+4])
	}
}

func TestRenderer_GradientFromCoordinates(t *testing.T) {
	r := New()
	require.Nil(t, r.Parse("r=x*100; g=y*100; b=0;"))

	buf := make([]byte, 4*2*2)
	require.Nil(t, r.Execute(buf, 2, 2, 0, 0.5))

	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF}, buf[0:4])   // (0,0)
	assert.Equal(t, []byte{0x64, 0x00, 0x00, 0xFF}, buf[4:8])   // (1,0)
	assert.Equal(t, []byte{0x00, 0x64, 0x00, 0xFF}, buf[8:12])  // (0,1)
	assert.Equal(t, []byte{0x64, 0x64, 0x00, 0xFF}, buf[12:16]) // (1,1)
}

func TestRenderer_UserFunctionInShader(t *testing.T) {
	r := New()
	require.Nil(t, r.Parse(`
	function sq(n) { return n * n; }
	r = sq(x) * 100;
	g = 0;
	b = 0;
	`))

	buf := make([]byte, 4*2*2)
	require.Nil(t, r.Execute(buf, 2, 2, 0, 0.5))

	off := 4 * (1*2 + 1) // (x=1, y=1)
	assert.Equal(t, byte(100), buf[off])
}

func TestRenderer_RuntimeErrorOnUndefinedIdentifier(t *testing.T) {
	r := New()
	require.Nil(t, r.Parse("r = undef;"))

	buf := make([]byte, 4*1*1)
	err := r.Execute(buf, 1, 1, 0, 0)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "undefined identifier")
}

func TestRenderer_FailedParseRetainsPreviousProgram(t *testing.T) {
	r := New()
	require.Nil(t, r.Parse("r=255; g=255; b=255;"))

	err := r.Parse("r = ;") // malformed
	require.NotNil(t, err)

	buf := make([]byte, 4)
	require.Nil(t, r.Execute(buf, 1, 1, 0, 0))
	assert.Equal(t, []byte{255, 255, 255, 255}, buf)
}

func TestRenderer_BufferTooSmall(t *testing.T) {
	r := New()
	require.Nil(t, r.Parse("r=0; g=0; b=0;"))
	err := r.Execute(make([]byte, 2), 2, 2, 0, 0)
	require.NotNil(t, err)
}
