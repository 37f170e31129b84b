package tui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRenderer(t *testing.T) {
	out, err := NewPlainRenderer()("# counter\n\n- ✅ should equal 5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "should equal 5")
}

func TestRendererFor_NonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	out, err := RendererFor(f)("plain *text*")
	require.NoError(t, err)
	assert.Contains(t, out, "text")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
	assert.NotContains(t, buf.String(), "\x1b[", "non-terminal writers get no colors")
}
