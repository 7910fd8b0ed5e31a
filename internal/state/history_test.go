package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jhollow/posh/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AllAndLast(t *testing.T) {
	h := state.NewHistory()
	h.Add("cmd1")
	h.Add("cmd2")
	h.Add("cmd3")

	assert.Equal(t, []string{"cmd1", "cmd2", "cmd3"}, h.All())

	last, first := h.Last(2)
	assert.Equal(t, []string{"cmd2", "cmd3"}, last)
	assert.Equal(t, 2, first)

	last, first = h.Last(10)
	assert.Equal(t, []string{"cmd1", "cmd2", "cmd3"}, last)
	assert.Equal(t, 1, first)
}

func TestHistory_WriteReadAppendClear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	h := state.NewHistory()
	h.Add("first")
	h.Add("second")

	require.NoError(t, h.WriteFile(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))

	h2 := state.NewHistory()
	require.NoError(t, h2.LoadFile(path))
	assert.Equal(t, []string{"first", "second"}, h2.All())

	require.NoError(t, h2.AppendFile(path))
	assert.Empty(t, h2.All())

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nfirst\nsecond\n", string(content))
}

func TestHistory_Clear(t *testing.T) {
	h := state.NewHistory()
	h.Add("cmd")
	h.Clear()
	assert.Empty(t, h.All())
}

func TestFormatIndexed(t *testing.T) {
	out := state.FormatIndexed([]string{"ls", "pwd"}, 3)
	assert.Equal(t, "   3  ls\n   4  pwd\n", out)
}
