package shell_test

import (
	"testing"

	"github.com/jhollow/posh/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRedirections_CoreOperators(t *testing.T) {
	tests := []struct {
		name       string
		argv       []string
		wantWords  []string
		wantStream shell.Stream
		wantMode   shell.Mode
		wantTarget string
	}{
		{"truncate stdout", []string{"cmd", ">", "out.txt"}, []string{"cmd"}, shell.StreamStdout, shell.ModeTruncate, "out.txt"},
		{"truncate stdout explicit fd", []string{"cmd", "1>", "out.txt"}, []string{"cmd"}, shell.StreamStdout, shell.ModeTruncate, "out.txt"},
		{"append stdout", []string{"cmd", ">>", "out.txt"}, []string{"cmd"}, shell.StreamStdout, shell.ModeAppend, "out.txt"},
		{"truncate stderr", []string{"cmd", "2>", "err.txt"}, []string{"cmd"}, shell.StreamStderr, shell.ModeTruncate, "err.txt"},
		{"append stderr", []string{"cmd", "2>>", "err.txt"}, []string{"cmd"}, shell.StreamStderr, shell.ModeAppend, "err.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, redirs, err := shell.ParseRedirections(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, words)
			require.Len(t, redirs, 1)
			assert.Equal(t, tt.wantStream, redirs[0].Stream)
			assert.Equal(t, tt.wantMode, redirs[0].Mode)
			assert.Equal(t, tt.wantTarget, redirs[0].Target)
		})
	}
}

func TestParseRedirections_SupplementedOperators(t *testing.T) {
	words, redirs, err := shell.ParseRedirections([]string{"cmd", "2>&1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd"}, words)
	require.Len(t, redirs, 1)
	assert.True(t, redirs[0].MergeStderr)

	words, redirs, err = shell.ParseRedirections([]string{"cmd", "<", "in.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd"}, words)
	require.Len(t, redirs, 1)
	assert.Equal(t, shell.StreamStdin, redirs[0].Stream)
	assert.Equal(t, "in.txt", redirs[0].Target)
}

func TestParseRedirections_MissingTargetIsSyntaxError(t *testing.T) {
	_, _, err := shell.ParseRedirections([]string{"cmd", ">"})
	assert.Error(t, err)
}

func TestResolve_LastWins(t *testing.T) {
	stdout, stderr, stdin := shell.Resolve([]shell.Redirection{
		{Stream: shell.StreamStdout, Mode: shell.ModeTruncate, Target: "a.txt"},
		{Stream: shell.StreamStdout, Mode: shell.ModeAppend, Target: "b.txt"},
	})
	require.NotNil(t, stdout)
	assert.Equal(t, "b.txt", stdout.Target)
	assert.Equal(t, shell.ModeAppend, stdout.Mode)
	assert.Nil(t, stderr)
	assert.Nil(t, stdin)
}
