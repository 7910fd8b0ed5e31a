package shell_test

import (
	"testing"

	"github.com/jhollow/posh/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_WordsAndRedirectionsSeparate(t *testing.T) {
	cmd, err := shell.ParseCommand(`echo "hello world" > out.txt 2>> err.txt`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "hello world"}, cmd.Argv)
	require.NotNil(t, cmd.Stdout)
	assert.Equal(t, "out.txt", cmd.Stdout.Target)
	require.NotNil(t, cmd.Stderr)
	assert.Equal(t, "err.txt", cmd.Stderr.Target)
	assert.Equal(t, shell.ModeAppend, cmd.Stderr.Mode)
}

func TestParseCommand_EmptyAfterRedirectionExtractionIsError(t *testing.T) {
	_, err := shell.ParseCommand("> out.txt")
	assert.Error(t, err)
}

func TestParsePipeline_MultiStage(t *testing.T) {
	p, err := shell.ParsePipeline("cat file.txt | grep foo | wc -l")
	require.NoError(t, err)
	require.Len(t, p.Commands, 3)
	assert.Equal(t, []string{"cat", "file.txt"}, p.Commands[0].Argv)
	assert.Equal(t, []string{"grep", "foo"}, p.Commands[1].Argv)
	assert.Equal(t, []string{"wc", "-l"}, p.Commands[2].Argv)
}
