package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jhollow/posh/internal/commands"
	"github.com/jhollow/posh/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() (*commands.Env, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &commands.Env{Stdin: bytes.NewReader(nil), Stdout: &out, Stderr: &errOut}, &out, &errOut
}

func TestEcho_JoinsArgsWithSingleSpace(t *testing.T) {
	fn, ok := commands.Lookup("echo")
	require.True(t, ok)

	env, out, _ := newEnv()
	status, err := fn(context.Background(), state.New(), env, []string{"hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "hello world\n", out.String())
}

func TestExit_ReturnsErrExitWithStatus(t *testing.T) {
	fn, ok := commands.Lookup("exit")
	require.True(t, ok)

	env, _, _ := newEnv()
	status, err := fn(context.Background(), state.New(), env, []string{"7"})

	var exitErr commands.ErrExit
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 7, exitErr.Status)
	assert.Equal(t, 7, status)
}

func TestExit_DefaultsToZero(t *testing.T) {
	fn, ok := commands.Lookup("exit")
	require.True(t, ok)

	env, _, _ := newEnv()
	status, err := fn(context.Background(), state.New(), env, nil)

	var exitErr commands.ErrExit
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 0, exitErr.Status)
	assert.Equal(t, 0, status)
}

func TestPwd_PrintsCWD(t *testing.T) {
	fn, ok := commands.Lookup("pwd")
	require.True(t, ok)

	wd, err := os.Getwd()
	require.NoError(t, err)

	env, out, _ := newEnv()
	status, runErr := fn(context.Background(), state.New(), env, nil)
	require.NoError(t, runErr)
	assert.Equal(t, 0, status)
	assert.Equal(t, wd+"\n", out.String())
}

func TestCd_HomeAndDash(t *testing.T) {
	fn, ok := commands.Lookup("cd")
	require.True(t, ok)

	start, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(start)

	home := t.TempDir()
	s := state.New()
	s.HomeDir = home

	env, _, _ := newEnv()
	status, runErr := fn(context.Background(), s, env, nil)
	require.NoError(t, runErr)
	assert.Equal(t, 0, status)

	got, err := filepath.EvalSymlinks(mustGetwd(t))
	require.NoError(t, err)
	wantHome, err := filepath.EvalSymlinks(home)
	require.NoError(t, err)
	assert.Equal(t, wantHome, got)

	status, runErr = fn(context.Background(), s, env, []string{"-"})
	require.NoError(t, runErr)
	assert.Equal(t, 0, status)
	got, err = filepath.EvalSymlinks(mustGetwd(t))
	require.NoError(t, err)
	wantStart, err := filepath.EvalSymlinks(start)
	require.NoError(t, err)
	assert.Equal(t, wantStart, got)
}

func TestCd_NonexistentDirectory(t *testing.T) {
	fn, ok := commands.Lookup("cd")
	require.True(t, ok)

	env, out, _ := newEnv()
	status, runErr := fn(context.Background(), state.New(), env, []string{"/no/such/directory"})
	require.NoError(t, runErr)
	assert.Equal(t, 1, status)
	assert.Contains(t, out.String(), "No such file or directory")
}

func TestType_BuiltinAndNotFound(t *testing.T) {
	fn, ok := commands.Lookup("type")
	require.True(t, ok)

	env, out, _ := newEnv()
	status, runErr := fn(context.Background(), state.New(), env, []string{"cd"})
	require.NoError(t, runErr)
	assert.Equal(t, 0, status)
	assert.Equal(t, "cd is a shell builtin\n", out.String())

	env, _, errOut := newEnv()
	status, runErr = fn(context.Background(), state.New(), env, []string{"definitely-not-a-real-command"})
	require.NoError(t, runErr)
	assert.Equal(t, 1, status)
	assert.Contains(t, errOut.String(), "not found")
}

func mustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}
