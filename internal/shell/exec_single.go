package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/jhollow/posh/internal/commands"
	"github.com/jhollow/posh/internal/pathresolve"
	"github.com/jhollow/posh/internal/state"
)

// Executor runs Commands and Pipelines against one shell session
// (spec.md §4.F, §4.G).
type Executor struct {
	State    *state.State
	Resolver *pathresolve.Resolver

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor builds an Executor whose default streams are the
// process's own stdin/stdout/stderr.
func NewExecutor(s *state.State, resolver *pathresolve.Resolver) *Executor {
	return &Executor{
		State:    s,
		Resolver: resolver,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// RunSingle executes one Command outside of a pipeline (spec.md §4.F).
// It returns the command's exit status, and a non-nil error only when
// the command was the "exit" built-in (commands.ErrExit), which the
// REPL driver uses to end its loop.
func (e *Executor) RunSingle(ctx context.Context, cmd *Command) (int, error) {
	stdin, stdout, stderr, closers, err := e.setupStreams(cmd, e.Stdin, e.Stdout, e.Stderr)
	defer closeAll(closers)
	if err != nil {
		fmt.Fprintf(e.Stderr, "posh: %v\n", err)
		return 1, nil
	}

	return e.dispatch(ctx, cmd, stdin, stdout, stderr)
}

// dispatch runs cmd's built-in or external program against the given
// streams (already redirection-adjusted). Only the single-command path
// uses it; pipeline stages are started by spawnStage instead.
func (e *Executor) dispatch(ctx context.Context, cmd *Command, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	name := cmd.Argv[0]

	if fn, ok := commands.Lookup(name); ok {
		env := &commands.Env{Stdin: stdin, Stdout: stdout, Stderr: stderr}
		status, err := fn(ctx, e.State, env, cmd.Argv[1:])
		return status, err
	}

	return e.runExternal(ctx, cmd, stdin, stdout, stderr)
}

// runExternal resolves name via the path resolver (component A) and
// runs it synchronously, its streams wired to stdin/stdout/stderr
// (spec.md §4.F point 2).
func (e *Executor) runExternal(ctx context.Context, cmd *Command, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	name := cmd.Argv[0]
	path, ok := e.Resolver.Resolve(name)
	if !ok {
		fmt.Fprintf(stderr, "%s: command not found\n", name)
		return 127, nil
	}

	ext := exec.CommandContext(ctx, path, cmd.Argv[1:]...)
	ext.Stdin = stdin
	ext.Stdout = stdout
	ext.Stderr = stderr

	if err := ext.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1, nil
	}
	return 0, nil
}

// setupStreams resolves cmd's redirections (component C) against the
// given base streams, returning the effective stdin/stdout/stderr plus
// anything that must be closed once the command finishes.
func (e *Executor) setupStreams(cmd *Command, baseIn io.Reader, baseOut, baseErr io.Writer) (stdin io.Reader, stdout, stderr io.Writer, closers []io.Closer, err error) {
	stdin, stdout, stderr = baseIn, baseOut, baseErr

	if cmd.Stdin != nil {
		f, oerr := openInput(cmd.Stdin.Target)
		if oerr != nil {
			return nil, nil, nil, closers, fmt.Errorf("%s: %w", cmd.Stdin.Target, oerr)
		}
		closers = append(closers, f)
		stdin = f
	}

	if cmd.Stdout != nil {
		f, oerr := openOutput(cmd.Stdout.Target, cmd.Stdout.Mode)
		if oerr != nil {
			return nil, nil, nil, closers, fmt.Errorf("%s: %w", cmd.Stdout.Target, oerr)
		}
		closers = append(closers, f)
		stdout = f
	}

	if cmd.Stderr != nil {
		if cmd.Stderr.MergeStderr {
			stderr = stdout
		} else {
			f, oerr := openOutput(cmd.Stderr.Target, cmd.Stderr.Mode)
			if oerr != nil {
				return nil, nil, nil, closers, fmt.Errorf("%s: %w", cmd.Stderr.Target, oerr)
			}
			closers = append(closers, f)
			stderr = f
		}
	}

	return stdin, stdout, stderr, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
