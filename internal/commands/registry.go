// Package commands implements the built-in dispatcher (spec component
// 4.E): the handful of commands posh runs in-process rather than
// spawning as external programs.
package commands

import (
	"context"
	"io"

	"github.com/jhollow/posh/internal/state"
)

// Env is the set of streams a built-in reads from and writes to. The
// single-command executor (4.F) substitutes these temporarily when a
// redirection targets stdout or stderr.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Func is the uniform handler signature spec.md §9 recommends: a
// mapping from name to function rather than a class hierarchy. It
// returns the status the shell should treat the command as having
// exited with, and a non-nil error only to signal control-flow requests
// such as ErrExit — ordinary command failure is reported through the
// status, not the error.
type Func func(ctx context.Context, s *state.State, env *Env, args []string) (int, error)

// Builtins is the fixed set of in-process commands (spec.md §4.E).
// "ls" and "cat" are deliberately absent: they are delegated to
// external programs of the same name (spec.md §4.E), so they never
// reach this table.
var Builtins = map[string]Func{}

func register(name string, fn Func) {
	Builtins[name] = fn
}

// Lookup returns the built-in for name, or (nil, false) if name is not
// one of the in-process commands.
func Lookup(name string) (Func, bool) {
	fn, ok := Builtins[name]
	return fn, ok
}

// Names returns the built-in command names in no particular order.
func Names() []string {
	names := make([]string, 0, len(Builtins))
	for name := range Builtins {
		names = append(names, name)
	}
	return names
}
