package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhollow/posh/internal/pathresolve"
	"github.com/jhollow/posh/internal/state"
)

func init() {
	register("exit", exitCmd)
	register("echo", echoCmd)
	register("pwd", pwdCmd)
	register("cd", cdCmd)
	register("type", typeCmd)
}

// ErrExit signals that the "exit" built-in was invoked. Outside a
// pipeline stage the single-command executor (4.F) hands it back to the
// REPL driver, which ends its loop with Status; inside one it only ends
// that stage's child process (spec.md §9).
type ErrExit struct {
	Status int
}

func (e ErrExit) Error() string {
	return fmt.Sprintf("exit %d", e.Status)
}

func exitCmd(ctx context.Context, s *state.State, env *Env, args []string) (int, error) {
	status := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(env.Stderr, "exit: %s: numeric argument required\n", args[0])
			status = 2
		} else {
			status = n
		}
	}
	return status, ErrExit{Status: status}
}

func echoCmd(ctx context.Context, s *state.State, env *Env, args []string) (int, error) {
	fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return 0, nil
}

func pwdCmd(ctx context.Context, s *state.State, env *Env, args []string) (int, error) {
	cwd, err := s.CWD()
	if err != nil {
		fmt.Fprintf(env.Stderr, "pwd: %v\n", err)
		return 1, nil
	}
	fmt.Fprintln(env.Stdout, cwd)
	return 0, nil
}

func cdCmd(ctx context.Context, s *state.State, env *Env, args []string) (int, error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	dir, err := resolveCdTarget(s, target)
	if err != nil {
		fmt.Fprintf(env.Stdout, "cd: %s: No such file or directory\n", target)
		return 1, nil
	}

	if err := s.Chdir(dir); err != nil {
		fmt.Fprintf(env.Stdout, "cd: %s: No such file or directory\n", target)
		return 1, nil
	}
	return 0, nil
}

func resolveCdTarget(s *state.State, target string) (string, error) {
	switch {
	case target == "" || target == "~":
		if s.HomeDir == "" {
			return "", fmt.Errorf("HOME not set")
		}
		return s.HomeDir, nil
	case target == "-":
		if s.PreviousDir == "" {
			return "", fmt.Errorf("no previous directory")
		}
		return s.PreviousDir, nil
	default:
		return target, nil
	}
}

func typeCmd(ctx context.Context, s *state.State, env *Env, args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	name := args[0]

	if _, ok := Lookup(name); ok {
		fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return 0, nil
	}

	resolver := pathresolve.New(nil)
	if full, ok := resolver.Resolve(name); ok {
		fmt.Fprintf(env.Stdout, "%s is %s\n", name, full)
		return 0, nil
	}

	fmt.Fprintf(env.Stderr, "%s: not found\n", name)
	return 1, nil
}
