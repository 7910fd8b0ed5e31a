package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/jhollow/posh/internal/commands"
	"github.com/jhollow/posh/internal/state"
)

// TrampolineArg is the hidden first argument cmd/posh recognizes to
// re-exec itself as a single built-in instead of starting the REPL.
//
// Go has no fork(): a built-in run as one stage of a pipeline still
// needs the isolation spec.md §4.G requires ("their effect does not
// propagate to the parent shell"). posh gets that isolation the
// idiomatic Go way, by re-executing its own binary as a real child
// process for that stage, rather than by faking isolated state
// in-process. A single command outside a pipeline still runs the
// built-in directly (RunSingle), since there is nothing to isolate it
// from there.
const TrampolineArg = "__posh_exec_builtin__"

// RunTrampoline is cmd/posh's entry point when re-exec'd with
// TrampolineArg. argv is the built-in's own argv (name followed by its
// arguments). It returns the process exit status.
func RunTrampoline(ctx context.Context, argv []string) int {
	if len(argv) == 0 {
		return 1
	}
	name := argv[0]
	fn, ok := commands.Lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: not a builtin\n", name)
		return 127
	}

	s := state.New()
	env := &commands.Env{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	status, _ := fn(ctx, s, env, argv[1:])
	return status
}

// RunPipeline executes N ≥ 2 Commands connected by anonymous pipes
// (spec.md §4.G), realized with os/exec.Cmd and os.Pipe rather than
// raw fork/dup2. Every stage — built-in or external — runs as a real
// child process, which is what makes the "cd/exit inside a pipeline
// stage doesn't affect the parent" invariant hold without any special
// in-process bookkeeping.
func (e *Executor) RunPipeline(ctx context.Context, p *Pipeline) error {
	n := len(p.Commands)
	if n == 0 {
		return nil
	}
	if n == 1 {
		_, err := e.RunSingle(ctx, p.Commands[0])
		return err
	}

	children := make([]*exec.Cmd, n)
	var pipeCloser []io.Closer
	defer func() { closeAll(pipeCloser) }()

	var prevRead *os.File

	for i, cmd := range p.Commands {
		var stdin io.Reader = e.Stdin
		var stdout io.Writer = e.Stdout
		var stderr io.Writer = e.Stderr
		var stageClosers []io.Closer

		if prevRead != nil {
			stdin = prevRead
		} else if cmd.Stdin != nil {
			f, err := openInput(cmd.Stdin.Target)
			if err != nil {
				fmt.Fprintf(e.Stderr, "posh: %s: %v\n", cmd.Stdin.Target, err)
				return nil
			}
			stageClosers = append(stageClosers, f)
			stdin = f
		}

		var pw *os.File
		if i < n-1 {
			pr, w, err := os.Pipe()
			if err != nil {
				return fmt.Errorf("pipe: %w", err)
			}
			pw = w
			stdout = pw
			prevRead = pr
			pipeCloser = append(pipeCloser, pr)
		} else {
			prevRead = nil
			if cmd.Stdout != nil {
				f, err := openOutput(cmd.Stdout.Target, cmd.Stdout.Mode)
				if err != nil {
					fmt.Fprintf(e.Stderr, "posh: %s: %v\n", cmd.Stdout.Target, err)
					return nil
				}
				stageClosers = append(stageClosers, f)
				stdout = f
			}
		}

		if cmd.Stderr != nil {
			if cmd.Stderr.MergeStderr {
				stderr = stdout
			} else {
				f, err := openOutput(cmd.Stderr.Target, cmd.Stderr.Mode)
				if err != nil {
					fmt.Fprintf(e.Stderr, "posh: %s: %v\n", cmd.Stderr.Target, err)
					return nil
				}
				stageClosers = append(stageClosers, f)
				stderr = f
			}
		}

		child, spawnErr := e.spawnStage(ctx, cmd, stdin, stdout, stderr)
		if pw != nil {
			pw.Close()
		}
		closeAll(stageClosers)
		if spawnErr != nil {
			return fmt.Errorf("fork: %w", spawnErr)
		}
		children[i] = child
	}

	for i, child := range children {
		if child == nil {
			continue
		}
		if err := child.Wait(); err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				fmt.Fprintf(e.Stderr, "posh: %s: %v\n", p.Commands[i].Argv[0], err)
			}
		}
	}
	return nil
}

// spawnStage starts (but does not wait for) one pipeline stage as a
// child process: a re-exec'd trampoline for a built-in, or the
// resolved external program otherwise.
func (e *Executor) spawnStage(ctx context.Context, cmd *Command, stdin io.Reader, stdout, stderr io.Writer) (*exec.Cmd, error) {
	name := cmd.Argv[0]

	var child *exec.Cmd
	if _, ok := commands.Lookup(name); ok {
		self, err := os.Executable()
		if err != nil {
			self = os.Args[0]
		}
		args := append([]string{TrampolineArg}, cmd.Argv...)
		child = exec.CommandContext(ctx, self, args...)
	} else {
		path, ok := e.Resolver.Resolve(name)
		if !ok {
			fmt.Fprintf(stderr, "%s: command not found\n", name)
			return nil, nil
		}
		child = exec.CommandContext(ctx, path, cmd.Argv[1:]...)
	}

	child.Stdin = stdin
	child.Stdout = stdout
	child.Stderr = stderr

	if err := child.Start(); err != nil {
		return nil, err
	}
	return child, nil
}
