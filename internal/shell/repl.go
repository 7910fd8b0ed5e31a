package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jhollow/posh/internal/commands"
	"github.com/jhollow/posh/internal/config"
	"github.com/jhollow/posh/internal/pathresolve"
	"github.com/jhollow/posh/internal/state"
	"github.com/jhollow/posh/internal/ui"
)

// REPL is the driver described in spec.md §4.H: it owns the line
// editor, routes each line to the pipeline or single-command path, and
// loops until EOF, a fatal editor error, or "exit".
type REPL struct {
	cfg      *config.Config
	state    *state.State
	executor *Executor
	rl       *readline.Instance
	styles   ui.Styles
}

// New constructs a REPL. historyPath backs the line editor's own
// arrow-key history (config.HistoryPath()); HISTFILE, if set in the
// environment, is preloaded separately into the shell's in-memory
// history (spec.md §4.H, §6).
func New(cfg *config.Config, historyPath string) (*REPL, error) {
	s := state.New()
	resolver := pathresolve.New(cfg.PathOverride)
	completer := NewCompleter(resolver)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          PromptLiteral,
		HistoryFile:     historyPath,
		HistoryLimit:    cfg.HistorySize,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("init line editor: %w", err)
	}

	if histfile := os.Getenv("HISTFILE"); histfile != "" {
		if err := s.History.LoadFile(histfile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "posh: HISTFILE: %v\n", err)
		}
	}

	return &REPL{
		cfg:      cfg,
		state:    s,
		executor: NewExecutor(s, resolver),
		rl:       rl,
		styles:   ui.New(cfg.Color),
	}, nil
}

// Run is the loop in spec.md §4.H. It returns the exit status to hand
// to os.Exit: 0 on clean EOF, or the status given to "exit".
func (r *REPL) Run(ctx context.Context) int {
	defer r.rl.Close()

	for {
		line, err := r.rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if len(line) == 0 {
				continue
			}
			continue
		case errors.Is(err, io.EOF):
			return 0
		case err != nil:
			fmt.Fprintln(os.Stderr, r.styles.Error.Render("posh: "+err.Error()))
			return 1
		}

		status, exit, ok := r.runLine(ctx, line)
		if !ok {
			continue
		}
		if exit {
			return status
		}
	}
}

// runLine processes one accepted input line (spec.md §4.H steps 1-4).
// ok is false when the line was empty and nothing ran.
func (r *REPL) runLine(ctx context.Context, raw string) (status int, exit bool, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return 0, false, false
	}
	r.state.History.Add(line)

	stages, err := SplitPipeline(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		return 1, false, true
	}

	if len(stages) >= 2 {
		pipeline, err := ParsePipeline(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
			return 1, false, true
		}
		if err := r.executor.RunPipeline(ctx, pipeline); err != nil {
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
			return 1, false, true
		}
		return 0, false, true
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		return 1, false, true
	}

	result, runErr := r.executor.RunSingle(ctx, cmd)
	if runErr != nil {
		var exitErr commands.ErrExit
		if errors.As(runErr, &exitErr) {
			return exitErr.Status, true, true
		}
		fmt.Fprintf(os.Stderr, "posh: %v\n", runErr)
		return 1, false, true
	}
	return result, false, true
}
