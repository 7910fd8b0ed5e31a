// Command posh is a POSIX-style interactive shell. It takes no
// arguments or flags (spec.md §6) and always starts interactive,
// except for one hidden re-exec mode internal/shell uses to isolate
// built-ins run inside a pipeline stage.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhollow/posh/internal/config"
	"github.com/jhollow/posh/internal/shell"

	// Register built-ins via their init() functions.
	_ "github.com/jhollow/posh/internal/commands"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == shell.TrampolineArg {
		os.Exit(shell.RunTrampoline(context.Background(), os.Args[2:]))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		os.Exit(1)
	}

	historyPath, err := config.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		os.Exit(1)
	}
	if dir, err := config.Dir(); err == nil {
		_ = os.MkdirAll(dir, 0o700)
	}

	repl, err := shell.New(cfg, historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		os.Exit(1)
	}

	os.Exit(repl.Run(context.Background()))
}
