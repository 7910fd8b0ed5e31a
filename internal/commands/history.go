package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhollow/posh/internal/state"
	"github.com/spf13/pflag"
)

func init() {
	register("history", historyCmd)
}

// historyCmd implements spec.md §6's history built-in, supplemented
// with a bare -c (clear) flag per SPEC_FULL.md §4.E. Flag parsing
// follows the teacher's convention (pflag.NewFlagSet, output routed to
// env.Stderr) seen throughout internal/commands in the teacher repo.
func historyCmd(ctx context.Context, s *state.State, env *Env, args []string) (int, error) {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	readFile := fs.StringP("read", "r", "", "append entries from file into the in-memory history")
	writeFile := fs.StringP("write", "w", "", "write the complete history to file, truncating it")
	appendFile := fs.StringP("append", "a", "", "append the in-memory history to file, then clear it")
	clear := fs.BoolP("clear", "c", false, "clear the in-memory history")

	if err := fs.Parse(args); err != nil {
		return 2, nil
	}

	switch {
	case *readFile != "":
		if err := s.History.LoadFile(*readFile); err != nil {
			fmt.Fprintf(env.Stderr, "history: %s: %v\n", *readFile, err)
			return 1, nil
		}
		return 0, nil

	case *writeFile != "":
		if err := s.History.WriteFile(*writeFile); err != nil {
			fmt.Fprintf(env.Stderr, "history: %s: %v\n", *writeFile, err)
			return 1, nil
		}
		return 0, nil

	case *appendFile != "":
		if err := s.History.AppendFile(*appendFile); err != nil {
			fmt.Fprintf(env.Stderr, "history: %s: %v\n", *appendFile, err)
			return 1, nil
		}
		return 0, nil

	case *clear:
		s.History.Clear()
		return 0, nil
	}

	rest := fs.Args()
	if len(rest) > 0 {
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 0 {
			fmt.Fprintf(env.Stderr, "history: %s: numeric argument required\n", rest[0])
			return 2, nil
		}
		entries, first := s.History.Last(n)
		fmt.Fprint(env.Stdout, state.FormatIndexed(entries, first))
		return 0, nil
	}

	entries := s.History.All()
	fmt.Fprint(env.Stdout, state.FormatIndexed(entries, 1))
	return 0, nil
}
