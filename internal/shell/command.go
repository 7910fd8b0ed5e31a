package shell

import (
	"fmt"

	"github.com/jhollow/posh/internal/lexer"
)

// Command is one stage of a Pipeline: an argv plus the redirections
// parsed out of it (spec.md §3). Invariant: Argv is non-empty.
type Command struct {
	Argv        []string
	Redirs      []Redirection
	Stdout      *Redirection
	Stderr      *Redirection
	Stdin       *Redirection
	MergeStderr bool
}

// ParseCommand lexes a single command-line stage and extracts its
// redirections, combining components B and C (spec.md §4.B, §4.C).
func ParseCommand(line string) (*Command, error) {
	words := lexer.Tokenize(line)
	argv, redirs, err := ParseRedirections(words)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("syntax error: empty command")
	}

	stdout, stderr, stdin := Resolve(redirs)
	return &Command{
		Argv:        argv,
		Redirs:      redirs,
		Stdout:      stdout,
		Stderr:      stderr,
		Stdin:       stdin,
		MergeStderr: stderr != nil && stderr.MergeStderr,
	}, nil
}

// Pipeline is an ordered sequence of Commands (spec.md §3), length ≥ 1.
type Pipeline struct {
	Commands []*Command
}

// ParsePipeline splits line on unquoted pipes (component D) and parses
// each stage (components B/C). A single-stage result still goes through
// this type; the REPL decides whether to bypass the pipeline executor
// for it (spec.md §3's "if length = 1" note).
func ParsePipeline(line string) (*Pipeline, error) {
	stages, err := SplitPipeline(line)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{Commands: make([]*Command, 0, len(stages))}
	for _, stage := range stages {
		cmd, err := ParseCommand(stage)
		if err != nil {
			return nil, err
		}
		p.Commands = append(p.Commands, cmd)
	}
	return p, nil
}
