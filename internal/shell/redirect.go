package shell

import "fmt"

// Stream identifies which standard stream a Redirection retargets.
type Stream int

const (
	StreamStdout Stream = iota
	StreamStderr
	StreamStdin // supplemented: see SPEC_FULL.md §4.C
)

// Mode is the file-open discipline for an output Redirection.
type Mode int

const (
	ModeTruncate Mode = iota
	ModeAppend
)

// Redirection is the triple spec.md §3 defines, extended with the
// supplemented stdin case and the merge-stderr-into-stdout case.
type Redirection struct {
	Stream Stream
	Mode   Mode
	Target string
	// MergeStderr is set by 2>&1/&>/>& : stderr is not reopened, it
	// tracks whatever stdout currently targets.
	MergeStderr bool
}

// operator table: spec.md §4.C's six core operators, plus the
// supplemented ones documented in SPEC_FULL.md §4.C.
var outputOperators = map[string]Redirection{
	">":   {Stream: StreamStdout, Mode: ModeTruncate},
	"1>":  {Stream: StreamStdout, Mode: ModeTruncate},
	">>":  {Stream: StreamStdout, Mode: ModeAppend},
	"1>>": {Stream: StreamStdout, Mode: ModeAppend},
	"2>":  {Stream: StreamStderr, Mode: ModeTruncate},
	"2>>": {Stream: StreamStderr, Mode: ModeAppend},
	"&>":  {Stream: StreamStdout, Mode: ModeTruncate, MergeStderr: true},
	">&":  {Stream: StreamStdout, Mode: ModeTruncate, MergeStderr: true},
}

const mergeStderrToStdoutOperator = "2>&1"
const inputOperator = "<"

// ParseRedirections scans argv left to right for redirection operators
// (spec.md §4.C) and returns the remaining command words plus the
// redirections found. Last-wins applies when an operator for the same
// stream appears more than once (documented choice, see DESIGN.md).
func ParseRedirections(argv []string) ([]string, []Redirection, error) {
	var words []string
	var redirs []Redirection

	for i := 0; i < len(argv); i++ {
		word := argv[i]

		if word == mergeStderrToStdoutOperator {
			redirs = append(redirs, Redirection{Stream: StreamStderr, MergeStderr: true})
			continue
		}

		if word == inputOperator {
			target, err := expectTarget(argv, i, word)
			if err != nil {
				return nil, nil, err
			}
			redirs = append(redirs, Redirection{Stream: StreamStdin, Target: target})
			i++
			continue
		}

		if base, ok := outputOperators[word]; ok {
			target, err := expectTarget(argv, i, word)
			if err != nil {
				return nil, nil, err
			}
			base.Target = target
			redirs = append(redirs, base)
			i++
			continue
		}

		words = append(words, word)
	}

	return words, redirs, nil
}

func expectTarget(argv []string, i int, op string) (string, error) {
	if i+1 >= len(argv) {
		return "", fmt.Errorf("syntax error: missing filename after %q", op)
	}
	return argv[i+1], nil
}

// Resolve collapses a list of Redirections (which may name the same
// stream more than once) down to at most one effective Redirection per
// stream, with the last occurrence winning.
func Resolve(redirs []Redirection) (stdout, stderr, stdin *Redirection) {
	for i := range redirs {
		r := redirs[i]
		switch r.Stream {
		case StreamStdout:
			stdout = &r
			if r.MergeStderr {
				stderr = &Redirection{Stream: StreamStderr, MergeStderr: true}
			}
		case StreamStderr:
			if r.MergeStderr {
				stderr = &Redirection{Stream: StreamStderr, MergeStderr: true}
			} else {
				stderr = &r
			}
		case StreamStdin:
			stdin = &r
		}
	}
	return
}
