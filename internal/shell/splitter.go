package shell

import (
	"fmt"
	"strings"
)

// SplitPipeline splits a raw input line into pipeline-stage substrings
// on unquoted '|' characters (spec.md §4.D). It tracks quote state
// itself rather than delegating to the lexer, since splitting must
// happen before words are extracted.
func SplitPipeline(line string) ([]string, error) {
	var stages []string
	var cur strings.Builder
	inSingle, inDouble, escaped := false, false, false

	runes := []rune(line)
	for _, ch := range runes {
		switch {
		case escaped:
			cur.WriteRune(ch)
			escaped = false

		case ch == '\\' && !inSingle:
			cur.WriteRune(ch)
			escaped = true

		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			cur.WriteRune(ch)

		case ch == '"' && !inSingle:
			inDouble = !inDouble
			cur.WriteRune(ch)

		case ch == '|' && !inSingle && !inDouble:
			stages = append(stages, strings.TrimSpace(cur.String()))
			cur.Reset()

		default:
			cur.WriteRune(ch)
		}
	}
	stages = append(stages, strings.TrimSpace(cur.String()))

	for _, s := range stages {
		if s == "" {
			return nil, fmt.Errorf("syntax error near unexpected token `|'")
		}
	}
	return stages, nil
}
