package shell

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jhollow/posh/internal/pathresolve"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// PromptLiteral is the exact two bytes spec.md §6 pins for every prompt
// write. Nothing in posh — not lipgloss, not the completer's redraw —
// is allowed to style or otherwise alter these bytes.
const PromptLiteral = "$ "

var _ readline.AutoCompleter = (*Completer)(nil)

// Completer implements spec.md §6's reference completion policy against
// the fixed built-in set and the search path. It is stateful across
// calls only to detect a second, unchanged Tab press, exactly as the
// spec's "consecutive-tab detection" note describes.
type Completer struct {
	Resolver *pathresolve.Resolver

	lastLine string
	lastPos  int
	tabCount int
}

func NewCompleter(resolver *pathresolve.Resolver) *Completer {
	return &Completer{Resolver: resolver}
}

// builtinCompletionSet is the fixed set spec.md §6 names for the first
// completion pass; it is not the same as commands.Names() (which would
// also match "history").
var builtinCompletionSet = []string{"echo", "exit", "type", "pwd", "cd", "ls"}

// Do implements readline.AutoCompleter. It returns, for each candidate,
// the rune suffix beyond what the user already typed, and the length of
// the already-typed prefix being replaced.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	key := string(line)
	repeat := key == c.lastLine && pos == c.lastPos
	if repeat {
		c.tabCount++
	} else {
		c.tabCount = 1
	}
	c.lastLine, c.lastPos = key, pos

	prefix := currentWord(line, pos)
	if prefix == "" {
		return nil, 0
	}

	if matches := matchBuiltins(prefix); len(matches) > 0 {
		if len(matches) == 1 {
			return [][]rune{[]rune(matches[0][len(prefix):] + " ")}, len(prefix)
		}
		return suffixes(matches, prefix), len(prefix)
	}

	candidates := c.pathCandidates(prefix)
	switch {
	case len(candidates) == 0:
		fmt.Print("\a")
		return nil, 0

	case len(candidates) == 1:
		return [][]rune{[]rune(candidates[0][len(prefix):] + " ")}, len(prefix)

	default:
		lcp := longestCommonPrefix(candidates)
		if len(lcp) > len(prefix) {
			return [][]rune{[]rune(lcp[len(prefix):])}, len(prefix)
		}
		if c.tabCount < 2 {
			fmt.Print("\a")
			return nil, 0
		}
		c.printCandidateColumns(candidates)
		fmt.Print(PromptLiteral + key)
		c.tabCount = 0
		return nil, 0
	}
}

func matchBuiltins(prefix string) []string {
	var out []string
	for _, name := range builtinCompletionSet {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// pathCandidates enumerates every directory on the search path (plus
// configured overrides) for entries starting with prefix, sorted and
// de-duplicated (spec.md §6).
func (c *Completer) pathCandidates(prefix string) []string {
	seen := map[string]bool{}
	var out []string

	dirs := append([]string{}, c.Resolver.Overrides...)
	if pathVar := c.Resolver.Getenv("PATH"); pathVar != "" {
		dirs = append(dirs, strings.Split(pathVar, string(os.PathListSeparator))...)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, prefix) && !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}

	sort.Strings(out)
	return out
}

func suffixes(matches []string, prefix string) [][]rune {
	out := make([][]rune, len(matches))
	for i, m := range matches {
		out[i] = []rune(m[len(prefix):])
	}
	return out
}

func longestCommonPrefix(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	lcp := candidates[0]
	for _, c := range candidates[1:] {
		lcp = commonPrefix(lcp, c)
		if lcp == "" {
			break
		}
	}
	return lcp
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// currentWord extracts the word being completed: from the character
// after the previous space up to pos (spec.md §6).
func currentWord(line []rune, pos int) string {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	return string(line[start:pos])
}

// printCandidateColumns prints candidates in display-width-aware
// columns sized to the terminal (cosmetic only — see SPEC_FULL.md's
// AMBIENT STACK entry for x/term and go-runewidth).
func (c *Completer) printCandidateColumns(candidates []string) {
	fmt.Println()

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	colWidth := 0
	for _, cand := range candidates {
		if w := runewidth.StringWidth(cand); w > colWidth {
			colWidth = w
		}
	}
	colWidth += 2

	perRow := width / colWidth
	if perRow < 1 {
		perRow = 1
	}

	for i, cand := range candidates {
		fmt.Print(cand)
		if (i+1)%perRow == 0 || i == len(candidates)-1 {
			fmt.Println()
		} else {
			pad := colWidth - runewidth.StringWidth(cand)
			fmt.Print(strings.Repeat(" ", pad))
		}
	}
}
