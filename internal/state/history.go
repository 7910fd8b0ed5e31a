package state

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// History is the in-memory list the "history" built-in operates on
// (spec.md §6, §4.E). It is distinct from the line-editor's own
// arrow-key history buffer: that one is owned by readline.Instance and
// persisted via config.HistoryPath(); this one is owned by the shell
// and is what `history`, `history -r/-w/-a/-c` read and mutate.
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Add appends a line to the in-memory history. The REPL calls this once
// per submitted, non-empty input line (spec.md §4.H step 3).
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, line)
}

// All returns a snapshot of every history entry, oldest first.
func (h *History) All() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Last returns the most recent n entries (or all of them if n exceeds
// the list length), oldest first, paired with their absolute 1-based
// index for `history N`.
func (h *History) Last(n int) (entries []string, firstIndex int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	start := 0
	if n < len(h.entries) {
		start = len(h.entries) - n
	}
	out := make([]string, len(h.entries)-start)
	copy(out, h.entries[start:])
	return out, start + 1
}

// Clear empties the in-memory history. Used by `history -c` and by
// `history -a file`, which appends then clears (spec.md §6).
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// LoadFile reads path line by line and appends each line to the
// in-memory history (spec.md §6's "-r" mode, and HISTFILE preload at
// startup per spec.md §4.H).
func (h *History) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	return scanner.Err()
}

// WriteFile writes the complete in-memory history to path, one entry
// per line, truncating any existing content (spec.md §6's "-w" mode).
func (h *History) WriteFile(path string) error {
	h.mu.Lock()
	lines := make([]string, len(h.entries))
	copy(lines, h.entries)
	h.mu.Unlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}

// AppendFile appends the complete in-memory history to path without
// truncating it, then clears the in-memory list (spec.md §6's "-a"
// mode).
func (h *History) AppendFile(path string) error {
	h.mu.Lock()
	lines := make([]string, len(h.entries))
	copy(lines, h.entries)
	h.mu.Unlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	h.Clear()
	return nil
}

// FormatIndexed renders entries the way bare `history` prints them:
// a space-padded 4-digit index, two spaces, then the line.
func FormatIndexed(entries []string, firstIndex int) string {
	var b strings.Builder
	for i, line := range entries {
		fmt.Fprintf(&b, "%4d  %s\n", firstIndex+i, line)
	}
	return b.String()
}
