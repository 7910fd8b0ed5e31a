// Package state holds the shell's process-wide mutable state: the
// current working directory and the previously-visited directory used
// by "cd -". spec.md §9 calls for isolating this mutation behind the
// "cd" built-in's single entry point; State is that single owner.
package state

import (
	"os"
)

// State is the shell's session state, threaded through every built-in
// invocation.
type State struct {
	HomeDir     string
	PreviousDir string

	// History is the in-memory list the "history" built-in reads and
	// mutates (spec.md §6). The REPL appends to it once per submitted
	// line; it is independent of the line-editor's own arrow-key
	// history buffer.
	History *History
}

// New builds a State from the process environment.
func New() *State {
	home := os.Getenv("HOME")
	return &State{HomeDir: home, History: NewHistory()}
}

// CWD returns the process's current working directory. Unlike the
// cloud-shell teacher this was adapted from, posh has no virtual
// filesystem: CWD is always os.Getwd(), and "cd" is the only built-in
// allowed to change it (via os.Chdir).
func (s *State) CWD() (string, error) {
	return os.Getwd()
}

// Chdir changes the process's current working directory and records
// the previous one for "cd -". Spec invariant (spec.md §8 property 4):
// this must only ever be called by the "cd" built-in when running
// outside a pipeline stage; a pipeline stage that calls it only affects
// its own child process, never the parent shell.
func (s *State) Chdir(dir string) error {
	prev, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := os.Chdir(dir); err != nil {
		return err
	}
	s.PreviousDir = prev
	return nil
}
