package shell

import "os"

// openOutput opens path per spec.md §4.F's file-open policy: truncate
// mode creates-or-truncates, append mode creates-or-seeks-to-end.
func openOutput(path string, mode Mode) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if mode == ModeAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(path, flags, 0o644)
}

// openInput opens path for the "<" stdin redirection (SPEC_FULL.md
// §4.C supplement).
func openInput(path string) (*os.File, error) {
	return os.Open(path)
}
