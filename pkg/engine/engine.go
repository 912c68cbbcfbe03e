// Package engine invokes the analysis and bilingual lookup tools that the
// rest of the module treats as black boxes.
package engine

import (
	"context"
	"errors"
	"fmt"
)

// FormatTxt is the plain-text deformatter.
const FormatTxt = "txt"

var (
	// ErrEngineFailure marks a tool that exited unsuccessfully.
	ErrEngineFailure = errors.New("external engine failure")
	// ErrUnsupported is returned by backends that do not implement an operation.
	ErrUnsupported = errors.New("operation not supported by engine")
)

// Mode names a configuration bundle: the directory holding the compiled data
// and the mode (pipeline) to run from it.
type Mode struct {
	Dir  string
	Name string
}

func (m Mode) String() string { return m.Dir + ":" + m.Name }

// Engine runs text through an analysis mode or a bilingual dictionary.
type Engine interface {
	// Analyze pipes input through mode and returns the raw stream output.
	Analyze(ctx context.Context, input string, mode Mode, format string) (string, error)
	// Lookup runs query through the bilingual transducer binary found in dir.
	Lookup(ctx context.Context, query, dir, binary string) (string, error)
}

// Error describes a failed tool invocation.
type Error struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: exit %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s: exit %d: %v", e.Command, e.ExitCode, e.Err)
}

// Unwrap lets errors.Is match ErrEngineFailure as well as the underlying cause.
func (e *Error) Unwrap() []error { return []error{ErrEngineFailure, e.Err} }
