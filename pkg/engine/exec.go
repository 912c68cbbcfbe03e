package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

const (
	defaultAnalyzerBin = "apertium"
	defaultLookupBin   = "lt-proc"
)

// Exec runs the apertium and lt-proc binaries as subprocesses.
type Exec struct {
	AnalyzerBin string
	LookupBin   string
	log         *slog.Logger
}

// NewExec creates an Exec backend. Empty binary names fall back to the tools
// found on PATH.
func NewExec(analyzerBin, lookupBin string, logger *slog.Logger) *Exec {
	if analyzerBin == "" {
		analyzerBin = defaultAnalyzerBin
	}
	if lookupBin == "" {
		lookupBin = defaultLookupBin
	}
	return &Exec{
		AnalyzerBin: analyzerBin,
		LookupBin:   lookupBin,
		log:         logger.With("component", "engine"),
	}
}

// Analyze runs `apertium -d dir -f format name` with input on stdin.
func (e *Exec) Analyze(ctx context.Context, input string, mode Mode, format string) (string, error) {
	if format == "" {
		format = FormatTxt
	}
	e.log.InfoContext(ctx, "analyze",
		slog.String("mode", mode.Name),
		slog.String("dir", mode.Dir),
		slog.String("format", format),
		slog.Int("input_len", len(input)),
	)
	cmd := exec.CommandContext(ctx, e.AnalyzerBin, "-d", mode.Dir, "-f", format, mode.Name)
	return run(cmd, input)
}

// Lookup runs `lt-proc -b binary` inside dir with query on stdin.
func (e *Exec) Lookup(ctx context.Context, query, dir, binary string) (string, error) {
	e.log.DebugContext(ctx, "bilingual lookup", slog.String("dir", dir), slog.String("binary", binary))
	cmd := exec.CommandContext(ctx, e.LookupBin, "-b", binary)
	cmd.Dir = dir
	return run(cmd, query)
}

// run feeds input (newline terminated, as the tools expect a line) and
// returns stdout decoded as UTF-8 text.
func run(cmd *exec.Cmd, input string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(input + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return stdout.String(), &Error{
			Command:  cmd.Args[0],
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	return strings.ToValidUTF8(stdout.String(), "�"), nil
}
