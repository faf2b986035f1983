// Package shell runs user-supplied hook commands for the watch loop.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"go.pindown.dev/pindown/internal/core/ports"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new shell runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the command with the inherited environment plus extraEnv,
// streaming stdout and stderr line by line through the logger.
func (r *Runner) Run(ctx context.Context, command []string, extraEnv map[string]string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // user provided command
	cmd.Env = mergeEnvironment(os.Environ(), extraEnv)

	stdout := &lineWriter{logger: r.logger}
	stderr := &lineWriter{logger: r.logger, stderr: true}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stdout.flush()
	stderr.flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// lineWriter buffers command output and logs complete lines. Stdout maps
// to Info, stderr to Warn, since tools routinely use stderr for progress.
type lineWriter struct {
	logger  ports.Logger
	stderr  bool
	partial []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.partial = append(w.partial, p...)
	for {
		idx := bytes.IndexByte(w.partial, '\n')
		if idx < 0 {
			return len(p), nil
		}
		w.emit(w.partial[:idx])
		w.partial = w.partial[idx+1:]
	}
}

func (w *lineWriter) flush() {
	if len(w.partial) > 0 {
		w.emit(w.partial)
		w.partial = nil
	}
}

func (w *lineWriter) emit(line []byte) {
	msg := strings.TrimRight(string(line), "\r")
	if msg == "" {
		return
	}
	if w.stderr {
		w.logger.Warn(msg)
	} else {
		w.logger.Info(msg)
	}
}

// mergeEnvironment appends extra variables to the base environment,
// replacing any base entries with the same name.
func mergeEnvironment(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}

	merged := make([]string, 0, len(base)+len(extra))
	for _, entry := range base {
		key, _, ok := strings.Cut(entry, "=")
		if ok {
			if _, shadowed := extra[key]; shadowed {
				continue
			}
		}
		merged = append(merged, entry)
	}
	for key, value := range extra {
		merged = append(merged, key+"="+value)
	}
	return merged
}
