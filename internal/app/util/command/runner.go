// Package command runs external tools (yt-dlp, ffmpeg, ffprobe, whisper-cli)
// behind an interface so wrappers can be tested without the binaries.
package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultWaitDelay bounds how long Wait blocks on I/O after the context kills
// the child's process group.
const DefaultWaitDelay = 5 * time.Second

// maxStderr is how much trailing stderr is kept for error classification.
const maxStderr = 64 * 1024

// Runner defines the interface for running external commands.
// This allows mocking exec.Command in tests.
type Runner interface {
	// Run executes the command, discarding stdout.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Error is returned when a command fails to start or exits non-zero.
type Error struct {
	Name   string
	Err    error
	Stderr string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Name, e.Err)
	if tail := LastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Stderr returns the captured stderr of a failed command, or "".
func Stderr(err error) string {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Stderr
	}
	return ""
}

// LastLine returns the last non-empty line of s.
func LastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// ExecRunner is the production implementation using os/exec
type ExecRunner struct {
	WaitDelay time.Duration
}

// NewExecRunner returns an ExecRunner with DefaultWaitDelay.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{WaitDelay: DefaultWaitDelay}
}

// Run executes a command and returns any error
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.run(ctx, false, name, args...)
	return err
}

// Output executes a command and returns its output
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.run(ctx, true, name, args...)
}

func (r *ExecRunner) run(ctx context.Context, capture bool, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = r.WaitDelay

	stderr := &tailBuffer{max: maxStderr}
	cmd.Stderr = stderr

	var stdout strings.Builder
	if capture {
		cmd.Stdout = &stdout
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return nil, &Error{Name: name, Err: err, Stderr: stderr.String()}
	}
	return []byte(stdout.String()), nil
}

// tailBuffer keeps only the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
