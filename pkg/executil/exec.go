// Package executil runs and launches external programs such as the media
// player and the browser opener.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

const maxStderrLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

func (w *limitedWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.TrimSpace(w.buf.String())
}

// Process is a running program started by an Executor.
type Process interface {
	// Wait blocks until the program exits. A non-zero exit carries the
	// program's stderr, capped at 500 bytes, in the error message.
	Wait() error
	// Kill terminates the program.
	Kill() error
	// Pid returns the operating system process id.
	Pid() int
}

// Executor runs external programs.
type Executor interface {
	// Run executes a command to completion and returns its combined output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// Start launches a long-running command without waiting for it.
	Start(ctx context.Context, cmd string, args ...string) (Process, error)
}

// RealExecutor calls actual programs.
type RealExecutor struct{}

// Run executes a command and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, cmd, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out, nil
}

// Start launches cmd. Stdout is discarded; stderr is kept for the error
// returned by Wait.
func (e *RealExecutor) Start(ctx context.Context, cmd string, args ...string) (Process, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	stderr := &limitedWriter{max: maxStderrLen}
	c.Stdout = io.Discard
	c.Stderr = stderr
	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", cmd, err)
	}
	return &process{cmd: c, stderr: stderr}, nil
}

type process struct {
	cmd    *exec.Cmd
	stderr *limitedWriter
}

// Wait preserves the original *exec.ExitError via wrapping so callers can
// inspect exit codes with errors.As.
func (p *process) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		if msg := p.stderr.String(); msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}
	return nil
}

func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}
