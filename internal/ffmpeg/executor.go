package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Runner runs one ffmpeg command with stdin attached.
type Runner interface {
	Run(ctx context.Context, args []string, stdin io.Reader) ExecResult
}

// Executor is the os/exec Runner. When Verbose is set, stderr is tee'd to
// os.Stderr in real time; otherwise it is captured silently for retry
// classification.
type Executor struct {
	Verbose bool
}

// Run implements Runner.
func (e Executor) Run(ctx context.Context, args []string, stdin io.Reader) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = stdin

	var stderrBuf bytes.Buffer
	if e.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// Available reports whether ffmpeg is on PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}
