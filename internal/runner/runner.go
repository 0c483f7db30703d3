// Package runner launches external commands, captures their output in
// full, and reports elapsed wall-clock time and exit status.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// execCommand allows mocking process creation in tests.
var execCommand = exec.CommandContext

// Command is a fully resolved external invocation: the program, its
// arguments, and the working directory it must run in. The directory is
// explicit so no global chdir is ever needed.
type Command struct {
	Program string
	Args    []string
	Dir     string
}

// String renders the command in shell-quoted form.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Program}, c.Args...)...)
}

// Result holds everything observed from one completed process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// ExitError reports a command that terminated with a non-zero exit code.
// The captured streams ride along so the caller can print full
// diagnostics before deciding to abort.
type ExitError struct {
	Cmd    Command
	Code   int
	Stdout string
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %s failed with non-zero exit code %d", e.Cmd, e.Code)
}

const ruleLine = "--------------------------------------------------------------------------------"

// Diagnostic formats the failing command, its exit code, and both
// captured streams separated by rule lines.
func (e *ExitError) Diagnostic() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ERROR: Command %s failed with non-zero exit code %d\n", e.Cmd, e.Code)
	fmt.Fprintf(&b, "\nstdout:\n%s\n%s\n%s\n", ruleLine, e.Stdout, ruleLine)
	fmt.Fprintf(&b, "\nstderr:\n%s\n%s\n%s\n", ruleLine, e.Stderr, ruleLine)
	return b.String()
}

// Runner executes commands sequentially. A zero Timeout means commands
// may run forever.
type Runner struct {
	Timeout time.Duration
}

func New(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout}
}

// Run starts cmd, blocks until it terminates, and returns the captured
// output along with the elapsed wall-clock time. A non-zero exit code is
// returned as *ExitError; the error is never recovered here, the single
// exit-code decision belongs to the caller at the top of the program.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := execCommand(ctx, cmd.Program, cmd.Args...)
	c.Dir = cmd.Dir

	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf

	slog.Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir)

	start := time.Now()
	err := c.Run()
	elapsed := time.Since(start)

	res := &Result{
		Stdout:  outBuf.String(),
		Stderr:  errBuf.String(),
		Elapsed: elapsed,
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, fmt.Errorf("command %s timed out after %v", cmd, r.Timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExitError{
				Cmd:    cmd,
				Code:   res.ExitCode,
				Stdout: res.Stdout,
				Stderr: res.Stderr,
			}
		}
		return res, fmt.Errorf("failed to start command %s: %w", cmd, err)
	}

	slog.Debug("command finished", "cmd", cmd.Program, "elapsed", elapsed)
	return res, nil
}
