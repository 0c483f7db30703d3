package benchmark

import (
	"context"
	"path/filepath"
	"time"

	"justbench/internal/runner"
	"justbench/internal/telemetry"
)

// Executor defines the interface for running a single external command.
type Executor interface {
	Run(ctx context.Context, cmd runner.Command) (*runner.Result, error)
}

// BinaryPath returns the expected location of the compiled release
// binary for an example under the target directory.
func BinaryPath(target, example string) string {
	return filepath.Join(target, "release", "examples", example)
}

// Measure executes the compiled binary for one example exactly once and
// returns the elapsed wall-clock time. The binary gets no arguments and
// no stdin; its output is captured and only surfaced on failure.
func Measure(ctx context.Context, exec Executor, root, target, example string) (time.Duration, error) {
	cmd := runner.Command{
		Program: BinaryPath(target, example),
		Dir:     root,
	}

	res, err := exec.Run(ctx, cmd)
	if err != nil {
		return 0, err
	}

	telemetry.TrackRun(example, res.Elapsed)
	return res.Elapsed, nil
}
