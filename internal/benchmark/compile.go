package benchmark

import (
	"context"

	"justbench/internal/runner"
	"justbench/internal/telemetry"
)

// BuildFeatures is the fixed feature set every example is compiled with.
const BuildFeatures = "dataplane,log,serde,slick"

// BuildCommand constructs the build-tool invocation that compiles one
// example in release mode into the target directory. cargo must hold at
// least one token (the program itself); extra tokens become leading
// arguments, so "cargo +nightly" works as expected.
func BuildCommand(cargo []string, root, target, example string) runner.Command {
	args := append([]string{}, cargo[1:]...)
	args = append(args,
		"build",
		"--release",
		"--target-dir", target,
		"--features", BuildFeatures,
		"--example", example,
	)
	return runner.Command{
		Program: cargo[0],
		Args:    args,
		Dir:     root,
	}
}

// Compile builds one example. Failure carries the full captured build
// output via the executor's error.
func Compile(ctx context.Context, exec Executor, cargo []string, root, target, example string) error {
	_, err := exec.Run(ctx, BuildCommand(cargo, root, target, example))
	telemetry.TrackBuildResult(example, err == nil)
	return err
}
