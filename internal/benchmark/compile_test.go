package benchmark

import (
	"context"
	"testing"

	"justbench/internal/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand([]string{"cargo", "+nightly"}, "/proj", "/tmp/out", "section6-3-1")

	tokens := append([]string{cmd.Program}, cmd.Args...)
	assert.Equal(t, []string{
		"cargo", "+nightly",
		"build",
		"--release",
		"--target-dir", "/tmp/out",
		"--features", "dataplane,log,serde,slick",
		"--example", "section6-3-1",
	}, tokens)
	assert.Equal(t, "/proj", cmd.Dir)
}

func TestBuildCommand_PlainCargo(t *testing.T) {
	cmd := BuildCommand([]string{"cargo"}, ".", "target", "dex")

	assert.Equal(t, "cargo", cmd.Program)
	assert.Equal(t, "build", cmd.Args[0])
	assert.Equal(t, "dex", cmd.Args[len(cmd.Args)-1])
}

func TestCompile(t *testing.T) {
	exec := &mockExec{}

	err := Compile(context.Background(), exec, []string{"cargo"}, "/proj", "/proj/target", "section6-3-2")
	require.NoError(t, err)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "cargo", exec.calls[0].Program)
	assert.Contains(t, exec.calls[0].Args, "--example")
	assert.Contains(t, exec.calls[0].Args, "section6-3-2")
}

func TestCompile_Failure(t *testing.T) {
	exec := &mockExec{
		failOn: func(cmd runner.Command) error {
			return &runner.ExitError{Cmd: cmd, Code: 2, Stderr: "error: no such example"}
		},
	}

	err := Compile(context.Background(), exec, []string{"cargo"}, ".", "target", "nope")
	require.Error(t, err)

	var exitErr *runner.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
