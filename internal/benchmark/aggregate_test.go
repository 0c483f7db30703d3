package benchmark

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"justbench/internal/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	exec := &mockExec{elapsed: []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
	}}
	var out bytes.Buffer

	report, err := Aggregate(context.Background(), exec, &out, ".", "target", "section6-3-1", 3)
	require.NoError(t, err)

	assert.Len(t, exec.calls, 3)
	assert.Equal(t, "section6-3-1", report.Example)
	assert.Equal(t, []float64{10, 20, 30}, report.SamplesMs)
	assert.InDelta(t, 20.0, report.MeanMs, 1e-9)
	assert.InDelta(t, 66.6667, report.VarianceMs, 1e-4)
	assert.InDelta(t, 8.1650, report.StdDevMs, 1e-4)

	output := out.String()
	assert.Equal(t, 3, strings.Count(output, ">>>>> Run "))
	assert.Contains(t, output, ">>>>> Run 1/3... 10.00ms")
	assert.Contains(t, output, ">>>>> Run 3/3... 30.00ms")
	assert.Contains(t, output, ">>>>> Mean: 20.00ms, std dev: 8.16ms")
}

func TestAggregate_RunCountMatchesTimes(t *testing.T) {
	exec := &mockExec{}
	var out bytes.Buffer

	report, err := Aggregate(context.Background(), exec, &out, ".", "target", "dex", 10)
	require.NoError(t, err)

	assert.Len(t, exec.calls, 10)
	assert.Len(t, report.SamplesMs, 10)
	assert.Equal(t, 10, strings.Count(out.String(), ">>>>> Run "))
}

func TestAggregate_FailureAborts(t *testing.T) {
	exec := &mockExec{
		failOn: func(cmd runner.Command) error {
			return errors.New("boom")
		},
	}
	var out bytes.Buffer

	_, err := Aggregate(context.Background(), exec, &out, ".", "target", "dex", 5)
	require.Error(t, err)
	// First failure stops the sequence, no retries
	assert.Len(t, exec.calls, 1)
}
