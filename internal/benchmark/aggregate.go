package benchmark

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Aggregate benchmarks one example the given number of times
// sequentially and collates the statistics. Each run's timing is printed
// as it completes, followed by a summary line with the mean and the
// population standard deviation, all in milliseconds to two decimals.
func Aggregate(ctx context.Context, exec Executor, w io.Writer, root, target, example string, times int) (*Report, error) {
	samples := make([]float64, 0, times)
	for t := 0; t < times; t++ {
		fmt.Fprintf(w, ">>>>> Run %d/%d... ", t+1, times)
		elapsed, err := Measure(ctx, exec, root, target, example)
		if err != nil {
			fmt.Fprintln(w)
			return nil, err
		}
		ms := float64(elapsed) / float64(time.Millisecond)
		samples = append(samples, ms)
		fmt.Fprintf(w, "%.2fms\n", ms)
	}

	report := &Report{
		Example:    example,
		SamplesMs:  samples,
		MeanMs:     Mean(samples),
		VarianceMs: PopulationVariance(samples),
		StdDevMs:   StdDev(samples),
	}
	fmt.Fprintf(w, ">>>>> Mean: %.2fms, std dev: %.2fms\n", report.MeanMs, report.StdDevMs)
	return report, nil
}
