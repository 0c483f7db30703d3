package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"justbench/internal/config"
)

// Driver orchestrates the full benchmark pipeline: compile every
// configured example first, then time each compiled binary. Any command
// failure aborts the pipeline; the error travels up so the exit-code
// decision is made exactly once, at the top of the program.
type Driver struct {
	exec Executor
	out  io.Writer
	cfg  *config.Config
}

func NewDriver(exec Executor, out io.Writer, cfg *config.Config) *Driver {
	return &Driver{exec: exec, out: out, cfg: cfg}
}

// Run executes both phases in order. No benchmark runs before every
// example has compiled. An empty example list performs no external
// invocations at all.
func (d *Driver) Run(ctx context.Context) (*Run, error) {
	total := len(d.cfg.Examples)

	fmt.Fprintln(d.out, "> Compiling examples")
	for i, ex := range d.cfg.Examples {
		fmt.Fprintf(d.out, ">>> Example '%s' (%d/%d)...\n", ex, i+1, total)
		slog.Debug("compiling example", "example", ex)
		if err := Compile(ctx, d.exec, d.cfg.Cargo, d.cfg.Root, d.cfg.Target, ex); err != nil {
			return nil, err
		}
	}

	run := &Run{
		Timestamp: time.Now(),
		Times:     d.cfg.Times,
	}

	fmt.Fprintln(d.out, "> Benchmarking examples")
	for i, ex := range d.cfg.Examples {
		fmt.Fprintf(d.out, ">>> Example '%s' (%d/%d)...\n", ex, i+1, total)
		slog.Debug("benchmarking example", "example", ex, "times", d.cfg.Times)
		report, err := Aggregate(ctx, d.exec, d.out, d.cfg.Root, d.cfg.Target, ex, d.cfg.Times)
		if err != nil {
			return nil, err
		}
		run.Reports = append(run.Reports, *report)
	}

	return run, nil
}
