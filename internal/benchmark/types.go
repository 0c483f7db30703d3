package benchmark

import "time"

// Report represents the aggregated timings for a single example.
type Report struct {
	Example    string    `json:"example"`
	SamplesMs  []float64 `json:"samples_ms"`
	MeanMs     float64   `json:"mean_ms"`
	VarianceMs float64   `json:"variance_ms"`
	StdDevMs   float64   `json:"std_dev_ms"`
}

// Run represents a collection of example reports from a single driver
// execution.
type Run struct {
	Timestamp time.Time `json:"timestamp"`
	Commit    string    `json:"commit,omitempty"` // Git commit hash
	Times     int       `json:"times"`
	Reports   []Report  `json:"reports"`
}
