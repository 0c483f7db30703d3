package benchmark

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	prev := Run{Reports: []Report{
		{Example: "section6-3-1", MeanMs: 100},
		{Example: "section6-3-2", MeanMs: 100},
		{Example: "section6-3-3", MeanMs: 100},
	}}
	curr := Run{Reports: []Report{
		{Example: "section6-3-1", MeanMs: 105}, // within threshold
		{Example: "section6-3-2", MeanMs: 150}, // slower
		{Example: "section6-3-3", MeanMs: 50},  // faster
		{Example: "section6-3-4", MeanMs: 80},  // no previous data
	}}

	comps := Compare(prev, curr, 10.0)
	require.Len(t, comps, 4)

	assert.Equal(t, StatusOK, comps[0].Status)
	assert.InDelta(t, 5.0, comps[0].MeanDiffPct, 1e-9)

	assert.Equal(t, StatusRegression, comps[1].Status)
	assert.InDelta(t, 50.0, comps[1].MeanDiffPct, 1e-9)

	assert.Equal(t, StatusImprovement, comps[2].Status)
	assert.InDelta(t, -50.0, comps[2].MeanDiffPct, 1e-9)

	assert.Equal(t, StatusNew, comps[3].Status)
}

func TestCompare_ZeroPrevMean(t *testing.T) {
	prev := Run{Reports: []Report{{Example: "dex", MeanMs: 0}}}
	curr := Run{Reports: []Report{{Example: "dex", MeanMs: 10}}}

	comps := Compare(prev, curr, 10.0)
	require.Len(t, comps, 1)
	assert.Equal(t, StatusOK, comps[0].Status)
	assert.Equal(t, 0.0, comps[0].MeanDiffPct)
}

func TestPrintComparison(t *testing.T) {
	comps := []Comparison{
		{Example: "section6-3-1", Status: StatusOK, MeanDiffPct: 1.5, Curr: Report{MeanMs: 101.5}},
		{Example: "section6-3-2", Status: StatusNew, Curr: Report{MeanMs: 55}},
	}

	var out bytes.Buffer
	PrintComparison(&out, comps)

	output := out.String()
	assert.Contains(t, output, "EXAMPLE")
	assert.Contains(t, output, "section6-3-1")
	assert.Contains(t, output, "+1.50%")
	assert.Contains(t, output, "101.50")
	// NEW rows have no diff percentage
	assert.Contains(t, output, "-")
}

func TestComparisonString(t *testing.T) {
	c := Comparison{Example: "section6-3-1", MeanDiffPct: -3.25}
	assert.Equal(t, "section6-3-1: -3.25% mean ms", c.String())
}
