package benchmark

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// Status classifies a mean-duration change against a threshold.
type Status string

const (
	StatusOK          Status = "OK"
	StatusRegression  Status = "REGRESSION"
	StatusImprovement Status = "IMPROVED"
	StatusNew         Status = "NEW"
)

type Comparison struct {
	Example     string
	MeanDiffPct float64 // Percentage change of the mean
	Status      Status
	Prev        Report
	Curr        Report
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %+.2f%% mean ms", c.Example, c.MeanDiffPct)
}

// Compare matches the current run's reports against a previous run by
// example name. Examples only present in the current run are marked NEW.
// A mean slower than the previous one by more than threshold percent is
// a regression; faster by more than threshold percent is an improvement.
func Compare(prev, curr Run, threshold float64) []Comparison {
	prevMap := make(map[string]Report)
	for _, r := range prev.Reports {
		prevMap[r.Example] = r
	}

	var comparisons []Comparison
	for _, c := range curr.Reports {
		comp := Comparison{
			Example: c.Example,
			Curr:    c,
			Status:  StatusNew,
		}

		if p, ok := prevMap[c.Example]; ok {
			comp.Prev = p
			comp.Status = StatusOK
			if p.MeanMs > 0 {
				comp.MeanDiffPct = ((c.MeanMs - p.MeanMs) / p.MeanMs) * 100
			}
			if comp.MeanDiffPct > threshold {
				comp.Status = StatusRegression
			} else if comp.MeanDiffPct < -threshold {
				comp.Status = StatusImprovement
			}
		}

		comparisons = append(comparisons, comp)
	}
	return comparisons
}

var statusStyles = map[Status]lipgloss.Style{
	StatusOK:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	StatusRegression:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	StatusImprovement: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	StatusNew:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// PrintComparison renders the comparison table.
func PrintComparison(w io.Writer, comparisons []Comparison) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "EXAMPLE\tMEAN MS\tDIFF %\tSTATUS")
	for _, c := range comparisons {
		diff := "-"
		if c.Status != StatusNew {
			diff = fmt.Sprintf("%+.2f%%", c.MeanDiffPct)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n",
			c.Example, c.Curr.MeanMs, diff, statusStyles[c.Status].Render(string(c.Status)))
	}
	tw.Flush()
}
