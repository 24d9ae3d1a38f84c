package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"bench-go/internal/bench"
)

// Reporter renders comparison results to a terminal
type Reporter struct {
	out     io.Writer
	verbose bool
}

// NewReporter creates a reporter writing to out. Verbose mode prints the
// per-benchmark detail blocks after the table.
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// PrintComparison renders the side-by-side table, totals, and verdict
func (r *Reporter) PrintComparison(cmp *bench.Comparison) {
	header := color.New(color.FgCyan, color.Bold)
	winner := color.New(color.FgGreen, color.Bold)

	header.Fprintf(r.out, "\nCodebase comparison (run %s)\n", cmp.RunID)
	fmt.Fprintf(r.out, "  [1] %s\n  [2] %s\n\n", cmp.Codebase1, cmp.Codebase2)

	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BENCHMARK\tWEIGHT\t[1]\t[2]")
	for _, row := range cmp.Rows {
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\n",
			row.Name, row.Weight, row.Result1.FormatScore(), row.Result2.FormatScore())
	}
	fmt.Fprintf(w, "TOTAL\t\t%.2f\t%.2f\n", cmp.Total1, cmp.Total2)
	w.Flush()

	fmt.Fprintln(r.out)
	switch {
	case cmp.Total1 > cmp.Total2:
		winner.Fprintf(r.out, "Codebase 1 wins by %.2f points.\n", cmp.Total1-cmp.Total2)
	case cmp.Total2 > cmp.Total1:
		winner.Fprintf(r.out, "Codebase 2 wins by %.2f points.\n", cmp.Total2-cmp.Total1)
	default:
		fmt.Fprintln(r.out, "Dead heat.")
	}
	fmt.Fprintf(r.out, "Completed in %s.\n", cmp.Elapsed.Round(10*time.Millisecond))

	if r.verbose {
		r.printDetails(cmp)
	}
}

func (r *Reporter) printDetails(cmp *bench.Comparison) {
	section := color.New(color.FgYellow, color.Bold)

	for _, row := range cmp.Rows {
		section.Fprintf(r.out, "\n== %s ==\n", row.Name)
		fmt.Fprintf(r.out, "[1] %s\n", row.Result1.FormatScore())
		for _, d := range row.Result1.Details {
			fmt.Fprintf(r.out, "    %s\n", d)
		}
		fmt.Fprintf(r.out, "[2] %s\n", row.Result2.FormatScore())
		for _, d := range row.Result2.Details {
			fmt.Fprintf(r.out, "    %s\n", d)
		}
	}
}

// exportRow is the per-benchmark shape of the JSON export
type exportRow struct {
	Score1   float64  `json:"score1"`
	Score2   float64  `json:"score2"`
	Weight   float64  `json:"weight"`
	Details1 []string `json:"details1"`
	Details2 []string `json:"details2"`
}

type exportDoc struct {
	RunID     string               `json:"run_id"`
	Codebase1 string               `json:"codebase1"`
	Codebase2 string               `json:"codebase2"`
	Total1    float64              `json:"total1"`
	Total2    float64              `json:"total2"`
	Rows      map[string]exportRow `json:"benchmarks"`
}

// ExportJSON writes the comparison to a file as indented JSON
func ExportJSON(cmp *bench.Comparison, path string) error {
	doc := exportDoc{
		RunID:     cmp.RunID,
		Codebase1: cmp.Codebase1,
		Codebase2: cmp.Codebase2,
		Total1:    cmp.Total1,
		Total2:    cmp.Total2,
		Rows:      make(map[string]exportRow, len(cmp.Rows)),
	}
	for _, row := range cmp.Rows {
		doc.Rows[row.Name] = exportRow{
			Score1:   row.Score1,
			Score2:   row.Score2,
			Weight:   row.Weight,
			Details1: row.Result1.Details,
			Details2: row.Result2.Details,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return nil
}
