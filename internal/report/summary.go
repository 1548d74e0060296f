package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// SummaryOptions controls the console summary.
type SummaryOptions struct {
	Color   bool
	Metrics []string // columns to show, default every metric in the document
}

var headerStyle = color.Style{color.FgCyan, color.OpBold}

// WriteSummary prints one row per benchmark and one column per metric. Columns are
// aligned by display width so wide benchmark names do not break the layout.
func WriteSummary(w io.Writer, doc *Document, opts SummaryOptions) error {
	metrics := opts.Metrics
	if len(metrics) == 0 {
		metrics = doc.Metrics()
	}

	header := append([]string{"benchmark"}, metrics...)
	rows := make([][]string, 0, doc.Len())
	for _, name := range doc.Names() {
		s, _ := doc.Get(name)
		row := []string{name}
		for _, m := range metrics {
			if v, ok := s[m]; ok {
				row = append(row, fmt.Sprintf("%.2f", v))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	line := formatRow(header, widths)
	if opts.Color {
		line = headerStyle.Sprint(line)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(w, formatRow(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

// formatRow left-aligns the first cell and right-aligns the numeric cells.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == 0 {
			parts[i] = runewidth.FillRight(cell, widths[i])
		} else {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
