package render

import (
	"strings"
	"unicode/utf8"

	"stravaytd/internal/core"
)

const barWidth = 28

// Column describes one table cell source.
type Column struct {
	Value func(core.CategorySummary) string
	Right bool
}

// Table lays the rows out with aligned, separator-joined columns.
func Table(rows []core.CategorySummary, columns []Column, sep string) string {
	cells := make([][]string, len(rows))
	widths := make([]int, len(columns))
	for i, row := range rows {
		cells[i] = make([]string, len(columns))
		for j, col := range columns {
			cell := col.Value(row)
			cells[i][j] = cell
			if w := utf8.RuneCountInString(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var b strings.Builder
	for i := range cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range cells[i] {
			if j > 0 {
				b.WriteString(sep)
			}
			pad := strings.Repeat(" ", widths[j]-utf8.RuneCountInString(cell))
			if columns[j].Right {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
	}
	return b.String()
}

// Summary renders the ranked category rows the way the published report
// shows them: name, distance, time, share-of-time bar.
func Summary(rows []core.CategorySummary, units string) string {
	columns := []Column{
		{Value: func(r core.CategorySummary) string { return DisplayName(r.Category) }},
		{Value: func(r core.CategorySummary) string { return FormatDistance(r.DistanceMeters, units) }, Right: true},
		{Value: func(r core.CategorySummary) string { return FormatDuration(r.TimeSeconds) }},
		{Value: func(r core.CategorySummary) string { return BarChart(r.Percent, barWidth) }},
	}
	return Table(rows, columns, "  ")
}
