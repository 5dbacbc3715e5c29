package viz

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/numtrace/internal/export"
	"github.com/san-kum/numtrace/internal/numerics"
)

func cells[S any](steps []S, cols []export.Column[S], digits int) ([]string, [][]string) {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}

	rows := make([][]string, len(steps))
	for i, s := range steps {
		row := make([]string, len(cols))
		for j, c := range cols {
			v := c.Value(s)
			if c.Integer {
				row[j] = strconv.Itoa(int(v))
				continue
			}
			row[j] = export.FormatValue(v, digits)
		}
		rows[i] = row
	}
	return headers, rows
}

// render draws a bordered table. The row at highlight, if any, is drawn in
// the highlight color.
func render(headers []string, rows [][]string, theme Theme, highlight int, highlightColor lipgloss.Color) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Header).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1).Align(lipgloss.Right)
	markStyle := cellStyle.Foreground(highlightColor).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == highlight:
				return markStyle
			}
			return cellStyle
		})

	return t.String()
}

// ODETable renders every record of t, rounded to digits.
func ODETable(t *numerics.ODETrace, digits int, theme Theme) string {
	headers, rows := cells(t.Steps, export.ODEColumns(t.Method), digits)
	return render(headers, rows, theme, -2, theme.Highlight)
}

// RootTable renders the iterations of t. The last row is marked green when
// the iteration converged and amber when it stopped at the limit.
func RootTable(t *numerics.RootTrace, digits int, theme Theme) string {
	headers, rows := cells(t.Steps, export.RootColumns(), digits)
	color := theme.Warning
	if t.Converged {
		color = theme.Success
	}
	return render(headers, rows, theme, len(rows)-1, color)
}

// RootStatus is a one-line outcome of a Newton run.
func RootStatus(t *numerics.RootTrace, digits int) string {
	root := export.FormatValue(t.Root(), digits)
	if t.Converged {
		return StatusConverged.Render("converged") + " " + Metric("root", root) + " " +
			Metric("iterations", strconv.Itoa(t.Len()))
	}
	return StatusStopped.Render("not converged") + " " + Metric("last x", root) + " " +
		Metric("iterations", strconv.Itoa(t.Len()))
}
