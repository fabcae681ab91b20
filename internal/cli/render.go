package cli

import (
	"fmt"
	"strings"

	"finsight/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	barStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderResult renders a full metric result: headline, table, and chart.
func RenderResult(res model.MetricResult) string {
	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(headerStyle.Render(res.Headline))
	b.WriteString("\n\n")

	if len(res.Table) > 0 {
		rows := make([][]string, 0, len(res.Table))
		for _, r := range res.Table {
			rows = append(rows, []string{r.Label, r.Value})
		}
		b.WriteString(RenderTable(Table{Rows: rows}))
	}

	if res.Chart != nil {
		b.WriteString("\n")
		b.WriteString(RenderChart(*res.Chart, 40))
	}

	return b.String()
}

// RenderTable renders a bordered table with optional headers.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeBorder := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	writeBorder("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			padded := fmt.Sprintf(" %-*s ", widths[i], h)
			b.WriteString(headerStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		writeBorder("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			writeBorder("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	writeBorder("╰", "┴", "╯")

	return b.String()
}

// RenderChart renders a chart spec as text: horizontal bars for bar
// charts, a labeled sparkline for line charts.
func RenderChart(spec model.ChartSpec, barWidth int) string {
	if len(spec.Points) == 0 {
		return ""
	}

	var b strings.Builder
	if spec.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(spec.Title))
		b.WriteString("\n")
	}

	switch spec.Type {
	case model.ChartLine:
		values := make([]float64, len(spec.Points))
		for i, p := range spec.Points {
			values[i] = p.Value
		}
		b.WriteString("  ")
		b.WriteString(barStyle.Render(RenderSparkline(values)))
		b.WriteString("\n  ")
		b.WriteString(mutedStyle.Render(spec.Points[0].Label + " … " + spec.Points[len(spec.Points)-1].Label))
		b.WriteString("\n")
	default:
		labelW := 0
		maxVal := 0.0
		for _, p := range spec.Points {
			if len(p.Label) > labelW {
				labelW = len(p.Label)
			}
			if p.Value > maxVal {
				maxVal = p.Value
			}
		}
		if maxVal <= 0 {
			maxVal = 1
		}
		for _, p := range spec.Points {
			barLen := int(p.Value / maxVal * float64(barWidth))
			if barLen < 0 {
				barLen = 0
			}
			b.WriteString(fmt.Sprintf("  %s %s\n",
				mutedStyle.Render(fmt.Sprintf("%-*s", labelW, p.Label)),
				barStyle.Render(strings.Repeat("█", barLen))))
		}
	}

	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}
