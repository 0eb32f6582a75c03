// internal/tui/view.go
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/spacexdash/internal/charts"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/util"
)

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	axisStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pointStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	slicePalette    = []lipgloss.Color{"33", "40", "214", "196", "141", "37", "208", "245"}
)

const emptyChartText = "No matching launches"

// renderPie draws one percentage bar per pie slice.
func renderPie(spec *charts.ChartSpec, width int) string {
	if spec == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(chartTitleStyle.Render(spec.Title))
	b.WriteString("\n")
	if spec.Empty {
		b.WriteString(emptyStyle.Render(emptyChartText))
		return b.String()
	}

	total := 0.0
	for _, v := range spec.Values {
		total += v
	}
	barMax := max(width-maxLabelRunes-12, 10)
	for i, label := range spec.Labels {
		share := spec.Values[i] / total
		bar := strings.Repeat("█", int(math.Round(share*float64(barMax))))
		style := lipgloss.NewStyle().Foreground(slicePalette[i%len(slicePalette)])
		fmt.Fprintf(&b, "%-*s %s %5.1f%%\n", maxLabelRunes+1, util.TruncateRunes(label, maxLabelRunes), style.Render(bar), share*100)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderScatter bins the points into a two-row grid, one row per outcome class.
// A cell shows how many launches fell into its payload bucket.
func renderScatter(spec *charts.ChartSpec, slider dashboard.RangeSlider, width int) string {
	if spec == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(chartTitleStyle.Render(spec.Title))
	b.WriteString("\n")
	if spec.Empty {
		b.WriteString(emptyStyle.Render(emptyChartText))
		return b.String()
	}

	cols := max(width-6, 10)
	lo, hi := slider.Min, slider.Max
	for _, x := range spec.X {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	// rows[0] is class 1, rows[1] is class 0.
	rows := [2][]int{make([]int, cols), make([]int, cols)}
	for i, x := range spec.X {
		col := int((x - lo) / span * float64(cols-1))
		col = min(max(col, 0), cols-1)
		row := 1
		if spec.Y[i] >= 1 {
			row = 0
		}
		rows[row][col]++
	}

	for r, label := range []string{"1", "0"} {
		b.WriteString(axisStyle.Render(label + " │"))
		for _, n := range rows[r] {
			b.WriteString(cell(n))
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render("  └" + strings.Repeat("─", cols)))
	b.WriteString("\n")

	left := strconv.FormatFloat(lo, 'f', -1, 64)
	right := strconv.FormatFloat(hi, 'f', -1, 64)
	gap := max(cols-len(left)-len(right), 1)
	b.WriteString(axisStyle.Render("   " + left + strings.Repeat(" ", gap) + right))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(fmt.Sprintf("   %s vs %s, %d launches", spec.XTitle, spec.YTitle, len(spec.X))))
	return b.String()
}

func cell(n int) string {
	switch {
	case n == 0:
		return axisStyle.Render("·")
	case n == 1:
		return pointStyle.Render("o")
	case n < 10:
		return pointStyle.Render(strconv.Itoa(n))
	default:
		return pointStyle.Render("+")
	}
}
