// internal/charts/spec.go
// Package charts turns filtered launch data into inert chart descriptions
// that the page, the terminal view and the PNG renderer all consume.
package charts

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mwiater/spacexdash/internal/launches"
)

// Kind identifies the chart type.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Mode selects between the all-sites view and a single-site view.
type Mode int

const (
	ModeAll Mode = iota
	ModeSite
)

// ChartSpec describes a chart independently of how it is drawn.
// Pie charts use Labels/Values; scatter charts use X/Y and optionally Groups.
type ChartSpec struct {
	Type   Kind      `json:"type" yaml:"type"`
	Title  string    `json:"title" yaml:"title"`
	Labels []string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Values []float64 `json:"values,omitempty" yaml:"values,omitempty"`
	X      []float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      []float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Groups []string  `json:"groups,omitempty" yaml:"groups,omitempty"`
	XTitle string    `json:"xTitle,omitempty" yaml:"xTitle,omitempty"`
	YTitle string    `json:"yTitle,omitempty" yaml:"yTitle,omitempty"`
	Empty  bool      `json:"empty" yaml:"empty"`
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string
	Value float64
}

// SiteSlices orders per-site success totals by site name.
func SiteSlices(totals launches.SiteTotals) []Slice {
	sites := make([]string, 0, len(totals))
	for site := range totals {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	slices := make([]Slice, 0, len(sites))
	for _, site := range sites {
		slices = append(slices, Slice{Label: site, Value: float64(totals[site])})
	}
	return slices
}

// OutcomeSlices orders outcome counts by count, largest first; ties go to the
// lower class.
func OutcomeSlices(counts launches.OutcomeCounts) []Slice {
	classes := make([]int, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		ci, cj := counts[classes[i]], counts[classes[j]]
		if ci != cj {
			return ci > cj
		}
		return classes[i] < classes[j]
	})

	slices := make([]Slice, 0, len(classes))
	for _, class := range classes {
		slices = append(slices, Slice{Label: strconv.Itoa(class), Value: float64(counts[class])})
	}
	return slices
}

// PieTitle returns the pie chart title for the given mode.
func PieTitle(mode Mode, site string) string {
	if mode == ModeAll {
		return "Pie Chart of Success Rates for all Launch Sites"
	}
	return fmt.Sprintf("Pie Chart of Success Rates for site %s", site)
}

// ScatterTitle returns the scatter chart title for the given mode.
func ScatterTitle(mode Mode, site string) string {
	if mode == ModeAll {
		return "Success by Payload Mass for All Sites"
	}
	return fmt.Sprintf("Success by Payload Mass for %s", site)
}

// BuildPieSpec builds a pie chart from ordered slices.
func BuildPieSpec(slices []Slice, mode Mode, site string) ChartSpec {
	spec := ChartSpec{
		Type:   KindPie,
		Title:  PieTitle(mode, site),
		Labels: make([]string, 0, len(slices)),
		Values: make([]float64, 0, len(slices)),
	}
	total := 0.0
	for _, s := range slices {
		spec.Labels = append(spec.Labels, s.Label)
		spec.Values = append(spec.Values, s.Value)
		total += s.Value
	}
	spec.Empty = total <= 0
	return spec
}

// BuildScatterSpec plots payload mass against outcome class for records.
func BuildScatterSpec(records []launches.Record, mode Mode, site string) ChartSpec {
	spec := ChartSpec{
		Type:   KindScatter,
		Title:  ScatterTitle(mode, site),
		X:      make([]float64, 0, len(records)),
		Y:      make([]float64, 0, len(records)),
		XTitle: launches.ColumnPayloadMass,
		YTitle: launches.ColumnClass,
		Empty:  len(records) == 0,
	}
	grouped := false
	for _, r := range records {
		if r.BoosterCategory != "" {
			grouped = true
			break
		}
	}
	for _, r := range records {
		spec.X = append(spec.X, r.PayloadMassKg)
		spec.Y = append(spec.Y, float64(r.Class))
		if grouped {
			spec.Groups = append(spec.Groups, r.BoosterCategory)
		}
	}
	return spec
}

// Points returns the number of plotted values.
func (s ChartSpec) Points() int {
	if s.Type == KindPie {
		return len(s.Values)
	}
	return len(s.X)
}
