// internal/dashboard/layout.go
// Package dashboard holds the dashboard's static layout and the dispatch rule
// that turns control changes into freshly computed charts.
package dashboard

import (
	"strconv"

	"github.com/mwiater/spacexdash/internal/appconfig"
	"github.com/mwiater/spacexdash/internal/launches"
)

// AllSites is the dropdown value that selects every launch site.
const AllSites = "All Sites"

// Element ids shared by the page markup and the callback endpoints.
const (
	SiteDropdownID   = "site-dropdown"
	PayloadSliderID  = "payload-slider"
	PieChartID       = "success-pie-chart"
	ScatterChartID   = "success-payload-scatter-chart"
	DashboardTitle   = "SpaceX Launch Records Dashboard"
	sitePlaceholder  = "Select Launch Site"
	siteLabel        = "Select Launch Site"
	payloadRangeText = "Payload range (Kg):"
)

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dropdown describes the launch site selector.
type Dropdown struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// RangeSlider describes the payload range control.
type RangeSlider struct {
	ID    string            `json:"id"`
	Label string            `json:"label"`
	Min   float64           `json:"min"`
	Max   float64           `json:"max"`
	Step  float64           `json:"step"`
	Marks map[string]string `json:"marks"`
	Value [2]float64        `json:"value"`
}

// Layout is the static page description.
type Layout struct {
	Title          string      `json:"title"`
	Dropdown       Dropdown    `json:"dropdown"`
	Slider         RangeSlider `json:"slider"`
	PieChartID     string      `json:"pieChartId"`
	ScatterChartID string      `json:"scatterChartId"`
}

// NewLayout builds the page layout. The slider starts at the dataset's
// payload extremes; sites falls back to the sites found in the data.
func NewLayout(ds *launches.Dataset, sites []string, slider appconfig.Slider) Layout {
	if len(sites) == 0 {
		sites = ds.Sites()
	}
	options := make([]Option, 0, len(sites)+1)
	options = append(options, Option{Label: AllSites, Value: AllSites})
	for _, site := range sites {
		options = append(options, Option{Label: site, Value: site})
	}

	marks := make(map[string]string)
	if slider.Step > 0 {
		for v := slider.Min; v <= slider.Max; v += slider.Step {
			label := strconv.FormatFloat(v, 'f', -1, 64)
			marks[label] = label
		}
	}

	return Layout{
		Title: DashboardTitle,
		Dropdown: Dropdown{
			ID:          SiteDropdownID,
			Label:       siteLabel,
			Options:     options,
			Value:       AllSites,
			Placeholder: sitePlaceholder,
			Searchable:  true,
		},
		Slider: RangeSlider{
			ID:    PayloadSliderID,
			Label: payloadRangeText,
			Min:   slider.Min,
			Max:   slider.Max,
			Step:  slider.Step,
			Marks: marks,
			Value: [2]float64{ds.MinPayload, ds.MaxPayload},
		},
		PieChartID:     PieChartID,
		ScatterChartID: ScatterChartID,
	}
}

// InitialSelection is the selection the page opens with.
func (l Layout) InitialSelection() Selection {
	return Selection{Site: l.Dropdown.Value, Low: l.Slider.Value[0], High: l.Slider.Value[1]}
}

// HasSite reports whether value is one of the dropdown options.
func (l Layout) HasSite(value string) bool {
	for _, opt := range l.Dropdown.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
