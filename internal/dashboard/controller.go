// internal/dashboard/controller.go
package dashboard

import (
	"fmt"

	"github.com/mwiater/spacexdash/internal/charts"
	"github.com/mwiater/spacexdash/internal/launches"
)

// Selection is the current value of the two controls.
type Selection struct {
	Site string  `json:"site"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (s Selection) String() string {
	return fmt.Sprintf("site=%q payload=(%g, %g)", s.Site, s.Low, s.High)
}

// Output identifies a chart container that an event invalidates.
type Output uint8

const (
	OutputPie Output = 1 << iota
	OutputScatter
)

// Has reports whether o includes other.
func (o Output) Has(other Output) bool { return o&other != 0 }

// Event is a single control change.
type Event interface {
	apply(Selection) Selection
	Outputs() Output
}

// SiteSelected is emitted when the dropdown value changes.
type SiteSelected struct {
	Site string
}

func (e SiteSelected) apply(s Selection) Selection {
	s.Site = e.Site
	return s
}

// Outputs reports both charts, since each depends on the dropdown.
func (SiteSelected) Outputs() Output { return OutputPie | OutputScatter }

// PayloadRangeChanged is emitted when the slider moves.
type PayloadRangeChanged struct {
	Low, High float64
}

func (e PayloadRangeChanged) apply(s Selection) Selection {
	s.Low, s.High = e.Low, e.High
	return s
}

// Outputs reports the scatter chart only.
func (PayloadRangeChanged) Outputs() Output { return OutputScatter }

// Update is the result of dispatching one event. Charts that the event does
// not invalidate are nil.
type Update struct {
	Selection Selection
	Pie       *charts.ChartSpec
	Scatter   *charts.ChartSpec
}

// Controller computes chart specs from a read-only dataset.
type Controller struct {
	data   *launches.Dataset
	layout Layout
}

// NewController returns a controller over ds using layout.
func NewController(ds *launches.Dataset, layout Layout) *Controller {
	return &Controller{data: ds, layout: layout}
}

// Layout returns the static page layout.
func (c *Controller) Layout() Layout { return c.layout }

// Dataset returns the dataset handle.
func (c *Controller) Dataset() *launches.Dataset { return c.data }

// Initial computes both charts for the layout's default selection.
func (c *Controller) Initial() Update {
	sel := c.layout.InitialSelection()
	pie := c.Pie(sel.Site)
	scatter := c.Scatter(sel.Site, sel.Low, sel.High)
	return Update{Selection: sel, Pie: &pie, Scatter: &scatter}
}

// Dispatch applies ev to sel and recomputes the charts ev invalidates.
func (c *Controller) Dispatch(sel Selection, ev Event) Update {
	next := ev.apply(sel)
	up := Update{Selection: next}
	outputs := ev.Outputs()
	if outputs.Has(OutputPie) {
		pie := c.Pie(next.Site)
		up.Pie = &pie
	}
	if outputs.Has(OutputScatter) {
		scatter := c.Scatter(next.Site, next.Low, next.High)
		up.Scatter = &scatter
	}
	return up
}

// Pie computes the success pie chart for a dropdown value.
func (c *Controller) Pie(site string) charts.ChartSpec {
	records := c.data.Records()
	if site == AllSites {
		totals := launches.AggregateSuccessBySite(records)
		return charts.BuildPieSpec(charts.SiteSlices(totals), charts.ModeAll, "")
	}
	counts := launches.OutcomeCountsForSite(records, site)
	return charts.BuildPieSpec(charts.OutcomeSlices(counts), charts.ModeSite, site)
}

// Scatter computes the payload scatter chart for a dropdown value and range.
func (c *Controller) Scatter(site string, low, high float64) charts.ChartSpec {
	records := c.data.Records()
	if site == AllSites {
		return charts.BuildScatterSpec(launches.FilterByPayload(records, low, high), charts.ModeAll, "")
	}
	bySite := launches.FilterBySite(records, site)
	return charts.BuildScatterSpec(launches.FilterByPayload(bySite, low, high), charts.ModeSite, site)
}

// SiteSummary is the per-site breakdown shown by the summary command.
type SiteSummary struct {
	Site      string
	Launches  int
	Successes int
}

// Rate is the success ratio in [0, 1].
func (s SiteSummary) Rate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// TotalSummary folds site rows into the All Sites row.
func TotalSummary(rows []SiteSummary) SiteSummary {
	total := SiteSummary{Site: AllSites}
	for _, r := range rows {
		total.Launches += r.Launches
		total.Successes += r.Successes
	}
	return total
}

// Summaries returns one row per site in dropdown order, then any sites that
// are in the data but not in the dropdown.
func (c *Controller) Summaries() []SiteSummary {
	records := c.data.Records()
	totals := launches.AggregateSuccessBySite(records)
	counts := launches.CountBySite(records)

	var out []SiteSummary
	seen := make(map[string]struct{})
	for _, opt := range c.layout.Dropdown.Options {
		if opt.Value == AllSites {
			continue
		}
		seen[opt.Value] = struct{}{}
		out = append(out, SiteSummary{Site: opt.Value, Launches: counts[opt.Value], Successes: totals[opt.Value]})
	}
	for _, site := range c.data.Sites() {
		if _, ok := seen[site]; ok {
			continue
		}
		out = append(out, SiteSummary{Site: site, Launches: counts[site], Successes: totals[site]})
	}
	return out
}
