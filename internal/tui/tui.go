// internal/tui/tui.go
// Package tui provides a terminal front end for the launch dashboard. It
// drives the same dispatch rule as the web page.
package tui

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/spacexdash/internal/charts"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/logging"
	"github.com/mwiater/spacexdash/internal/util"
)

const (
	listWidth     = 30
	maxLabelRunes = 24
)

// model is the Bubble Tea model for the dashboard.
type model struct {
	ctrl     *dashboard.Controller
	slider   dashboard.RangeSlider
	sel      dashboard.Selection
	pie      *charts.ChartSpec
	scatter  *charts.ChartSpec
	siteList list.Model
	help     help.Model
	keys     keyMap
	width    int
	height   int
}

// item is a dropdown option in the site list.
type item struct {
	title string
	value string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// initialModel builds the model with both charts computed for the default selection.
func initialModel(ctrl *dashboard.Controller) *model {
	layout := ctrl.Layout()
	rows := ctrl.Summaries()
	summaries := make(map[string]dashboard.SiteSummary, len(rows)+1)
	for _, s := range rows {
		summaries[s.Site] = s
	}
	summaries[dashboard.AllSites] = dashboard.TotalSummary(rows)

	items := make([]list.Item, 0, len(layout.Dropdown.Options))
	for _, opt := range layout.Dropdown.Options {
		s := summaries[opt.Value]
		desc := fmt.Sprintf("%d launches, %d successful", s.Launches, s.Successes)
		items = append(items, item{title: opt.Label, value: opt.Value, desc: desc})
	}
	siteList := list.New(items, list.NewDefaultDelegate(), listWidth, 20)
	siteList.Title = layout.Dropdown.Label
	siteList.SetShowHelp(false)

	up := ctrl.Initial()
	return &model{
		ctrl:     ctrl,
		slider:   layout.Slider,
		sel:      up.Selection,
		pie:      up.Pie,
		scatter:  up.Scatter,
		siteList: siteList,
		help:     help.New(),
		keys:     defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// dispatch runs ev through the controller and keeps whichever charts it recomputed.
func (m *model) dispatch(ev dashboard.Event) {
	up := m.ctrl.Dispatch(m.sel, ev)
	m.sel = up.Selection
	if up.Pie != nil {
		m.pie = up.Pie
	}
	if up.Scatter != nil {
		m.scatter = up.Scatter
	}
	logging.LogEvent("tui dispatch %T -> %s", ev, m.sel)
}

// moveRange shifts the bounds by whole slider steps, clamped to the slider domain.
func (m *model) moveRange(lowSteps, highSteps float64) {
	low := clamp(m.sel.Low+lowSteps*m.slider.Step, m.slider.Min, m.slider.Max)
	high := clamp(m.sel.High+highSteps*m.slider.Step, m.slider.Min, m.slider.Max)
	if low == m.sel.Low && high == m.sel.High {
		return
	}
	m.dispatch(dashboard.PayloadRangeChanged{Low: low, High: high})
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.siteList.SetSize(listWidth, max(msg.Height-4, 6))
		return m, nil

	case tea.KeyMsg:
		if m.siteList.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if it, ok := m.siteList.SelectedItem().(item); ok && it.value != m.sel.Site {
				m.dispatch(dashboard.SiteSelected{Site: it.value})
			}
			return m, nil
		case key.Matches(msg, m.keys.LowDown):
			m.moveRange(-1, 0)
			return m, nil
		case key.Matches(msg, m.keys.LowUp):
			m.moveRange(1, 0)
			return m, nil
		case key.Matches(msg, m.keys.HighDown):
			m.moveRange(0, -1)
			return m, nil
		case key.Matches(msg, m.keys.HighUp):
			m.moveRange(0, 1)
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			initial := m.slider.Value
			if m.sel.Low != initial[0] || m.sel.High != initial[1] {
				m.dispatch(dashboard.PayloadRangeChanged{Low: initial[0], High: initial[1]})
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.siteList, cmd = m.siteList.Update(msg)
	return m, cmd
}

// View renders the site list beside the two charts, with the key help below.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("94")).Padding(0, 1)
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(m.ctrl.Layout().Title),
		badgeStyle.Render("Site: "+util.TruncateRunes(m.sel.Site, maxLabelRunes)),
		badgeStyle.Render(fmt.Sprintf("Payload: %g..%g kg", m.sel.Low, m.sel.High)),
	)

	chartWidth := max(m.width-listWidth-4, 20)
	panel := lipgloss.JoinVertical(lipgloss.Left,
		renderPie(m.pie, chartWidth),
		"",
		renderScatter(m.scatter, m.slider, chartWidth),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.siteList.View(),
		lipgloss.NewStyle().MarginLeft(2).Render(panel),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, m.help.View(m.keys))
}

// Run starts the terminal dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, ctrl *dashboard.Controller) error {
	p := tea.NewProgram(initialModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal dashboard: %w", err)
	}
	return nil
}
