// internal/tui/tui_test.go
package tui

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/spacexdash/internal/appconfig"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/launches"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T) *model {
	t.Helper()
	ds, err := launches.NewDataset([]launches.Record{
		{Site: "KSC LC-39A", PayloadMassKg: 500, Class: 1},
		{Site: "KSC LC-39A", PayloadMassKg: 2500, Class: 0},
		{Site: "VAFB SLC-4E", PayloadMassKg: 1500, Class: 1},
		{Site: "CCAFS LC-40", PayloadMassKg: 6000, Class: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset error: %v", err)
	}
	layout := dashboard.NewLayout(ds, appconfig.DefaultSites, appconfig.Default().Slider)
	m := initialModel(dashboard.NewController(ds, layout))
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialModel(t *testing.T) {
	m := newTestModel(t)
	if m.sel != (dashboard.Selection{Site: dashboard.AllSites, Low: 500, High: 6000}) {
		t.Fatalf("unexpected initial selection: %v", m.sel)
	}
	if m.pie == nil || m.scatter == nil {
		t.Fatal("expected both charts on start")
	}
	if got := len(m.siteList.Items()); got != 5 {
		t.Fatalf("expected 5 list items, got %d", got)
	}
	want := map[string]string{
		dashboard.AllSites: "4 launches, 3 successful",
		"KSC LC-39A":       "2 launches, 1 successful",
		"CCAFS SLC-40":     "0 launches, 0 successful",
	}
	for _, li := range m.siteList.Items() {
		it := li.(item)
		if desc, ok := want[it.value]; ok && it.Description() != desc {
			t.Fatalf("%s: description %q, want %q", it.value, it.Description(), desc)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Fatal("expected a quit command for q")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatal("expected a quit command for ctrl+c")
	}
}

func TestSelectSiteRecomputesBothCharts(t *testing.T) {
	m := newTestModel(t)
	m.siteList.Select(1)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(*model)
	if m.sel.Site != "KSC LC-39A" {
		t.Fatalf("expected KSC LC-39A selected, got %q", m.sel.Site)
	}
	if m.pie.Title != "Pie Chart of Success Rates for site KSC LC-39A" {
		t.Fatalf("unexpected pie title %q", m.pie.Title)
	}
	if m.scatter.Title != "Success by Payload Mass for KSC LC-39A" {
		t.Fatalf("unexpected scatter title %q", m.scatter.Title)
	}
}

func TestRangeKeysRecomputeScatterOnly(t *testing.T) {
	m := newTestModel(t)
	pie := m.pie

	next, _ := m.Update(runes("["))
	m = next.(*model)
	if m.sel.Low != 0 {
		t.Fatalf("expected low clamped to 0, got %g", m.sel.Low)
	}
	next, _ = m.Update(runes("}"))
	m = next.(*model)
	if m.sel.High != 7000 {
		t.Fatalf("expected high 7000, got %g", m.sel.High)
	}
	if m.pie != pie {
		t.Fatal("range keys must not recompute the pie")
	}
	if got := len(m.scatter.X); got != 4 {
		t.Fatalf("expected 4 points in (0, 7000), got %d", got)
	}

	next, _ = m.Update(runes("{"))
	m = next.(*model)
	next, _ = m.Update(runes("{"))
	m = next.(*model)
	if m.sel.High != 5000 {
		t.Fatalf("expected high 5000, got %g", m.sel.High)
	}
	if got := len(m.scatter.X); got != 3 {
		t.Fatalf("expected 3 points in (0, 5000), got %d", got)
	}

	next, _ = m.Update(runes("r"))
	m = next.(*model)
	if m.sel.Low != 500 || m.sel.High != 6000 {
		t.Fatalf("expected reset to dataset extremes, got %v", m.sel)
	}
}

func TestRangeKeysClampToSlider(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 20; i++ {
		next, _ := m.Update(runes("]"))
		m = next.(*model)
	}
	if m.sel.Low != 10000 {
		t.Fatalf("expected low clamped to 10000, got %g", m.sel.Low)
	}
	if !m.scatter.Empty {
		t.Fatal("expected an empty scatter when low >= high")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{
		"SpaceX Launch Records Dashboard",
		"Pie Chart of Success Rates for all Launch Sites",
		"Success by Payload Mass for All Sites",
		"Payload: 500..6000 kg",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	m.siteList.Select(4)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(*model)
	if m.sel.Site != "VAFB SLC-4E" {
		t.Fatalf("expected VAFB SLC-4E, got %q", m.sel.Site)
	}
	next, _ = m.Update(runes("]"))
	m = next.(*model)
	next, _ = m.Update(runes("]"))
	m = next.(*model)
	if out := m.View(); !strings.Contains(out, emptyChartText) {
		t.Fatalf("expected empty chart text once the range excludes every launch:\n%s", out)
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := newTestModel(t)
	m.width = 0
	if got := m.View(); got != "Initializing..." {
		t.Fatalf("unexpected view %q", got)
	}
}
