package launches

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scenarioRecords() []Record {
	return []Record{
		{Site: "KSC LC-39A", PayloadMassKg: 500, Class: 1},
		{Site: "KSC LC-39A", PayloadMassKg: 1500, Class: 0},
		{Site: "VAFB SLC-4E", PayloadMassKg: 800, Class: 1},
	}
}

func loadTestdata(t *testing.T) []Record {
	t.Helper()
	ds, err := Load(filepath.Join("testdata", "launches.csv"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return ds.Records()
}

func TestAggregateSuccessBySiteScenario(t *testing.T) {
	got := AggregateSuccessBySite(scenarioRecords())
	want := SiteTotals{"KSC LC-39A": 1, "VAFB SLC-4E": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("AggregateSuccessBySite mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateSuccessBySiteProperties(t *testing.T) {
	records := loadTestdata(t)
	totals := AggregateSuccessBySite(records)
	counts := CountBySite(records)

	if len(totals) != len(counts) {
		t.Fatalf("expected %d keys, got %d", len(counts), len(totals))
	}
	for site, n := range counts {
		v, ok := totals[site]
		if !ok {
			t.Fatalf("site %q missing from aggregate", site)
		}
		if v > n {
			t.Fatalf("site %q: %d successes exceeds %d launches", site, v, n)
		}
	}
	if totals["CCAFS LC-40"] != 1 {
		t.Fatalf("expected 1 success at CCAFS LC-40, got %d", totals["CCAFS LC-40"])
	}
	if totals.Total() != 4 {
		t.Fatalf("expected 4 successes overall, got %d", totals.Total())
	}
}

func TestOutcomeCountsForSiteScenario(t *testing.T) {
	got := OutcomeCountsForSite(scenarioRecords(), "KSC LC-39A")
	want := OutcomeCounts{1: 1, 0: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("OutcomeCountsForSite mismatch (-want +got):\n%s", diff)
	}
}

func TestOutcomeCountsForSiteSumsToSiteCount(t *testing.T) {
	records := loadTestdata(t)
	counts := CountBySite(records)
	for site, n := range counts {
		outcomes := OutcomeCountsForSite(records, site)
		if outcomes.Total() != n {
			t.Fatalf("site %q: outcome total %d, want %d", site, outcomes.Total(), n)
		}
		for class := range outcomes {
			if class != 0 && class != 1 {
				t.Fatalf("site %q: unexpected class %d", site, class)
			}
		}
	}
}

func TestOutcomeCountsForUnknownSite(t *testing.T) {
	got := OutcomeCountsForSite(scenarioRecords(), "Boca Chica")
	if len(got) != 0 {
		t.Fatalf("expected no outcomes, got %v", got)
	}
}

func TestFilterByPayloadScenario(t *testing.T) {
	got := FilterByPayload(scenarioRecords(), 0, 1000)
	want := []Record{
		{Site: "KSC LC-39A", PayloadMassKg: 500, Class: 1},
		{Site: "VAFB SLC-4E", PayloadMassKg: 800, Class: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FilterByPayload mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByPayloadBounds(t *testing.T) {
	records := scenarioRecords()
	tests := []struct {
		name      string
		low, high float64
		want      int
	}{
		{name: "bounds exclusive at low", low: 500, high: 2000, want: 2},
		{name: "bounds exclusive at high", low: 0, high: 1500, want: 2},
		{name: "exact record excluded", low: 500, high: 500, want: 0},
		{name: "inverted range", low: 2000, high: 0, want: 0},
		{name: "wide range", low: -1, high: 1e9, want: 3},
		{name: "out of dataset range", low: 5000, high: 10000, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPayload(records, tt.low, tt.high)
			if len(got) != tt.want {
				t.Fatalf("expected %d records, got %d", tt.want, len(got))
			}
			for _, r := range got {
				if !(tt.low < r.PayloadMassKg && r.PayloadMassKg < tt.high) {
					t.Fatalf("record %+v outside (%v, %v)", r, tt.low, tt.high)
				}
			}
		})
	}
}

func TestFilterBySite(t *testing.T) {
	got := FilterBySite(scenarioRecords(), "VAFB SLC-4E")
	if len(got) != 1 || got[0].PayloadMassKg != 800 {
		t.Fatalf("unexpected records: %+v", got)
	}
	if got := FilterBySite(scenarioRecords(), "nowhere"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestOperationsAreIdempotent(t *testing.T) {
	records := loadTestdata(t)
	before := append([]Record(nil), records...)

	if diff := cmp.Diff(AggregateSuccessBySite(records), AggregateSuccessBySite(records)); diff != "" {
		t.Fatalf("aggregate not idempotent:\n%s", diff)
	}
	if diff := cmp.Diff(OutcomeCountsForSite(records, "KSC LC-39A"), OutcomeCountsForSite(records, "KSC LC-39A")); diff != "" {
		t.Fatalf("outcome counts not idempotent:\n%s", diff)
	}
	if diff := cmp.Diff(FilterByPayload(records, 0, 5000), FilterByPayload(records, 0, 5000)); diff != "" {
		t.Fatalf("payload filter not idempotent:\n%s", diff)
	}
	if diff := cmp.Diff(before, records); diff != "" {
		t.Fatalf("input records were mutated:\n%s", diff)
	}
}
