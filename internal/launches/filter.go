// internal/launches/filter.go
package launches

// SiteTotals maps a launch site to its number of successful launches.
type SiteTotals map[string]int

// OutcomeCounts maps an outcome class (0 or 1) to the number of launches with it.
type OutcomeCounts map[int]int

// AggregateSuccessBySite groups records by site and sums their class values.
// Every site present in records gets a key, including sites with no successes.
func AggregateSuccessBySite(records []Record) SiteTotals {
	totals := make(SiteTotals)
	for _, r := range records {
		totals[r.Site] += r.Class
	}
	return totals
}

// OutcomeCountsForSite counts the outcome classes of the launches from site.
// Only observed classes appear; an unknown site yields an empty map.
func OutcomeCountsForSite(records []Record, site string) OutcomeCounts {
	counts := make(OutcomeCounts)
	for _, r := range records {
		if r.Site == site {
			counts[r.Class]++
		}
	}
	return counts
}

// FilterBySite returns the records launched from site.
func FilterBySite(records []Record, site string) []Record {
	out := make([]Record, 0)
	for _, r := range records {
		if r.Site == site {
			out = append(out, r)
		}
	}
	return out
}

// FilterByPayload returns the records with low < payload mass < high.
// Both bounds are exclusive, so a launch whose mass equals a slider bound is
// dropped. A range with low >= high is empty.
func FilterByPayload(records []Record, low, high float64) []Record {
	out := make([]Record, 0)
	if low >= high {
		return out
	}
	for _, r := range records {
		if low < r.PayloadMassKg && r.PayloadMassKg < high {
			out = append(out, r)
		}
	}
	return out
}

// CountBySite returns the total number of launches per site.
func CountBySite(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Site]++
	}
	return counts
}

// Total sums the counts.
func (o OutcomeCounts) Total() int {
	n := 0
	for _, c := range o {
		n += c
	}
	return n
}

// Total sums the successful launches across all sites.
func (s SiteTotals) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}
