// internal/metrics/types.go
package metrics

import (
	"math"
	"time"
)

// CallbackMetrics is the aggregated data for a single callback endpoint.
type CallbackMetrics struct {
	Callback       string                 `json:"callback"`
	LastUpdatedUTC time.Time              `json:"last_updated_utc"`
	OverallStats   RunningAggregatedStats `json:"overall_stats"`
	SiteBuckets    []SiteBucket           `json:"site_buckets"`
}

// SiteBucket holds aggregated stats for requests that selected one dropdown value.
type SiteBucket struct {
	Site  string                 `json:"site"`
	Stats RunningAggregatedStats `json:"stats"`
}

// RunningAggregatedStats stores the running statistical values for a set of metrics.
// It uses Welford's online algorithm for calculating mean and standard deviation.
type RunningAggregatedStats struct {
	TotalRequests int64 `json:"total_requests"`
	EmptyResults  int64 `json:"empty_results"`

	DurationMillis RunningStat `json:"duration_ms"`
	Points         RunningStat `json:"points"`
}

// RunningStat holds the necessary values for online calculation of mean, variance, and stddev.
type RunningStat struct {
	Count  int64   `json:"-"`
	Mean   float64 `json:"mean"`
	M2     float64 `json:"-"` // Sum of squares of differences from the current mean
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// sampleStdDev returns the sample standard deviation, or 0 with fewer than two samples.
func (rs RunningStat) sampleStdDev() float64 {
	if rs.Count < 2 {
		return 0
	}
	return math.Sqrt(rs.M2 / float64(rs.Count-1))
}
