// internal/metrics/aggregator.go
// Package metrics keeps in-memory running statistics about dashboard callbacks.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/mwiater/spacexdash/internal/logging"
)

// Sample is one completed callback.
type Sample struct {
	Callback string
	Site     string
	Duration time.Duration
	Points   int
	Empty    bool
}

// Aggregator collects and manages callback metrics. It is safe for concurrent use.
type Aggregator struct {
	mutex   sync.Mutex
	metrics map[string]*CallbackMetrics
	now     func() time.Time
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		metrics: make(map[string]*CallbackMetrics),
		now:     time.Now,
	}
}

// Record folds one sample into the callback's overall and per-site stats.
func (a *Aggregator) Record(s Sample) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	callbackMetrics, exists := a.metrics[s.Callback]
	if !exists {
		callbackMetrics = &CallbackMetrics{Callback: s.Callback}
		a.metrics[s.Callback] = callbackMetrics
		logging.LogEvent("[METRICS] tracking callback %s", s.Callback)
	}
	callbackMetrics.LastUpdatedUTC = a.now().UTC()

	updateStats(&callbackMetrics.OverallStats, s)

	for i := range callbackMetrics.SiteBuckets {
		if callbackMetrics.SiteBuckets[i].Site == s.Site {
			updateStats(&callbackMetrics.SiteBuckets[i].Stats, s)
			return
		}
	}
	bucket := SiteBucket{Site: s.Site}
	updateStats(&bucket.Stats, s)
	callbackMetrics.SiteBuckets = append(callbackMetrics.SiteBuckets, bucket)
}

// Snapshot returns a copy of every callback's metrics, ordered by callback name.
func (a *Aggregator) Snapshot() []CallbackMetrics {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	out := make([]CallbackMetrics, 0, len(a.metrics))
	for _, m := range a.metrics {
		c := *m
		c.SiteBuckets = append([]SiteBucket(nil), m.SiteBuckets...)
		sort.Slice(c.SiteBuckets, func(i, j int) bool { return c.SiteBuckets[i].Site < c.SiteBuckets[j].Site })
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Callback < out[j].Callback })
	return out
}

// updateStats updates the running statistics with a new sample.
func updateStats(stats *RunningAggregatedStats, s Sample) {
	stats.TotalRequests++
	if s.Empty {
		stats.EmptyResults++
	}
	updateRunningStat(&stats.DurationMillis, float64(s.Duration)/float64(time.Millisecond))
	updateRunningStat(&stats.Points, float64(s.Points))
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
	rs.StdDev = rs.sampleStdDev()
}
