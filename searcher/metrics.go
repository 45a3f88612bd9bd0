package searcher

import "time"

// SearchMetrics summarizes one search invocation. Every playout costs at
// most one evaluator round trip, so the playout rate is the interesting
// number when tuning the evaluator setup.
type SearchMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Playouts  int
}

// Collector accumulates metrics for one search. All search activity runs on
// a single goroutine, so plain counters suffice.
type Collector struct {
	metrics SearchMetrics
}

func NewCollector() *Collector {
	return &Collector{metrics: SearchMetrics{StartTime: time.Now()}}
}

func (c *Collector) AddPlayout() {
	c.metrics.Playouts++
}

// Complete stamps the duration and returns the totals.
func (c *Collector) Complete() SearchMetrics {
	c.metrics.Duration = time.Since(c.metrics.StartTime)
	return c.metrics
}

// PlayoutsPerSecond is 0 for an instant search rather than dividing by zero.
func (m SearchMetrics) PlayoutsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Playouts) / m.Duration.Seconds()
}
