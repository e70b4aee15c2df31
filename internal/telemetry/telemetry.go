package telemetry

import (
	"sync"
	"time"
)

const latencyWindowSize = 100

// ChannelStats is the read-side snapshot of one analysis channel.
type ChannelStats struct {
	Channel       string           `json:"channel"`
	TotalAnalyses int64            `json:"total_analyses"`
	Categories    map[string]int64 `json:"categories"`
	AvgLatencyMs  float64          `json:"avg_latency_ms"`
	P95LatencyMs  float64          `json:"p95_latency_ms"`
}

type channel struct {
	mu          sync.RWMutex
	name        string
	total       int64
	categories  map[string]int64
	latencies   []float64
	latencyIdx  int
	latencyFull bool
}

// Registry tracks per-channel analysis counters in memory. Nothing is
// persisted; counters reset with the process.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*channel
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*channel),
	}
}

func (r *Registry) getOrCreate(name string) *channel {
	r.mu.RLock()
	c, ok := r.channels[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.channels[name]; ok {
		return c
	}
	c = &channel{
		name:       name,
		categories: make(map[string]int64),
		latencies:  make([]float64, latencyWindowSize),
	}
	r.channels[name] = c
	return c
}

// Record tallies one completed analysis on the named channel.
func (r *Registry) Record(name, category string, latency time.Duration) {
	c := r.getOrCreate(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	c.categories[category]++

	ms := float64(latency.Microseconds()) / 1000.0
	c.latencies[c.latencyIdx] = ms
	c.latencyIdx++
	if c.latencyIdx >= latencyWindowSize {
		c.latencyIdx = 0
		c.latencyFull = true
	}
}

func (r *Registry) GetStats(name string) ChannelStats {
	c := r.getOrCreate(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats()
}

func (r *Registry) AllStats() []ChannelStats {
	r.mu.RLock()
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	r.mu.RUnlock()

	stats := make([]ChannelStats, 0, len(names))
	for _, name := range names {
		stats = append(stats, r.GetStats(name))
	}
	return stats
}

func (c *channel) stats() ChannelStats {
	s := ChannelStats{
		Channel:       c.name,
		TotalAnalyses: c.total,
		Categories:    make(map[string]int64, len(c.categories)),
	}
	for cat, n := range c.categories {
		s.Categories[cat] = n
	}

	count := c.latencyIdx
	if c.latencyFull {
		count = latencyWindowSize
	}
	if count > 0 {
		sorted := make([]float64, count)
		copy(sorted, c.latencies[:count])
		sortFloats(sorted)
		s.AvgLatencyMs = avgFloats(sorted)
		s.P95LatencyMs = sorted[int(float64(len(sorted)-1)*0.95)]
	}

	return s
}

func sortFloats(data []float64) {
	for i := 1; i < len(data); i++ {
		for j := i; j > 0 && data[j-1] > data[j]; j-- {
			data[j-1], data[j] = data[j], data[j-1]
		}
	}
}

func avgFloats(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
