// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// Operation names for the collector.
const (
	OpEmbedding   = "embedding"
	OpVectorQuery = "vector_query"
	OpGraphQuery  = "graph_query"
	OpLLMGenerate = "llm_generate"
)

// OperationMetrics holds aggregated timings for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Op          string
	Count       int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
	}
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}

	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Time runs fn and records its duration under op. The error passes through.
func (c *Collector) Time(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	c.RecordTiming(op, time.Since(start))
	return err
}

// Snapshot returns a point-in-time snapshot of all recorded operations,
// sorted by operation name for stable output.
func (c *Collector) Snapshot() []OperationSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snaps := make([]OperationSnapshot, 0, len(c.ops))
	for op, m := range c.ops {
		if m.Count == 0 {
			continue
		}
		snaps = append(snaps, OperationSnapshot{
			Op:          op,
			Count:       m.Count,
			TotalTimeMs: m.TotalTime.Milliseconds(),
			AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
			MinTimeMs:   m.MinTime.Milliseconds(),
			MaxTimeMs:   m.MaxTime.Milliseconds(),
		})
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Op < snaps[j].Op })
	return snaps
}

// Uptime reports time since the collector was created.
func (c *Collector) Uptime() time.Duration {
	return time.Since(c.startTime)
}

// Summary renders the snapshot as a short multi-line report.
func (c *Collector) Summary() string {
	snaps := c.Snapshot()
	if len(snaps) == 0 {
		return "no operations recorded"
	}

	var b strings.Builder
	for _, s := range snaps {
		fmt.Fprintf(&b, "%-13s count=%-4d avg=%.1fms min=%dms max=%dms\n",
			s.Op, s.Count, s.AvgTimeMs, s.MinTimeMs, s.MaxTimeMs)
	}
	return strings.TrimRight(b.String(), "\n")
}
