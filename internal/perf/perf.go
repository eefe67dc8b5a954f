// Package perf collects opt-in render and input timings. Set CELLGRID_PROFILE
// to enable it; summaries go to the log every CELLGRID_PROFILE_INTERVAL_MS.
package perf

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/cellgrid/internal/logging"
)

const (
	sampleWindow      = 256
	defaultIntervalMs = 5000
)

type stat struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples []time.Duration
	idx     int
	full    bool
}

// StatSnapshot is a summary of one timer.
type StatSnapshot struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

// CounterSnapshot is the value of one counter.
type CounterSnapshot struct {
	Name  string
	Value int64
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*stat{}
	counters = map[string]int64{}
)

func init() {
	enabled.Store(envEnabled())
	logInterval.Store(int64(envInterval()))
}

// Enabled reports whether profiling is on.
func Enabled() bool { return enabled.Load() }

// Time returns a func that records the time elapsed since Time was called.
//
//	defer perf.Time("grid_view")()
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(name, time.Since(start)) }
}

// Record adds a duration sample.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	s, ok := stats[name]
	if !ok {
		s = &stat{samples: make([]time.Duration, sampleWindow)}
		stats[name] = s
	}
	mu.Unlock()

	s.mu.Lock()
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.samples[s.idx] = d
	s.idx++
	if s.idx == len(s.samples) {
		s.idx = 0
		s.full = true
	}
	s.mu.Unlock()

	maybeLog()
}

// Count adds delta to a named counter.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	counters[name] += delta
	mu.Unlock()

	maybeLog()
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	logSummary("PERF")
}

// Flush logs and resets everything collected so far.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if strings.TrimSpace(reason) != "" {
		prefix = fmt.Sprintf("PERF SUMMARY %s", reason)
	}
	logSummary(prefix)
}

func logSummary(prefix string) {
	ss, cs := Snapshot()
	for _, s := range ss {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
	for _, c := range cs {
		logging.Info("%s %s count=%d", prefix, c.Name, c.Value)
	}
}

// Snapshot returns the collected stats sorted by name and resets them.
func Snapshot() ([]StatSnapshot, []CounterSnapshot) {
	mu.Lock()
	timers := make(map[string]*stat, len(stats))
	for name, s := range stats {
		timers[name] = s
	}
	cs := make([]CounterSnapshot, 0, len(counters))
	for name, v := range counters {
		if v != 0 {
			cs = append(cs, CounterSnapshot{Name: name, Value: v})
		}
	}
	counters = map[string]int64{}
	mu.Unlock()

	ss := make([]StatSnapshot, 0, len(timers))
	for name, s := range timers {
		s.mu.Lock()
		if s.count > 0 {
			ss = append(ss, StatSnapshot{
				Name:  name,
				Count: s.count,
				Avg:   time.Duration(int64(s.total) / s.count),
				Min:   s.min,
				Max:   s.max,
				P95:   p95(s.samples, s.idx, s.full),
			})
		}
		s.count, s.total, s.min, s.max = 0, 0, 0, 0
		s.idx, s.full = 0, false
		s.mu.Unlock()
	}

	sort.Slice(ss, func(i, j int) bool { return ss[i].Name < ss[j].Name })
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
	return ss, cs
}

func p95(samples []time.Duration, idx int, full bool) time.Duration {
	n := idx
	if full {
		n = len(samples)
	}
	if n == 0 {
		return 0
	}
	window := append([]time.Duration(nil), samples[:n]...)
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	return window[min(max(pos, 0), n-1)]
}

// EnableForTest turns collection on with periodic logging off and returns
// a func that restores the previous settings.
func EnableForTest() func() {
	prevEnabled := enabled.Load()
	prevInterval := logInterval.Load()
	enabled.Store(true)
	logInterval.Store(0)
	Snapshot()
	return func() {
		Snapshot()
		enabled.Store(prevEnabled)
		logInterval.Store(prevInterval)
	}
}

func envEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CELLGRID_PROFILE"))) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

func envInterval() time.Duration {
	ms := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv("CELLGRID_PROFILE_INTERVAL_MS")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			ms = v
		}
	}
	return time.Duration(ms) * time.Millisecond
}
