// Package profiling accumulates wall time per named stage of the current
// frame. Stage names are "package.Operation", e.g. "mesh.Draw".
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("raster.Clear")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame drops the totals of the previous frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current frame's totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every stage whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// TopN formats the n slowest stages, slowest first.
// Example: "mesh.Draw:4.2ms, raster.Clear:0.3ms"
func TopN(n int) string {
	type stage struct {
		name string
		dur  time.Duration
	}
	snap := Snapshot()
	stages := make([]stage, 0, len(snap))
	for k, v := range snap {
		stages = append(stages, stage{k, v})
	}
	sort.Slice(stages, func(i, j int) bool {
		if stages[i].dur == stages[j].dur {
			return stages[i].name < stages[j].name
		}
		return stages[i].dur > stages[j].dur
	})

	n = min(n, len(stages))
	parts := make([]string, 0, n)
	for _, s := range stages[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", s.name, float64(s.dur.Microseconds())/1000))
	}
	return strings.Join(parts, ", ")
}
