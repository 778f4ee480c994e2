package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	OptionsRequests  atomic.Int64
	FilterRequests   atomic.Int64
	InsightsRequests atomic.Int64
	FilterPasses     atomic.Int64
	Aggregations     atomic.Int64
	RowsLoaded       atomic.Int64
	ParseErrors      atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"options_requests":  metrics.OptionsRequests.Load(),
		"filter_requests":   metrics.FilterRequests.Load(),
		"insights_requests": metrics.InsightsRequests.Load(),
		"filter_passes":     metrics.FilterPasses.Load(),
		"aggregations":      metrics.Aggregations.Load(),
		"rows_loaded":       metrics.RowsLoaded.Load(),
		"list_parse_errors": metrics.ParseErrors.Load(),
		"cache_hits":        hits,
		"cache_misses":      misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"options_requests", "filter_requests", "insights_requests",
		"filter_passes", "aggregations",
		"rows_loaded", "list_parse_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the jobserver package.
func IncrOptionsRequests()  { metrics.OptionsRequests.Add(1) }
func IncrFilterRequests()   { metrics.FilterRequests.Add(1) }
func IncrInsightsRequests() { metrics.InsightsRequests.Add(1) }

// Incrementors for the jobs package.
func IncrFilterPasses()    { metrics.FilterPasses.Add(1) }
func IncrAggregations()    { metrics.Aggregations.Add(1) }
func AddParseErrors(n int) { metrics.ParseErrors.Add(int64(n)) }
func SetRowsLoaded(n int)  { metrics.RowsLoaded.Store(int64(n)) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 500*time.Millisecond {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
