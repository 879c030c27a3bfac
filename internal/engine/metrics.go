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
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	NoCaptions         atomic.Int64
	TrackListRequests  atomic.Int64
	TrackFetchRequests atomic.Int64
	MetadataRequests   atomic.Int64
	DataAPIRequests    atomic.Int64
	WatchPageRequests  atomic.Int64
	InnertubeRequests  atomic.Int64
}

var metricKeys = []string{
	"transcript_requests", "transcript_errors", "no_captions",
	"track_list_requests", "track_fetch_requests",
	"metadata_requests", "data_api_requests",
	"watch_page_requests", "innertube_requests",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests":  metrics.TranscriptRequests.Load(),
		"transcript_errors":    metrics.TranscriptErrors.Load(),
		"no_captions":          metrics.NoCaptions.Load(),
		"track_list_requests":  metrics.TrackListRequests.Load(),
		"track_fetch_requests": metrics.TrackFetchRequests.Load(),
		"metadata_requests":    metrics.MetadataRequests.Load(),
		"data_api_requests":    metrics.DataAPIRequests.Load(),
		"watch_page_requests":  metrics.WatchPageRequests.Load(),
		"innertube_requests":   metrics.InnertubeRequests.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the transcript server.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
func IncrNoCaptions()         { metrics.NoCaptions.Add(1) }

// Incrementors for the youtube sub-package.
func IncrTrackList()  { metrics.TrackListRequests.Add(1) }
func IncrTrackFetch() { metrics.TrackFetchRequests.Add(1) }
func IncrMetadata()   { metrics.MetadataRequests.Add(1) }
func IncrDataAPI()    { metrics.DataAPIRequests.Add(1) }
func IncrWatchPage()  { metrics.WatchPageRequests.Add(1) }
func IncrInnertube()  { metrics.InnertubeRequests.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
