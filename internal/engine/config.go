package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	Languages             []string // caption language allow-list
	FetchTimeout          time.Duration
	RequestsPerSecond     float64 // upstream YouTube request budget
	CacheMaxEntries       int
	CacheCleanupInterval  time.Duration
	HTTPClient            *http.Client
	BrowserClient         *BrowserClient // nil = watch page fetched with HTTPClient
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
