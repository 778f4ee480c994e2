package engine

import "time"

// Config holds all engine configuration, injected from main.
type Config struct {
	DataSource           string // csv, sqlite, postgres
	DataPath             string
	DataTable            string
	DatabaseURL          string
	TopN                 int
	PreviewChars         int // description preview length in posting_filter rows
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (jobs, jobserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
