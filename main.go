// go_jobinsight: job posting filter and insights MCP server.
//
// Loads a skill-tagged job postings table once at startup (CSV, SQLite or
// PostgreSQL) and exposes three read-only MCP tools: posting_options,
// posting_filter, posting_insights.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_jobinsight/internal/engine"
	"github.com/anatolykoptev/go_jobinsight/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobinsight/internal/jobserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	// Values already in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	mcpPort := env.Str("MCP_PORT", "8892")
	initEngine()
	loadPostings()

	slog.Info("starting go_jobinsight",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_jobinsight",
		Version: version,
	}, nil)

	jobserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_jobinsight",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 60 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		DataSource:           env.Str("DATA_SOURCE", string(jobs.SourceCSV)),
		DataPath:             env.Str("DATA_PATH", "data/naukri_skill_tagged_data.csv"),
		DataTable:            env.Str("DATA_TABLE", jobs.DefaultTable),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		TopN:                 env.Int("TOP_N", jobs.DefaultTopN),
		PreviewChars:         env.Int("PREVIEW_CHARS", 300),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}
	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

// loadPostings reads the postings table or exits: the tools have nothing to serve without it.
func loadPostings() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s, err := jobs.LoadStore(ctx, jobs.SourceConfig{
		Kind:        jobs.SourceKind(engine.Cfg.DataSource),
		Path:        engine.Cfg.DataPath,
		Table:       engine.Cfg.DataTable,
		DatabaseURL: engine.Cfg.DatabaseURL,
	})
	if err != nil {
		if errors.Is(err, jobs.ErrDataNotFound) {
			slog.Error("postings data not found: make sure the data folder exists and contains the skill-tagged CSV, or set DATA_PATH",
				slog.String("path", engine.Cfg.DataPath),
				slog.Any("error", err))
		} else {
			slog.Error("failed to load postings", slog.Any("error", err))
		}
		os.Exit(1)
	}
	jobs.SetStore(s)
}
