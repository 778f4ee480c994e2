package jobserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
	"github.com/anatolykoptev/go_jobinsight/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobinsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPostingOptions(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "posting_options",
		Description: "List the values a postings query can be built from: distinct companies, locations, skills and skill types, the observed experience range in years, and the accepted posted buckets. Call this first to get exact names for posting_filter and posting_insights.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.PostingOptionsInput) (*mcp.CallToolResult, engine.PostingOptionsOutput, error) {
		out, err := run(ctx, "posting_options", handlePostingOptions)
		if err != nil {
			return nil, engine.PostingOptionsOutput{}, err
		}
		return nil, out, nil
	})
}

func handlePostingOptions(ctx context.Context) (engine.PostingOptionsOutput, error) {
	engine.IncrOptionsRequests()
	s, err := loadedStore()
	if err != nil {
		return engine.PostingOptionsOutput{}, err
	}

	key := engine.CacheKey("posting_options", s.Fingerprint())
	return toolutil.Cached(ctx, key, func() (engine.PostingOptionsOutput, error) {
		out := engine.PostingOptionsOutput{
			Total:      s.Len(),
			Companies:  s.Companies(),
			Locations:  s.Locations(),
			Skills:     s.Skills(),
			SkillTypes: s.SkillTypes(),
			PostedBuckets: []string{
				jobs.PostedAny.String(),
				jobs.PostedOneDay.String(),
				jobs.PostedOneWeek.String(),
				jobs.PostedTwoWeeks.String(),
				jobs.PostedThreePlusWeeks.String(),
			},
		}
		if lo, hi, ok := s.ExperienceBounds(); ok {
			out.MinExperience, out.MaxExperience = &lo, &hi
		}
		slog.Debug("posting_options: computed",
			slog.Int("companies", len(out.Companies)),
			slog.Int("skills", len(out.Skills)))
		return out, nil
	})
}
