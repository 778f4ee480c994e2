package jobserver

import (
	"context"
	"strconv"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
	"github.com/anatolykoptev/go_jobinsight/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobinsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noDataMessage = "No data available for the selected filters."

// maxTopN caps top_n.
const maxTopN = 100

// PostingInsightsOutput is the structured output for posting_insights.
type PostingInsightsOutput struct {
	Total        int              `json:"total"`
	TopTitles    []jobs.Count     `json:"top_titles"`
	TopLocations []jobs.Count     `json:"top_locations"`
	TopCompanies []jobs.Count     `json:"top_companies"`
	Experience   []jobs.BandCount `json:"experience_bands"`
	TopSkills    []jobs.Count     `json:"top_skills"`
	SkillTypes   []jobs.Share     `json:"skill_types"`
	Message      string           `json:"message,omitempty"`
}

func registerPostingInsights(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "posting_insights",
		Description: "Aggregate the postings matching a query: most common job titles, locations and companies, the experience band distribution (all six bands, zero-filled), the most demanded skills, and each skill type's share. Accepts the same filters as posting_filter plus top_n (default 10).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.PostingInsightsInput) (*mcp.CallToolResult, PostingInsightsOutput, error) {
		out, err := run(ctx, "posting_insights", func(ctx context.Context) (PostingInsightsOutput, error) {
			return handlePostingInsights(ctx, input)
		})
		if err != nil {
			return nil, PostingInsightsOutput{}, err
		}
		return nil, out, nil
	})
}

func handlePostingInsights(ctx context.Context, input engine.PostingInsightsInput) (PostingInsightsOutput, error) {
	engine.IncrInsightsRequests()
	s, err := loadedStore()
	if err != nil {
		return PostingInsightsOutput{}, err
	}

	q, err := jobs.QueryFromInput(s, input.QueryInput())
	if err != nil {
		return PostingInsightsOutput{}, err
	}
	n, err := toolutil.ClampLimit(input.TopN, topN(), maxTopN)
	if err != nil {
		return PostingInsightsOutput{}, invalid(err)
	}

	key := engine.CacheKey("posting_insights", s.Fingerprint(), q.Key(), strconv.Itoa(n))
	return toolutil.Cached(ctx, key, func() (PostingInsightsOutput, error) {
		ins := jobs.Summarize(jobs.Apply(q, s), n)
		out := PostingInsightsOutput{
			Total:        ins.Total,
			TopTitles:    ins.TopTitles,
			TopLocations: ins.TopLocations,
			TopCompanies: ins.TopCompanies,
			Experience:   ins.Experience,
			TopSkills:    ins.TopSkills,
			SkillTypes:   ins.SkillTypes,
		}
		if ins.Empty {
			out.Message = noDataMessage
		}
		return out, nil
	})
}

func topN() int {
	if engine.Cfg.TopN > 0 {
		return engine.Cfg.TopN
	}
	return jobs.DefaultTopN
}
