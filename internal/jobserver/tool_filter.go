package jobserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
	"github.com/anatolykoptev/go_jobinsight/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobinsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noMatchMessage = "No postings match the selected filters."

func registerPostingFilter(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "posting_filter",
		Description: "Filter the job postings table. Selections within one field are OR-ed (any listed company), fields are AND-ed. Experience keeps postings whose Min_Experience >= min_experience and Max_Experience <= max_experience. Returns the matching rows (title, company, location, experience, posted, description preview, skills) with the total match count. Page with limit/offset.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.PostingFilterInput) (*mcp.CallToolResult, engine.PostingFilterOutput, error) {
		out, err := run(ctx, "posting_filter", func(ctx context.Context) (engine.PostingFilterOutput, error) {
			return handlePostingFilter(ctx, input)
		})
		if err != nil {
			return nil, engine.PostingFilterOutput{}, err
		}
		return nil, out, nil
	})
}

func handlePostingFilter(ctx context.Context, input engine.PostingFilterInput) (engine.PostingFilterOutput, error) {
	engine.IncrFilterRequests()
	s, err := loadedStore()
	if err != nil {
		return engine.PostingFilterOutput{}, err
	}

	q, err := jobs.QueryFromInput(s, input.QueryInput())
	if err != nil {
		return engine.PostingFilterOutput{}, err
	}
	limit, err := toolutil.ClampLimit(input.Limit, defaultLimit, maxLimit)
	if err != nil {
		return engine.PostingFilterOutput{}, invalid(err)
	}
	if input.Offset < 0 {
		return engine.PostingFilterOutput{}, invalid(fmt.Errorf("offset %d is negative", input.Offset))
	}
	preview := previewChars()

	key := engine.CacheKey("posting_filter", s.Fingerprint(), q.Key(),
		strconv.Itoa(input.Offset), strconv.Itoa(limit), strconv.Itoa(preview))
	return toolutil.Cached(ctx, key, func() (engine.PostingFilterOutput, error) {
		matched := jobs.Apply(q, s)
		page, err := toolutil.Page(matched, input.Offset, limit)
		if err != nil {
			return engine.PostingFilterOutput{}, invalid(err)
		}

		out := engine.PostingFilterOutput{
			Total:  len(matched),
			Offset: input.Offset,
			Limit:  limit,
			Rows:   make([]engine.PostingRow, 0, len(page)),
		}
		for _, p := range page {
			out.Rows = append(out.Rows, postingRow(p, preview))
		}
		if len(matched) == 0 {
			out.Message = noMatchMessage
		}
		slog.Debug("posting_filter: matched",
			slog.Int("total", out.Total),
			slog.Int("rows", len(out.Rows)))
		return out, nil
	})
}

func previewChars() int {
	if engine.Cfg.PreviewChars > 0 {
		return engine.Cfg.PreviewChars
	}
	return defaultPreviewChars
}

// postingRow projects a posting onto the display columns.
func postingRow(p jobs.JobPosting, preview int) engine.PostingRow {
	skills := p.Skills
	if skills == "" {
		skills = toolutil.JoinList(p.SkillList)
	}
	return engine.PostingRow{
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Experience:  experienceLabel(p),
		Posted:      p.Posted,
		Description: engine.TruncateAtWord(engine.NormSpace(p.Description), preview),
		Skills:      skills,
	}
}

// experienceLabel prefers the source Experience text, falling back to the numeric range.
func experienceLabel(p jobs.JobPosting) string {
	if p.Experience != "" {
		return p.Experience
	}
	if p.HasExperience() {
		return fmt.Sprintf("%s-%s Yrs",
			strconv.FormatFloat(*p.MinExperience, 'f', -1, 64),
			strconv.FormatFloat(*p.MaxExperience, 'f', -1, 64))
	}
	return ""
}
