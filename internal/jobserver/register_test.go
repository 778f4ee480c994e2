package jobserver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
	"github.com/anatolykoptev/go_jobinsight/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobinsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func fptr(v float64) *float64 { return &v }

func testStore(t *testing.T) *jobs.Store {
	t.Helper()
	postings, errs := jobs.Normalize([]jobs.RawRow{
		{
			Title: "Data Engineer", Company: "Acme", Location: "Pune",
			MinExperience: "3", MaxExperience: "5", Posted: "1 day ago",
			Description: "Build   batch and streaming pipelines on a modern data platform with Spark and Airflow.",
			SkillList:   "['Python', 'SQL']", SkillTypeList: "['Programming', 'Database']",
		},
		{
			Title: "Backend Developer", Company: "Globex", Location: "Bengaluru",
			MinExperience: "1", MaxExperience: "10", Experience: "1-10 Yrs", Posted: "3 days ago",
			Skills: "java, spring", SkillList: "['Java']", SkillTypeList: "['Programming']",
		},
		{
			Title: "Frontend Developer", Company: "Acme", Location: "Mumbai", Posted: "1 week ago",
			SkillList: "['React']", SkillTypeList: "['Web']",
		},
	})
	require.Empty(t, errs)
	s := jobs.NewStore(postings)
	jobs.SetStore(s)
	t.Cleanup(func() { jobs.SetStore(nil) })
	return s
}

func TestHandlers_NoStore(t *testing.T) {
	jobs.SetStore(nil)
	ctx := context.Background()

	_, err := handlePostingOptions(ctx)
	assert.ErrorIs(t, err, errNoData)
	_, err = handlePostingFilter(ctx, engine.PostingFilterInput{})
	assert.ErrorIs(t, err, errNoData)
	_, err = handlePostingInsights(ctx, engine.PostingInsightsInput{})
	assert.ErrorIs(t, err, errNoData)
}

func TestHandlePostingOptions(t *testing.T) {
	testStore(t)
	out, err := handlePostingOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, out.Total)
	assert.Equal(t, []string{"Acme", "Globex"}, out.Companies)
	assert.Equal(t, []string{"Java", "Python", "React", "SQL"}, out.Skills)
	require.NotNil(t, out.MinExperience)
	assert.Equal(t, 1.0, *out.MinExperience)
	assert.Equal(t, 10.0, *out.MaxExperience)
	assert.Len(t, out.PostedBuckets, 5)
}

func TestHandlePostingFilter(t *testing.T) {
	testStore(t)
	ctx := context.Background()

	out, err := handlePostingFilter(ctx, engine.PostingFilterInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, defaultLimit, out.Limit)
	require.Len(t, out.Rows, 2)
	assert.Empty(t, out.Message)

	first := out.Rows[0]
	assert.Equal(t, "Data Engineer", first.Title)
	assert.Equal(t, "3-5 Yrs", first.Experience)
	assert.Equal(t, "Python, SQL", first.Skills)
	assert.NotContains(t, first.Description, "   ")

	second := out.Rows[1]
	assert.Equal(t, "1-10 Yrs", second.Experience)
	assert.Equal(t, "java, spring", second.Skills)

	out, err = handlePostingFilter(ctx, engine.PostingFilterInput{ExperienceAny: true, Limit: 1, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Frontend Developer", out.Rows[0].Title)
}

func TestHandlePostingFilter_StrictRange(t *testing.T) {
	testStore(t)
	out, err := handlePostingFilter(context.Background(), engine.PostingFilterInput{
		MinExperience: fptr(3), MaxExperience: fptr(5),
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Data Engineer", out.Rows[0].Title)
}

func TestHandlePostingFilter_NoMatch(t *testing.T) {
	testStore(t)
	out, err := handlePostingFilter(context.Background(), engine.PostingFilterInput{Companies: []string{"Nobody"}})
	require.NoError(t, err)
	assert.Zero(t, out.Total)
	assert.Empty(t, out.Rows)
	assert.Equal(t, noMatchMessage, out.Message)
}

func TestHandlePostingFilter_InvalidInput(t *testing.T) {
	testStore(t)
	ctx := context.Background()
	tests := []struct {
		name  string
		input engine.PostingFilterInput
	}{
		{"bad posted", engine.PostingFilterInput{Posted: "last year"}},
		{"inverted range", engine.PostingFilterInput{MinExperience: fptr(8), MaxExperience: fptr(2)}},
		{"negative limit", engine.PostingFilterInput{Limit: -1}},
		{"negative offset", engine.PostingFilterInput{Offset: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handlePostingFilter(ctx, tt.input)
			assert.ErrorIs(t, err, jobs.ErrInvalidQuery)
		})
	}
}

func TestHandlePostingInsights(t *testing.T) {
	testStore(t)
	out, err := handlePostingInsights(context.Background(), engine.PostingInsightsInput{ExperienceAny: true, TopN: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Total)
	assert.Equal(t, []jobs.Count{{Value: "Acme", Count: 2}}, out.TopCompanies)
	assert.Len(t, out.TopTitles, 1)
	assert.Len(t, out.Experience, 6)
	assert.Equal(t, "Programming", out.SkillTypes[0].Value)
	assert.Empty(t, out.Message)
}

func TestHandlePostingInsights_Empty(t *testing.T) {
	testStore(t)
	out, err := handlePostingInsights(context.Background(), engine.PostingInsightsInput{TitleKeyword: "astronaut"})
	require.NoError(t, err)
	assert.Zero(t, out.Total)
	assert.Equal(t, noDataMessage, out.Message)
	assert.Len(t, out.Experience, 6)
	assert.Empty(t, out.TopSkills)
}

func TestInvalid(t *testing.T) {
	err := invalid(toolutil.ErrInvalidPaging)
	assert.ErrorIs(t, err, jobs.ErrInvalidQuery)
	assert.ErrorIs(t, err, toolutil.ErrInvalidPaging)

	already := invalid(jobs.ErrInvalidQuery)
	assert.True(t, errors.Is(already, jobs.ErrInvalidQuery))
	assert.Equal(t, 1, strings.Count(already.Error(), "invalid query"))
}

func TestRegisterTools(t *testing.T) {
	testStore(t)
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "go_jobinsight", Version: "test"}, nil)
	RegisterTools(server)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"posting_options", "posting_filter", "posting_insights"}, names)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "posting_filter",
		Arguments: map[string]any{"companies": []string{"Acme"}, "experience_any": true},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.NotNil(t, res.StructuredContent)
}
