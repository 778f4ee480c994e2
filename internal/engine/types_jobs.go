package engine

// --- Posting query types ---

// PostingQueryInput is the filter criteria shared by posting_filter and posting_insights.
type PostingQueryInput struct {
	Companies     []string `json:"companies,omitempty" jsonschema:"Keep postings from any of these companies (exact names from posting_options). Empty = all"`
	Locations     []string `json:"locations,omitempty" jsonschema:"Keep postings in any of these locations (exact names from posting_options). Empty = all"`
	Skills        []string `json:"skills,omitempty" jsonschema:"Keep postings requiring at least one of these skills. Empty = all"`
	SkillTypes    []string `json:"skill_types,omitempty" jsonschema:"Keep postings tagged with at least one of these skill types. Empty = all"`
	MinExperience *float64 `json:"min_experience,omitempty" jsonschema:"Lowest allowed Min_Experience in years (default: observed minimum)"`
	MaxExperience *float64 `json:"max_experience,omitempty" jsonschema:"Highest allowed Max_Experience in years (default: observed maximum)"`
	ExperienceAny bool     `json:"experience_any,omitempty" jsonschema:"Skip the experience range check and keep postings without experience data"`
	TitleKeyword  string   `json:"title_keyword,omitempty" jsonschema:"Case-insensitive substring of the job title"`
	Posted        string   `json:"posted,omitempty" jsonschema:"Recency: any (default), 1d, 1w, 2w, 3w+"`
}

// PostingFilterInput is the input for posting_filter.
type PostingFilterInput struct {
	Companies     []string `json:"companies,omitempty" jsonschema:"Keep postings from any of these companies (exact names from posting_options). Empty = all"`
	Locations     []string `json:"locations,omitempty" jsonschema:"Keep postings in any of these locations (exact names from posting_options). Empty = all"`
	Skills        []string `json:"skills,omitempty" jsonschema:"Keep postings requiring at least one of these skills. Empty = all"`
	SkillTypes    []string `json:"skill_types,omitempty" jsonschema:"Keep postings tagged with at least one of these skill types. Empty = all"`
	MinExperience *float64 `json:"min_experience,omitempty" jsonschema:"Lowest allowed Min_Experience in years (default: observed minimum)"`
	MaxExperience *float64 `json:"max_experience,omitempty" jsonschema:"Highest allowed Max_Experience in years (default: observed maximum)"`
	ExperienceAny bool     `json:"experience_any,omitempty" jsonschema:"Skip the experience range check and keep postings without experience data"`
	TitleKeyword  string   `json:"title_keyword,omitempty" jsonschema:"Case-insensitive substring of the job title"`
	Posted        string   `json:"posted,omitempty" jsonschema:"Recency: any (default), 1d, 1w, 2w, 3w+"`
	Limit         int      `json:"limit,omitempty" jsonschema:"Rows per page (default 50, max 500)"`
	Offset        int      `json:"offset,omitempty" jsonschema:"Rows to skip before the first returned row"`
}

// QueryInput returns the filter criteria part of the input.
func (in PostingFilterInput) QueryInput() PostingQueryInput {
	return PostingQueryInput{
		Companies:     in.Companies,
		Locations:     in.Locations,
		Skills:        in.Skills,
		SkillTypes:    in.SkillTypes,
		MinExperience: in.MinExperience,
		MaxExperience: in.MaxExperience,
		ExperienceAny: in.ExperienceAny,
		TitleKeyword:  in.TitleKeyword,
		Posted:        in.Posted,
	}
}

// PostingInsightsInput is the input for posting_insights.
type PostingInsightsInput struct {
	Companies     []string `json:"companies,omitempty" jsonschema:"Keep postings from any of these companies (exact names from posting_options). Empty = all"`
	Locations     []string `json:"locations,omitempty" jsonschema:"Keep postings in any of these locations (exact names from posting_options). Empty = all"`
	Skills        []string `json:"skills,omitempty" jsonschema:"Keep postings requiring at least one of these skills. Empty = all"`
	SkillTypes    []string `json:"skill_types,omitempty" jsonschema:"Keep postings tagged with at least one of these skill types. Empty = all"`
	MinExperience *float64 `json:"min_experience,omitempty" jsonschema:"Lowest allowed Min_Experience in years (default: observed minimum)"`
	MaxExperience *float64 `json:"max_experience,omitempty" jsonschema:"Highest allowed Max_Experience in years (default: observed maximum)"`
	ExperienceAny bool     `json:"experience_any,omitempty" jsonschema:"Skip the experience range check and keep postings without experience data"`
	TitleKeyword  string   `json:"title_keyword,omitempty" jsonschema:"Case-insensitive substring of the job title"`
	Posted        string   `json:"posted,omitempty" jsonschema:"Recency: any (default), 1d, 1w, 2w, 3w+"`
	TopN          int      `json:"top_n,omitempty" jsonschema:"Entries per ranked insight (default 10)"`
}

// QueryInput returns the filter criteria part of the input.
func (in PostingInsightsInput) QueryInput() PostingQueryInput {
	return PostingQueryInput{
		Companies:     in.Companies,
		Locations:     in.Locations,
		Skills:        in.Skills,
		SkillTypes:    in.SkillTypes,
		MinExperience: in.MinExperience,
		MaxExperience: in.MaxExperience,
		ExperienceAny: in.ExperienceAny,
		TitleKeyword:  in.TitleKeyword,
		Posted:        in.Posted,
	}
}

// PostingOptionsInput is the (empty) input for posting_options.
type PostingOptionsInput struct{}

// PostingRow is one posting as shown in the filtered table.
type PostingRow struct {
	Title       string `json:"job_title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Experience  string `json:"experience"`
	Posted      string `json:"posted"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
}

// PostingFilterOutput is the structured output for posting_filter.
type PostingFilterOutput struct {
	Total   int          `json:"total"`
	Offset  int          `json:"offset"`
	Limit   int          `json:"limit"`
	Rows    []PostingRow `json:"rows"`
	Message string       `json:"message,omitempty"`
}

// PostingOptionsOutput lists the choices a client can build a query from.
type PostingOptionsOutput struct {
	Total         int      `json:"total"`
	Companies     []string `json:"companies"`
	Locations     []string `json:"locations"`
	Skills        []string `json:"skills"`
	SkillTypes    []string `json:"skill_types"`
	MinExperience *float64 `json:"min_experience,omitempty"`
	MaxExperience *float64 `json:"max_experience,omitempty"`
	PostedBuckets []string `json:"posted_buckets"`
}
