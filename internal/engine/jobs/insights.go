package jobs

import (
	"sort"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
)

// DefaultTopN is the number of groups shown per ranked insight.
const DefaultTopN = 10

// Field names a groupable text column.
type Field string

const (
	FieldTitle    Field = "job_title"
	FieldCompany  Field = "company"
	FieldLocation Field = "location"
)

func (f Field) value(p JobPosting) string {
	switch f {
	case FieldTitle:
		return p.Title
	case FieldCompany:
		return p.Company
	case FieldLocation:
		return p.Location
	}
	return ""
}

// Count is one (value, occurrences) pair of a ranked insight.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// BandCount is the number of postings in one experience band.
type BandCount struct {
	Band  ExperienceBand `json:"band"`
	Count int            `json:"count"`
}

// Share is a count together with its proportion of the total.
type Share struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Insights bundles every aggregate for one filtered subset.
type Insights struct {
	Total        int         `json:"total"`
	Empty        bool        `json:"empty"`
	TopTitles    []Count     `json:"top_titles"`
	TopLocations []Count     `json:"top_locations"`
	TopCompanies []Count     `json:"top_companies"`
	Experience   []BandCount `json:"experience_bands"`
	TopSkills    []Count     `json:"top_skills"`
	SkillTypes   []Share     `json:"skill_types"`
}

// counter tallies values and remembers first-seen order for tie-breaking.
type counter struct {
	index map[string]int
	items []Count
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(v string) {
	if v == "" {
		return
	}
	if i, ok := c.index[v]; ok {
		c.items[i].Count++
		return
	}
	c.index[v] = len(c.items)
	c.items = append(c.items, Count{Value: v, Count: 1})
}

// ranked returns counts by descending frequency; equal counts keep first-seen order.
func (c *counter) ranked() []Count {
	out := make([]Count, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func top(ranked []Count, n int) []Count {
	if n <= 0 {
		return []Count{}
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopBy groups the subset by field and returns the n most frequent values.
// Blank values are not counted.
func TopBy(subset []JobPosting, field Field, n int) []Count {
	c := newCounter()
	for _, p := range subset {
		c.add(field.value(p))
	}
	return top(c.ranked(), n)
}

// BandDistribution counts postings per experience band. The result always
// holds all six bands in canonical order, with zero for absent bands.
func BandDistribution(subset []JobPosting) []BandCount {
	counts := make(map[ExperienceBand]int, len(BandOrder))
	for _, p := range subset {
		counts[p.ExperienceBand]++
	}
	out := make([]BandCount, 0, len(BandOrder))
	for _, b := range BandOrder {
		out = append(out, BandCount{Band: b, Count: counts[b]})
	}
	return out
}

// SkillFrequency flattens every skill list in the subset and returns the n
// most demanded skills.
func SkillFrequency(subset []JobPosting, n int) []Count {
	c := newCounter()
	for _, p := range subset {
		for _, s := range p.SkillList {
			c.add(s)
		}
	}
	return top(c.ranked(), n)
}

// SkillTypeDistribution flattens every skill-type list in the subset and
// returns each type with its share of all occurrences, largest first.
func SkillTypeDistribution(subset []JobPosting) []Share {
	c := newCounter()
	for _, p := range subset {
		for _, t := range p.SkillTypeList {
			c.add(t)
		}
	}
	ranked := c.ranked()

	total := 0
	for _, r := range ranked {
		total += r.Count
	}
	out := make([]Share, 0, len(ranked))
	for _, r := range ranked {
		if r.Count == 0 {
			continue
		}
		out = append(out, Share{Value: r.Value, Count: r.Count, Share: float64(r.Count) / float64(total)})
	}
	return out
}

// Summarize computes every insight over the subset, using n for the ranked ones.
func Summarize(subset []JobPosting, n int) Insights {
	engine.IncrAggregations()
	return Insights{
		Total:        len(subset),
		Empty:        len(subset) == 0,
		TopTitles:    TopBy(subset, FieldTitle, n),
		TopLocations: TopBy(subset, FieldLocation, n),
		TopCompanies: TopBy(subset, FieldCompany, n),
		Experience:   BandDistribution(subset),
		TopSkills:    SkillFrequency(subset, n),
		SkillTypes:   SkillTypeDistribution(subset),
	}
}
