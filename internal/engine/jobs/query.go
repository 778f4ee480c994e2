package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
)

// ErrInvalidQuery marks caller input that cannot form a Query.
var ErrInvalidQuery = errors.New("invalid query")

// PostedBucket is a recency filter on the free-text Posted column.
type PostedBucket int

const (
	PostedAny PostedBucket = iota
	PostedOneDay
	PostedOneWeek
	PostedTwoWeeks
	PostedThreePlusWeeks
)

var postedLabels = map[PostedBucket]string{
	PostedAny:            "Any",
	PostedOneDay:         "1 day ago",
	PostedOneWeek:        "1 week ago",
	PostedTwoWeeks:       "2 weeks ago",
	PostedThreePlusWeeks: "3+ weeks ago",
}

func (b PostedBucket) String() string {
	if l, ok := postedLabels[b]; ok {
		return l
	}
	return fmt.Sprintf("PostedBucket(%d)", int(b))
}

// ParsePostedBucket accepts short codes (any, 1d, 1w, 2w, 3w+) and the display
// labels ("1 day ago", "3+ weeks ago"), case-insensitively. Empty means Any.
func ParsePostedBucket(s string) (PostedBucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return PostedAny, nil
	case "1d", "1-day", "1 day ago":
		return PostedOneDay, nil
	case "1w", "1-week", "1 week ago":
		return PostedOneWeek, nil
	case "2w", "2-week", "2 weeks ago":
		return PostedTwoWeeks, nil
	case "3w+", "3-plus-week", "3+ weeks ago":
		return PostedThreePlusWeeks, nil
	}
	return PostedAny, fmt.Errorf("%w: unknown posted bucket %q (valid: any, 1d, 1w, 2w, 3w+)", ErrInvalidQuery, s)
}

// Query is the full set of filter criteria for one recomputation.
// Empty sets and an empty keyword place no constraint on their dimension.
type Query struct {
	Companies  []string
	Locations  []string
	Skills     []string
	SkillTypes []string

	// MinExperience and MaxExperience are inclusive bounds checked against
	// the posting's Min_Experience and Max_Experience respectively.
	MinExperience float64
	MaxExperience float64
	// Unbounded drops the experience check, so postings without experience
	// data are kept.
	Unbounded bool

	TitleKeyword string
	Posted       PostedBucket
}

// NewQuery returns an unconstrained query whose experience range spans the
// store's observed bounds.
func NewQuery(s *Store) Query {
	lo, hi, _ := s.ExperienceBounds()
	return Query{MinExperience: lo, MaxExperience: hi}
}

// Validate checks the query for contradictory input.
func (q Query) Validate() error {
	if !q.Unbounded && q.MinExperience > q.MaxExperience {
		return fmt.Errorf("%w: experience min %v exceeds max %v", ErrInvalidQuery, q.MinExperience, q.MaxExperience)
	}
	if _, ok := postedLabels[q.Posted]; !ok {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, q.Posted)
	}
	return nil
}

// QueryFromInput builds a Query from tool input, defaulting the experience
// range to the store's observed bounds.
func QueryFromInput(s *Store, in engine.PostingQueryInput) (Query, error) {
	q := NewQuery(s)
	q.Companies = cleanSelection(in.Companies)
	q.Locations = cleanSelection(in.Locations)
	q.Skills = cleanSelection(in.Skills)
	q.SkillTypes = cleanSelection(in.SkillTypes)
	q.TitleKeyword = in.TitleKeyword
	q.Unbounded = in.ExperienceAny
	if in.MinExperience != nil {
		q.MinExperience = *in.MinExperience
	}
	if in.MaxExperience != nil {
		q.MaxExperience = *in.MaxExperience
	}

	posted, err := ParsePostedBucket(in.Posted)
	if err != nil {
		return Query{}, err
	}
	q.Posted = posted

	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// cleanSelection drops empty entries and duplicates, keeping first-seen order.
func cleanSelection(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

type queryKey struct {
	Companies  []string `json:"c"`
	Locations  []string `json:"l"`
	Skills     []string `json:"s"`
	SkillTypes []string `json:"t"`
	Min        float64  `json:"min"`
	Max        float64  `json:"max"`
	Unbounded  bool     `json:"u"`
	Keyword    string   `json:"k"`
	Posted     int      `json:"p"`
}

// Key returns a canonical encoding of q: set order does not matter and
// equivalent queries share a key.
func (q Query) Key() string {
	k := queryKey{
		Companies:  sortedCopy(q.Companies),
		Locations:  sortedCopy(q.Locations),
		Skills:     sortedCopy(q.Skills),
		SkillTypes: sortedCopy(q.SkillTypes),
		Unbounded:  q.Unbounded,
		Keyword:    q.TitleKeyword,
		Posted:     int(q.Posted),
	}
	if !q.Unbounded {
		k.Min, k.Max = q.MinExperience, q.MaxExperience
	}
	b, _ := json.Marshal(k)
	return string(b)
}

func sortedCopy(items []string) []string {
	out := cleanSelection(items)
	sort.Strings(out)
	return out
}
