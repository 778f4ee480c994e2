package jobs

import (
	"regexp"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
)

// Predicate is one named filter dimension.
type Predicate struct {
	Name  string
	Match func(JobPosting) bool
}

// Literal phrases for the fixed recency buckets.
const (
	phraseOneDay   = "1 day ago"
	phraseOneWeek  = "1 week ago"
	phraseTwoWeeks = "2 weeks ago"
)

// relativeAgeRe matches any "<n> day(s)|week(s) ago" phrase. The 3+ weeks
// bucket uses it minus the three literal phrases, so "3 days ago" also passes.
var relativeAgeRe = regexp.MustCompile(`(?i)\d+\s(days?|weeks?)\sago`)

// Predicates builds the active predicates for q. Unconstrained dimensions
// are omitted, except experience, which applies unless q.Unbounded.
func (q Query) Predicates() []Predicate {
	var preds []Predicate

	if len(q.Companies) > 0 {
		set := toSet(q.Companies)
		preds = append(preds, Predicate{"company", func(p JobPosting) bool { return set[p.Company] }})
	}
	if len(q.Locations) > 0 {
		set := toSet(q.Locations)
		preds = append(preds, Predicate{"location", func(p JobPosting) bool { return set[p.Location] }})
	}
	if !q.Unbounded {
		lo, hi := q.MinExperience, q.MaxExperience
		preds = append(preds, Predicate{"experience", func(p JobPosting) bool {
			if !p.HasExperience() {
				return false
			}
			return *p.MinExperience >= lo && *p.MaxExperience <= hi
		}})
	}
	if len(q.Skills) > 0 {
		set := toSet(q.Skills)
		preds = append(preds, Predicate{"skills", func(p JobPosting) bool { return containsAny(p.SkillList, set) }})
	}
	if len(q.SkillTypes) > 0 {
		set := toSet(q.SkillTypes)
		preds = append(preds, Predicate{"skill_types", func(p JobPosting) bool { return containsAny(p.SkillTypeList, set) }})
	}
	if q.TitleKeyword != "" {
		kw := q.TitleKeyword
		preds = append(preds, Predicate{"title", func(p JobPosting) bool {
			return p.Title != "" && engine.ContainsFold(p.Title, kw)
		}})
	}
	if q.Posted != PostedAny {
		preds = append(preds, Predicate{"posted", postedMatcher(q.Posted)})
	}
	return preds
}

func postedMatcher(b PostedBucket) func(JobPosting) bool {
	switch b {
	case PostedOneDay:
		return func(p JobPosting) bool { return engine.ContainsFold(p.Posted, phraseOneDay) }
	case PostedOneWeek:
		return func(p JobPosting) bool { return engine.ContainsFold(p.Posted, phraseOneWeek) }
	case PostedTwoWeeks:
		return func(p JobPosting) bool { return engine.ContainsFold(p.Posted, phraseTwoWeeks) }
	case PostedThreePlusWeeks:
		return func(p JobPosting) bool {
			if !relativeAgeRe.MatchString(p.Posted) {
				return false
			}
			return !engine.ContainsFold(p.Posted, phraseOneDay) &&
				!engine.ContainsFold(p.Posted, phraseOneWeek) &&
				!engine.ContainsFold(p.Posted, phraseTwoWeeks)
		}
	default:
		return func(JobPosting) bool { return true }
	}
}

// Apply returns the postings of s matching every active predicate of q, in
// source order. The store is never modified; an empty result means no match.
func Apply(q Query, s *Store) []JobPosting {
	engine.IncrFilterPasses()
	return Filter(s.All(), q.Predicates())
}

// Filter keeps the postings that satisfy all predicates. A nil or empty
// predicate list keeps everything. The input slice is not modified.
func Filter(postings []JobPosting, preds []Predicate) []JobPosting {
	out := make([]JobPosting, 0, len(postings))
	for _, p := range postings {
		if matchAll(p, preds) {
			out = append(out, p)
		}
	}
	return out
}

func matchAll(p JobPosting, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred.Match(p) {
			return false
		}
	}
	return true
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func containsAny(list []string, set map[string]bool) bool {
	for _, v := range list {
		if set[v] {
			return true
		}
	}
	return false
}
