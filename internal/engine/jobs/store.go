package jobs

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Store is the immutable in-memory postings table.
// All accessors are pure reads, safe for concurrent use without locking.
type Store struct {
	postings []JobPosting

	fpOnce      sync.Once
	fingerprint string
}

// NewStore wraps already-normalized postings. The slice must not be modified afterwards.
func NewStore(postings []JobPosting) *Store {
	if postings == nil {
		postings = []JobPosting{}
	}
	return &Store{postings: postings}
}

// Len returns the number of postings.
func (s *Store) Len() int { return len(s.postings) }

// All returns every posting in source order.
// The returned slice has its capacity clipped so appends never reach the store.
func (s *Store) All() []JobPosting {
	return s.postings[:len(s.postings):len(s.postings)]
}

// Companies returns the distinct non-blank company names, sorted.
func (s *Store) Companies() []string {
	return s.distinct(func(p JobPosting) []string { return []string{p.Company} })
}

// Locations returns the distinct non-blank locations, sorted.
func (s *Store) Locations() []string {
	return s.distinct(func(p JobPosting) []string { return []string{p.Location} })
}

// Skills returns the distinct skills across every posting's skill list, sorted.
func (s *Store) Skills() []string {
	return s.distinct(func(p JobPosting) []string { return p.SkillList })
}

// SkillTypes returns the distinct skill categories across every posting, sorted.
func (s *Store) SkillTypes() []string {
	return s.distinct(func(p JobPosting) []string { return p.SkillTypeList })
}

func (s *Store) distinct(values func(JobPosting) []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range s.postings {
		for _, v := range values(p) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// ExperienceBounds returns the smallest Min_Experience and the largest
// Max_Experience in the store. ok is false when either column has no values.
func (s *Store) ExperienceBounds() (lo, hi float64, ok bool) {
	var haveLo, haveHi bool
	for _, p := range s.postings {
		if p.MinExperience != nil && (!haveLo || *p.MinExperience < lo) {
			lo = *p.MinExperience
			haveLo = true
		}
		if p.MaxExperience != nil && (!haveHi || *p.MaxExperience > hi) {
			hi = *p.MaxExperience
			haveHi = true
		}
	}
	if !haveLo || !haveHi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Fingerprint is a content hash of the loaded postings.
// Two stores loaded from identical data share a fingerprint.
func (s *Store) Fingerprint() string {
	s.fpOnce.Do(func() {
		h := sha256.New()
		enc := json.NewEncoder(h)
		for i := range s.postings {
			enc.Encode(&s.postings[i]) //nolint:errcheck
		}
		s.fingerprint = fmt.Sprintf("%x", h.Sum(nil)[:8])
	})
	return s.fingerprint
}
