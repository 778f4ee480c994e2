package jobs

// ExperienceBand is a coarse bucket derived from a posting's experience range.
type ExperienceBand string

const (
	BandEntry        ExperienceBand = "0-2 Years (Entry)"
	BandJunior       ExperienceBand = "3-5 Years (Junior/Mid)"
	BandMidSenior    ExperienceBand = "6-8 Years (Mid/Senior)"
	BandSenior       ExperienceBand = "9-12 Years (Senior)"
	BandLead         ExperienceBand = "12+ Years (Lead/Architect)"
	BandNotSpecified ExperienceBand = "Not Specified"
)

// BandOrder is the canonical display order of experience bands.
var BandOrder = []ExperienceBand{
	BandEntry,
	BandJunior,
	BandMidSenior,
	BandSenior,
	BandLead,
	BandNotSpecified,
}

// BandFor classifies an experience range by the average of its bounds.
// Thresholds are inclusive upper bounds. A missing bound yields BandNotSpecified.
func BandFor(minExp, maxExp *float64) ExperienceBand {
	if minExp == nil || maxExp == nil {
		return BandNotSpecified
	}
	avg := (*minExp + *maxExp) / 2
	switch {
	case avg <= 2:
		return BandEntry
	case avg <= 5:
		return BandJunior
	case avg <= 8:
		return BandMidSenior
	case avg <= 12:
		return BandSenior
	default:
		return BandLead
	}
}

// JobPosting is one normalized row of the postings table.
// Rows are immutable once the Store is built.
type JobPosting struct {
	Title          string         `json:"job_title"`
	Company        string         `json:"company"`
	Location       string         `json:"location"`
	MinExperience  *float64       `json:"min_experience,omitempty"`
	MaxExperience  *float64       `json:"max_experience,omitempty"`
	Experience     string         `json:"experience,omitempty"`
	Posted         string         `json:"posted"`
	Description    string         `json:"description"`
	Skills         string         `json:"skills"`
	SkillList      []string       `json:"skill_list"`
	SkillTypeList  []string       `json:"skill_type_list"`
	ExperienceBand ExperienceBand `json:"experience_band"`
}

// HasExperience reports whether both experience bounds are present.
func (p JobPosting) HasExperience() bool {
	return p.MinExperience != nil && p.MaxExperience != nil
}
