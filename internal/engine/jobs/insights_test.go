package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillFrequency_TiesKeepFirstSeen(t *testing.T) {
	subset := []JobPosting{
		mkPosting("A", "X", "Y", withSkills("Python", "SQL")),
		mkPosting("B", "X", "Y", withSkills("Java")),
		mkPosting("C", "X", "Y", withSkills("Python")),
	}
	want := []Count{{"Python", 2}, {"SQL", 1}, {"Java", 1}}
	assert.Equal(t, want, SkillFrequency(subset, 10))
	assert.Equal(t, want[:2], SkillFrequency(subset, 2))
}

func TestTopBy(t *testing.T) {
	subset := sampleStore().All()

	got := TopBy(subset, FieldCompany, 2)
	assert.Equal(t, []Count{{"Acme", 2}, {"Globex", 2}}, got)

	got = TopBy(subset, FieldLocation, 10)
	assert.Equal(t, []Count{{"Pune", 2}, {"Bengaluru", 2}, {"Mumbai", 1}}, got)

	assert.Empty(t, TopBy(subset, FieldTitle, 0))
	assert.Empty(t, TopBy(nil, FieldTitle, 5))
}

func TestTopBy_Bounds(t *testing.T) {
	subset := append(sampleStore().All(), mkPosting("", "", ""))
	for _, f := range []Field{FieldTitle, FieldCompany, FieldLocation} {
		for n := 1; n <= 6; n++ {
			got := TopBy(subset, f, n)
			assert.LessOrEqual(t, len(got), n)
			sum := 0
			for _, c := range got {
				assert.Positive(t, c.Count)
				assert.NotEmpty(t, c.Value)
				sum += c.Count
			}
			assert.LessOrEqual(t, sum, len(subset))
		}
	}
}

func TestBandDistribution(t *testing.T) {
	got := BandDistribution(sampleStore().All())
	require.Len(t, got, len(BandOrder))

	want := map[ExperienceBand]int{
		BandEntry:        1,
		BandJunior:       1,
		BandMidSenior:    2,
		BandSenior:       0,
		BandLead:         0,
		BandNotSpecified: 1,
	}
	sum := 0
	for i, bc := range got {
		assert.Equal(t, BandOrder[i], bc.Band)
		assert.Equal(t, want[bc.Band], bc.Count, bc.Band)
		sum += bc.Count
	}
	assert.Equal(t, 5, sum)
}

func TestBandDistribution_Empty(t *testing.T) {
	got := BandDistribution(nil)
	require.Len(t, got, 6)
	for _, bc := range got {
		assert.Zero(t, bc.Count)
	}
}

func TestSkillTypeDistribution(t *testing.T) {
	got := SkillTypeDistribution(sampleStore().All())
	require.Len(t, got, 4)
	assert.Equal(t, "Programming", got[0].Value)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 0.5, got[0].Share, 1e-9)

	total := 0.0
	for _, s := range got {
		assert.Positive(t, s.Count)
		total += s.Share
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	assert.Empty(t, SkillTypeDistribution(nil))
}

func TestSummarize(t *testing.T) {
	ins := Summarize(sampleStore().All(), 3)
	assert.Equal(t, 5, ins.Total)
	assert.False(t, ins.Empty)
	assert.Len(t, ins.TopTitles, 3)
	assert.Len(t, ins.Experience, 6)
	assert.Equal(t, "Python", ins.TopSkills[0].Value)

	empty := Summarize(nil, 3)
	assert.True(t, empty.Empty)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.TopCompanies)
	assert.Len(t, empty.Experience, 6)
}
