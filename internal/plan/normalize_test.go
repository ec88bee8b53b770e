package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CanonicalDocumentUnchanged(t *testing.T) {
	doc := StoredDocument{
		Skill:           "React",
		Duration:        "3 Months",
		DailyTime:       "1 hour",
		Months:          []Month{{Month: 1, Topics: []string{"JSX"}}, {Month: 2, Topics: []string{"Hooks"}}},
		CompletedMonths: []int{1},
		ProgressPercent: 50,
	}

	p, mutated := Normalize(doc)

	assert.False(t, mutated)
	assert.Equal(t, "React", p.Skill)
	assert.Equal(t, doc.Months, p.Months)
	assert.Equal(t, []int{1}, p.CompletedMonths)
	assert.Equal(t, 50, p.ProgressPercent)
}

func TestNormalize_Idempotent(t *testing.T) {
	doc := StoredDocument{
		Goal:           "Go",
		TimeToComplete: "6 Months",
		DailyStudyTime: "2 hours",
		PlanStructure: []StructureEntry{
			{Month: 1, Title: "M1", Topics: []string{"A"}, Completed: true},
			{Month: 2, Title: "M2", Topics: []string{"B"}},
		},
	}

	first, mutated := Normalize(doc)
	require.True(t, mutated)

	second, mutated := Normalize(first.Document())
	assert.False(t, mutated)
	assert.Equal(t, first, second)
}

func TestNormalize_LegacyMirrors(t *testing.T) {
	doc := StoredDocument{
		Goal:           "Python",
		TimeToComplete: "3 Months",
		DailyStudyTime: "30 min",
	}

	p, mutated := Normalize(doc)

	assert.True(t, mutated)
	assert.Equal(t, "Python", p.Skill)
	assert.Equal(t, "3 Months", p.Duration)
	assert.Equal(t, "30 min", p.DailyTime)
}

func TestNormalize_CanonicalScalarsWinOverMirrors(t *testing.T) {
	doc := StoredDocument{
		Skill: "Rust",
		Goal:  "Something Older",
	}

	p, _ := Normalize(doc)

	assert.Equal(t, "Rust", p.Skill)
}

func TestNormalize_PlanStructureMigration(t *testing.T) {
	doc := StoredDocument{
		PlanStructure: []StructureEntry{
			{Month: 1, Title: "M1", Topics: []string{"A", "B"}, Completed: true},
			{Month: 2, Title: "M2", Topics: []string{"C"}},
		},
	}

	p, mutated := Normalize(doc)

	require.True(t, mutated)
	assert.Equal(t, []Month{
		{Month: 1, Topics: []string{"A", "B"}},
		{Month: 2, Topics: []string{"C"}},
	}, p.Months)
	assert.Equal(t, []int{1}, p.CompletedMonths)
	assert.Equal(t, 50, p.ProgressPercent)
}

func TestNormalize_PlanStructureMissingMonthNumbers(t *testing.T) {
	doc := StoredDocument{
		PlanStructure: []StructureEntry{
			{Title: "First", Completed: true},
			{Title: "Second"},
			{Title: "Third", Completed: true},
		},
	}

	p, _ := Normalize(doc)

	assert.Equal(t, []Month{
		{Month: 1, Topics: []string{}},
		{Month: 2, Topics: []string{}},
		{Month: 3, Topics: []string{}},
	}, p.Months)
	assert.Equal(t, []int{1, 3}, p.CompletedMonths)
	assert.Equal(t, 67, p.ProgressPercent)
}

func TestNormalize_FlatTopicsMigration(t *testing.T) {
	doc := StoredDocument{
		Topics: []string{"Basics", "Advanced"},
	}

	p, mutated := Normalize(doc)

	assert.True(t, mutated)
	assert.Equal(t, []Month{{Month: 1, Topics: []string{"Basics", "Advanced"}}}, p.Months)
	assert.Empty(t, p.CompletedMonths)
	assert.Equal(t, 0, p.ProgressPercent)
}

func TestNormalize_PlanStructurePreferredOverFlatTopics(t *testing.T) {
	doc := StoredDocument{
		Topics:        []string{"old"},
		PlanStructure: []StructureEntry{{Month: 1, Topics: []string{"new"}}},
	}

	p, _ := Normalize(doc)

	require.Len(t, p.Months, 1)
	assert.Equal(t, []string{"new"}, p.Months[0].Topics)
}

func TestNormalize_EmptyDocument(t *testing.T) {
	p, mutated := Normalize(StoredDocument{})

	assert.False(t, mutated)
	assert.Empty(t, p.Months)
	assert.Empty(t, p.CompletedMonths)
	assert.Equal(t, 0, p.ProgressPercent)
}

func TestNormalize_RecomputesStaleProgress(t *testing.T) {
	doc := StoredDocument{
		Months:          []Month{{Month: 1}, {Month: 2}, {Month: 3}},
		CompletedMonths: []int{1, 2},
		ProgressPercent: 10,
	}

	p, mutated := Normalize(doc)

	assert.True(t, mutated)
	assert.Equal(t, 67, p.ProgressPercent)
}

func TestNormalize_SortsAndDedupesCompletedMonths(t *testing.T) {
	doc := StoredDocument{
		Months:          []Month{{Month: 1}, {Month: 2}, {Month: 3}},
		CompletedMonths: []int{3, 1, 3},
		ProgressPercent: 67,
	}

	p, mutated := Normalize(doc)

	assert.True(t, mutated)
	assert.Equal(t, []int{1, 3}, p.CompletedMonths)
	assert.Equal(t, 67, p.ProgressPercent)
}

func TestDocument_RoundTripKeepsMirrorsDerivable(t *testing.T) {
	p := Plan{Skill: "SQL", Duration: "3 Months", DailyTime: "1 hour"}

	doc := p.Document()

	assert.Equal(t, "SQL", doc.Goal)
	assert.Equal(t, "3 Months", doc.TimeToComplete)
	assert.Equal(t, "1 hour", doc.DailyStudyTime)
	assert.Empty(t, doc.PlanStructure)
	assert.Empty(t, doc.Topics)
}
