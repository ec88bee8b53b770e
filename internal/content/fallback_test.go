package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationMonths(t *testing.T) {
	tests := []struct {
		duration string
		want     int
	}{
		{"3 Months", 3},
		{"6 Months", 6},
		{"12 months", 12},
		{"1 Month", 1},
		{"", 3},
		{"half a year", 3},
		{"0 Months", 3},
		{"-2 months", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDurationMonths(tt.duration), "duration %q", tt.duration)
	}
}

func TestFallbackPlanStructure(t *testing.T) {
	months, err := Fallback{}.PlanStructure(context.Background(), "Rust", 4)

	require.NoError(t, err)
	require.Len(t, months, 4)
	for i, m := range months {
		assert.Equal(t, i+1, m.Month)
		assert.Contains(t, m.Title, "Rust")
		assert.Len(t, m.Topics, 3)
	}
}

func TestFallbackPlanStructure_InvalidMonthCount(t *testing.T) {
	months, err := Fallback{}.PlanStructure(context.Background(), "Rust", 0)

	require.NoError(t, err)
	assert.Len(t, months, 3)
}

func TestFallbackAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	f := Fallback{}

	videos, err := f.Videos(ctx, "Go")
	require.NoError(t, err)
	assert.NotEmpty(t, videos)

	books, pdfs, err := f.Books(ctx, "Go")
	require.NoError(t, err)
	assert.NotEmpty(t, books)
	assert.NotEmpty(t, pdfs)

	links, err := f.LearningLinks(ctx, "Go")
	require.NoError(t, err)
	assert.Equal(t, "Go", links.Topic)
	assert.NotEmpty(t, links.Links)

	text, err := f.InterviewQuestions(ctx, "Go")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestFallbackVideos_EscapesQuery(t *testing.T) {
	videos, err := Fallback{}.Videos(context.Background(), "C++ Templates")

	require.NoError(t, err)
	require.NotEmpty(t, videos)
	assert.NotContains(t, videos[0].URL, " ")
	assert.Contains(t, videos[0].URL, "C%2B%2B")
}

func TestStudyAids(t *testing.T) {
	notes, resources, schedule := StudyAids("Kubernetes", "3 Months", "2 hours")

	assert.NotEmpty(t, notes)
	assert.NotEmpty(t, resources)
	require.Len(t, schedule, 14)
	assert.Equal(t, 1, schedule[0].Day)
	assert.Contains(t, schedule[0].Title, "Kubernetes")
	assert.NotEmpty(t, schedule[0].Tasks)
}

func TestStudyAids_ScheduleLengthByDuration(t *testing.T) {
	tests := []struct {
		duration string
		days     int
	}{
		{"6 Months", 28},
		{"3 Months", 14},
		{"1 Month", 7},
		{"", 7},
	}

	for _, tt := range tests {
		_, _, schedule := StudyAids("Go", tt.duration, "1 hour")
		assert.Len(t, schedule, tt.days, "duration %q", tt.duration)
	}
}

func TestStudyAids_EmptyGoal(t *testing.T) {
	notes, resources, schedule := StudyAids("", "1 Month", "1 hour")

	assert.NotEmpty(t, notes)
	assert.Contains(t, resources[0].Title, "New Skill")
	assert.Contains(t, schedule[0].Title, "New Skill")
}
