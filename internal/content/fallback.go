package content

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/marcus/studyplan/internal/plan"
)

// Fallback is a deterministic Generator used whenever the model-backed
// adapter fails or times out. Plan generation prefers availability over
// content quality, so every method always succeeds.
type Fallback struct{}

var _ Generator = Fallback{}

// ParseDurationMonths extracts a month count from a free-form duration
// string such as "3 Months", defaulting to 3.
func ParseDurationMonths(duration string) int {
	fields := strings.Fields(duration)
	if len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil && n > 0 {
			return n
		}
	}
	return 3
}

func (Fallback) PlanStructure(_ context.Context, topic string, months int) ([]MonthPlan, error) {
	if months < 1 {
		months = 3
	}
	out := make([]MonthPlan, months)
	for i := 1; i <= months; i++ {
		out[i-1] = MonthPlan{
			Month: i,
			Title: fmt.Sprintf("Month %d: %s Learning", i, topic),
			Topics: []string{
				fmt.Sprintf("%s Basics Part %d", topic, i),
				fmt.Sprintf("Advanced %s Concepts %d", topic, i),
				fmt.Sprintf("Practice Projects %d", i),
			},
		}
	}
	return out, nil
}

func (Fallback) Videos(_ context.Context, topic string) ([]Video, error) {
	return []Video{
		{Title: fmt.Sprintf("%s Crash Course", topic), URL: "https://www.youtube.com/results?search_query=" + queryEscape(topic+" crash course"), Description: "Introductory walkthrough"},
		{Title: fmt.Sprintf("%s Full Tutorial", topic), URL: "https://www.youtube.com/results?search_query=" + queryEscape(topic+" tutorial"), Description: "Complete beginner-to-advanced tutorial"},
	}, nil
}

func (Fallback) Books(_ context.Context, topic string) ([]Book, []InterviewPDF, error) {
	books := []Book{
		{Title: fmt.Sprintf("%s Fundamentals", topic), Author: "Expert Author", Description: fmt.Sprintf("Comprehensive guide to %s", topic)},
		{Title: fmt.Sprintf("Mastering %s", topic), Author: "Pro Developer", Description: "Advanced concepts and best practices"},
	}
	pdfs := []InterviewPDF{
		{Title: fmt.Sprintf("%s Interview Questions", topic), Description: "Top 30 interview questions with answers"},
		{Title: fmt.Sprintf("%s Technical Assessment", topic), Description: "Practical problems and solutions"},
	}
	return books, pdfs, nil
}

func (Fallback) LearningLinks(_ context.Context, topic string) (*LinkGroup, error) {
	return &LinkGroup{
		Topic: topic,
		Links: []Link{
			{Platform: "GeeksforGeeks", Title: topic + " Tutorial", URL: "https://www.geeksforgeeks.org/?s=" + queryEscape(topic), Description: "Article series with exercises"},
			{Platform: "FreeCodeCamp", Title: "Learn " + topic, URL: "https://www.freecodecamp.org/news/search/?query=" + queryEscape(topic), Description: "Free project-based lessons"},
			{Platform: "YouTube", Title: topic + " Playlist", URL: "https://www.youtube.com/results?search_query=" + queryEscape(topic), Description: "Video tutorials"},
		},
	}, nil
}

func (Fallback) InterviewQuestions(_ context.Context, topic string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Interview Preparation\n\n", topic)
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&sb, "%d. Explain a core %s concept (level %d) and give an example.\n", i, topic, i)
		fmt.Fprintf(&sb, "   Answer: review your notes for %s and practice explaining this aloud.\n\n", topic)
	}
	return sb.String(), nil
}

// StudyAids returns the generic notes, starter links, and day-by-day
// schedule attached to every generated plan.
func StudyAids(goal, duration, dailyTime string) (notes []string, resources []plan.Resource, schedule []plan.ScheduleDay) {
	topic := strings.TrimSpace(goal)
	if topic == "" {
		topic = "New Skill"
	}

	topics := []string{
		fmt.Sprintf("Fundamentals of %s", topic),
		fmt.Sprintf("%s Core Concepts", topic),
		fmt.Sprintf("%s Practical Exercises", topic),
		fmt.Sprintf("Projects with %s", topic),
		fmt.Sprintf("%s Interview / Assessment Prep", topic),
	}

	notes = []string{
		"Focus on understanding the fundamentals before moving to advanced concepts.",
		"Learn actively: take notes, build small projects, and test yourself frequently.",
		"Use spaced repetition and weekly reviews to retain key ideas.",
	}

	resources = []plan.Resource{
		{Title: topic + " Official Docs", URL: "https://example.com"},
		{Title: topic + " Beginner Roadmap", URL: "https://example.com"},
		{Title: topic + " Practice Exercises", URL: "https://example.com"},
	}

	days := 7
	if strings.Contains(duration, "6") {
		days = 28
	} else if strings.Contains(duration, "3") {
		days = 14
	}

	schedule = make([]plan.ScheduleDay, days)
	for i := 0; i < days; i++ {
		day := i + 1
		t := topics[i%len(topics)]
		schedule[i] = plan.ScheduleDay{
			Day:   day,
			Title: fmt.Sprintf("Day %d: %s", day, t),
			Tasks: []string{
				fmt.Sprintf("Read notes and summarize key ideas (%s).", dailyTime),
				fmt.Sprintf("Do 3 practice questions based on %s.", t),
				"Write 5 flashcards for revision.",
			},
		}
	}
	return notes, resources, schedule
}

func queryEscape(s string) string {
	return url.QueryEscape(strings.TrimSpace(s))
}
