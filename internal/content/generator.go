package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/marcus/studyplan/internal/llm"
)

// LLMGenerator generates study content through an llm.Client. Every method
// validates the model's JSON output against a schema before returning it.
type LLMGenerator struct {
	client llm.Client
}

// NewLLMGenerator creates a Generator backed by the given model client.
func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{client: client}
}

var _ Generator = (*LLMGenerator)(nil)

// PlanStructure asks the model for a month-by-month breakdown of topic.
func (g *LLMGenerator) PlanStructure(ctx context.Context, topic string, months int) ([]MonthPlan, error) {
	prompt := fmt.Sprintf(`You are an expert curriculum designer. Create a %d-month learning plan structure for %q.
Break it down by month with specific topics and subtopics.

Return JSON in this exact format:
{
  "planStructure": [
    {"month": 1, "title": "Month 1: Foundation", "topics": ["Topic 1", "Topic 2", "Topic 3"]}
  ]
}`, months, topic)

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("plan structure generation failed: %w", err)
	}
	if err := validateJSON(planStructureSchema, raw); err != nil {
		return nil, err
	}

	var out struct {
		PlanStructure []MonthPlan `json:"planStructure"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode plan structure: %w", err)
	}
	return out.PlanStructure, nil
}

// Videos asks the model for recommended video resources.
func (g *LLMGenerator) Videos(ctx context.Context, topic string) ([]Video, error) {
	prompt := fmt.Sprintf(`Generate 5 YouTube video resources for learning %q.
Return JSON in this exact format:
{
  "videos": [
    {"title": "Video title", "url": "YouTube URL", "description": "Brief description"}
  ]
}`, topic)

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("video generation failed: %w", err)
	}
	if err := validateJSON(videosSchema, raw); err != nil {
		return nil, err
	}

	var out struct {
		Videos []Video `json:"videos"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode videos: %w", err)
	}
	return out.Videos, nil
}

// Books asks the model for recommended books and interview PDFs.
func (g *LLMGenerator) Books(ctx context.Context, topic string) ([]Book, []InterviewPDF, error) {
	prompt := fmt.Sprintf(`Generate 5 recommended books and 5 interview-focused PDFs for learning %q.
Return JSON in this exact format:
{
  "books": [
    {"title": "Book Title", "author": "Author Name", "description": "Brief description"}
  ],
  "interviewPdfs": [
    {"title": "Interview Questions Title", "description": "Brief description"}
  ]
}`, topic)

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, nil, fmt.Errorf("book generation failed: %w", err)
	}
	if err := validateJSON(booksSchema, raw); err != nil {
		return nil, nil, err
	}

	var out struct {
		Books         []Book         `json:"books"`
		InterviewPDFs []InterviewPDF `json:"interviewPdfs"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return out.Books, out.InterviewPDFs, nil
}

// LearningLinks asks the model for curated tutorial links.
func (g *LLMGenerator) LearningLinks(ctx context.Context, topic string) (*LinkGroup, error) {
	prompt := fmt.Sprintf(`Generate the best learning links for %q.
Include these platforms: GeeksforGeeks, W3Schools, MDN Docs (if applicable), FreeCodeCamp, YouTube.
Return JSON in this exact format:
{
  "topic": %q,
  "links": [
    {"platform": "GeeksforGeeks", "title": "Specific tutorial title", "url": "actual URL", "description": "Brief description of what this covers"}
  ]
}`, topic, topic)

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("learning link generation failed: %w", err)
	}
	if err := validateJSON(linksSchema, raw); err != nil {
		return nil, err
	}

	var out LinkGroup
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode learning links: %w", err)
	}
	return &out, nil
}

// InterviewQuestions asks the model for long-form interview-question text.
func (g *LLMGenerator) InterviewQuestions(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(`Write a thorough interview preparation document for %q:
30 interview questions with model answers, ordered from fundamentals to advanced.
Use plain text with numbered questions. Do not use markdown.`, topic)

	text, err := g.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("interview question generation failed: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("interview question generation returned empty text")
	}
	return text, nil
}
