// Package content provides the external content adapters: generated plan
// structures, per-category resource bundles, bibliographic enrichment, and
// market data. Every adapter is a black box behind a narrow interface so the
// plan service can run with deterministic fakes.
package content

import "context"

// MonthPlan is one month of a generated plan structure.
type MonthPlan struct {
	Month  int      `json:"month"`
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

// Video is a recommended video resource.
type Video struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Book is a recommended book. Thumbnail and PreviewLink are filled by
// bibliographic enrichment when available.
type Book struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	PreviewLink string `json:"previewLink,omitempty"`
}

// InterviewPDF is a recommended interview-preparation document.
type InterviewPDF struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Filename    string `json:"filename,omitempty"`
}

// Link is one learning-resource link.
type Link struct {
	Platform    string `json:"platform"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// LinkGroup is the set of learning links generated for a topic.
type LinkGroup struct {
	Topic string `json:"topic"`
	Links []Link `json:"links"`
}

// Generator supplies generated study content. Implementations must treat
// every call as best-effort: callers substitute deterministic fallbacks on
// any error.
type Generator interface {
	// PlanStructure returns an ordered month-by-month breakdown for topic.
	PlanStructure(ctx context.Context, topic string, months int) ([]MonthPlan, error)
	// Videos returns recommended video resources for topic.
	Videos(ctx context.Context, topic string) ([]Video, error)
	// Books returns recommended books and interview PDFs for topic.
	Books(ctx context.Context, topic string) ([]Book, []InterviewPDF, error)
	// LearningLinks returns curated tutorial links for topic.
	LearningLinks(ctx context.Context, topic string) (*LinkGroup, error)
	// InterviewQuestions returns long-form interview-question text for topic,
	// suitable for rendering into a paginated document.
	InterviewQuestions(ctx context.Context, topic string) (string, error)
}
