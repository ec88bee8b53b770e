package content

import (
	"context"
	"fmt"

	"google.golang.org/api/books/v1"
	"google.golang.org/api/option"
)

// BookDetails is the bibliographic detail looked up for a recommended book.
type BookDetails struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Description   string   `json:"description,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	PageCount     int64    `json:"pageCount,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	PreviewLink   string   `json:"previewLink,omitempty"`
}

// BooksEnricher looks up book metadata against the Google Books API.
type BooksEnricher struct {
	service *books.Service
}

// NewBooksEnricher creates an enricher. apiKey may be empty for anonymous
// (rate-limited) access.
func NewBooksEnricher(ctx context.Context, apiKey string) (*BooksEnricher, error) {
	opts := []option.ClientOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	svc, err := books.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create books service: %w", err)
	}
	return &BooksEnricher{service: svc}, nil
}

// Enrich looks up the best-matching volume for a title/author pair. Returns
// nil when nothing matches; lookup failures are errors the caller may ignore
// (enrichment is optional).
func (e *BooksEnricher) Enrich(ctx context.Context, title, author string) (*BookDetails, error) {
	query := "intitle:" + title
	if author != "" {
		query += " inauthor:" + author
	}

	vols, err := e.service.Volumes.List(query).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("books lookup failed: %w", err)
	}
	if len(vols.Items) == 0 || vols.Items[0].VolumeInfo == nil {
		return nil, nil
	}

	info := vols.Items[0].VolumeInfo
	details := &BookDetails{
		Title:         info.Title,
		Authors:       info.Authors,
		Description:   info.Description,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		PreviewLink:   info.PreviewLink,
	}
	if info.ImageLinks != nil {
		details.Thumbnail = info.ImageLinks.Thumbnail
	}
	return details, nil
}
