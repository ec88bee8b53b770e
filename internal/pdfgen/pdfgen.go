// Package pdfgen renders interview-preparation documents to PDF with a
// headless browser. Requires Chrome/Chromium to be installed on the system.
package pdfgen

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single render. PDF generation is best-effort: plan
// generation proceeds without the PDF when rendering fails.
const DefaultTimeout = 30 * time.Second

var docTemplate = template.Must(template.New("interview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; margin: 40px; line-height: 1.5; color: #1a1a2e; }
  h1 { font-size: 22px; border-bottom: 2px solid #1a1a2e; padding-bottom: 8px; }
  p { font-size: 13px; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}
</body>
</html>`))

// BuildHTML produces the printable HTML document for a titled body of text.
// Paragraphs are split on blank lines.
func BuildHTML(title, body string) (string, error) {
	var paragraphs []string
	for _, p := range strings.Split(body, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var sb strings.Builder
	err := docTemplate.Execute(&sb, struct {
		Title      string
		Paragraphs []string
	}{Title: title, Paragraphs: paragraphs})
	if err != nil {
		return "", fmt.Errorf("failed to build document HTML: %w", err)
	}
	return sb.String(), nil
}

// Renderer converts HTML documents into PDF bytes.
type Renderer struct {
	timeout time.Duration
}

// NewRenderer creates a Renderer with the default timeout.
func NewRenderer() *Renderer {
	return &Renderer{timeout: DefaultTimeout}
}

// RenderPDF prints an HTML document to PDF bytes.
func (r *Renderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return pdf, nil
}

// RenderDocument builds the HTML for a titled body and prints it to PDF.
func (r *Renderer) RenderDocument(ctx context.Context, title, body string) ([]byte, error) {
	html, err := BuildHTML(title, body)
	if err != nil {
		return nil, err
	}
	return r.RenderPDF(ctx, html)
}
