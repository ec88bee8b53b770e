// Package server provides the HTTP REST API for the study-plan service.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marcus/studyplan/internal/content"
	"github.com/marcus/studyplan/internal/db"
	"github.com/marcus/studyplan/internal/mail"
	"github.com/marcus/studyplan/internal/plan"
	"github.com/marcus/studyplan/internal/storage"
	"github.com/marcus/studyplan/internal/types"
)

// maxUpdateAttempts bounds the optimistic-concurrency retry loop on plan
// document writes.
const maxUpdateAttempts = 3

// PlanStore is the database surface the plan service depends on.
// *db.DB satisfies it; tests substitute an in-memory fake.
type PlanStore interface {
	InsertPlan(ctx context.Context, userID uuid.UUID, doc plan.StoredDocument) (*db.PlanRecord, error)
	GetPlan(ctx context.Context, planID, userID uuid.UUID) (*db.PlanRecord, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]db.PlanRecord, error)
	UpdatePlanDocument(ctx context.Context, planID, userID uuid.UUID, doc plan.StoredDocument, expectedVersion int64) (bool, error)
	DeletePlan(ctx context.Context, planID, userID uuid.UUID) (bool, error)
	AddLearningGoal(ctx context.Context, userID uuid.UUID, goal string) error
	UpsertCodingProgress(ctx context.Context, rec db.CodingProgressRecord) (*db.CodingProgressRecord, error)
	ListCodingProgress(ctx context.Context, userID, planID uuid.UUID) ([]db.CodingProgressRecord, error)
}

// PDFRenderer renders a titled text document to PDF bytes.
type PDFRenderer interface {
	RenderDocument(ctx context.Context, title, body string) ([]byte, error)
}

// PlanService provides business logic for study-plan operations.
type PlanService struct {
	store     PlanStore
	generator content.Generator
	fallback  content.Generator
	enricher  *content.BooksEnricher
	market    *content.MarketClient
	renderer  PDFRenderer
	mailer    mail.Mailer
	files     *storage.Store
}

// NewPlanService creates a PlanService. generator may be nil, in which case
// every generation uses the deterministic fallback. enricher, renderer, and
// mailer are optional collaborators. A nil market falls back to a client
// serving the static snapshot.
func NewPlanService(store PlanStore, generator content.Generator, enricher *content.BooksEnricher, market *content.MarketClient, renderer PDFRenderer, mailer mail.Mailer, files *storage.Store) *PlanService {
	fallback := content.Fallback{}
	if generator == nil {
		generator = fallback
	}
	if mailer == nil {
		mailer = mail.Noop{}
	}
	if market == nil {
		market = content.NewMarketClient("")
	}
	return &PlanService{
		store:     store,
		generator: generator,
		fallback:  fallback,
		enricher:  enricher,
		market:    market,
		renderer:  renderer,
		mailer:    mailer,
		files:     files,
	}
}

// toView converts a stored record into its API shape. The document is
// normalized first, and a document that needed migration is written back
// best-effort so the stored shape converges on the canonical one.
func (s *PlanService) toView(ctx context.Context, rec *db.PlanRecord) *types.PlanView {
	p, mutated := plan.Normalize(rec.Document)
	if mutated {
		if ok, err := s.store.UpdatePlanDocument(ctx, rec.ID, rec.UserID, p.Document(), rec.Version); err != nil {
			log.Printf("[plans] failed to persist migrated plan %s: %v", rec.ID, err)
		} else if !ok {
			// Lost the race to a concurrent writer; the winner's read
			// will migrate it instead.
			log.Printf("[plans] skipped migration of plan %s: version moved", rec.ID)
		}
	}
	return &types.PlanView{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Plan:      p,
	}
}

// List returns all plans owned by userID, newest first.
func (s *PlanService) List(ctx context.Context, userID uuid.UUID) ([]*types.PlanView, error) {
	records, err := s.store.ListPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]*types.PlanView, len(records))
	for i := range records {
		views[i] = s.toView(ctx, &records[i])
	}
	return views, nil
}

// Get returns one plan owned by userID.
func (s *PlanService) Get(ctx context.Context, planID, userID uuid.UUID) (*types.PlanView, error) {
	rec, err := s.store.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrPlanNotFound{PlanID: planID}
	}
	return s.toView(ctx, rec), nil
}

// Generate builds a new study plan for the request, stores it, and reports
// whether a summary email went out. email may be empty, which suppresses the
// summary email. Content generation is best-effort: any adapter failure
// degrades that section to deterministic fallback content.
func (s *PlanService) Generate(ctx context.Context, userID uuid.UUID, email string, req *types.GeneratePlanRequest) (*types.GeneratePlanResponse, error) {
	months := content.ParseDurationMonths(req.Duration)

	structure, err := s.generator.PlanStructure(ctx, req.Goal, months)
	if err != nil {
		log.Printf("[plans] plan structure generation failed, using fallback: %v", err)
		structure, _ = s.fallback.PlanStructure(ctx, req.Goal, months)
	}

	notes, resources, schedule := content.StudyAids(req.Goal, req.Duration, req.DailyTime)

	doc := plan.StoredDocument{
		Skill:           req.Goal,
		Duration:        req.Duration,
		DailyTime:       req.DailyTime,
		Goal:            req.Goal,
		TimeToComplete:  req.Duration,
		DailyStudyTime:  req.DailyTime,
		Months:          make([]plan.Month, len(structure)),
		CompletedMonths: []int{},
		Notes:           notes,
		Resources:       resources,
		Schedule:        schedule,
		ResourceTypes:   req.ResourceTypes,
		ResourcesByType: map[string]json.RawMessage{},
	}
	for i, m := range structure {
		doc.Months[i] = plan.Month{Month: m.Month, Topics: m.Topics}
	}

	s.generateResources(ctx, &doc, req.Goal, req.ResourceTypes)

	rec, err := s.store.InsertPlan(ctx, userID, doc)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddLearningGoal(ctx, userID, req.Goal); err != nil {
		log.Printf("[plans] failed to record learning goal for user %s: %v", userID, err)
	}

	view := s.toView(ctx, rec)

	emailSent := false
	if req.SendEmail && email != "" {
		emailSent = s.sendPlanEmail(email, view)
	}

	return &types.GeneratePlanResponse{Plan: view, EmailSent: emailSent}, nil
}

// generateResources fills doc.ResourcesByType for each requested type,
// running the adapters in parallel. Unknown types are skipped. The coding
// bundle carries the full problem set; clients filter by the plan's
// difficulty preference.
func (s *PlanService) generateResources(ctx context.Context, doc *plan.StoredDocument, topic string, resourceTypes []string) {
	var g errgroup.Group
	var videos []content.Video
	var books []content.Book
	var pdfs []content.InterviewPDF
	var problems []content.Problem
	var deep []content.DeepBundle

	for _, rt := range resourceTypes {
		switch rt {
		case "video":
			g.Go(func() error {
				var err error
				if videos, err = s.generator.Videos(ctx, topic); err != nil {
					log.Printf("[plans] video generation failed, using fallback: %v", err)
					videos, _ = s.fallback.Videos(ctx, topic)
				}
				return nil
			})
		case "books":
			g.Go(func() error {
				var err error
				if books, pdfs, err = s.generator.Books(ctx, topic); err != nil {
					log.Printf("[plans] book generation failed, using fallback: %v", err)
					books, pdfs, _ = s.fallback.Books(ctx, topic)
				}
				return nil
			})
		case "coding":
			problems = content.CodingProblems("All")
		case "deep":
			g.Go(func() error {
				data := s.market.Fetch(ctx)
				deep = []content.DeepBundle{{
					TrendingSkills: data.Trending,
					JobLinks:       data.Jobs,
				}}
				return nil
			})
		}
	}
	_ = g.Wait()

	if videos != nil {
		s.attachResource(doc, "video", videos)
	}
	if books != nil {
		if s.enricher != nil {
			s.enrichBooks(ctx, books)
		}
		s.attachResource(doc, "books", books)
	}
	if pdfs != nil {
		s.attachResource(doc, "interviewPdfs", pdfs)
	}
	if problems != nil {
		s.attachResource(doc, "coding", problems)
	}
	if deep != nil {
		s.attachResource(doc, "deep", deep)
	}
}

// enrichBooks fills bibliographic details for each recommended book.
// Enrichment failures leave the book as generated.
func (s *PlanService) enrichBooks(ctx context.Context, books []content.Book) {
	for i := range books {
		details, err := s.enricher.Enrich(ctx, books[i].Title, books[i].Author)
		if err != nil {
			log.Printf("[plans] book enrichment failed for %q: %v", books[i].Title, err)
			continue
		}
		if details == nil {
			continue
		}
		books[i].Thumbnail = details.Thumbnail
		books[i].PreviewLink = details.PreviewLink
		if books[i].Description == "" && details.Description != "" {
			books[i].Description = details.Description
		}
	}
}

func (s *PlanService) attachResource(doc *plan.StoredDocument, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[plans] failed to encode %s resources: %v", key, err)
		return
	}
	doc.ResourcesByType[key] = raw
}

// sendPlanEmail dispatches the plan-summary email. Failures are logged, not
// returned: email is a courtesy, never a reason to fail generation.
func (s *PlanService) sendPlanEmail(to string, view *types.PlanView) bool {
	subject := fmt.Sprintf("Your %s study plan is ready", view.Skill)
	body := planEmailHTML(view)
	if err := s.mailer.Send(to, subject, body); err != nil {
		log.Printf("[plans] failed to send plan email to %s: %v", to, err)
		return false
	}
	return true
}

// planEmailHTML renders the plan-summary email body.
func planEmailHTML(view *types.PlanView) string {
	body := fmt.Sprintf("<h1>%s</h1><p>%s, %s per day.</p><ol>",
		view.Skill, view.Duration, view.DailyTime)
	for _, m := range view.Months {
		body += fmt.Sprintf("<li>Month %d", m.Month)
		if len(m.Topics) > 0 {
			body += ": " + m.Topics[0]
		}
		body += "</li>"
	}
	return body + "</ol>"
}

// update re-reads a plan and applies fn to its canonical form until the
// optimistic write succeeds or attempts run out.
func (s *PlanService) update(ctx context.Context, planID, userID uuid.UUID, fn func(*plan.Plan) error) (*types.PlanView, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		rec, err := s.store.GetPlan(ctx, planID, userID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, &ErrPlanNotFound{PlanID: planID}
		}

		p, _ := plan.Normalize(rec.Document)
		if err := fn(&p); err != nil {
			return nil, err
		}

		ok, err := s.store.UpdatePlanDocument(ctx, planID, userID, p.Document(), rec.Version)
		if err != nil {
			return nil, err
		}
		if ok {
			return &types.PlanView{
				ID:        rec.ID,
				CreatedAt: rec.CreatedAt,
				UpdatedAt: time.Now().UTC(),
				Plan:      p,
			}, nil
		}
	}
	return nil, fmt.Errorf("plan %s is being modified concurrently, retry", planID)
}

// MarkMonth marks or unmarks a month as completed and returns the updated plan.
func (s *PlanService) MarkMonth(ctx context.Context, planID, userID uuid.UUID, month int, completed bool) (*types.PlanView, error) {
	return s.update(ctx, planID, userID, func(p *plan.Plan) error {
		if completed {
			return plan.MarkMonth(p, month)
		}
		return plan.UnmarkMonth(p, month)
	})
}

// UpdateDifficulty sets the plan's coding-problem difficulty preference.
func (s *PlanService) UpdateDifficulty(ctx context.Context, planID, userID uuid.UUID, difficulty string) (*types.PlanView, error) {
	if !plan.ValidDifficulty(difficulty) {
		return nil, &ErrValidation{Field: "codingDifficulty", Message: "must be one of Easy, Medium, Hard, All"}
	}
	return s.update(ctx, planID, userID, func(p *plan.Plan) error {
		p.CodingDifficulty = difficulty
		return nil
	})
}

// AppendResources generates resources of one type for an existing plan and
// attaches them to it. For interviewPdfs a printable PDF is also rendered and
// saved alongside the plan's uploaded books.
func (s *PlanService) AppendResources(ctx context.Context, planID, userID uuid.UUID, req *types.AppendResourcesRequest) (*types.PlanView, error) {
	rec, err := s.store.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrPlanNotFound{PlanID: planID}
	}
	p, _ := plan.Normalize(rec.Document)

	topic := req.Topic
	if topic == "" {
		topic = p.Skill
	}

	var value any
	switch req.ResourceType {
	case "video":
		videos, err := s.generator.Videos(ctx, topic)
		if err != nil {
			log.Printf("[plans] video generation failed, using fallback: %v", err)
			videos, _ = s.fallback.Videos(ctx, topic)
		}
		value = videos
	case "books":
		books, _, err := s.generator.Books(ctx, topic)
		if err != nil {
			log.Printf("[plans] book generation failed, using fallback: %v", err)
			books, _, _ = s.fallback.Books(ctx, topic)
		}
		if s.enricher != nil {
			s.enrichBooks(ctx, books)
		}
		value = books
	case "learningResources":
		links, err := s.generator.LearningLinks(ctx, topic)
		if err != nil {
			log.Printf("[plans] link generation failed, using fallback: %v", err)
			links, _ = s.fallback.LearningLinks(ctx, topic)
		}
		value = links
	case "interviewPdfs":
		pdfs, err := s.generateInterviewPDFs(ctx, userID, planID, topic)
		if err != nil {
			return nil, err
		}
		value = pdfs
	default:
		return nil, &ErrValidation{Field: "resourceType", Message: "unknown resource type"}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s resources: %w", req.ResourceType, err)
	}

	return s.update(ctx, planID, userID, func(p *plan.Plan) error {
		if p.ResourcesByType == nil {
			p.ResourcesByType = map[string]json.RawMessage{}
		}
		p.ResourcesByType[req.ResourceType] = appendResourceItems(p.ResourcesByType[req.ResourceType], raw)
		return nil
	})
}

// appendResourceItems appends newly generated content onto a stored resource
// list. A list payload contributes its elements; anything else is appended as
// a single entry. A stored value that is not a list is replaced.
func appendResourceItems(existing, added json.RawMessage) json.RawMessage {
	var list []json.RawMessage
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &list); err != nil {
			list = nil
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(added, &items); err != nil {
		items = []json.RawMessage{added}
	}
	list = append(list, items...)

	raw, err := json.Marshal(list)
	if err != nil {
		return added
	}
	return raw
}

// generateInterviewPDFs produces interview-question text, renders it to a
// stored PDF, and returns the resource entries. Rendering is best-effort: a
// failed render still returns the text-only entry.
func (s *PlanService) generateInterviewPDFs(ctx context.Context, userID, planID uuid.UUID, topic string) ([]content.InterviewPDF, error) {
	text, err := s.generator.InterviewQuestions(ctx, topic)
	if err != nil {
		log.Printf("[plans] interview question generation failed, using fallback: %v", err)
		text, _ = s.fallback.InterviewQuestions(ctx, topic)
	}

	title := fmt.Sprintf("%s Interview Questions", topic)
	entry := content.InterviewPDF{Title: title, Description: "Generated interview preparation document"}

	if s.renderer == nil || s.files == nil {
		return []content.InterviewPDF{entry}, nil
	}

	pdf, err := s.renderer.RenderDocument(ctx, title, text)
	if err != nil {
		log.Printf("[plans] interview pdf rendering failed: %v", err)
		return []content.InterviewPDF{entry}, nil
	}

	filename, _, err := s.files.SaveBook(userID.String(), planID.String(), ".pdf", bytes.NewReader(pdf))
	if err != nil {
		log.Printf("[plans] failed to store interview pdf: %v", err)
		return []content.InterviewPDF{entry}, nil
	}
	entry.Filename = filename
	return []content.InterviewPDF{entry}, nil
}

// Delete removes a plan and every file stored under it.
func (s *PlanService) Delete(ctx context.Context, planID, userID uuid.UUID) error {
	ok, err := s.store.DeletePlan(ctx, planID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return &ErrPlanNotFound{PlanID: planID}
	}
	if s.files != nil {
		if err := s.files.RemovePlan(userID.String(), planID.String()); err != nil {
			log.Printf("[plans] failed to remove files for plan %s: %v", planID, err)
		}
	}
	return nil
}

// UploadBook stores an uploaded PDF under the plan and records it in the
// plan document.
func (s *PlanService) UploadBook(ctx context.Context, planID, userID uuid.UUID, title, mimeType string, r io.Reader) (*types.PlanView, error) {
	if s.files == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}

	filename, size, err := s.files.SaveBook(userID.String(), planID.String(), ".pdf", r)
	if err != nil {
		return nil, err
	}

	file := plan.PDFFile{
		ID:         uuid.NewString(),
		Title:      title,
		Filename:   filename,
		MimeType:   mimeType,
		Size:       size,
		UploadedAt: time.Now().UTC(),
	}

	view, err := s.update(ctx, planID, userID, func(p *plan.Plan) error {
		p.PDFFiles = append(p.PDFFiles, file)
		return nil
	})
	if err != nil {
		// The record failed; don't leave the file orphaned.
		if rmErr := s.files.RemoveBook(userID.String(), planID.String(), filename); rmErr != nil {
			log.Printf("[plans] failed to remove orphaned upload %s: %v", filename, rmErr)
		}
		return nil, err
	}
	return view, nil
}

// OpenBook opens a stored file for a plan the user owns. The filename must be
// recorded in the plan document; unknown names are rejected before touching
// storage.
func (s *PlanService) OpenBook(ctx context.Context, planID, userID uuid.UUID, filename string) (io.ReadCloser, *plan.PDFFile, error) {
	if s.files == nil {
		return nil, nil, fmt.Errorf("file storage is not configured")
	}

	view, err := s.Get(ctx, planID, userID)
	if err != nil {
		return nil, nil, err
	}

	var file *plan.PDFFile
	for i := range view.PDFFiles {
		if view.PDFFiles[i].Filename == filename {
			file = &view.PDFFiles[i]
			break
		}
	}
	if file == nil && !interviewPDFRecorded(view.ResourcesByType, filename) {
		return nil, nil, &storage.ErrFileNotFound{Filename: filename}
	}

	rc, err := s.files.OpenBook(userID.String(), planID.String(), filename)
	if err != nil {
		return nil, nil, err
	}
	return rc, file, nil
}

// interviewPDFRecorded reports whether filename belongs to a generated
// interview PDF attached to the plan.
func interviewPDFRecorded(resources map[string]json.RawMessage, filename string) bool {
	raw, ok := resources["interviewPdfs"]
	if !ok {
		return false
	}
	var pdfs []content.InterviewPDF
	if err := json.Unmarshal(raw, &pdfs); err != nil {
		return false
	}
	for _, p := range pdfs {
		if p.Filename != "" && p.Filename == filename {
			return true
		}
	}
	return false
}

// UpdateCodingProgress upserts the user's progress on one coding problem for
// a plan they own. Moving a problem to solved stamps the solve time; any
// other status clears it.
func (s *PlanService) UpdateCodingProgress(ctx context.Context, planID, userID uuid.UUID, req *types.CodingProgressRequest) (*types.CodingProgressView, error) {
	rec, err := s.store.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrPlanNotFound{PlanID: planID}
	}

	row := db.CodingProgressRecord{
		UserID:           userID,
		PlanID:           planID,
		ProblemID:        req.ProblemID,
		Platform:         req.Platform,
		Status:           req.Status,
		TimeSpentMinutes: req.TimeSpent,
	}
	if req.Status == "solved" {
		now := time.Now().UTC()
		row.SolvedAt = &now
	}

	saved, err := s.store.UpsertCodingProgress(ctx, row)
	if err != nil {
		return nil, err
	}
	return codingProgressView(saved), nil
}

// CodingProgress lists the user's progress rows for a plan, newest first.
func (s *PlanService) CodingProgress(ctx context.Context, planID, userID uuid.UUID) ([]*types.CodingProgressView, error) {
	rec, err := s.store.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrPlanNotFound{PlanID: planID}
	}

	records, err := s.store.ListCodingProgress(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	views := make([]*types.CodingProgressView, len(records))
	for i := range records {
		views[i] = codingProgressView(&records[i])
	}
	return views, nil
}

func codingProgressView(rec *db.CodingProgressRecord) *types.CodingProgressView {
	return &types.CodingProgressView{
		ProblemID: rec.ProblemID,
		Platform:  rec.Platform,
		Status:    rec.Status,
		SolvedAt:  rec.SolvedAt,
		TimeSpent: rec.TimeSpentMinutes,
		UpdatedAt: rec.UpdatedAt,
	}
}

// Stats aggregates activity statistics across all of the user's plans.
func (s *PlanService) Stats(ctx context.Context, userID uuid.UUID) (plan.Stats, error) {
	records, err := s.store.ListPlans(ctx, userID)
	if err != nil {
		return plan.Stats{}, err
	}

	activities := make([]plan.Activity, len(records))
	for i := range records {
		p, _ := plan.Normalize(records[i].Document)
		activities[i] = plan.Activity{
			CreatedAt: records[i].CreatedAt,
			UpdatedAt: records[i].UpdatedAt,
			DailyTime: p.DailyTime,
		}
	}
	return plan.ComputeStats(activities, time.Now().UTC()), nil
}
