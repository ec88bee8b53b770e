// Package plan implements the study-plan data model: normalization of
// historical document shapes into a single canonical form, the month-completion
// progress engine, and activity statistics.
package plan

import (
	"encoding/json"
	"time"
)

// CodingDifficulty is the user's coding-problem filter preference.
type CodingDifficulty string

const (
	DifficultyAll    CodingDifficulty = "All"
	DifficultyEasy   CodingDifficulty = "Easy"
	DifficultyMedium CodingDifficulty = "Medium"
	DifficultyHard   CodingDifficulty = "Hard"
)

// ValidDifficulty reports whether s is one of the accepted difficulty values.
func ValidDifficulty(s string) bool {
	switch CodingDifficulty(s) {
	case DifficultyAll, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Month is one planning period with its topics. Month numbers are positive,
// unique, and contiguous starting at 1 within a plan.
type Month struct {
	Month  int      `json:"month"`
	Topics []string `json:"topics"`
}

// StructureEntry is one item of the legacy planStructure TODO-list shape.
// Read-only migration source; never written going forward.
type StructureEntry struct {
	Month       int        `json:"month,omitempty"`
	Title       string     `json:"title,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
	Completed   bool       `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Resource is a titled link.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ScheduleDay is one day of the legacy flat schedule.
type ScheduleDay struct {
	Day   int      `json:"day"`
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}

// PDFFile is an uploaded-file record. ID is the externally addressable handle;
// Filename is the server-generated storage handle and is never derived from
// user input.
type PDFFile struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// StoredDocument is the raw persisted plan document. It tolerates every
// historical schema revision: the legacy flat topics/schedule shape, the
// planStructure TODO-list shape, and the canonical months/completedMonths
// shape. Only Normalize reads the legacy fields.
type StoredDocument struct {
	// Canonical fields.
	Skill           string  `json:"skill,omitempty"`
	Duration        string  `json:"duration,omitempty"`
	DailyTime       string  `json:"dailyTime,omitempty"`
	Months          []Month `json:"months,omitempty"`
	CompletedMonths []int   `json:"completedMonths,omitempty"`
	ProgressPercent int     `json:"progressPercent"`

	// Legacy mirrors of the canonical scalars.
	Goal           string `json:"goal,omitempty"`
	TimeToComplete string `json:"timeToComplete,omitempty"`
	DailyStudyTime string `json:"dailyStudyTime,omitempty"`

	// Legacy structures (migration sources only).
	PlanStructure []StructureEntry `json:"planStructure,omitempty"`
	Topics        []string         `json:"topics,omitempty"`

	// Auxiliary content and preferences, carried through unchanged.
	Notes            []string                   `json:"notes,omitempty"`
	Resources        []Resource                 `json:"resources,omitempty"`
	Schedule         []ScheduleDay              `json:"schedule,omitempty"`
	ResourceTypes    []string                   `json:"resourceTypes,omitempty"`
	ResourcesByType  map[string]json.RawMessage `json:"resourcesByType,omitempty"`
	CodingDifficulty string                     `json:"codingDifficulty,omitempty"`
	PDFFiles         []PDFFile                  `json:"pdfFiles,omitempty"`
}

// Plan is the canonical view of a plan document. Every read path goes through
// Normalize first, so no other component ever sees a legacy field.
type Plan struct {
	Skill           string  `json:"skill"`
	Duration        string  `json:"duration"`
	DailyTime       string  `json:"dailyTime"`
	Months          []Month `json:"months"`
	CompletedMonths []int   `json:"completedMonths"`
	ProgressPercent int     `json:"progressPercent"`

	Notes            []string                   `json:"notes,omitempty"`
	Resources        []Resource                 `json:"resources,omitempty"`
	Schedule         []ScheduleDay              `json:"schedule,omitempty"`
	ResourceTypes    []string                   `json:"resourceTypes,omitempty"`
	ResourcesByType  map[string]json.RawMessage `json:"resourcesByType,omitempty"`
	CodingDifficulty string                     `json:"codingDifficulty,omitempty"`
	PDFFiles         []PDFFile                  `json:"pdfFiles,omitempty"`
}

// Document converts a canonical plan back into its persisted form. The legacy
// scalar mirrors are repopulated so older readers keep working; the legacy
// structures are not written.
func (p *Plan) Document() StoredDocument {
	return StoredDocument{
		Skill:            p.Skill,
		Duration:         p.Duration,
		DailyTime:        p.DailyTime,
		Months:           p.Months,
		CompletedMonths:  p.CompletedMonths,
		ProgressPercent:  p.ProgressPercent,
		Goal:             p.Skill,
		TimeToComplete:   p.Duration,
		DailyStudyTime:   p.DailyTime,
		Notes:            p.Notes,
		Resources:        p.Resources,
		Schedule:         p.Schedule,
		ResourceTypes:    p.ResourceTypes,
		ResourcesByType:  p.ResourcesByType,
		CodingDifficulty: p.CodingDifficulty,
		PDFFiles:         p.PDFFiles,
	}
}

// MaxMonth returns the largest month number present, or 0 for an empty plan.
func (p *Plan) MaxMonth() int {
	max := 0
	for _, m := range p.Months {
		if m.Month > max {
			max = m.Month
		}
	}
	return max
}
