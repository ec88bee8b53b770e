package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/marcus/studyplan/internal/plan"
)

// GeneratePlanRequest represents a request to generate a new study plan.
type GeneratePlanRequest struct {
	Goal          string   `json:"goal" validate:"required,min=1"`
	Duration      string   `json:"duration" validate:"required,min=1"`
	DailyTime     string   `json:"dailyTime" validate:"required,min=1"`
	ResourceTypes []string `json:"resourceTypes,omitempty" validate:"omitempty,dive,oneof=video books coding deep"`
	SendEmail     bool     `json:"sendEmail,omitempty"`
}

// MarkMonthRequest marks or unmarks a month as completed. Completed defaults
// to true when omitted.
type MarkMonthRequest struct {
	Month     int   `json:"month" validate:"required,min=1"`
	Completed *bool `json:"completed,omitempty"`
}

// UpdatePlanRequest carries mutable plan settings.
type UpdatePlanRequest struct {
	CodingDifficulty string `json:"codingDifficulty" validate:"required,oneof=Easy Medium Hard All"`
}

// AppendResourcesRequest adds generated resources of one type to a plan.
type AppendResourcesRequest struct {
	ResourceType string `json:"resourceType" validate:"required,oneof=video books learningResources interviewPdfs"`
	Topic        string `json:"topic,omitempty"`
}

// CodingProgressRequest records the user's progress on one coding problem.
type CodingProgressRequest struct {
	ProblemID string `json:"problemId" validate:"required,min=1"`
	Platform  string `json:"platform" validate:"required,oneof=codeforces leetcode"`
	Status    string `json:"status" validate:"required,oneof=pending in_progress solved"`
	TimeSpent int    `json:"timeSpent,omitempty" validate:"min=0"`
}

// CodingProgressView is the API representation of one progress row.
type CodingProgressView struct {
	ProblemID string     `json:"problemId"`
	Platform  string     `json:"platform"`
	Status    string     `json:"status"`
	SolvedAt  *time.Time `json:"solvedAt,omitempty"`
	TimeSpent int        `json:"timeSpent"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// PlanView is the API representation of a stored plan.
type PlanView struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	plan.Plan
}

// GeneratePlanResponse wraps a freshly generated plan and whether a summary
// email was dispatched.
type GeneratePlanResponse struct {
	Plan      *PlanView `json:"plan"`
	EmailSent bool      `json:"emailSent"`
}

// Validate validates the GeneratePlanRequest using the validator.
func (r *GeneratePlanRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MarkMonthRequest using the validator.
func (r *MarkMonthRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePlanRequest using the validator.
func (r *UpdatePlanRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AppendResourcesRequest using the validator.
func (r *AppendResourcesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CodingProgressRequest using the validator.
func (r *CodingProgressRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
