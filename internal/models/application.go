package models

import (
	"strings"
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
)

// Application is an applicant submission. It is written once and never updated.
//
// JobID is not checked against existing jobs; JobTitle is the title snapshot taken at submission time
// and is nil for general applications or dangling job ids.
type Application struct {
	ID               string    `json:"id" validate:"required"`
	Name             string    `json:"name" validate:"required"`
	Email            string    `json:"email" validate:"required"`
	Message          *string   `json:"message"`
	JobID            *string   `json:"job_id"`
	JobTitle         *string   `json:"job_title"`
	ResumePath       string    `json:"resume_path" validate:"required"`
	OriginalFilename *string   `json:"original_filename,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Key implements [Model].
func (a *Application) Key() string { return a.ID }

// Validate implements [Model].
func (a *Application) Validate() error { return check(a) }

// Position returns the job title or "General Application" when there is none.
func (a *Application) Position() string {
	if a.JobTitle != nil && *a.JobTitle != "" {
		return *a.JobTitle
	}
	return "General Application"
}

// ApplicationForm holds the applicant fields of a multipart submission.
type ApplicationForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// Validate trims the form and checks required fields.
func (f *ApplicationForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
	f.JobID = strings.TrimSpace(f.JobID)
	return check(f)
}

// NewApplication builds an Application for a validated form and a stored resume.
func NewApplication(form ApplicationForm, jobTitle *string, resumePath, originalFilename string, now time.Time) *Application {
	return &Application{
		ID:               shared.GenerateID(),
		Name:             form.Name,
		Email:            form.Email,
		Message:          optional(form.Message),
		JobID:            optional(form.JobID),
		JobTitle:         jobTitle,
		ResumePath:       resumePath,
		OriginalFilename: optional(originalFilename),
		CreatedAt:        now,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
