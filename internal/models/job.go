package models

import (
	"strings"
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
)

// DefaultJobType is applied when a listing is created without a type.
const DefaultJobType = "Full-time"

// Job is a published listing. Slug is always [shared.Slugify] of the current title.
type Job struct {
	ID          string    `json:"id" validate:"required"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Type        string    `json:"type" validate:"required"`
	Seniority   string    `json:"seniority" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Key implements [Model].
func (j *Job) Key() string { return j.ID }

// Validate implements [Model].
func (j *Job) Validate() error { return check(j) }

// JobInput holds the fields an admin supplies to create a listing.
type JobInput struct {
	Title       string   `json:"title" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Type        string   `json:"type"`
	Seniority   string   `json:"seniority" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
}

// Validate trims the input and checks required fields.
func (in *JobInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Seniority = strings.TrimSpace(in.Seniority)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)
	return check(in)
}

// NewJob builds a Job from validated input, generating the id and slug and stamping both timestamps with now.
func NewJob(in JobInput, now time.Time) *Job {
	jobType := in.Type
	if jobType == "" {
		jobType = DefaultJobType
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Job{
		ID:          shared.GenerateID(),
		Slug:        shared.Slugify(in.Title),
		Title:       in.Title,
		Location:    in.Location,
		Type:        jobType,
		Seniority:   in.Seniority,
		Description: in.Description,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// JobPatch is a partial update. A nil field is left untouched.
type JobPatch struct {
	Title       *string   `json:"title,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Seniority   *string   `json:"seniority,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Location == nil && p.Type == nil &&
		p.Seniority == nil && p.Description == nil && p.Tags == nil
}

// Apply merges the present fields into job, recomputes the slug when the title is present and refreshes UpdatedAt.
// The caller validates the result.
func (p JobPatch) Apply(job *Job, now time.Time) {
	if p.Title != nil {
		job.Title = strings.TrimSpace(*p.Title)
		job.Slug = shared.Slugify(job.Title)
	}
	if p.Location != nil {
		job.Location = strings.TrimSpace(*p.Location)
	}
	if p.Type != nil {
		job.Type = strings.TrimSpace(*p.Type)
	}
	if p.Seniority != nil {
		job.Seniority = strings.TrimSpace(*p.Seniority)
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Tags != nil {
		job.Tags = *p.Tags
		if job.Tags == nil {
			job.Tags = []string{}
		}
	}
	job.UpdatedAt = now
}
