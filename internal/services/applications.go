package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/limiter"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/notify"
	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/desertthunder/jobboard/internal/uploads"
)

const (
	DefaultApplicationLimit = 200
	MaxApplicationLimit     = 1000
)

var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var displayNameStrip = regexp.MustCompile(`[^\p{L}\p{N}_-]`)

// Submission is a public application request.
type Submission struct {
	ClientID string
	Form     models.ApplicationForm
	Filename string
	Content  []byte
}

// Resume is a stored resume ready to be served.
type Resume struct {
	DisplayName string
	ContentType string
	Content     []byte
}

// ApplicationOptions wires an [ApplicationService].
type ApplicationOptions struct {
	Applications models.Store[*models.Application]
	Jobs         JobStore
	Uploads      *uploads.Store
	Limiter      *limiter.Limiter
	Dispatcher   *notify.Dispatcher
	NotifyTo     string
	Logger       *log.Logger
	Now          func() time.Time
}

// ApplicationService accepts and serves applicant submissions.
type ApplicationService struct {
	apps       models.Store[*models.Application]
	jobs       JobStore
	uploads    *uploads.Store
	limiter    *limiter.Limiter
	dispatcher *notify.Dispatcher
	notifyTo   string
	logger     *log.Logger
	now        func() time.Time
}

// NewApplicationService creates an [ApplicationService].
func NewApplicationService(opts ApplicationOptions) *ApplicationService {
	return &ApplicationService{
		apps:       opts.Applications,
		jobs:       opts.Jobs,
		uploads:    opts.Uploads,
		limiter:    opts.Limiter,
		dispatcher: opts.Dispatcher,
		notifyTo:   opts.NotifyTo,
		logger:     shared.WithLogger(opts.Logger, "service", "applications"),
		now:        clockOrDefault(opts.Now),
	}
}

// Submit runs the submission pipeline and returns the stored application.
//
// Rate limiting happens first, so rejected submissions still count against the client. A missing or
// unknown job id makes the application general. A failed record write removes the stored resume and
// returns the error; a failed notification is only logged.
func (s *ApplicationService) Submit(ctx context.Context, sub Submission) (*models.Application, error) {
	if err := s.limiter.Check(sub.ClientID); err != nil {
		s.logger.Warn("application rate limited", "client", sub.ClientID)
		return nil, err
	}

	form := sub.Form
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if sub.Filename == "" {
		return nil, fmt.Errorf("%w: resume is required", shared.ErrValidation)
	}

	stored, err := s.uploads.Accept(sub.Filename, sub.Content)
	if err != nil {
		return nil, err
	}

	jobTitle, err := s.resolveJobTitle(ctx, form.JobID)
	if err != nil {
		s.discard(stored.Name)
		return nil, err
	}

	app := models.NewApplication(form, jobTitle, stored.Name, stored.OriginalFilename, s.now().UTC())
	if err := s.apps.Create(ctx, app); err != nil {
		s.discard(stored.Name)
		return nil, fmt.Errorf("failed to save application: %w", err)
	}

	s.logger.Info("application stored", "id", app.ID, "position", app.Position(), "resume", app.ResumePath)
	s.notify(ctx, app)
	return app, nil
}

// RetryAfter reports how long clientID must wait before its next submission is accepted.
func (s *ApplicationService) RetryAfter(clientID string) time.Duration {
	return s.limiter.RetryAfter(clientID)
}

// List returns up to limit applications, newest first.
func (s *ApplicationService) List(ctx context.Context, limit int) ([]*models.Application, error) {
	return s.apps.List(ctx, map[string]any{
		models.CriteriaLimit: clampLimit(limit, DefaultApplicationLimit, MaxApplicationLimit),
	})
}

// Get returns a single application.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	return s.apps.Get(ctx, id)
}

// Resume loads the resume of application id with a display name derived from the applicant's name.
func (s *ApplicationService) Resume(ctx context.Context, id string) (*Resume, error) {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.uploads.Open(app.ResumePath)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(app.ResumePath))
	contentType, ok := resumeContentTypes[ext]
	if !ok {
		contentType = "application/octet-stream"
	}

	return &Resume{DisplayName: ResumeDisplayName(app.Name, ext), ContentType: contentType, Content: content}, nil
}

// ResumeDisplayName builds "{Name_With_Underscores}_resume{ext}" keeping only letters, digits, '_' and '-'.
func ResumeDisplayName(name, ext string) string {
	base := displayNameStrip.ReplaceAllString(strings.Join(strings.Fields(name), "_"), "")
	if base == "" {
		base = "applicant"
	}
	return base + "_resume" + ext
}

func (s *ApplicationService) resolveJobTitle(ctx context.Context, jobID string) (*string, error) {
	if jobID == "" {
		return nil, nil
	}

	job, err := s.jobs.Get(ctx, jobID)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Debug("application references unknown job", "job_id", jobID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job.Title, nil
}

func (s *ApplicationService) notify(ctx context.Context, app *models.Application) {
	notice := notify.ApplicationNotice{
		Name:     app.Name,
		Email:    app.Email,
		Position: app.Position(),
		Resume:   app.ResumePath,
	}
	if app.OriginalFilename != nil {
		notice.Resume = *app.OriginalFilename
	}
	if app.Message != nil {
		notice.Message = *app.Message
	}

	body, err := notify.RenderApplication(notice)
	if err != nil {
		s.logger.Error("failed to render notification", "id", app.ID, "error", err)
		return
	}

	result, err := s.dispatcher.Notify(ctx, s.notifyTo, notice.Subject(), body)
	if err != nil {
		s.logger.Error("failed to record notification", "id", app.ID, "error", err)
		return
	}
	if !result.Delivered {
		s.logger.Warn("application notification not delivered", "id", app.ID, "log_id", result.LogID)
	}
}

// discard removes a stored resume after a later step failed.
func (s *ApplicationService) discard(name string) {
	if err := s.uploads.Remove(name); err != nil {
		s.logger.Error("failed to remove orphaned resume", "resume", name, "error", err)
	}
}
