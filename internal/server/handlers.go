package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/services"
	"github.com/desertthunder/jobboard/internal/shared"
)

// multipartOverhead is the room left for form fields and boundaries on top of the resume size cap.
const multipartOverhead = 1 << 20

// publicHandler serves the unauthenticated routes.
type publicHandler struct {
	jobs          *services.JobService
	applications  *services.ApplicationService
	auth          *services.AuthService
	notifications *services.NotificationService
	version       string
	maxUpload     int64
	trustProxy    bool
	logger        *log.Logger
}

func (h *publicHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/{$}", Handler: h.root},
		{Method: http.MethodGet, Path: "/api/health", Handler: h.health},
		{Method: http.MethodGet, Path: "/api/jobs", Handler: h.listJobs},
		{Method: http.MethodGet, Path: "/api/jobs/{idOrSlug}", Handler: h.getJob},
		{Method: http.MethodPost, Path: "/api/apply", Handler: h.apply},
		{Method: http.MethodGet, Path: "/api/test-email", Handler: h.testEmail},
		{Method: http.MethodPost, Path: "/api/admin/login", Handler: h.login},
	}
}

func (h *publicHandler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Job board API",
		"version": h.version,
		"status":  "running",
		"health":  "/api/health",
	})
}

func (h *publicHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *publicHandler) listJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	jobs, err := h.jobs.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *publicHandler) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), r.PathValue("idOrSlug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *publicHandler) apply(w http.ResponseWriter, r *http.Request) {
	client := clientIP(r, h.trustProxy)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUpload + multipartOverhead); err != nil {
		writeError(w, multipartError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	sub := services.Submission{
		ClientID: client,
		Form: models.ApplicationForm{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Message: r.FormValue("message"),
			JobID:   r.FormValue("job_id"),
		},
	}

	file, header, err := r.FormFile("resume")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		writeError(w, fmt.Errorf("%w: unreadable resume upload", shared.ErrValidation))
		return
	default:
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			writeError(w, fmt.Errorf("%w: unreadable resume upload", shared.ErrValidation))
			return
		}
		sub.Filename = header.Filename
		sub.Content = content
	}

	app, err := h.applications.Submit(r.Context(), sub)
	if err != nil {
		if errors.Is(err, shared.ErrRateLimited) {
			setRetryAfter(w, h.applications.RetryAfter(client))
		} else if StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("application failed", "client", client, "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Application submitted successfully",
		"id":      app.ID,
	})
}

func multipartError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: request exceeds %d bytes", shared.ErrFileTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: expected a multipart form", shared.ErrValidation)
}

func (h *publicHandler) testEmail(w http.ResponseWriter, r *http.Request) {
	result, err := h.notifications.SendTest(r.Context())
	if err != nil {
		h.logger.Error("failed to log test email", "error", err)
		writeError(w, err)
		return
	}

	if !result.Delivered {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"detail":       "Failed to send email: " + result.Err.Error(),
			"email_log_id": result.LogID,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":            "Test email sent",
		"email_log_id":       result.LogID,
		"provider_reference": result.ProviderReference,
	})
}

func (h *publicHandler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"token":      result.Token.Value,
		"expires_at": result.Token.ExpiresAt,
		"admin":      result.Admin.Summary(),
	})
}
