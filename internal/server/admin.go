package server

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/services"
)

// adminHandler serves the routes behind the admin guard.
type adminHandler struct {
	jobs          *services.JobService
	applications  *services.ApplicationService
	notifications *services.NotificationService
	guard         Middleware
	logger        *log.Logger
}

func (h *adminHandler) Routes() []Route {
	routes := []Route{
		{Method: http.MethodGet, Path: "/api/admin/applications", Handler: h.listApplications},
		{Method: http.MethodGet, Path: "/api/admin/applications/{id}/resume", Handler: h.downloadResume},
		{Method: http.MethodGet, Path: "/api/admin/email-logs", Handler: h.listEmailLogs},
		{Method: http.MethodGet, Path: "/api/admin/jobs", Handler: h.listJobs},
		{Method: http.MethodPost, Path: "/api/admin/jobs", Handler: h.createJob},
		{Method: http.MethodPut, Path: "/api/admin/jobs/{id}", Handler: h.updateJob},
		{Method: http.MethodDelete, Path: "/api/admin/jobs/{id}", Handler: h.deleteJob},
	}
	for i := range routes {
		routes[i].Middleware = []Middleware{h.guard}
	}
	return routes
}

func (h *adminHandler) listApplications(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	apps, err := h.applications.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list applications", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (h *adminHandler) downloadResume(w http.ResponseWriter, r *http.Request) {
	resume, err := h.applications.Resume(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", resume.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": resume.DisplayName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(resume.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resume.Content); err != nil {
		h.logger.Warn("resume download interrupted", "id", r.PathValue("id"), "error", err)
	}
}

func (h *adminHandler) listEmailLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	logs, err := h.notifications.History(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *adminHandler) listJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	jobs, err := h.jobs.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *adminHandler) createJob(w http.ResponseWriter, r *http.Request) {
	var in models.JobInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	job, err := h.jobs.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	h.logAction(r, "job created", job.ID)
	writeJSON(w, http.StatusCreated, job)
}

func (h *adminHandler) updateJob(w http.ResponseWriter, r *http.Request) {
	var patch models.JobPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	job, err := h.jobs.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	h.logAction(r, "job updated", job.ID)
	writeJSON(w, http.StatusOK, job)
}

func (h *adminHandler) deleteJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.logAction(r, "job deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *adminHandler) logAction(r *http.Request, msg, id string) {
	if admin, ok := AdminFrom(r.Context()); ok {
		h.logger.Info(msg, "id", id, "admin", admin.Email)
	}
}
