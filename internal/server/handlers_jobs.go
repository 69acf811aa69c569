package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/server/middleware"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// handleCreateJob handles POST /jobs
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, &ErrValidation{Message: err.Error()})
		return
	}

	job := &types.Job{
		ID:              uuid.New(),
		Title:           req.Title,
		Level:           req.Level,
		Description:     req.Description,
		PreferredAgents: req.PreferredAgents,
	}
	if userID, err := middleware.GetUserID(r); err == nil {
		job.CreatedBy = &userID
	}

	if err := s.db.CreateJob(r.Context(), job); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// handleListJobs handles GET /jobs
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50)
	jobs, err := s.db.ListJobs(r.Context(), nil, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handleGetJob handles GET /jobs/{id}
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleDeleteJob handles DELETE /jobs/{id}
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.db.DeleteJob(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleNormalizeJob handles POST /jobs/{id}/normalize. It runs the job
// understanding agent over the stored description and overwrites any
// previous normalized structure.
func (s *Server) handleNormalizeJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	normalized, err := s.jobAgent.Normalize(r.Context(), job.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.db.SetJobNormalized(r.Context(), id, normalized); err != nil {
		writeError(w, err)
		return
	}

	job.Normalized = normalized
	job.Level = normalized.Level
	writeJSON(w, http.StatusOK, job)
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Message: "invalid " + name + ": must be a UUID"}
	}
	return id, nil
}

// parseLimit reads the limit query parameter, falling back to a default.
func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
