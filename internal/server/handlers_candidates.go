package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/server/middleware"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// handleCreateCandidate handles POST /candidates
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, &ErrValidation{Message: err.Error()})
		return
	}

	candidate := &types.Candidate{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: req.Email,
		Links: req.Links,
	}
	if userID, err := middleware.GetUserID(r); err == nil {
		candidate.OwnerID = &userID
	}

	if err := s.db.CreateCandidate(r.Context(), candidate); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

// handleListCandidates handles GET /candidates
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50)
	candidates, err := s.db.ListCandidates(r.Context(), nil, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates, "count": len(candidates)})
}

// handleGetCandidate handles GET /candidates/{id}
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	candidate, err := s.db.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// handleDeleteCandidate handles DELETE /candidates/{id}
func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.db.DeleteCandidate(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleIngestCandidate handles POST /candidates/{id}/ingest. It fetches
// the candidate's links, chunks and embeds the text, and replaces the
// candidate's context index.
func (s *Server) handleIngestCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	candidate, err := s.db.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.ingester.Ingest(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
