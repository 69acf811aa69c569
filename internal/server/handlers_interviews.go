package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// handleCreateInterview handles POST /interviews
func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req types.CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, &ErrValidation{Message: err.Error()})
		return
	}

	jobID, _ := uuid.Parse(req.JobID)
	candidateID, _ := uuid.Parse(req.CandidateID)

	// Both sides must exist before scheduling.
	if _, err := s.db.GetJob(r.Context(), jobID); err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.db.GetCandidate(r.Context(), candidateID); err != nil {
		writeError(w, err)
		return
	}

	mode := types.InterviewMode(req.Mode)
	if mode == "" {
		mode = types.ModeChat
	}

	interview := &types.Interview{
		ID:                 uuid.New(),
		JobID:              jobID,
		CandidateID:        candidateID,
		Mode:               mode,
		Status:             types.StatusScheduled,
		DifficultyOverride: req.DifficultyOverride,
		SelectedAgents:     req.SelectedAgents,
	}
	if err := s.db.CreateInterview(r.Context(), interview); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interview)
}

// handleListInterviews handles GET /interviews
func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	filter := db.InterviewFilter{
		Status: types.InterviewStatus(r.URL.Query().Get("status")),
		Limit:  parseLimit(r, 50),
	}
	if raw := r.URL.Query().Get("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, &ErrValidation{Message: "invalid job_id: must be a UUID"})
			return
		}
		filter.JobID = &id
	}
	if raw := r.URL.Query().Get("candidate_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, &ErrValidation{Message: "invalid candidate_id: must be a UUID"})
			return
		}
		filter.CandidateID = &id
	}

	interviews, err := s.db.ListInterviews(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"interviews": interviews, "count": len(interviews)})
}

// handleGetInterview handles GET /interviews/{id}
func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	interview, err := s.db.GetInterview(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interview)
}

// handleStartInterview handles POST /interviews/{id}/start. It moves the
// interview to in_progress and returns the first question.
func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	turn, err := s.orchestrator.Start(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

// handleSubmitAnswer handles POST /interviews/{id}/answer. It scores the
// answer against the pending question and returns either the next
// question or the completion turn.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, &ErrValidation{Message: err.Error()})
		return
	}

	turn, err := s.orchestrator.ProcessAnswer(r.Context(), id, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

// handleCancelInterview handles POST /interviews/{id}/cancel
func (s *Server) handleCancelInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.orchestrator.Cancel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// handleListInterviewEvents handles GET /interviews/{id}/events. The type
// query parameter filters to a single event type.
func (s *Server) handleListInterviewEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := s.db.GetInterview(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	eventType := types.EventType(r.URL.Query().Get("type"))
	events, err := s.db.ListEvents(r.Context(), id, eventType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events, "count": len(events)})
}

// handleGetEvaluation handles GET /interviews/{id}/evaluation
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	evaluation, err := s.db.GetEvaluation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evaluation)
}

// handleStreamInterview handles GET /interviews/{id}/stream. It streams
// interview events over SSE until the client disconnects.
func (s *Server) handleStreamInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := s.db.GetInterview(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		writeError(w, err)
		return
	}

	events, cancel := s.hub.Subscribe(id, 16)
	defer cancel()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		case ev := <-events:
			if ev == nil {
				return
			}
			if err := sse.WriteEvent(string(ev.Type), ev); err != nil {
				log.Printf("SSE write failed for interview %s: %v", id, err)
				return
			}
		}
	}
}
