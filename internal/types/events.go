package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of an interview event.
type EventType string

// Event types. The event log is append-only and is the single source of
// truth for interview history.
const (
	EventQuestion EventType = "question"
	EventAnswer   EventType = "answer"
	EventScore    EventType = "score"
	EventSystem   EventType = "system"
)

// InterviewEvent is one entry in an interview's append-only timeline.
type InterviewEvent struct {
	ID          uuid.UUID       `json:"id"`
	InterviewID uuid.UUID       `json:"interview_id"`
	Type        EventType       `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Timestamp   time.Time       `json:"timestamp"`
}

// QuestionPayload is the payload of a question event. Routing metadata is
// recorded so answers can be evaluated by the agent that asked.
type QuestionPayload struct {
	Text           string   `json:"text"`
	Competency     string   `json:"competency"`
	Difficulty     string   `json:"difficulty"`
	ExpectedAnswer string   `json:"expectedAnswer,omitempty"`
	Category       string   `json:"category,omitempty"`
	AgentType      string   `json:"agentType"`
	Domain         string   `json:"domain,omitempty"`
	Reasoning      string   `json:"reasoning,omitempty"`
	TechStack      []string `json:"techStack,omitempty"`
}

// AnswerPayload is the payload of an answer event.
type AnswerPayload struct {
	Text       string     `json:"text"`
	QuestionID *uuid.UUID `json:"questionId,omitempty"`
}

// ScorePayload is the payload of a score event. Score is in [0,1].
type ScorePayload struct {
	Competency     string  `json:"competency"`
	Score          float64 `json:"score"`
	Evidence       string  `json:"evidence"`
	Recommendation string  `json:"recommendation"`
}

// SystemPayload marks lifecycle boundaries and embeds analysis snapshots.
type SystemPayload struct {
	Message           string             `json:"message"`
	State             *PlannerState      `json:"state,omitempty"`
	CandidateAnalysis *CandidateAnalysis `json:"candidateAnalysis,omitempty"`
	JobDomain         string             `json:"jobDomain,omitempty"`
	Evaluation        *Evaluation        `json:"evaluation,omitempty"`
}

// NewEvent builds an event with a marshaled payload.
func NewEvent(interviewID uuid.UUID, typ EventType, payload any) (*InterviewEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &InterviewEvent{
		ID:          uuid.New(),
		InterviewID: interviewID,
		Type:        typ,
		Payload:     raw,
		Timestamp:   time.Now().UTC(),
	}, nil
}
