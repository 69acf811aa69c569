// Package types provides type definitions for structured data shared across the interview system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobLevel values mirror the difficulty ladder used for interviews.
const (
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
	LevelStaff  = "staff"
)

// Competency is a named skill area extracted from a job description.
// Weight is advisory: importance-ordered and intended to sum near 1.0,
// but not validated.
type Competency struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Level  string  `json:"level"`
}

// NormalizedJob is the structured form of a job description, produced once
// by the job understanding agent. Re-ingestion overwrites it wholesale.
type NormalizedJob struct {
	Competencies []Competency `json:"competencies"`
	Level        string       `json:"level"`
	TechStack    []string     `json:"techStack"`
	Requirements []string     `json:"requirements"`
	Domain       string       `json:"domain,omitempty"`
}

// Job is a position the hiring organization interviews for.
type Job struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Level           string         `json:"level"`
	Description     string         `json:"description"`
	Normalized      *NormalizedJob `json:"normalized,omitempty"`
	PreferredAgents []string       `json:"preferred_agents,omitempty"`
	CreatedBy       *uuid.UUID     `json:"created_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// CandidateLinks holds the source URLs candidate context is ingested from.
type CandidateLinks struct {
	Resume    string `json:"resume,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// URLs returns the non-empty links paired with their source labels.
func (l CandidateLinks) URLs() map[string]string {
	urls := make(map[string]string)
	if l.Resume != "" {
		urls["resume"] = l.Resume
	}
	if l.LinkedIn != "" {
		urls["linkedin"] = l.LinkedIn
	}
	if l.GitHub != "" {
		urls["github"] = l.GitHub
	}
	if l.Portfolio != "" {
		urls["portfolio"] = l.Portfolio
	}
	return urls
}

// Candidate is a person being interviewed.
type Candidate struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email,omitempty"`
	Links     CandidateLinks `json:"links"`
	OwnerID   *uuid.UUID     `json:"owner_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// InterviewMode distinguishes voice from chat sessions.
type InterviewMode string

// Interview modes
const (
	ModeVoice InterviewMode = "voice"
	ModeChat  InterviewMode = "chat"
)

// InterviewStatus is the lifecycle state of an interview.
// Transitions are monotonic forward only.
type InterviewStatus string

// Interview statuses
const (
	StatusScheduled  InterviewStatus = "scheduled"
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
	StatusCancelled  InterviewStatus = "cancelled"
)

// statusRank orders statuses for forward-only transition checks.
var statusRank = map[InterviewStatus]int{
	StatusScheduled:  0,
	StatusInProgress: 1,
	StatusCompleted:  2,
	StatusCancelled:  2,
}

// CanTransitionTo reports whether moving from s to next is a legal
// forward transition. Terminal states accept no further transitions.
func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	if s == StatusCompleted || s == StatusCancelled {
		return false
	}
	return to > from
}

// Terminal reports whether the status admits no further lifecycle activity.
func (s InterviewStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Interview ties one job to one candidate for a single session.
type Interview struct {
	ID                 uuid.UUID       `json:"id"`
	JobID              uuid.UUID       `json:"job_id"`
	CandidateID        uuid.UUID       `json:"candidate_id"`
	Mode               InterviewMode   `json:"mode"`
	Status             InterviewStatus `json:"status"`
	DifficultyOverride string          `json:"difficulty_override,omitempty"`
	SelectedAgents     []string        `json:"selected_agents,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
}
