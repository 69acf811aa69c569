package types

import (
	"time"

	"github.com/google/uuid"
)

// HiringRecommendation is the final ordinal verdict for an interview.
type HiringRecommendation string

// Hiring recommendations, ordered strong_yes > yes > no > strong_no.
const (
	StrongYes HiringRecommendation = "strong_yes"
	Yes       HiringRecommendation = "yes"
	No        HiringRecommendation = "no"
	StrongNo  HiringRecommendation = "strong_no"
)

// Valid reports whether r is one of the four recommendation bins.
func (r HiringRecommendation) Valid() bool {
	switch r {
	case StrongYes, Yes, No, StrongNo:
		return true
	}
	return false
}

// Evaluation is the final synthesized result of an interview. Summary is
// the full HR-facing analysis; CandidateSummary is the sanitized
// candidate-facing version and must carry no numeric scores.
type Evaluation struct {
	ID               uuid.UUID            `json:"id"`
	InterviewID      uuid.UUID            `json:"interview_id"`
	Scores           map[string]float64   `json:"scores"`
	Summary          string               `json:"summary"`
	CandidateSummary string               `json:"candidateSummary"`
	Recommendation   HiringRecommendation `json:"recommendation"`
	CreatedAt        time.Time            `json:"created_at"`
}
