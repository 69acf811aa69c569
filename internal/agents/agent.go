// Package agents implements the interviewer agents: domain experts keyed by
// a routing domain, a behavioral interviewer, and the understanding agents
// that analyze candidates and normalize jobs.
package agents

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// Domain identifies which expert handles a question.
type Domain string

// Routing domains
const (
	DomainBackend    Domain = "backend"
	DomainFrontend   Domain = "frontend"
	DomainML         Domain = "ml"
	DomainGeneric    Domain = "generic"
	DomainBehavioral Domain = "behavioral"
)

// QuestionRequest carries everything an agent needs to generate a question.
type QuestionRequest struct {
	CandidateID uuid.UUID
	Job         *types.Job
	Competency  string
	Difficulty  types.Difficulty
}

// AnswerRequest carries an answer back to the agent that asked the question.
type AnswerRequest struct {
	CandidateID uuid.UUID
	Question    types.QuestionPayload
	Answer      string
}

// Agent generates questions and evaluates answers for one domain.
type Agent interface {
	Domain() Domain
	GenerateQuestion(ctx context.Context, req QuestionRequest) (*types.Question, error)
	EvaluateAnswer(ctx context.Context, req AnswerRequest) (*types.AnswerEvaluation, error)
}

// retrieveContext fetches candidate context for a query. Retrieval is
// best-effort: failures degrade to an empty context so the interview can
// continue without personalization.
func retrieveContext(ctx context.Context, retriever rag.Retriever, candidateID uuid.UUID, query string, k int) string {
	if retriever == nil {
		return rag.FormatContext(nil)
	}
	chunks, err := retriever.Retrieve(ctx, candidateID, query, k)
	if err != nil {
		log.Printf("Candidate context retrieval failed for %s: %v", candidateID, err)
		return rag.FormatContext(nil)
	}
	return rag.FormatContext(chunks)
}

// jobContext renders the job facts an expert needs inline in a prompt.
func jobContext(job *types.Job) string {
	if job == nil {
		return "No job context available."
	}
	parts := []string{fmt.Sprintf("%s (%s level)", job.Title, job.Level)}
	if job.Normalized != nil && len(job.Normalized.TechStack) > 0 {
		parts = append(parts, "Tech stack: "+strings.Join(job.Normalized.TechStack, ", "))
	}
	return strings.Join(parts, ". ")
}
