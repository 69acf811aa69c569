// Package orchestration drives interviews end to end: starting a session,
// turning answers into scores and follow-up questions, and completing the
// interview with a synthesized evaluation.
package orchestration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/agents"
	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// ErrInvalidState is returned when an operation does not apply to the
// interview's current lifecycle status.
var ErrInvalidState = errors.New("interview is not in a valid state for this operation")

// Store is the persistence surface the orchestrator needs. *db.DB
// implements it.
type Store interface {
	GetInterview(ctx context.Context, id uuid.UUID) (*types.Interview, error)
	UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status types.InterviewStatus, completedAt *time.Time) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error)

	AppendEvent(ctx context.Context, event *types.InterviewEvent) error
	ListEvents(ctx context.Context, interviewID uuid.UUID, typ types.EventType) ([]types.InterviewEvent, error)
	LatestQuestionEvent(ctx context.Context, interviewID uuid.UUID) (*types.InterviewEvent, error)

	LoadPlannerState(ctx context.Context, interviewID uuid.UUID) (*db.PlannerStateRecord, error)
	SavePlannerState(ctx context.Context, interviewID uuid.UUID, state *types.PlannerState, expectedVersion int) error
	DeletePlannerState(ctx context.Context, interviewID uuid.UUID) error

	UpsertEvaluation(ctx context.Context, evaluation *types.Evaluation) error
}

// Planner decides interview flow. *planning.Planner implements it.
type Planner interface {
	Initialize(job *types.Job, interview *types.Interview, analysis *types.CandidateAnalysis) (*types.PlannerState, error)
	DecideNextAction(ctx context.Context, state *types.PlannerState, techStack []string) (*types.PlannerDecision, error)
	RecordQuestion(state *types.PlannerState, competency string)
	RecordScore(state *types.PlannerState, competency string, score float64)
}

// AgentProvider resolves a routing domain to an agent. *agents.Registry
// implements it.
type AgentProvider interface {
	Get(domain agents.Domain) agents.Agent
}

// CandidateAnalyzer produces the pre-interview candidate analysis.
type CandidateAnalyzer interface {
	Analyze(ctx context.Context, job *types.Job, candidate *types.Candidate) (*types.CandidateAnalysis, error)
}

// Evaluator synthesizes the final evaluation from the event log.
type Evaluator interface {
	Synthesize(ctx context.Context, interviewID uuid.UUID, job *types.Job, candidate *types.Candidate) (*types.Evaluation, error)
}

// Publisher fans events out to live listeners. *stream.Hub implements it.
type Publisher interface {
	Publish(event *types.InterviewEvent)
}

// BlobStore persists the interview transcript artifact.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// Turn is the outcome of one orchestrator step: either the next question,
// or completion with the final evaluation.
type Turn struct {
	Question   *types.Question   `json:"question,omitempty"`
	Evaluation *types.Evaluation `json:"evaluation,omitempty"`
	Done       bool              `json:"done"`
}

// Orchestrator coordinates the planner, agents, and collaborators for the
// full interview lifecycle.
type Orchestrator struct {
	store     Store
	planner   Planner
	agents    AgentProvider
	analyzer  CandidateAnalyzer
	evaluator Evaluator
	publisher Publisher
	blobs     BlobStore
	locks     *keyedLocks
}

func New(store Store, planner Planner, provider AgentProvider, analyzer CandidateAnalyzer, evaluator Evaluator, publisher Publisher, blobs BlobStore) *Orchestrator {
	return &Orchestrator{
		store:     store,
		planner:   planner,
		agents:    provider,
		analyzer:  analyzer,
		evaluator: evaluator,
		publisher: publisher,
		blobs:     blobs,
		locks:     newKeyedLocks(),
	}
}

// Start transitions a scheduled interview to in_progress, runs candidate
// analysis, initializes the planner state, and asks the first question.
// A start that failed before its first question was recorded leaves the
// interview without a pending question; re-invoking Start resumes from the
// durable state the failed attempt left behind.
func (o *Orchestrator) Start(ctx context.Context, interviewID uuid.UUID) (*Turn, error) {
	unlock := o.locks.lock(interviewID)
	defer unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interview, err := o.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	switch interview.Status {
	case types.StatusScheduled:
	case types.StatusInProgress:
		// Restartable only while no question has been asked; once a
		// question is in flight, answers go through ProcessAnswer.
		if _, err := o.store.LatestQuestionEvent(ctx, interviewID); err == nil {
			return nil, fmt.Errorf("interview already has a question in flight: %w", ErrInvalidState)
		} else if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot start interview in status %q: %w", interview.Status, ErrInvalidState)
	}

	job, err := o.store.GetJob(ctx, interview.JobID)
	if err != nil {
		return nil, err
	}
	candidate, err := o.store.GetCandidate(ctx, interview.CandidateID)
	if err != nil {
		return nil, err
	}

	if interview.Status == types.StatusInProgress {
		rec, err := o.store.LoadPlannerState(ctx, interviewID)
		if err == nil {
			return o.nextQuestion(ctx, interview, job, candidate, rec)
		}
		if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		// No state survived the failed attempt; initialize from scratch.
	}

	// Analysis is best-effort: a failed analysis degrades to job-level
	// difficulty, it does not block the interview.
	analysis, err := o.analyzer.Analyze(ctx, job, candidate)
	if err != nil {
		log.Printf("Candidate analysis failed for interview %s: %v", interviewID, err)
		analysis = nil
	}

	state, err := o.planner.Initialize(job, interview, analysis)
	if err != nil {
		return nil, err
	}

	if interview.Status == types.StatusScheduled {
		if err := o.store.UpdateInterviewStatus(ctx, interviewID, types.StatusInProgress, nil); err != nil {
			return nil, err
		}
	}
	if err := o.store.SavePlannerState(ctx, interviewID, state, 0); err != nil {
		return nil, err
	}
	if err := o.record(ctx, interviewID, types.EventSystem, types.SystemPayload{
		Message:           "interview started",
		CandidateAnalysis: analysis,
		JobDomain:         state.JobDomain,
	}); err != nil {
		return nil, err
	}

	rec, err := o.store.LoadPlannerState(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return o.nextQuestion(ctx, interview, job, candidate, rec)
}

// ProcessAnswer records an answer to the latest question, scores it, folds
// the score into planner state, and either asks the next question or
// completes the interview.
func (o *Orchestrator) ProcessAnswer(ctx context.Context, interviewID uuid.UUID, answer string) (*Turn, error) {
	unlock := o.locks.lock(interviewID)
	defer unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interview, err := o.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != types.StatusInProgress {
		return nil, fmt.Errorf("cannot answer interview in status %q: %w", interview.Status, ErrInvalidState)
	}

	questionEvent, err := o.store.LatestQuestionEvent(ctx, interviewID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("no question awaiting an answer: %w", ErrInvalidState)
		}
		return nil, err
	}
	var question types.QuestionPayload
	if err := json.Unmarshal(questionEvent.Payload, &question); err != nil {
		return nil, fmt.Errorf("failed to decode pending question: %w", err)
	}

	if err := o.record(ctx, interviewID, types.EventAnswer, types.AnswerPayload{
		Text:       answer,
		QuestionID: &questionEvent.ID,
	}); err != nil {
		return nil, err
	}

	agent := o.agentFor(question)
	eval, err := agent.EvaluateAnswer(ctx, agents.AnswerRequest{
		CandidateID: interview.CandidateID,
		Question:    question,
		Answer:      answer,
	})
	if err != nil {
		return nil, err
	}

	if err := o.record(ctx, interviewID, types.EventScore, types.ScorePayload{
		Competency:     question.Competency,
		Score:          eval.Score,
		Evidence:       eval.Evidence,
		Recommendation: string(eval.Recommendation),
	}); err != nil {
		return nil, err
	}

	rec, err := o.store.LoadPlannerState(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	o.planner.RecordScore(rec.State, question.Competency, eval.Score)
	if err := o.store.SavePlannerState(ctx, interviewID, rec.State, rec.Version); err != nil {
		return nil, err
	}
	rec.Version++

	job, err := o.store.GetJob(ctx, interview.JobID)
	if err != nil {
		return nil, err
	}
	candidate, err := o.store.GetCandidate(ctx, interview.CandidateID)
	if err != nil {
		return nil, err
	}
	return o.nextQuestion(ctx, interview, job, candidate, rec)
}

// Cancel terminates an interview without an evaluation.
func (o *Orchestrator) Cancel(ctx context.Context, interviewID uuid.UUID) error {
	unlock := o.locks.lock(interviewID)
	defer unlock()

	interview, err := o.store.GetInterview(ctx, interviewID)
	if err != nil {
		return err
	}
	if interview.Status.Terminal() {
		return fmt.Errorf("cannot cancel interview in status %q: %w", interview.Status, ErrInvalidState)
	}

	now := time.Now().UTC()
	if err := o.store.UpdateInterviewStatus(ctx, interviewID, types.StatusCancelled, &now); err != nil {
		return err
	}
	if err := o.store.DeletePlannerState(ctx, interviewID); err != nil {
		log.Printf("Failed to delete planner state for cancelled interview %s: %v", interviewID, err)
	}
	return o.record(ctx, interviewID, types.EventSystem, types.SystemPayload{Message: "interview cancelled"})
}

// nextQuestion consults the planner and either generates the next question
// or completes the interview. The question cap is enforced here as well:
// even a planner that keeps asking cannot exceed MaxQuestions.
func (o *Orchestrator) nextQuestion(ctx context.Context, interview *types.Interview, job *types.Job, candidate *types.Candidate, rec *db.PlannerStateRecord) (*Turn, error) {
	state := rec.State

	var techStack []string
	if job.Normalized != nil {
		techStack = job.Normalized.TechStack
	}

	decision, err := o.planner.DecideNextAction(ctx, state, techStack)
	if err != nil {
		return nil, err
	}
	if decision.Action == types.ActionQuestion && state.QuestionCount >= state.MaxQuestions {
		decision = &types.PlannerDecision{Action: types.ActionComplete, Reasoning: "question limit reached"}
	}
	if decision.Action == types.ActionComplete {
		return o.complete(ctx, interview, job, candidate)
	}
	if decision.Action != types.ActionQuestion {
		return nil, fmt.Errorf("unknown planner action %q: %w", decision.Action, ErrInvalidState)
	}

	domain := agents.Route(agents.RouteInput{
		Competency:      decision.Competency,
		AgentType:       decision.AgentType,
		JobDomain:       jobDomain(job, decision),
		TechStack:       techStack,
		SelectedAgents:  interview.SelectedAgents,
		PreferredAgents: job.PreferredAgents,
	})
	agent := o.agents.Get(domain)

	question, err := agent.GenerateQuestion(ctx, agents.QuestionRequest{
		CandidateID: interview.CandidateID,
		Job:         job,
		Competency:  decision.Competency,
		Difficulty:  state.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	if err := o.record(ctx, interview.ID, types.EventQuestion, types.QuestionPayload{
		Text:           question.Text,
		Competency:     question.Competency,
		Difficulty:     question.Difficulty,
		ExpectedAnswer: question.ExpectedAnswer,
		Category:       question.Category,
		AgentType:      string(decision.AgentType),
		Domain:         string(domain),
		Reasoning:      decision.Reasoning,
		TechStack:      techStack,
	}); err != nil {
		return nil, err
	}

	o.planner.RecordQuestion(state, question.Competency)
	if err := o.store.SavePlannerState(ctx, interview.ID, state, rec.Version); err != nil {
		return nil, err
	}

	return &Turn{Question: question}, nil
}

// complete synthesizes the evaluation, archives the transcript, and closes
// out the interview.
func (o *Orchestrator) complete(ctx context.Context, interview *types.Interview, job *types.Job, candidate *types.Candidate) (*Turn, error) {
	evaluation, err := o.evaluator.Synthesize(ctx, interview.ID, job, candidate)
	if err != nil {
		return nil, err
	}
	if err := o.store.UpsertEvaluation(ctx, evaluation); err != nil {
		return nil, err
	}

	if err := o.record(ctx, interview.ID, types.EventSystem, types.SystemPayload{
		Message:    "interview completed",
		Evaluation: evaluation,
	}); err != nil {
		return nil, err
	}

	if err := o.archiveTranscript(ctx, interview.ID); err != nil {
		log.Printf("Failed to archive transcript for interview %s: %v", interview.ID, err)
	}

	now := time.Now().UTC()
	if err := o.store.UpdateInterviewStatus(ctx, interview.ID, types.StatusCompleted, &now); err != nil {
		return nil, err
	}
	if err := o.store.DeletePlannerState(ctx, interview.ID); err != nil {
		log.Printf("Failed to delete planner state for completed interview %s: %v", interview.ID, err)
	}

	return &Turn{Evaluation: evaluation, Done: true}, nil
}

// archiveTranscript uploads the full event log as a JSON artifact.
func (o *Orchestrator) archiveTranscript(ctx context.Context, interviewID uuid.UUID) error {
	if o.blobs == nil {
		return nil
	}
	events, err := o.store.ListEvents(ctx, interviewID, "")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(map[string]any{
		"interview_id": interviewID,
		"events":       events,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = o.blobs.Put(ctx, fmt.Sprintf("%s/transcript.json", interviewID), data, "application/json")
	return err
}

// record appends an event to the log and publishes it to live listeners.
func (o *Orchestrator) record(ctx context.Context, interviewID uuid.UUID, typ types.EventType, payload any) error {
	event, err := types.NewEvent(interviewID, typ, payload)
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", typ, err)
	}
	if err := o.store.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to append %s event: %w", typ, err)
	}
	if o.publisher != nil {
		o.publisher.Publish(event)
	}
	return nil
}

// agentFor resolves the agent that asked a recorded question so the same
// agent evaluates the answer.
func (o *Orchestrator) agentFor(question types.QuestionPayload) agents.Agent {
	if question.Domain != "" {
		return o.agents.Get(agents.Domain(question.Domain))
	}
	if question.AgentType == string(types.AgentHR) {
		return o.agents.Get(agents.DomainBehavioral)
	}
	return o.agents.Get(agents.DomainGeneric)
}

func jobDomain(job *types.Job, decision *types.PlannerDecision) string {
	if decision.Domain != "" {
		return decision.Domain
	}
	if job.Normalized != nil {
		return job.Normalized.Domain
	}
	return ""
}
