package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// fakeLLM returns canned JSON and records the last prompt it saw.
type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
	lastSystem string
	lastTier   llm.ModelTier
	calls      int
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt, system string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, system, tier)
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt, system string, tier llm.ModelTier) (string, error) {
	f.calls++
	f.lastPrompt, f.lastSystem, f.lastTier = prompt, system, tier
	return f.response, f.err
}

func (f *fakeLLM) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (f *fakeLLM) GetModel(tier llm.ModelTier) string { return "fake-model" }
func (f *fakeLLM) Close() error                       { return nil }

// fakeRetriever serves fixed chunks or a fixed error.
type fakeRetriever struct {
	chunks []rag.Chunk
	err    error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, candidateID uuid.UUID, query string, k int) ([]rag.Chunk, error) {
	return f.chunks, f.err
}

func backendQuestionJSON() string {
	return `{"text":"How would you design a rate limiter for a public API?","competency":"System Design","difficulty":"senior","expectedAnswer":"Token bucket vs sliding window, distributed coordination, failure modes."}`
}

func TestExpert_GenerateQuestion(t *testing.T) {
	client := &fakeLLM{response: backendQuestionJSON()}
	retriever := &fakeRetriever{chunks: []rag.Chunk{{Source: "github", Text: "Built a rate limiter in Go."}}}
	expert := NewExpert(BackendProfile, client, retriever)

	job := &types.Job{Title: "Backend Engineer", Level: types.LevelSenior, Normalized: &types.NormalizedJob{TechStack: []string{"Go", "Postgres"}}}
	q, err := expert.GenerateQuestion(context.Background(), QuestionRequest{
		CandidateID: uuid.New(),
		Job:         job,
		Competency:  "System Design",
		Difficulty:  types.DifficultySenior,
	})
	require.NoError(t, err)
	assert.Equal(t, "System Design", q.Competency)
	assert.Equal(t, "senior", q.Difficulty)
	assert.NotEmpty(t, q.ExpectedAnswer)

	assert.Equal(t, llm.TierStandard, client.lastTier)
	assert.Contains(t, client.lastPrompt, "System Design")
	assert.Contains(t, client.lastPrompt, "Built a rate limiter in Go.")
	assert.Contains(t, client.lastPrompt, "Tech stack: Go, Postgres")
	assert.Contains(t, client.lastSystem, "backend engineering")
}

func TestExpert_GenerateQuestion_RetrievalFailureDegrades(t *testing.T) {
	client := &fakeLLM{response: backendQuestionJSON()}
	retriever := &fakeRetriever{err: errors.New("index unavailable")}
	expert := NewExpert(BackendProfile, client, retriever)

	_, err := expert.GenerateQuestion(context.Background(), QuestionRequest{
		CandidateID: uuid.New(),
		Competency:  "System Design",
		Difficulty:  types.DifficultyMid,
	})
	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "No candidate context available.")
}

func TestExpert_GenerateQuestion_FillsMissingFields(t *testing.T) {
	client := &fakeLLM{response: `{"text":"Explain indexes.","expectedAnswer":"B-tree basics."}`}
	expert := NewExpert(BackendProfile, client, nil)

	q, err := expert.GenerateQuestion(context.Background(), QuestionRequest{
		CandidateID: uuid.New(),
		Competency:  "Databases",
		Difficulty:  types.DifficultyJunior,
	})
	require.NoError(t, err)
	assert.Equal(t, "Databases", q.Competency)
	assert.Equal(t, "junior", q.Difficulty)
}

func TestExpert_GenerateQuestion_RejectsMalformedOutput(t *testing.T) {
	client := &fakeLLM{response: `{"question":"wrong shape"}`}
	expert := NewExpert(BackendProfile, client, nil)

	_, err := expert.GenerateQuestion(context.Background(), QuestionRequest{
		CandidateID: uuid.New(),
		Competency:  "Databases",
		Difficulty:  types.DifficultyMid,
	})
	require.Error(t, err)
	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestExpert_EvaluateAnswer(t *testing.T) {
	client := &fakeLLM{response: `{"score":0.75,"evidence":"Covered token bucket but missed distributed case.","recommendation":"move_on"}`}
	expert := NewExpert(BackendProfile, client, nil)

	eval, err := expert.EvaluateAnswer(context.Background(), AnswerRequest{
		CandidateID: uuid.New(),
		Question: types.QuestionPayload{
			Text:           "How would you design a rate limiter?",
			Competency:     "System Design",
			Difficulty:     "senior",
			ExpectedAnswer: "Token bucket, distributed coordination.",
		},
		Answer: "I would use a token bucket per client.",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, eval.Score, 1e-9)
	assert.Equal(t, types.MoveOn, eval.Recommendation)
	assert.Contains(t, client.lastPrompt, "How would you design a rate limiter?")
	assert.Contains(t, client.lastPrompt, "token bucket per client")
}

func TestExpert_EvaluateAnswer_RejectsOutOfRangeScore(t *testing.T) {
	client := &fakeLLM{response: `{"score":1.5,"evidence":"x","recommendation":"move_on"}`}
	expert := NewExpert(BackendProfile, client, nil)

	_, err := expert.EvaluateAnswer(context.Background(), AnswerRequest{
		CandidateID: uuid.New(),
		Question:    types.QuestionPayload{Text: "q"},
		Answer:      "a",
	})
	assert.Error(t, err)
}

func TestExpert_GenerationErrorPropagates(t *testing.T) {
	genErr := &llm.GenerationError{Model: "fake-model", Err: llm.ErrTimeout}
	client := &fakeLLM{err: genErr}
	expert := NewExpert(MLProfile, client, nil)

	_, err := expert.GenerateQuestion(context.Background(), QuestionRequest{
		CandidateID: uuid.New(),
		Competency:  "Feature Engineering",
		Difficulty:  types.DifficultyMid,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrTimeout))
}

func TestRegistry_GetFallsBackToGeneric(t *testing.T) {
	registry := NewRegistry(&fakeLLM{}, nil)

	assert.Equal(t, DomainBackend, registry.Get(DomainBackend).Domain())
	assert.Equal(t, DomainBehavioral, registry.Get(DomainBehavioral).Domain())
	assert.Equal(t, DomainGeneric, registry.Get(Domain("unknown")).Domain())
	assert.ElementsMatch(t, []Domain{DomainBackend, DomainFrontend, DomainML, DomainBehavioral, DomainGeneric}, registry.Domains())
}
