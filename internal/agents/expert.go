package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/prompts"
	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

const expertContextChunks = 3

// DomainProfile parameterizes one expert: its routing domain, the label
// used in prompts, and the focus areas its system instruction advertises.
type DomainProfile struct {
	Domain Domain
	Label  string
	Focus  []string
}

// Profiles for the built-in experts. The generic expert handles anything
// the router cannot place.
var (
	BackendProfile = DomainProfile{
		Domain: DomainBackend,
		Label:  "backend engineering",
		Focus: []string{
			"API design and service architecture",
			"Databases, SQL, and data modeling",
			"Distributed systems, caching, and messaging",
			"Concurrency, reliability, and performance",
		},
	}
	FrontendProfile = DomainProfile{
		Domain: DomainFrontend,
		Label:  "frontend engineering",
		Focus: []string{
			"JavaScript, TypeScript, and modern frameworks",
			"Component architecture and state management",
			"CSS, layout, and responsive design",
			"Accessibility and browser performance",
		},
	}
	MLProfile = DomainProfile{
		Domain: DomainML,
		Label:  "machine learning",
		Focus: []string{
			"Model selection, training, and evaluation",
			"Feature engineering and data pipelines",
			"ML system design and deployment",
			"Statistics and experiment design",
		},
	}
	GenericProfile = DomainProfile{
		Domain: DomainGeneric,
		Label:  "general software engineering",
		Focus: []string{
			"Programming fundamentals and data structures",
			"Software design and testing",
			"Debugging and problem decomposition",
		},
	}
)

// Expert is a domain interviewer. One implementation serves every domain,
// parameterized by profile; the profile shapes the system instruction and
// prompt framing, nothing else.
type Expert struct {
	profile   DomainProfile
	client    llm.Client
	retriever rag.Retriever
	system    string
}

func NewExpert(profile DomainProfile, client llm.Client, retriever rag.Retriever) *Expert {
	focus := "- " + strings.Join(profile.Focus, "\n- ")
	system := prompts.Format(prompts.MustGet("agents.json", "expert-system"), map[string]string{
		"Domain": profile.Label,
		"Focus":  focus,
	})
	return &Expert{profile: profile, client: client, retriever: retriever, system: system}
}

func (e *Expert) Domain() Domain { return e.profile.Domain }

// GenerateQuestion produces a question for the requested competency at the
// requested difficulty, grounded in retrieved candidate context.
func (e *Expert) GenerateQuestion(ctx context.Context, req QuestionRequest) (*types.Question, error) {
	candidateContext := retrieveContext(ctx, e.retriever, req.CandidateID, req.Competency, expertContextChunks)

	tmpl, err := prompts.Get("agents.json", "generate-question")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"Difficulty":       string(req.Difficulty),
		"Domain":           e.profile.Label,
		"Competency":       req.Competency,
		"JobContext":       jobContext(req.Job),
		"CandidateContext": candidateContext,
	})

	raw, err := e.client.GenerateJSON(ctx, prompt, e.system, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var question types.Question
	if err := schemas.Decode(schemas.Question, raw, &question); err != nil {
		return nil, err
	}
	if question.Competency == "" {
		question.Competency = req.Competency
	}
	if question.Difficulty == "" {
		question.Difficulty = string(req.Difficulty)
	}
	return &question, nil
}

// EvaluateAnswer scores an answer against the question's expected answer.
func (e *Expert) EvaluateAnswer(ctx context.Context, req AnswerRequest) (*types.AnswerEvaluation, error) {
	candidateContext := retrieveContext(ctx, e.retriever, req.CandidateID, req.Question.Competency, expertContextChunks)

	tmpl, err := prompts.Get("agents.json", "evaluate-answer")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"Difficulty":       req.Question.Difficulty,
		"Domain":           e.profile.Label,
		"Competency":       req.Question.Competency,
		"QuestionText":     req.Question.Text,
		"ExpectedAnswer":   req.Question.ExpectedAnswer,
		"Answer":           req.Answer,
		"CandidateContext": candidateContext,
	})

	raw, err := e.client.GenerateJSON(ctx, prompt, e.system, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}

	var eval types.AnswerEvaluation
	if err := schemas.Decode(schemas.AnswerEvaluation, raw, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}
