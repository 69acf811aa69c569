package agents

import (
	"context"
	"fmt"
	"log"

	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/prompts"
	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

//go:embed questions.yaml
var questionLibraryYAML []byte

// BehavioralTemplate is one library entry the behavioral agent can adapt.
type BehavioralTemplate struct {
	ID       string `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	Text     string `yaml:"text" json:"text"`
}

type questionLibrary struct {
	Questions []BehavioralTemplate `yaml:"questions"`
}

// fallbackQuestion is asked when selection fails; the interview must never
// stall on an unavailable model.
var fallbackQuestion = types.Question{
	Text:     "Tell me about a time you faced a challenging situation at work. How did you handle it?",
	Category: "problem_solving",
}

// BehavioralAgent selects and adapts questions from a fixed library and
// evaluates answers against a STAR-style rubric.
type BehavioralAgent struct {
	client    llm.Client
	retriever rag.Retriever
	library   []BehavioralTemplate
	system    string
}

func NewBehavioralAgent(client llm.Client, retriever rag.Retriever) *BehavioralAgent {
	var lib questionLibrary
	if err := yaml.Unmarshal(questionLibraryYAML, &lib); err != nil {
		panic(fmt.Sprintf("invalid embedded behavioral question library: %v", err))
	}
	return &BehavioralAgent{
		client:    client,
		retriever: retriever,
		library:   lib.Questions,
		system:    prompts.MustGet("agents.json", "behavioral-system"),
	}
}

func (a *BehavioralAgent) Domain() Domain { return DomainBehavioral }

// Library returns the embedded question templates.
func (a *BehavioralAgent) Library() []BehavioralTemplate { return a.library }

// GenerateQuestion asks the model to pick and adapt a library question for
// this candidate. Any failure falls back to a fixed default question.
func (a *BehavioralAgent) GenerateQuestion(ctx context.Context, req QuestionRequest) (*types.Question, error) {
	candidateContext := retrieveContext(ctx, a.retriever, req.CandidateID, "behavioral teamwork communication", expertContextChunks)

	libraryYAML, err := yaml.Marshal(questionLibrary{Questions: a.library})
	if err != nil {
		return a.fallback(req), nil
	}

	tmpl, err := prompts.Get("agents.json", "behavioral-select")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"Library":          string(libraryYAML),
		"CandidateContext": candidateContext,
	})

	raw, err := a.client.GenerateJSON(ctx, prompt, a.system, llm.TierLite)
	if err != nil {
		log.Printf("Behavioral question selection failed, using fallback: %v", err)
		return a.fallback(req), nil
	}

	var selected struct {
		Text       string `json:"text"`
		Category   string `json:"category"`
		TemplateID string `json:"templateId"`
	}
	if err := schemas.Decode(schemas.BehavioralQuestion, raw, &selected); err != nil {
		log.Printf("Behavioral question selection returned invalid output, using fallback: %v", err)
		return a.fallback(req), nil
	}

	return &types.Question{
		Text:       selected.Text,
		Category:   selected.Category,
		Competency: req.Competency,
	}, nil
}

// fallback returns the fixed default question, carrying the requested
// competency so the resulting score still lands in the evaluation map.
func (a *BehavioralAgent) fallback(req QuestionRequest) *types.Question {
	q := fallbackQuestion
	q.Competency = req.Competency
	return &q
}

// EvaluateAnswer scores a behavioral answer. Unlike selection there is no
// fallback: a failed evaluation is a real error the caller must see.
func (a *BehavioralAgent) EvaluateAnswer(ctx context.Context, req AnswerRequest) (*types.AnswerEvaluation, error) {
	tmpl, err := prompts.Get("agents.json", "behavioral-evaluate")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"QuestionText": req.Question.Text,
		"Category":     req.Question.Category,
		"Answer":       req.Answer,
	})

	raw, err := a.client.GenerateJSON(ctx, prompt, a.system, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("behavioral evaluation failed: %w", err)
	}

	var eval types.AnswerEvaluation
	if err := schemas.Decode(schemas.AnswerEvaluation, raw, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}
