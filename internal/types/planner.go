package types

// Difficulty is the interview difficulty ladder.
type Difficulty string

// Difficulty levels, from definitional questions up to architecture and
// leadership framing.
const (
	DifficultyJunior Difficulty = "junior"
	DifficultyMid    Difficulty = "mid"
	DifficultySenior Difficulty = "senior"
	DifficultyStaff  Difficulty = "staff"
)

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyJunior, DifficultyMid, DifficultySenior, DifficultyStaff:
		return true
	}
	return false
}

// CandidateAnalysis is the candidate understanding agent's synthesis of a
// candidate's materials against a job's requirements.
type CandidateAnalysis struct {
	Strengths             []string   `json:"strengths"`
	Risks                 []string   `json:"risks"`
	RecommendedDifficulty Difficulty `json:"recommendedDifficulty"`
	Summary               string     `json:"summary"`
	ExperienceLevel       string     `json:"experienceLevel"`
	KeyTechnologies       []string   `json:"keyTechnologies"`
}

// CompetencyState tracks coverage of one competency within an interview.
// Score is the running two-point average of evaluations so far; nil until
// the competency has been scored at least once.
type CompetencyState struct {
	Name           string   `json:"name"`
	Covered        bool     `json:"covered"`
	Score          *float64 `json:"score"`
	QuestionsAsked int      `json:"questionsAsked"`
}

// PlannerState is the per-interview planning aggregate. It is persisted on
// every transition and deleted when the interview completes.
type PlannerState struct {
	Competencies      []CompetencyState  `json:"competencies"`
	CurrentCompetency string             `json:"currentCompetency,omitempty"`
	QuestionCount     int                `json:"questionCount"`
	MaxQuestions      int                `json:"maxQuestions"`
	Difficulty        Difficulty         `json:"difficulty"`
	CandidateAnalysis *CandidateAnalysis `json:"candidateAnalysis,omitempty"`
	JobDomain         string             `json:"jobDomain,omitempty"`
}

// Competency returns the state entry for the named competency, or nil.
func (s *PlannerState) Competency(name string) *CompetencyState {
	for i := range s.Competencies {
		if s.Competencies[i].Name == name {
			return &s.Competencies[i]
		}
	}
	return nil
}

// AllCovered reports whether every competency has been probed at least once.
func (s *PlannerState) AllCovered() bool {
	for _, c := range s.Competencies {
		if !c.Covered {
			return false
		}
	}
	return len(s.Competencies) > 0
}

// PlannerAction is the planner's decision for the next step.
type PlannerAction string

// Planner actions
const (
	ActionQuestion PlannerAction = "question"
	ActionComplete PlannerAction = "complete"
)

// AgentType distinguishes domain specialists from the behavioral interviewer.
type AgentType string

// Agent types
const (
	AgentDomain AgentType = "domain"
	AgentHR     AgentType = "hr"
)

// PlannerDecision is the planner's next-action decision. Competency and
// AgentType are required when Action is ActionQuestion.
type PlannerDecision struct {
	Action     PlannerAction `json:"action"`
	Competency string        `json:"competency,omitempty"`
	AgentType  AgentType     `json:"agentType,omitempty"`
	Domain     string        `json:"domain,omitempty"`
	Reasoning  string        `json:"reasoning,omitempty"`
}
