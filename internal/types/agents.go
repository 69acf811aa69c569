package types

// Question is a generated interview question with its grading rubric.
type Question struct {
	Text           string `json:"text"`
	Competency     string `json:"competency"`
	Difficulty     string `json:"difficulty"`
	ExpectedAnswer string `json:"expectedAnswer"`
	Category       string `json:"category,omitempty"`
}

// AnswerRecommendation is the per-answer follow-up signal.
type AnswerRecommendation string

// Answer recommendations
const (
	ProbeDeeper AnswerRecommendation = "probe_deeper"
	MoveOn      AnswerRecommendation = "move_on"
	Sufficient  AnswerRecommendation = "sufficient"
)

// Valid reports whether r is a known recommendation.
func (r AnswerRecommendation) Valid() bool {
	switch r {
	case ProbeDeeper, MoveOn, Sufficient:
		return true
	}
	return false
}

// AnswerEvaluation is an agent's scored assessment of one answer.
// Score bands: >=0.8 excellent, 0.6-0.8 good with minor gaps, 0.4-0.6
// adequate but missing key points, <0.4 significant gaps.
type AnswerEvaluation struct {
	Score          float64              `json:"score"`
	Evidence       string               `json:"evidence"`
	Recommendation AnswerRecommendation `json:"recommendation"`
}
