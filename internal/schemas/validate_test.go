package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_PlannerDecision(t *testing.T) {
	valid := []string{
		`{"action":"complete"}`,
		`{"action":"question","competency":"System Design","agentType":"domain","domain":"backend","reasoning":"weakest area"}`,
		`{"action":"question","competency":"Communication","agentType":"hr"}`,
	}
	for _, doc := range valid {
		assert.NoError(t, Validate(PlannerDecision, []byte(doc)), doc)
	}

	invalid := []string{
		`{}`,
		`{"action":"pause"}`,
		`{"action":"question","agentType":"manager"}`,
		`{"action":"question","extra":true}`,
	}
	for _, doc := range invalid {
		assert.Error(t, Validate(PlannerDecision, []byte(doc)), doc)
	}
}

func TestValidate_AnswerEvaluation_ScoreBounds(t *testing.T) {
	assert.NoError(t, Validate(AnswerEvaluation, []byte(`{"score":0.75,"evidence":"covered indexing and tradeoffs","recommendation":"move_on"}`)))
	assert.Error(t, Validate(AnswerEvaluation, []byte(`{"score":1.5,"evidence":"x","recommendation":"move_on"}`)))
	assert.Error(t, Validate(AnswerEvaluation, []byte(`{"score":0.5,"evidence":"x","recommendation":"retry"}`)))
}

func TestValidate_Question_RoutingFieldsOptional(t *testing.T) {
	// The generating agent fills competency and difficulty from the request
	// when the model omits them, so only the question content is required.
	assert.NoError(t, Validate(Question, []byte(`{"text":"Explain indexes.","expectedAnswer":"B-tree basics."}`)))
	assert.Error(t, Validate(Question, []byte(`{"expectedAnswer":"missing question text"}`)))
	assert.Error(t, Validate(Question, []byte(`{"text":"x","expectedAnswer":"y","difficulty":"expert"}`)))
}

func TestValidate_NormalizedJob(t *testing.T) {
	doc := `{
		"competencies": [{"name":"System Design","weight":0.6,"level":"senior"}],
		"level": "senior",
		"techStack": ["Go","Postgres"],
		"requirements": ["5+ years backend"],
		"domain": "backend"
	}`
	assert.NoError(t, Validate(NormalizedJob, []byte(doc)))

	// Empty competency list signals a job that was never understood.
	assert.Error(t, Validate(NormalizedJob, []byte(`{"competencies":[],"level":"mid","techStack":[],"requirements":[]}`)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nonexistent.json", []byte(`{}`))
	require.Error(t, err)
	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "expected SchemaLoadError, got %T", err)
}

func TestDecode_ValidDocument(t *testing.T) {
	var decision struct {
		Action     string `json:"action"`
		Competency string `json:"competency"`
	}
	err := Decode(PlannerDecision, `{"action":"question","competency":"Databases","agentType":"domain"}`, &decision)
	require.NoError(t, err)
	assert.Equal(t, "question", decision.Action)
	assert.Equal(t, "Databases", decision.Competency)
}

func TestDecode_InvalidDocument(t *testing.T) {
	var decision struct{}
	err := Decode(PlannerDecision, `{"action":"abort"}`, &decision)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected ValidationError, got %T", err)
	assert.Equal(t, PlannerDecision, verr.Schema)
	assert.NotEmpty(t, verr.Errors)
}
