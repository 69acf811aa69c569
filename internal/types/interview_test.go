package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions_ForwardOnly(t *testing.T) {
	assert.True(t, StatusScheduled.CanTransitionTo(StatusInProgress))
	assert.True(t, StatusScheduled.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusScheduled.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusCancelled))

	// No re-entering scheduled, no leaving terminal states.
	assert.False(t, StatusInProgress.CanTransitionTo(StatusScheduled))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusInProgress))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusInProgress))
	assert.False(t, StatusScheduled.CanTransitionTo(StatusScheduled))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusScheduled.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestCandidateLinks_URLs(t *testing.T) {
	links := CandidateLinks{
		Resume: "https://example.com/resume.pdf",
		GitHub: "https://github.com/someone",
	}

	urls := links.URLs()
	assert.Len(t, urls, 2)
	assert.Equal(t, "https://example.com/resume.pdf", urls["resume"])
	assert.Equal(t, "https://github.com/someone", urls["github"])
	assert.NotContains(t, urls, "linkedin")
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range []Difficulty{DifficultyJunior, DifficultyMid, DifficultySenior, DifficultyStaff} {
		assert.True(t, d.Valid(), string(d))
	}
	assert.False(t, Difficulty("expert").Valid())
	assert.False(t, Difficulty("").Valid())
}

func TestHiringRecommendationValid(t *testing.T) {
	for _, r := range []HiringRecommendation{StrongYes, Yes, No, StrongNo} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, HiringRecommendation("maybe").Valid())
}

func TestPlannerState_Competency(t *testing.T) {
	state := &PlannerState{
		Competencies: []CompetencyState{
			{Name: "System Design"},
			{Name: "Databases"},
		},
	}

	comp := state.Competency("Databases")
	assert.NotNil(t, comp)
	assert.Equal(t, "Databases", comp.Name)

	// Returned pointer aliases the slice entry.
	comp.Covered = true
	assert.True(t, state.Competencies[1].Covered)

	assert.Nil(t, state.Competency("Kubernetes"))
}

func TestPlannerState_AllCovered(t *testing.T) {
	state := &PlannerState{}
	assert.False(t, state.AllCovered(), "no competencies means nothing covered")

	state.Competencies = []CompetencyState{
		{Name: "A", Covered: true},
		{Name: "B", Covered: false},
	}
	assert.False(t, state.AllCovered())

	state.Competencies[1].Covered = true
	assert.True(t, state.AllCovered())
}

func TestNewEvent_MarshalsPayload(t *testing.T) {
	payload := ScorePayload{Competency: "Databases", Score: 0.7, Evidence: "solid indexing answer", Recommendation: string(MoveOn)}
	ev, err := NewEvent(uuidMust(t), EventScore, payload)
	assert.NoError(t, err)
	assert.Equal(t, EventScore, ev.Type)
	assert.JSONEq(t, `{"competency":"Databases","score":0.7,"evidence":"solid indexing answer","recommendation":"move_on"}`, string(ev.Payload))
	assert.False(t, ev.Timestamp.IsZero())
}
