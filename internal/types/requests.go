package types

import "github.com/go-playground/validator/v10"

// CreateJobRequest creates a job from a raw description. Normalization
// happens separately via the ingest endpoint.
type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,min=1"`
	Level           string   `json:"level" validate:"omitempty,oneof=junior mid senior staff"`
	Description     string   `json:"description" validate:"required,min=1"`
	PreferredAgents []string `json:"preferred_agents,omitempty" validate:"omitempty,dive,oneof=backend frontend ml generic"`
}

// CreateCandidateRequest registers a candidate and their source links.
type CreateCandidateRequest struct {
	Name  string         `json:"name" validate:"required,min=1"`
	Email string         `json:"email,omitempty" validate:"omitempty,email"`
	Links CandidateLinks `json:"links"`
}

// CreateInterviewRequest schedules an interview for a job and candidate.
type CreateInterviewRequest struct {
	JobID              string   `json:"job_id" validate:"required,uuid"`
	CandidateID        string   `json:"candidate_id" validate:"required,uuid"`
	Mode               string   `json:"mode" validate:"omitempty,oneof=voice chat"`
	DifficultyOverride string   `json:"difficulty_override,omitempty" validate:"omitempty,oneof=junior mid senior staff"`
	SelectedAgents     []string `json:"selected_agents,omitempty" validate:"omitempty,dive,oneof=backend frontend ml generic"`
}

// SubmitAnswerRequest carries a candidate's free-text answer.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required,min=1"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateCandidateRequest using the validator.
func (r *CreateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateInterviewRequest using the validator.
func (r *CreateInterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SubmitAnswerRequest using the validator.
func (r *SubmitAnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
