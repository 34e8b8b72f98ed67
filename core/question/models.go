package question

import (
	"github.com/go-playground/validator/v10"

	"github.com/classquest/classquest/core"
)

// Review statuses
const (
	StatusPendingReview = "pending_review"
	StatusApproved      = "approved"
	StatusRejected      = "rejected"
)

// Difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	TypeMultipleChoice = "multiple_choice"

	MinOptions = 2
)

// Scope identifies the course material a question bank belongs to.
type Scope struct {
	ClassroomID string `json:"classroom_id" yaml:"classroom_id" validate:"required"`
	SectionID   string `json:"course_section_id" yaml:"course_section_id" validate:"required"`
	MaterialID  string `json:"material_id" yaml:"material_id" validate:"required"`
}

// Question is a multiple-choice question approved (or not) for a course material.
// CorrectOptionIndex is always a valid index into Options.
type Question struct {
	ID                 string   `json:"question_id"`
	ClassroomID        string   `json:"classroom_id"`
	SectionID          string   `json:"course_section_id"`
	MaterialID         string   `json:"material_id"`
	MaterialNumber     int      `json:"material_number"`
	Text               string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Type               string   `json:"question_type"`
	Difficulty         string   `json:"difficulty_level"`
	Status             string   `json:"status"`
	Feedback           string   `json:"feedback,omitempty"`
}

func (q Question) Scope() Scope {
	return Scope{ClassroomID: q.ClassroomID, SectionID: q.SectionID, MaterialID: q.MaterialID}
}

func (q Question) IsApproved() bool {
	return q.Status == StatusApproved
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	return q.Options[q.CorrectOptionIndex]
}

// NewQuestion contains information needed to create a new Question.
type NewQuestion struct {
	Scope              `yaml:",inline"`
	MaterialNumber     int      `json:"material_number" yaml:"material_number" validate:"gte=0"`
	Text               string   `json:"question_text" yaml:"question_text" validate:"required"`
	Options            []string `json:"options" yaml:"options" validate:"required,min=2,dive,required"`
	CorrectOptionIndex *int     `json:"correct_option_index" yaml:"correct_option_index" validate:"required,gte=0"`
	Type               string   `json:"question_type" yaml:"question_type"`
	Difficulty         string   `json:"difficulty_level" yaml:"difficulty_level" validate:"omitempty,qdifficulty"`
	Status             string   `json:"status" yaml:"status" validate:"omitempty,qstatus"`
	Feedback           string   `json:"feedback" yaml:"feedback"`
}

// Validate cleans and validates nq. The correct option index must point into Options.
func (nq *NewQuestion) Validate(validate *validator.Validate) error {
	nq.Text = core.CleanString(nq.Text)
	for i, opt := range nq.Options {
		nq.Options[i] = core.CleanString(opt)
	}
	nq.Type = core.CleanString(nq.Type, true /* lower */)
	nq.Difficulty = core.CleanString(nq.Difficulty, true /* lower */)
	nq.Status = core.CleanString(nq.Status, true /* lower */)

	if err := validate.Struct(nq); err != nil {
		return err
	}
	if *nq.CorrectOptionIndex >= len(nq.Options) {
		return core.NewValidationError(
			errInvalidCorrectOption,
			core.FieldError{Field: "correct_option_index", Error: errInvalidCorrectOption.Error()},
		)
	}
	return nil
}
