package question

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	errInvalidCorrectOption = errors.New("correct option index out of range")

	statusTag  = "qstatus"
	statusText = "{0} must be one of pending_review, approved, rejected"

	difficultyTag  = "qdifficulty"
	difficultyText = "{0} must be one of easy, medium, hard"
)

type (
	// Store is the read side of the question bank consumed by the assessment engine.
	Store interface {
		// FindApproved returns the approved questions of the scope, in storage order.
		FindApproved(ctx context.Context, scope Scope) ([]Question, error)
	}

	// Repository is the full question bank, written to by the (external) authoring process.
	Repository interface {
		Store
		CreateQuestions(ctx context.Context, questions ...Question) error
	}
)

// InitValidators registers the question validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, oneOfValidation(StatusPendingReview, StatusApproved, StatusRejected))
	registerTranslation(validate, translator, statusTag, statusText)

	_ = validate.RegisterValidation(difficultyTag, oneOfValidation(DifficultyEasy, DifficultyMedium, DifficultyHard))
	registerTranslation(validate, translator, difficultyTag, difficultyText)
}

func oneOfValidation(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, v := range values {
			if val == v {
				return true
			}
		}
		return false
	}
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// New builds a Question out of a validated NewQuestion. Defaults: multiple_choice, medium, pending_review.
func New(nq NewQuestion, validate *validator.Validate) (Question, error) {
	if err := nq.Validate(validate); err != nil {
		return Question{}, err
	}
	q := Question{
		ID:                 uuid.New().String(),
		ClassroomID:        nq.ClassroomID,
		SectionID:          nq.SectionID,
		MaterialID:         nq.MaterialID,
		MaterialNumber:     nq.MaterialNumber,
		Text:               nq.Text,
		Options:            append([]string(nil), nq.Options...),
		CorrectOptionIndex: *nq.CorrectOptionIndex,
		Type:               nq.Type,
		Difficulty:         nq.Difficulty,
		Status:             nq.Status,
		Feedback:           strings.TrimSpace(nq.Feedback),
	}
	if q.Type == "" {
		q.Type = TypeMultipleChoice
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	if q.Status == "" {
		q.Status = StatusPendingReview
	}
	return q, nil
}

// Valid reports whether q holds enough options and a correct index pointing into them.
func (q Question) Valid() bool {
	return len(q.Options) >= MinOptions && q.CorrectOptionIndex >= 0 && q.CorrectOptionIndex < len(q.Options)
}

// Import validates and stores a batch of questions; nothing is stored if any of them is invalid.
func Import(ctx context.Context, repo Repository, validate *validator.Validate, batch ...NewQuestion) ([]Question, error) {
	questions := make([]Question, 0, len(batch))
	for i, nq := range batch {
		q, err := New(nq, validate)
		if err != nil {
			return nil, errors.Wrapf(err, "question #%d", i+1)
		}
		questions = append(questions, q)
	}
	if err := repo.CreateQuestions(ctx, questions...); err != nil {
		return nil, errors.Wrap(err, "creating questions")
	}
	return questions, nil
}
