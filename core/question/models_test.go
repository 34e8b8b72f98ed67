package question

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classquest/classquest/core"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func intPtr(i int) *int { return &i }

var scope = Scope{ClassroomID: "c1", SectionID: "s1", MaterialID: "m1"}

func TestNew(t *testing.T) {
	validate := newValidator()

	t.Run("defaults and cleaning", func(t *testing.T) {
		q, err := New(NewQuestion{
			Scope:              scope,
			Text:               "  What is 2 + 2?  ",
			Options:            []string{" 3", "4 ", "5"},
			CorrectOptionIndex: intPtr(1),
			Difficulty:         "EASY",
		}, validate)
		require.NoError(t, err)

		assert.NotEmpty(t, q.ID)
		assert.Equal(t, scope, q.Scope())
		assert.Equal(t, "What is 2 + 2?", q.Text)
		assert.Equal(t, []string{"3", "4", "5"}, q.Options)
		assert.Equal(t, "4", q.CorrectOption())
		assert.Equal(t, TypeMultipleChoice, q.Type)
		assert.Equal(t, DifficultyEasy, q.Difficulty)
		assert.Equal(t, StatusPendingReview, q.Status)
		assert.False(t, q.IsApproved())
		assert.True(t, q.Valid())
	})

	tests := []struct {
		name      string
		nq        NewQuestion
		wantField string
	}{
		{name: "missing scope", nq: NewQuestion{Text: "q", Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(0)}, wantField: "classroom_id"},
		{name: "missing text", nq: NewQuestion{Scope: scope, Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(0)}, wantField: "question_text"},
		{name: "one option", nq: NewQuestion{Scope: scope, Text: "q", Options: []string{"a"}, CorrectOptionIndex: intPtr(0)}, wantField: "options"},
		{name: "blank option", nq: NewQuestion{Scope: scope, Text: "q", Options: []string{"a", "  "}, CorrectOptionIndex: intPtr(0)}, wantField: "options[1]"},
		{name: "missing correct index", nq: NewQuestion{Scope: scope, Text: "q", Options: []string{"a", "b"}}, wantField: "correct_option_index"},
		{name: "negative correct index", nq: NewQuestion{Scope: scope, Text: "q", Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(-1)}, wantField: "correct_option_index"},
		{name: "unknown status", nq: NewQuestion{Scope: scope, Text: "q", Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(0), Status: "lol"}, wantField: "status"},
		{name: "unknown difficulty", nq: NewQuestion{Scope: scope, Text: "q", Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(0), Difficulty: "insane"}, wantField: "difficulty_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nq, validate)
			require.Error(t, err)
			vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
			require.True(t, ok, "error = %v; want validator.ValidationErrors", err)

			var fields []string
			for _, fe := range vErrs {
				fields = append(fields, fe.Field())
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}

	t.Run("correct index out of range", func(t *testing.T) {
		_, err := New(NewQuestion{Scope: scope, Text: "q", Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(2)}, validate)
		vErr, ok := errors.Cause(err).(*core.ValidationError)
		require.True(t, ok, "error = %v; want *core.ValidationError", err)
		assert.Equal(t, "correct_option_index", vErr.Fields[0].Field)
	})
}

func TestQuestion_Valid(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{name: "valid", q: Question{Options: []string{"a", "b"}, CorrectOptionIndex: 1}, want: true},
		{name: "single option", q: Question{Options: []string{"a"}, CorrectOptionIndex: 0}},
		{name: "index too big", q: Question{Options: []string{"a", "b"}, CorrectOptionIndex: 2}},
		{name: "negative index", q: Question{Options: []string{"a", "b"}, CorrectOptionIndex: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Valid(); got != tt.want {
				t.Errorf("Valid() = %v; want %v", got, tt.want)
			}
		})
	}
}

type repoMock struct {
	created []Question
}

func (r *repoMock) FindApproved(context.Context, Scope) ([]Question, error) { return nil, nil }

func (r *repoMock) CreateQuestions(_ context.Context, questions ...Question) error {
	r.created = append(r.created, questions...)
	return nil
}

func TestImport(t *testing.T) {
	validate := newValidator()
	repo := new(repoMock)

	good := NewQuestion{Scope: scope, Text: "q1", Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(0), Status: StatusApproved}
	bad := NewQuestion{Scope: scope, Text: "q2", Options: []string{"a"}, CorrectOptionIndex: intPtr(0)}

	_, err := Import(context.Background(), repo, validate, good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question #2")
	assert.Empty(t, repo.created, "nothing is stored when a question is invalid")

	questions, err := Import(context.Background(), repo, validate, good)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, questions, repo.created)
	assert.True(t, questions[0].IsApproved())
}
