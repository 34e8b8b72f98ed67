package assessment

import (
	"github.com/classquest/classquest/core/question"
)

// Answer is a student's choice for a question, expressed as an original option index.
type Answer struct {
	QuestionID     string `json:"question_id" validate:"required"`
	SelectedOption int    `json:"selected_option"`
}

// ScoredAnswer is an answer matched against its question.
type ScoredAnswer struct {
	QuestionID     string   `json:"question_id"`
	QuestionText   string   `json:"question_text"`
	SelectedOption int      `json:"user_selected_option"`
	CorrectAnswer  int      `json:"correct_answer"`
	CorrectOption  string   `json:"correct_option"`
	IsCorrect      bool     `json:"is_correct"`
	Options        []string `json:"options"`
}

// Result is the outcome of scoring a submission.
type Result struct {
	Score   float64        `json:"score"`
	Answers []ScoredAnswer `json:"attempts"`
}

// Correct counts the correct answers of r.
func (r Result) Correct() int {
	n := 0
	for _, a := range r.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// Score grades answers against the canonical questions.
// Answers whose question is unknown are dropped; every other answer (duplicates included) is scored
// by comparing original indices. It fails with ErrNoValidAnswers when nothing is left to score.
func Score(answers []Answer, questions []question.Question) (Result, error) {
	byID := make(map[string]question.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	scored := make([]ScoredAnswer, 0, len(answers))
	correct := 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		sa := ScoredAnswer{
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			SelectedOption: a.SelectedOption,
			CorrectAnswer:  q.CorrectOptionIndex,
			CorrectOption:  q.CorrectOption(),
			IsCorrect:      a.SelectedOption == q.CorrectOptionIndex,
			Options:        append([]string(nil), q.Options...),
		}
		if sa.IsCorrect {
			correct++
		}
		scored = append(scored, sa)
	}

	if len(scored) == 0 {
		return Result{}, ErrNoValidAnswers
	}
	return Result{
		Score:   float64(correct) * 100 / float64(len(scored)),
		Answers: scored,
	}, nil
}
