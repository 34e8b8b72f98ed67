package assessment

import (
	"math/rand"

	"github.com/classquest/classquest/core/question"
)

// DefaultMaxQuestions caps the number of questions of a presentation.
const DefaultMaxQuestions = 25

// PresentedQuestion is a question as shown to a student for one attempt.
// OptionMapping[k] is the original index of the option shown at position k.
// It never carries the correct option index.
type PresentedQuestion struct {
	QuestionID    string   `json:"question_id"`
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	OptionMapping []int    `json:"option_mapping"`
}

// OriginalIndex maps a shown position back to the original option index.
func (pq PresentedQuestion) OriginalIndex(position int) (int, bool) {
	if position < 0 || position >= len(pq.OptionMapping) {
		return 0, false
	}
	return pq.OptionMapping[position], true
}

// Shuffle builds a randomized presentation of questions: the question order is shuffled and truncated
// to limit (DefaultMaxQuestions when limit <= 0), and the options of every question are permuted.
// All randomness comes from rnd; questions is left untouched.
func Shuffle(questions []question.Question, rnd *rand.Rand, limit int) ([]PresentedQuestion, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}
	if limit <= 0 {
		limit = DefaultMaxQuestions
	}

	order := rnd.Perm(len(questions))
	if len(order) > limit {
		order = order[:limit]
	}

	presented := make([]PresentedQuestion, 0, len(order))
	for _, i := range order {
		presented = append(presented, presentQuestion(questions[i], rnd))
	}
	return presented, nil
}

func presentQuestion(q question.Question, rnd *rand.Rand) PresentedQuestion {
	mapping := rnd.Perm(len(q.Options)) // Fisher-Yates
	options := make([]string, len(mapping))
	for pos, orig := range mapping {
		options[pos] = q.Options[orig]
	}
	return PresentedQuestion{
		QuestionID:    q.ID,
		Text:          q.Text,
		Options:       options,
		OptionMapping: mapping,
	}
}
