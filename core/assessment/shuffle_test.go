package assessment

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classquest/classquest/core/question"
)

func makeQuestions(n int) []question.Question {
	questions := make([]question.Question, n)
	for i := range questions {
		nOpts := 2 + i%5
		opts := make([]string, nOpts)
		for j := range opts {
			opts[j] = fmt.Sprintf("q%d-opt%d", i, j)
		}
		questions[i] = question.Question{
			ID:                 fmt.Sprintf("q%d", i),
			MaterialID:         "m1",
			SectionID:          "s1",
			ClassroomID:        "c1",
			Text:               fmt.Sprintf("question %d", i),
			Options:            opts,
			CorrectOptionIndex: i % nOpts,
			Status:             question.StatusApproved,
		}
	}
	return questions
}

func indexQuestions(questions []question.Question) map[string]question.Question {
	byID := make(map[string]question.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID
}

func TestShuffle_NoQuestions(t *testing.T) {
	_, err := Shuffle(nil, rand.New(rand.NewSource(1)), 0)
	assert.Equal(t, ErrNoQuestionsAvailable, err)
}

func TestShuffle_Mapping(t *testing.T) {
	questions := makeQuestions(40)
	byID := indexQuestions(questions)

	for seed := int64(0); seed < 20; seed++ {
		presented, err := Shuffle(questions, rand.New(rand.NewSource(seed)), 0)
		require.NoError(t, err)
		require.Len(t, presented, DefaultMaxQuestions)

		seen := make(map[string]bool)
		for _, pq := range presented {
			assert.False(t, seen[pq.QuestionID], "question %s presented twice", pq.QuestionID)
			seen[pq.QuestionID] = true

			orig, ok := byID[pq.QuestionID]
			require.True(t, ok)
			assert.Equal(t, orig.Text, pq.Text)
			require.Len(t, pq.Options, len(orig.Options))
			require.Len(t, pq.OptionMapping, len(orig.Options))

			// bijection onto the original indices
			sorted := append([]int(nil), pq.OptionMapping...)
			sort.Ints(sorted)
			for i, v := range sorted {
				assert.Equal(t, i, v)
			}

			for k, origIdx := range pq.OptionMapping {
				assert.Equal(t, orig.Options[origIdx], pq.Options[k])
			}

			// the correct option text is reachable through the mapping
			var found bool
			for k := range pq.Options {
				if idx, _ := pq.OriginalIndex(k); idx == orig.CorrectOptionIndex {
					assert.Equal(t, orig.CorrectOption(), pq.Options[k])
					found = true
				}
			}
			assert.True(t, found)
		}
	}
}

func TestShuffle_Limit(t *testing.T) {
	questions := makeQuestions(10)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "fewer questions than the cap", limit: 0, want: 10},
		{name: "custom cap", limit: 4, want: 4},
		{name: "cap equals bank", limit: 10, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presented, err := Shuffle(questions, rand.New(rand.NewSource(7)), tt.limit)
			require.NoError(t, err)
			assert.Len(t, presented, tt.want)
		})
	}
}

func TestShuffle_LeavesInputUntouched(t *testing.T) {
	questions := makeQuestions(5)
	want := makeQuestions(5)

	_, err := Shuffle(questions, rand.New(rand.NewSource(3)), 0)
	require.NoError(t, err)
	assert.Equal(t, want, questions)
}

func TestShuffle_Deterministic(t *testing.T) {
	questions := makeQuestions(30)
	a, err := Shuffle(questions, rand.New(rand.NewSource(42)), 0)
	require.NoError(t, err)
	b, err := Shuffle(questions, rand.New(rand.NewSource(42)), 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestShuffle_UniformPermutations(t *testing.T) {
	q := question.Question{ID: "q", Text: "q", Options: []string{"a", "b", "c"}}
	rnd := rand.New(rand.NewSource(2026))

	const trials = 60000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		presented, err := Shuffle([]question.Question{q}, rnd, 0)
		require.NoError(t, err)
		counts[fmt.Sprint(presented[0].OptionMapping)]++
	}

	require.Len(t, counts, 6)
	want := trials / 6
	for perm, n := range counts {
		assert.InDelta(t, want, n, 500, "permutation %s", perm)
	}
}

func TestPresentedQuestion_OriginalIndex(t *testing.T) {
	pq := PresentedQuestion{OptionMapping: []int{2, 0, 1}}

	idx, ok := pq.OriginalIndex(0)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = pq.OriginalIndex(3)
	assert.False(t, ok)
	_, ok = pq.OriginalIndex(-1)
	assert.False(t, ok)
}
