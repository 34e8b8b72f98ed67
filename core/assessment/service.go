package assessment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/question"
)

var (
	// errors
	ErrNoQuestionsAvailable = errors.New("no questions available for this material")
	ErrNoValidAnswers       = errors.New("no valid answers could be processed")
)

type (
	Service interface {
		// Present returns a randomized presentation of the approved questions of scope.
		Present(ctx context.Context, scope question.Scope) ([]PresentedQuestion, error)
		// Submit scores answers against the approved questions of scope and records the attempt.
		Submit(ctx context.Context, userID string, scope question.Scope, answers []Answer) (Attempt, error)
		// Analyze returns the performance analysis of the user's last attempts on a material.
		Analyze(ctx context.Context, userID, materialID string) (Analysis, error)
	}

	Options struct {
		MaxQuestions int
		HistoryLimit int
		// Now returns the current time. Defaults to time.Now.
		Now func() time.Time
		// NewRand returns the random source of a single presentation. Defaults to a time seeded source.
		NewRand func() *rand.Rand
	}

	service struct {
		questions question.Store
		ledger    Ledger
		opts      Options
	}
)

var _ Service = (*service)(nil)

func NewService(questions question.Store, ledger Ledger, opts Options) Service {
	if opts.MaxQuestions <= 0 {
		opts.MaxQuestions = DefaultMaxQuestions
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &service{questions: questions, ledger: ledger, opts: opts}
}

func (svc *service) Present(ctx context.Context, scope question.Scope) ([]PresentedQuestion, error) {
	questions, err := svc.findQuestions(ctx, scope)
	if err != nil {
		return nil, err
	}
	return Shuffle(questions, svc.opts.NewRand(), svc.opts.MaxQuestions)
}

func (svc *service) Submit(ctx context.Context, userID string, scope question.Scope, answers []Answer) (Attempt, error) {
	// scoring works on this snapshot only
	questions, err := svc.findQuestions(ctx, scope)
	if err != nil {
		return Attempt{}, err
	}

	res, err := Score(answers, questions)
	if err != nil {
		return Attempt{}, err
	}

	att, err := svc.ledger.RecordAttempt(ctx, Attempt{
		UserID:      userID,
		ClassroomID: scope.ClassroomID,
		SectionID:   scope.SectionID,
		MaterialID:  scope.MaterialID,
		Answers:     res.Answers,
		Score:       res.Score,
		CompletedAt: svc.opts.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		return Attempt{}, errors.Wrap(err, "recording attempt")
	}
	return att, nil
}

func (svc *service) Analyze(ctx context.Context, userID, materialID string) (Analysis, error) {
	attempts, err := svc.ledger.LastAttempts(ctx, userID, materialID, svc.opts.HistoryLimit)
	if err != nil {
		return Analysis{}, errors.Wrap(err, "loading last attempts")
	}
	return Analyze(attempts), nil
}

func (svc *service) findQuestions(ctx context.Context, scope question.Scope) ([]question.Question, error) {
	questions, err := svc.questions.FindApproved(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "finding approved questions")
	}
	for _, q := range questions {
		if !q.Valid() {
			return nil, core.NewIntegrityError(fmt.Sprintf("question %s has an invalid correct option index", q.ID))
		}
	}
	return questions, nil
}
