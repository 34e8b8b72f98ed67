package quest

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/user"
)

var (
	// errors
	ErrNotFound         = errors.New("quest not found")
	ErrAlreadyCompleted = errors.New("quest already completed")
	ErrExpired          = errors.New("quest expired")
)

type (
	Store interface {
		CreateQuest(ctx context.Context, q Quest) (Quest, error)
		// ListQuests returns the quests of the user for a UTC day, oldest first.
		ListQuests(ctx context.Context, userID string, day time.Time) ([]Quest, error)
		// GetQuest returns ErrNotFound when the user has no such quest.
		GetQuest(ctx context.Context, userID, id string) (Quest, error)
		// MarkCompleted flips the completed flag once; it returns ErrAlreadyCompleted on later calls.
		MarkCompleted(ctx context.Context, userID, id string) error
		// DeleteQuest returns ErrNotFound when the user has no such quest.
		DeleteQuest(ctx context.Context, userID, id string) error
	}

	// Users is the part of the user service quests rely on.
	Users interface {
		RecordActivity(ctx context.Context, userID string, asOf time.Time) (user.User, error)
		AddXP(ctx context.Context, userID string, xp int) (int, error)
	}

	Service interface {
		List(ctx context.Context, userID string, asOf time.Time) (Board, error)
		Add(ctx context.Context, userID string, nq NewQuest, asOf time.Time) (Quest, error)
		Complete(ctx context.Context, userID, id string, asOf time.Time) (Completion, error)
		Delete(ctx context.Context, userID, id string) error
	}

	service struct {
		store Store
		users Users
	}
)

var _ Service = (*service)(nil)

func NewService(store Store, users Users) Service {
	return &service{store: store, users: users}
}

// List returns the quests of the day of asOf. Listing quests counts as daily activity.
func (svc *service) List(ctx context.Context, userID string, asOf time.Time) (Board, error) {
	usr, err := svc.users.RecordActivity(ctx, userID, asOf)
	if err != nil {
		return Board{}, errors.Wrap(err, "recording activity")
	}
	quests, err := svc.store.ListQuests(ctx, userID, core.DateOf(asOf))
	if err != nil {
		return Board{}, errors.Wrap(err, "listing quests")
	}
	if quests == nil {
		quests = []Quest{}
	}
	return Board{XP: usr.XP, Quests: quests}, nil
}

// Add creates a quest for the day of asOf. nq must have been validated.
func (svc *service) Add(ctx context.Context, userID string, nq NewQuest, asOf time.Time) (Quest, error) {
	q, err := svc.store.CreateQuest(ctx, Quest{
		UserID:      userID,
		Title:       nq.Title,
		Description: nq.Description,
		XPReward:    XPReward,
		Day:         core.DateOf(asOf),
	})
	if err != nil {
		return Quest{}, errors.Wrap(err, "creating quest")
	}
	return q, nil
}

// Complete marks a quest of the day of asOf as completed and awards its XP to the user.
func (svc *service) Complete(ctx context.Context, userID, id string, asOf time.Time) (Completion, error) {
	q, err := svc.store.GetQuest(ctx, userID, id)
	if err != nil {
		return Completion{}, errors.Wrap(err, "finding quest")
	}
	if q.Completed {
		return Completion{}, ErrAlreadyCompleted
	}
	if !q.ActiveOn(asOf) {
		return Completion{}, ErrExpired
	}

	if err = svc.store.MarkCompleted(ctx, userID, id); err != nil {
		return Completion{}, errors.Wrap(err, "completing quest")
	}
	xp, err := svc.users.AddXP(ctx, userID, q.XPReward)
	if err != nil {
		return Completion{}, errors.Wrap(err, "awarding XP")
	}
	return Completion{XP: xp, XPGained: q.XPReward}, nil
}

func (svc *service) Delete(ctx context.Context, userID, id string) error {
	if err := svc.store.DeleteQuest(ctx, userID, id); err != nil {
		return errors.Wrap(err, "deleting quest")
	}
	return nil
}
