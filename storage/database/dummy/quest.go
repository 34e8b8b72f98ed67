package dummydb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/classquest/classquest/core/quest"
)

type questRepository struct {
	db *questTable
}

var _ quest.Store = (*questRepository)(nil) // interface compliance check

func NewQuestRepository(db *DB) quest.Store {
	return &questRepository{db: db.quest}
}

func (repo *questRepository) find(userID, id string) int {
	for i, q := range repo.db.rows {
		if q.ID == id && q.UserID == userID {
			return i
		}
	}
	return -1
}

func (repo *questRepository) CreateQuest(_ context.Context, q quest.Quest) (quest.Quest, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	q.ID = uuid.New().String()
	repo.db.rows = append(repo.db.rows, q)
	return q, nil
}

func (repo *questRepository) ListQuests(_ context.Context, userID string, day time.Time) ([]quest.Quest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var quests []quest.Quest
	for _, q := range repo.db.rows {
		if q.UserID == userID && q.Day.Equal(day) {
			quests = append(quests, q)
		}
	}
	return quests, nil
}

func (repo *questRepository) GetQuest(_ context.Context, userID, id string) (quest.Quest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.find(userID, id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return quest.Quest{}, quest.ErrNotFound
}

func (repo *questRepository) MarkCompleted(_ context.Context, userID, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.find(userID, id)
	if i < 0 {
		return quest.ErrNotFound
	}
	if repo.db.rows[i].Completed {
		return quest.ErrAlreadyCompleted
	}
	repo.db.rows[i].Completed = true
	return nil
}

func (repo *questRepository) DeleteQuest(_ context.Context, userID, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.find(userID, id)
	if i < 0 {
		return quest.ErrNotFound
	}
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return nil
}
