package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/classquest/classquest/core/assessment"
)

type attemptRepository struct {
	db *attemptTable
}

var _ assessment.Ledger = (*attemptRepository)(nil) // interface compliance check

func NewAttemptRepository(db *DB) assessment.Ledger {
	return &attemptRepository{db: db.attempt}
}

func (repo *attemptRepository) RecordAttempt(_ context.Context, att assessment.Attempt) (assessment.Attempt, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	att.ID = uuid.New().String()
	repo.db.rows = append(repo.db.rows, att)
	return att, nil
}

func (repo *attemptRepository) LastAttempts(_ context.Context, userID, materialID string, limit int) ([]assessment.Attempt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	// walking backwards gives newest-inserted first; the stable sort keeps that order among equal times
	var found []assessment.Attempt
	for i := len(repo.db.rows) - 1; i >= 0; i-- {
		if att := repo.db.rows[i]; att.UserID == userID && att.MaterialID == materialID {
			found = append(found, att)
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].CompletedAt.After(found[j].CompletedAt) })

	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}
