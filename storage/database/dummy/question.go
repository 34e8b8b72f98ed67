package dummydb

import (
	"context"

	"github.com/classquest/classquest/core/question"
)

type questionRepository struct {
	db *questionTable
}

var _ question.Repository = (*questionRepository)(nil) // interface compliance check

func NewQuestionRepository(db *DB) question.Repository {
	return &questionRepository{db: db.question}
}

func (repo *questionRepository) FindApproved(_ context.Context, scope question.Scope) ([]question.Question, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var found []question.Question
	for _, q := range repo.db.rows {
		if q.IsApproved() && q.Scope() == scope {
			q.Options = append([]string(nil), q.Options...)
			found = append(found, q)
		}
	}
	return found, nil
}

func (repo *questionRepository) CreateQuestions(_ context.Context, questions ...question.Question) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		repo.db.rows = append(repo.db.rows, q)
	}
	return nil
}
