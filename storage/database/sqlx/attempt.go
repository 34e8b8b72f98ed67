package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/assessment"
)

type attemptRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	ClassroomID string    `db:"classroom_id"`
	SectionID   string    `db:"course_section_id"`
	MaterialID  string    `db:"material_id"`
	Answers     jsonText  `db:"questions_attempted"`
	Score       float64   `db:"score"`
	CompletedAt time.Time `db:"completed_at"`
}

// attemptRepository is the SQL attempt ledger. Rows are only ever inserted.
type attemptRepository struct {
	db *sqlx.DB
}

var _ assessment.Ledger = (*attemptRepository)(nil) // interface compliance check

func NewAttemptRepository(db *sqlx.DB) assessment.Ledger {
	return &attemptRepository{db: db}
}

func (repo *attemptRepository) RecordAttempt(ctx context.Context, att assessment.Attempt) (assessment.Attempt, error) {
	answers, err := newJSONText(att.Answers)
	if err != nil {
		return assessment.Attempt{}, err
	}
	att.ID = uuid.New().String()
	att.CompletedAt = att.CompletedAt.UTC()

	q := repo.db.Rebind(`INSERT INTO attempts
		(id, user_id, classroom_id, course_section_id, material_id, questions_attempted, score, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err = repo.db.ExecContext(ctx, q,
		att.ID, att.UserID, att.ClassroomID, att.SectionID, att.MaterialID, answers, att.Score, att.CompletedAt,
	); err != nil {
		return assessment.Attempt{}, core.NewStoreError(err, "inserting attempt")
	}
	return att, nil
}

func (repo *attemptRepository) LastAttempts(ctx context.Context, userID, materialID string, limit int) ([]assessment.Attempt, error) {
	q := repo.db.Rebind(`SELECT id, user_id, classroom_id, course_section_id, material_id, questions_attempted, score, completed_at
		FROM attempts
		WHERE user_id = ? AND material_id = ?
		ORDER BY completed_at DESC, seq DESC
		LIMIT ?`)

	var rows []attemptRow
	if err := repo.db.SelectContext(ctx, &rows, q, userID, materialID, limit); err != nil {
		return nil, core.NewStoreError(err, "selecting attempts")
	}

	attempts := make([]assessment.Attempt, 0, len(rows))
	for _, row := range rows {
		att := assessment.Attempt{
			ID:          row.ID,
			UserID:      row.UserID,
			ClassroomID: row.ClassroomID,
			SectionID:   row.SectionID,
			MaterialID:  row.MaterialID,
			Score:       row.Score,
			CompletedAt: row.CompletedAt.UTC(),
		}
		if err := row.Answers.decode(&att.Answers); err != nil {
			return nil, core.NewIntegrityError("attempt " + row.ID + " has malformed answers")
		}
		attempts = append(attempts, att)
	}
	return attempts, nil
}
