package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/quest"
)

const questColumns = `id, user_id, title, description, xp_reward, completed, day`

type questRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	XPReward    int       `db:"xp_reward"`
	Completed   bool      `db:"completed"`
	Day         time.Time `db:"day"`
}

func (row questRow) unpack() quest.Quest {
	return quest.Quest{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		XPReward:    row.XPReward,
		Completed:   row.Completed,
		Day:         core.DateOf(row.Day),
	}
}

type questRepository struct {
	db *sqlx.DB
}

var _ quest.Store = (*questRepository)(nil) // interface compliance check

func NewQuestRepository(db *sqlx.DB) quest.Store {
	return &questRepository{db: db}
}

func (repo *questRepository) CreateQuest(ctx context.Context, q quest.Quest) (quest.Quest, error) {
	q.ID = uuid.New().String()
	q.Day = core.DateOf(q.Day)

	query := repo.db.Rebind(`INSERT INTO quests (` + questColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := repo.db.ExecContext(ctx, query, q.ID, q.UserID, q.Title, q.Description, q.XPReward, q.Completed, q.Day); err != nil {
		return quest.Quest{}, core.NewStoreError(err, "inserting quest")
	}
	return q, nil
}

func (repo *questRepository) ListQuests(ctx context.Context, userID string, day time.Time) ([]quest.Quest, error) {
	query := repo.db.Rebind(`SELECT ` + questColumns + ` FROM quests WHERE user_id = ? AND day = ? ORDER BY seq`)

	var rows []questRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID, core.DateOf(day)); err != nil {
		return nil, core.NewStoreError(err, "selecting quests")
	}
	quests := make([]quest.Quest, 0, len(rows))
	for _, row := range rows {
		quests = append(quests, row.unpack())
	}
	return quests, nil
}

func (repo *questRepository) GetQuest(ctx context.Context, userID, id string) (quest.Quest, error) {
	query := repo.db.Rebind(`SELECT ` + questColumns + ` FROM quests WHERE id = ? AND user_id = ?`)

	var row questRow
	if err := repo.db.GetContext(ctx, &row, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return quest.Quest{}, quest.ErrNotFound
		}
		return quest.Quest{}, core.NewStoreError(err, "selecting quest")
	}
	return row.unpack(), nil
}

func (repo *questRepository) MarkCompleted(ctx context.Context, userID, id string) error {
	query := repo.db.Rebind(`UPDATE quests SET completed = ? WHERE id = ? AND user_id = ? AND completed = ?`)
	res, err := repo.db.ExecContext(ctx, query, true, id, userID, false)
	if err != nil {
		return core.NewStoreError(err, "completing quest")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.NewStoreError(err, "completing quest")
	}
	if n > 0 {
		return nil
	}

	// nothing updated: unknown or already completed
	if _, err = repo.GetQuest(ctx, userID, id); err != nil {
		return err
	}
	return quest.ErrAlreadyCompleted
}

func (repo *questRepository) DeleteQuest(ctx context.Context, userID, id string) error {
	query := repo.db.Rebind(`DELETE FROM quests WHERE id = ? AND user_id = ?`)
	res, err := repo.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return core.NewStoreError(err, "deleting quest")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.NewStoreError(err, "deleting quest")
	}
	if n == 0 {
		return quest.ErrNotFound
	}
	return nil
}
