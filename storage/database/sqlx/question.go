package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/question"
)

const questionColumns = `id, classroom_id, course_section_id, material_id, material_number, question_text, options,
	correct_option_index, question_type, difficulty_level, status, feedback`

type questionRow struct {
	ID                 string   `db:"id"`
	ClassroomID        string   `db:"classroom_id"`
	SectionID          string   `db:"course_section_id"`
	MaterialID         string   `db:"material_id"`
	MaterialNumber     int      `db:"material_number"`
	Text               string   `db:"question_text"`
	Options            jsonText `db:"options"`
	CorrectOptionIndex int      `db:"correct_option_index"`
	Type               string   `db:"question_type"`
	Difficulty         string   `db:"difficulty_level"`
	Status             string   `db:"status"`
	Feedback           string   `db:"feedback"`
}

type questionRepository struct {
	db *sqlx.DB
}

var _ question.Repository = (*questionRepository)(nil) // interface compliance check

func NewQuestionRepository(db *sqlx.DB) question.Repository {
	return &questionRepository{db: db}
}

func (repo *questionRepository) FindApproved(ctx context.Context, scope question.Scope) ([]question.Question, error) {
	q := repo.db.Rebind(`SELECT ` + questionColumns + ` FROM questions
		WHERE classroom_id = ? AND course_section_id = ? AND material_id = ? AND status = ?
		ORDER BY seq`)

	var rows []questionRow
	if err := repo.db.SelectContext(ctx, &rows, q, scope.ClassroomID, scope.SectionID, scope.MaterialID, question.StatusApproved); err != nil {
		return nil, core.NewStoreError(err, "finding approved questions")
	}

	questions := make([]question.Question, 0, len(rows))
	for _, row := range rows {
		qst := question.Question{
			ID:                 row.ID,
			ClassroomID:        row.ClassroomID,
			SectionID:          row.SectionID,
			MaterialID:         row.MaterialID,
			MaterialNumber:     row.MaterialNumber,
			Text:               row.Text,
			CorrectOptionIndex: row.CorrectOptionIndex,
			Type:               row.Type,
			Difficulty:         row.Difficulty,
			Status:             row.Status,
			Feedback:           row.Feedback,
		}
		if err := row.Options.decode(&qst.Options); err != nil {
			return nil, core.NewIntegrityError("question " + row.ID + " has malformed options")
		}
		questions = append(questions, qst)
	}
	return questions, nil
}

// CreateQuestions inserts all questions in a single transaction.
func (repo *questionRepository) CreateQuestions(ctx context.Context, questions ...question.Question) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return core.NewStoreError(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	q := tx.Rebind(`INSERT INTO questions (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, qst := range questions {
		opts, err := newJSONText(qst.Options)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, q,
			qst.ID, qst.ClassroomID, qst.SectionID, qst.MaterialID, qst.MaterialNumber, qst.Text, opts,
			qst.CorrectOptionIndex, qst.Type, qst.Difficulty, qst.Status, qst.Feedback,
		); err != nil {
			return core.NewStoreError(err, "inserting question")
		}
	}

	if err = tx.Commit(); err != nil {
		return core.NewStoreError(err, "committing questions")
	}
	return nil
}
