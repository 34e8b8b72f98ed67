package assessment

import (
	"context"
	"time"

	"github.com/classquest/classquest/core/question"
)

// DefaultHistoryLimit is the number of attempts the performance analysis looks at.
const DefaultHistoryLimit = 5

// Attempt is an immutable record of a scored submission.
type Attempt struct {
	ID          string         `json:"attempt_id"`
	UserID      string         `json:"user_id"`
	ClassroomID string         `json:"classroom_id"`
	SectionID   string         `json:"course_section_id"`
	MaterialID  string         `json:"material_id"`
	Answers     []ScoredAnswer `json:"questions_attempted"`
	Score       float64        `json:"score"`
	CompletedAt time.Time      `json:"completed_at"`
}

func (a Attempt) Scope() question.Scope {
	return question.Scope{ClassroomID: a.ClassroomID, SectionID: a.SectionID, MaterialID: a.MaterialID}
}

// Ledger is the append-only store of attempts.
type Ledger interface {
	// RecordAttempt appends att; the store assigns its ID.
	RecordAttempt(ctx context.Context, att Attempt) (Attempt, error)
	// LastAttempts returns up to limit attempts of the user on the material, newest first.
	// Attempts completed at the same instant are returned newest-inserted first.
	LastAttempts(ctx context.Context, userID, materialID string, limit int) ([]Attempt, error)
}
