package quest

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/classquest/classquest/core"
)

// XPReward is the XP awarded for completing a personal quest.
const XPReward = 50

// Quest is a personal goal a user sets for a single day.
type Quest struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	XPReward    int       `json:"xp_reward"`
	Completed   bool      `json:"completed"`
	Day         time.Time `json:"created_at"` // UTC day the quest belongs to
}

// ActiveOn reports whether q belongs to the UTC day of asOf.
func (q Quest) ActiveOn(asOf time.Time) bool {
	return q.Day.Equal(core.DateOf(asOf))
}

// NewQuest contains information needed to create a new Quest.
type NewQuest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (nq *NewQuest) Validate(validate *validator.Validate) error {
	nq.Title = core.CleanString(nq.Title)
	nq.Description = core.CleanString(nq.Description)
	return validate.Struct(nq)
}

// Board is the quest list of a user for a day.
type Board struct {
	XP     int     `json:"xp"`
	Quests []Quest `json:"quests"`
}

// Completion is the outcome of completing a quest.
type Completion struct {
	XP       int `json:"xp"`
	XPGained int `json:"xp_gained"`
}
