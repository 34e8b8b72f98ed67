package leaderboard

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/user"
)

// Entry is a ranked member of a classroom.
type Entry struct {
	Rank            int    `json:"rank"`
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	CurrentStreak   int    `json:"current_streak"`
	HighestStreak   int    `json:"highest_streak"`
	TotalActiveDays int    `json:"total_active_days"`
}

func newEntry(usr user.User) Entry {
	return Entry{
		UserID:          usr.ID,
		Name:            usr.Name(),
		Role:            usr.Role,
		CurrentStreak:   usr.Current,
		HighestStreak:   usr.Highest,
		TotalActiveDays: usr.TotalActiveDays,
	}
}

// before reports whether a ranks strictly ahead of b.
func before(a, b Entry) bool {
	if a.HighestStreak != b.HighestStreak {
		return a.HighestStreak > b.HighestStreak
	}
	if a.CurrentStreak != b.CurrentStreak {
		return a.CurrentStreak > b.CurrentStreak
	}
	return a.TotalActiveDays > b.TotalActiveDays
}

// Rank orders the course rep and the students by highest streak, then current streak, then total
// active days, all descending. Exact ties keep their input order (rep first, then students as given)
// and still get distinct 1-based ranks.
func Rank(rep user.User, students []user.User) []Entry {
	entries := make([]Entry, 0, len(students)+1)
	entries = append(entries, newEntry(rep))
	for _, s := range students {
		entries = append(entries, newEntry(s))
	}

	sort.SliceStable(entries, func(i, j int) bool { return before(entries[i], entries[j]) })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RosterReader reads the membership of a classroom.
type RosterReader interface {
	GetRoster(ctx context.Context, classroomID string) (user.Roster, error)
}

type Service interface {
	Leaderboard(ctx context.Context, classroomID string) ([]Entry, error)
}

type service struct {
	roster RosterReader
}

var _ Service = (*service)(nil)

func NewService(roster RosterReader) Service {
	return &service{roster: roster}
}

// Leaderboard ranks the members of a classroom. A classroom without a course rep is reported as an
// integrity error.
func (svc *service) Leaderboard(ctx context.Context, classroomID string) ([]Entry, error) {
	roster, err := svc.roster.GetRoster(ctx, classroomID)
	if err != nil {
		if errors.Cause(err) == user.ErrNoCourseRep {
			return nil, core.NewIntegrityError("classroom " + classroomID + " has no course rep")
		}
		return nil, errors.Wrap(err, "loading classroom roster")
	}
	return Rank(roster.CourseRep, roster.Students), nil
}
