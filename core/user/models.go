package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/classquest/classquest/core"
)

// Roles
const (
	RoleStudent   = "student"
	RoleCourseRep = "course_rep"
)

var AllRoles = []string{RoleStudent, RoleCourseRep}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID        string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	XP        int    `json:"xp"`
	Streak
}

func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) IsCourseRep() bool {
	return u.Role == RoleCourseRep
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=student course_rep"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	return validate.Struct(nu)
}

func (nu NewUser) User() User {
	return User{FirstName: nu.FirstName, LastName: nu.LastName, Email: nu.Email, Role: nu.Role}
}

// Roster is the membership of a classroom.
type Roster struct {
	CourseRep User
	Students  []User
}

// Streak holds the daily activity counters of a User.
type Streak struct {
	Current         int       `json:"current_streak"`
	Highest         int       `json:"highest_streak"`
	TotalActiveDays int       `json:"total_active_days"`
	LastActiveDate  time.Time `json:"last_active_date"` // UTC day; zero if never active
}

// Touch records activity on the UTC day of asOf and reports whether the streak changed.
// Activity on the same day is a no-op, activity on the following day extends the streak
// and any gap restarts it at 1. A day before the last active one never rewinds the streak.
func (s Streak) Touch(asOf time.Time) (Streak, bool) {
	day := core.DateOf(asOf)

	if s.LastActiveDate.IsZero() {
		s.Current = 1
	} else {
		last := core.DateOf(s.LastActiveDate)
		switch {
		case !day.After(last):
			return s, false
		case last.AddDate(0, 0, 1).Equal(day):
			s.Current++
		default:
			s.Current = 1
		}
	}

	s.TotalActiveDays++
	if s.Current > s.Highest {
		s.Highest = s.Current
	}
	s.LastActiveDate = day
	return s, true
}
