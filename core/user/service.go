package user

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound          = errors.New("user not found")
	ErrUserExists        = errors.New("a user with this email already exists")
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrClassroomExists   = errors.New("classroom already exists")
	ErrNoCourseRep       = errors.New("classroom has no course rep")
)

type (
	Repository interface {
		GetUser(ctx context.Context, id string) (User, error)
		// GetRoster returns the course rep and the enrolled students (in enrollment order) of a classroom.
		// It fails with ErrNoCourseRep when the classroom has no (or an unknown) course rep.
		GetRoster(ctx context.Context, classroomID string) (Roster, error)
		// IsMember fails with ErrClassroomNotFound when the classroom does not exist.
		IsMember(ctx context.Context, classroomID, userID string) (bool, error)
		SaveStreak(ctx context.Context, userID string, streak Streak) error
		// AddXP increments the user's XP and returns the new total.
		AddXP(ctx context.Context, userID string, xp int) (int, error)

		// CreateUser assigns an ID to usr when it has none.
		CreateUser(ctx context.Context, usr User) (User, error)
		CreateClassroom(ctx context.Context, classroomID, courseRepID string) error
		// EnrollStudent is a no-op when the student is already enrolled.
		EnrollStudent(ctx context.Context, classroomID, studentID string) error
	}

	Service interface {
		GetByID(ctx context.Context, id string) (User, error)
		GetRoster(ctx context.Context, classroomID string) (Roster, error)
		IsMember(ctx context.Context, classroomID, userID string) (bool, error)
		RecordActivity(ctx context.Context, userID string, asOf time.Time) (User, error)
		AddXP(ctx context.Context, userID string, xp int) (int, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, id)
}

func (svc *service) GetRoster(ctx context.Context, classroomID string) (Roster, error) {
	return svc.repo.GetRoster(ctx, classroomID)
}

func (svc *service) IsMember(ctx context.Context, classroomID, userID string) (bool, error) {
	return svc.repo.IsMember(ctx, classroomID, userID)
}

// RecordActivity extends the user's daily streak for the day of asOf.
func (svc *service) RecordActivity(ctx context.Context, userID string, asOf time.Time) (User, error) {
	usr, err := svc.repo.GetUser(ctx, userID)
	if err != nil {
		return User{}, errors.Wrap(err, "finding user by ID")
	}
	streak, changed := usr.Streak.Touch(asOf)
	if !changed {
		return usr, nil
	}
	if err = svc.repo.SaveStreak(ctx, userID, streak); err != nil {
		return User{}, errors.Wrap(err, "saving streak")
	}
	usr.Streak = streak
	return usr, nil
}

func (svc *service) AddXP(ctx context.Context, userID string, xp int) (int, error) {
	return svc.repo.AddXP(ctx, userID, xp)
}
