package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/classquest/classquest/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) GetUser(_ context.Context, id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetRoster(_ context.Context, classroomID string) (user.Roster, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cls, ok := repo.db.classrooms[classroomID]
	if !ok {
		return user.Roster{}, user.ErrClassroomNotFound
	}
	rep, ok := repo.db.table[cls.courseRepID]
	if !ok {
		return user.Roster{}, user.ErrNoCourseRep
	}

	roster := user.Roster{CourseRep: *rep, Students: make([]user.User, 0, len(cls.studentIDs))}
	for _, id := range cls.studentIDs {
		if usr, ok := repo.db.table[id]; ok {
			roster.Students = append(roster.Students, *usr)
		}
	}
	return roster, nil
}

func (repo *userRepository) IsMember(_ context.Context, classroomID, userID string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cls, ok := repo.db.classrooms[classroomID]
	if !ok {
		return false, user.ErrClassroomNotFound
	}
	if cls.courseRepID == userID {
		return true, nil
	}
	for _, id := range cls.studentIDs {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *userRepository) SaveStreak(_ context.Context, userID string, streak user.Streak) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.table[userID]
	if !ok {
		return user.ErrNotFound
	}
	usr.Streak = streak
	return nil
}

func (repo *userRepository) AddXP(_ context.Context, userID string, xp int) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.table[userID]
	if !ok {
		return 0, user.ErrNotFound
	}
	usr.XP += xp
	return usr.XP, nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, u := range repo.db.table {
		if u.Email == usr.Email {
			return user.User{}, user.ErrUserExists
		}
	}
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	if _, ok := repo.db.table[usr.ID]; ok {
		return user.User{}, user.ErrUserExists
	}
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) CreateClassroom(_ context.Context, classroomID, courseRepID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.classrooms[classroomID]; ok {
		return user.ErrClassroomExists
	}
	if _, ok := repo.db.table[courseRepID]; !ok {
		return user.ErrNotFound
	}
	repo.db.classrooms[classroomID] = &classroom{courseRepID: courseRepID}
	return nil
}

func (repo *userRepository) EnrollStudent(_ context.Context, classroomID, studentID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls, ok := repo.db.classrooms[classroomID]
	if !ok {
		return user.ErrClassroomNotFound
	}
	if _, ok = repo.db.table[studentID]; !ok {
		return user.ErrNotFound
	}
	for _, id := range cls.studentIDs {
		if id == studentID {
			return nil
		}
	}
	cls.studentIDs = append(cls.studentIDs, studentID)
	return nil
}
