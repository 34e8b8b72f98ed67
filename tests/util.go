package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/question"
	"github.com/classquest/classquest/core/user"
	"github.com/classquest/classquest/storage/database"
)

// PrepareDB returns a migrated in-memory SQLite database, closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := &core.Config{Database: core.DatabaseConfig{Engine: database.EngineSQLite, Name: ":memory:"}}

	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db, conf.Database.Engine); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, repo user.Repository, firstName, email, role string, streak ...user.Streak) user.User {
	t.Helper()
	usr := user.User{
		FirstName: firstName,
		LastName:  "Test",
		Email:     email,
		Role:      role,
	}
	if len(streak) > 0 {
		usr.Streak = streak[0]
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateClassroom creates a classroom led by rep and enrolls students in the given order.
func CreateClassroom(t *testing.T, repo user.Repository, classroomID string, rep user.User, students ...user.User) {
	t.Helper()
	ctx := context.Background()
	if err := repo.CreateClassroom(ctx, classroomID, rep.ID); err != nil {
		t.Fatalf("CreateClassroom() failed: %v", err)
	}
	for _, s := range students {
		if err := repo.EnrollStudent(ctx, classroomID, s.ID); err != nil {
			t.Fatalf("EnrollStudent() failed: %v", err)
		}
	}
}

// CreateQuestions stores n questions of scope with the given status. Question i has i%3+2 options
// and its correct option is the last one.
func CreateQuestions(t *testing.T, repo question.Repository, scope question.Scope, n int, status string) []question.Question {
	t.Helper()
	questions := make([]question.Question, n)
	for i := range questions {
		opts := make([]string, i%3+2)
		for j := range opts {
			opts[j] = fmt.Sprintf("%s-q%d-opt%d", scope.MaterialID, i, j)
		}
		questions[i] = question.Question{
			ID:                 fmt.Sprintf("%s-%s-q%d", scope.MaterialID, status, i),
			ClassroomID:        scope.ClassroomID,
			SectionID:          scope.SectionID,
			MaterialID:         scope.MaterialID,
			MaterialNumber:     1,
			Text:               fmt.Sprintf("Question %d?", i),
			Options:            opts,
			CorrectOptionIndex: len(opts) - 1,
			Type:               question.TypeMultipleChoice,
			Difficulty:         question.DifficultyMedium,
			Status:             status,
		}
	}
	if err := repo.CreateQuestions(context.Background(), questions...); err != nil {
		t.Fatalf("CreateQuestions() failed: %v", err)
	}
	return questions
}
