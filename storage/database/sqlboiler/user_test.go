package boiledrepos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/randomize"

	"github.com/classquest/classquest/core/user"
	"github.com/classquest/classquest/tests"
)

func TestUserRepository_Users(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	active := user.Streak{Current: 2, Highest: 4, TotalActiveDays: 9, LastActiveDate: time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)}
	usr := testutil.CreateUser(t, repo, "Aisha", "aisha@test.cd", user.RoleStudent, active)
	assert.NotEmpty(t, usr.ID)

	got, err := repo.GetUser(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	_, err = repo.GetUser(ctx, "ghost")
	assert.Equal(t, user.ErrNotFound, err)

	_, err = repo.CreateUser(ctx, user.User{FirstName: "Other", Email: "aisha@test.cd", Role: user.RoleStudent})
	assert.Equal(t, user.ErrUserExists, err)

	// never active
	idle := testutil.CreateUser(t, repo, "Idle", "idle@test.cd", user.RoleStudent)
	got, err = repo.GetUser(ctx, idle.ID)
	require.NoError(t, err)
	assert.True(t, got.LastActiveDate.IsZero())

	streak, _ := got.Touch(time.Date(2026, time.May, 3, 17, 0, 0, 0, time.UTC))
	require.NoError(t, repo.SaveStreak(ctx, idle.ID, streak))
	got, err = repo.GetUser(ctx, idle.ID)
	require.NoError(t, err)
	assert.Equal(t, streak, got.Streak)
	assert.Equal(t, user.ErrNotFound, repo.SaveStreak(ctx, "ghost", streak))

	xp, err := repo.AddXP(ctx, usr.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, xp)
	xp, err = repo.AddXP(ctx, usr.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 100, xp)
	_, err = repo.AddXP(ctx, "ghost", 50)
	assert.Equal(t, user.ErrNotFound, err)
}

func TestUserRepository_Roster(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rep := testutil.CreateUser(t, repo, "Rep", "rep@test.cd", user.RoleCourseRep)
	s1 := testutil.CreateUser(t, repo, "S1", "s1@test.cd", user.RoleStudent)
	s2 := testutil.CreateUser(t, repo, "S2", "s2@test.cd", user.RoleStudent)
	outsider := testutil.CreateUser(t, repo, "Out", "out@test.cd", user.RoleStudent)
	testutil.CreateClassroom(t, repo, "c1", rep, s2, s1)

	assert.Equal(t, user.ErrClassroomExists, repo.CreateClassroom(ctx, "c1", rep.ID))
	assert.Equal(t, user.ErrNotFound, repo.CreateClassroom(ctx, "c2", "ghost"))
	assert.Equal(t, user.ErrClassroomNotFound, repo.EnrollStudent(ctx, "c9", s1.ID))
	assert.Equal(t, user.ErrNotFound, repo.EnrollStudent(ctx, "c1", "ghost"))
	require.NoError(t, repo.EnrollStudent(ctx, "c1", s2.ID)) // already enrolled

	roster, err := repo.GetRoster(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, rep, roster.CourseRep)
	assert.Equal(t, []user.User{s2, s1}, roster.Students)

	_, err = repo.GetRoster(ctx, "c9")
	assert.Equal(t, user.ErrClassroomNotFound, err)

	// classroom whose course rep is gone
	_, err = db.Exec(`INSERT INTO classrooms (id, course_rep_id) VALUES ('orphan', NULL)`)
	require.NoError(t, err)
	_, err = repo.GetRoster(ctx, "orphan")
	assert.Equal(t, user.ErrNoCourseRep, err)

	for _, tt := range []struct {
		userID string
		want   bool
	}{
		{userID: rep.ID, want: true},
		{userID: s1.ID, want: true},
		{userID: s2.ID, want: true},
		{userID: outsider.ID, want: false},
	} {
		ok, err := repo.IsMember(ctx, "c1", tt.userID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, tt.userID)
	}
	ok, err := repo.IsMember(ctx, "c9", rep.ID)
	assert.Equal(t, user.ErrClassroomNotFound, err)
	assert.False(t, ok)
}

func TestUserRepository_RandomStreaks(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seed := randomize.NewSeed()

	for i := 0; i < 10; i++ {
		var streak user.Streak
		require.NoError(t, randomize.Struct(seed, &streak, nil, i%2 == 0))

		usr := testutil.CreateUser(t, repo, "Random", fmt.Sprintf("random%d@test.cd", i), user.RoleStudent, streak)
		got, err := repo.GetUser(ctx, usr.ID)
		require.NoError(t, err)
		assert.Equal(t, streak.Current, got.Current)
		assert.Equal(t, streak.Highest, got.Highest)
		assert.Equal(t, streak.TotalActiveDays, got.TotalActiveDays)
		assert.True(t, streak.LastActiveDate.Equal(got.LastActiveDate), "%v != %v", streak.LastActiveDate, got.LastActiveDate)
	}
}
