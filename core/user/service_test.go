package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classquest/classquest/core/user"
	"github.com/classquest/classquest/storage/database/dummy"
)

func TestService_RecordActivity(t *testing.T) {
	db, err := dummydb.Open()
	require.NoError(t, err)
	repo := dummydb.NewUserRepository(db)
	svc := user.NewService(repo)
	ctx := context.Background()

	usr, err := repo.CreateUser(ctx, user.User{FirstName: "Neema", Email: "neema@test.cd", Role: user.RoleStudent})
	require.NoError(t, err)

	day1 := time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)
	steps := []struct {
		asOf        time.Time
		wantCurrent int
		wantHighest int
		wantDays    int
	}{
		{asOf: day1, wantCurrent: 1, wantHighest: 1, wantDays: 1},
		{asOf: day1.Add(5 * time.Hour), wantCurrent: 1, wantHighest: 1, wantDays: 1},
		{asOf: day1.AddDate(0, 0, 1), wantCurrent: 2, wantHighest: 2, wantDays: 2},
		{asOf: day1.AddDate(0, 0, 2), wantCurrent: 3, wantHighest: 3, wantDays: 3},
		{asOf: day1.AddDate(0, 0, 5), wantCurrent: 1, wantHighest: 3, wantDays: 4},
	}
	for _, st := range steps {
		got, err := svc.RecordActivity(ctx, usr.ID, st.asOf)
		require.NoError(t, err)
		assert.Equal(t, st.wantCurrent, got.Current)
		assert.Equal(t, st.wantHighest, got.Highest)
		assert.Equal(t, st.wantDays, got.TotalActiveDays)

		stored, err := svc.GetByID(ctx, usr.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Streak, stored.Streak)
	}

	_, err = svc.RecordActivity(ctx, "ghost", day1)
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))
}
