package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"snake-arena/models"
	"snake-arena/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaderboardService(t *testing.T) (*LeaderboardService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewLeaderboardService(testutil.NewTestDB(t))
	svc.Now = func() time.Time {
		clock.Advance(time.Second)
		return clock.Now()
	}
	return svc, clock
}

func scores(entries []models.RankedEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func ranks(entries []models.RankedEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

func TestSubmit(t *testing.T) {
	svc, _ := newLeaderboardService(t)
	u := testutil.CreateUser(t, svc.DB, "alice")

	e, err := svc.Submit(context.Background(), u, 120, models.GameModePassThrough, 0)
	require.NoError(t, err)
	assert.Len(t, e.ID, 36)
	assert.Equal(t, "alice", e.Username)
	assert.Equal(t, models.GameModePassThrough, e.Mode)
	assert.False(t, e.SubmittedAt.IsZero())

	_, err = svc.Submit(context.Background(), u, -5, models.GameModeWalls, 0)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestTop_SortedWithPositionalRanks(t *testing.T) {
	svc, _ := newLeaderboardService(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, svc.DB, "alice")

	for _, s := range []int64{100, 200, 150} {
		_, err := svc.Submit(ctx, u, s, models.GameModeWalls, 0)
		require.NoError(t, err)
	}

	top, err := svc.Top(ctx, nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{200, 150, 100}, scores(top))
	assert.Equal(t, []int{1, 2, 3}, ranks(top))
}

func TestTop_TiesGetDistinctRanks(t *testing.T) {
	svc, _ := newLeaderboardService(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, svc.DB, "alice")

	for _, s := range []int64{50, 80, 80, 80, 10} {
		_, err := svc.Submit(ctx, u, s, models.GameModeWalls, 0)
		require.NoError(t, err)
	}

	top, err := svc.Top(ctx, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{80, 80, 80, 50, 10}, scores(top))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ranks(top))
}

func TestTop_ModeFilterAndLimit(t *testing.T) {
	svc, _ := newLeaderboardService(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, svc.DB, "alice")

	_, err := svc.Submit(ctx, u, 100, models.GameModeWalls, 0)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, u, 200, models.GameModePassThrough, 0)
	require.NoError(t, err)
	for s := int64(1); s <= 5; s++ {
		_, err = svc.Submit(ctx, u, s, models.GameModeWalls, 0)
		require.NoError(t, err)
	}

	walls := models.GameModeWalls
	got, err := svc.Top(ctx, &walls, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 5, 4}, scores(got))
	for _, e := range got {
		assert.Equal(t, models.GameModeWalls, e.Mode)
	}

	pass := models.GameModePassThrough
	got, err = svc.Top(ctx, &pass, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{200}, scores(got))
}

func TestTop_LimitBounds(t *testing.T) {
	svc, _ := newLeaderboardService(t)
	for _, limit := range []int{0, -1, 101} {
		_, err := svc.Top(context.Background(), nil, limit)
		assert.True(t, errors.Is(err, ErrValidation), "limit %d", limit)
	}
	_, err := svc.Top(context.Background(), nil, 100)
	assert.NoError(t, err)
}

func TestUserEntries(t *testing.T) {
	svc, _ := newLeaderboardService(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, svc.DB, "alice")
	bob := testutil.CreateUser(t, svc.DB, "bob")

	for _, s := range []int64{10, 30} {
		_, err := svc.Submit(ctx, alice, s, models.GameModeWalls, 0)
		require.NoError(t, err)
	}
	_, err := svc.Submit(ctx, bob, 1000, models.GameModeWalls, 0)
	require.NoError(t, err)

	got, err := svc.UserEntries(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 10}, scores(got))
	assert.Equal(t, []int{1, 2}, ranks(got))

	none, err := svc.UserEntries(ctx, 12345, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRankEntries_Empty(t *testing.T) {
	assert.Empty(t, RankEntries(nil))
}
