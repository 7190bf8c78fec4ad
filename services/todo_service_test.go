package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"snake-arena/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoService_CRUD(t *testing.T) {
	svc := NewTodoService(testutil.NewTestDB(t))
	ctx := context.Background()

	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, TodoInput{Title: "Buy Milk & Eggs", Description: "2 liters", DueDate: &due})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Resolved)
	assert.Equal(t, "buy-milk-and-eggs", created.Slug)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := svc.Update(ctx, created.ID, TodoInput{Title: "Edited", Description: "y"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "edited", updated.Slug)
	assert.Nil(t, updated.DueDate)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, created.ID), ErrNotFound))
}

func TestTodoService_Toggle(t *testing.T) {
	svc := NewTodoService(testutil.NewTestDB(t))
	ctx := context.Background()

	todo, err := svc.Create(ctx, TodoInput{Title: "VTest"})
	require.NoError(t, err)

	toggled, err := svc.ToggleResolved(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Resolved)

	toggled, err = svc.ToggleResolved(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Resolved)

	_, err = svc.ToggleResolved(ctx, todo.ID+1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTodoService_TitleRequired(t *testing.T) {
	svc := NewTodoService(testutil.NewTestDB(t))
	_, err := svc.Create(context.Background(), TodoInput{Title: "   "})
	assert.True(t, errors.Is(err, ErrValidation))
}
