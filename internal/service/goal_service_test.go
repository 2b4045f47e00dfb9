package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/domain"
)

func TestGoalService(t *testing.T) {
	f := newTrackerFixture()
	svc := NewGoalService(f.goals, f.svc, zap.NewNop())
	clock := monday
	svc.(*goalService).now = func() time.Time { return clock }
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, "steps", 10, "")
	assert.ErrorIs(t, err, ErrInvalidGoal)
	_, err = svc.Create(ctx, owner, domain.GoalHydration, 0, "")
	assert.ErrorIs(t, err, ErrInvalidGoal)

	goal, err := svc.Create(ctx, owner, domain.GoalHydration, 8, "drop")
	require.NoError(t, err)
	assert.Equal(t, "glasses", goal.Unit)
	assert.False(t, goal.ID.IsZero())
	assert.Equal(t, monday, goal.UpdatedAt)

	refreshedAt := monday.Add(5 * time.Minute)
	clock = refreshedAt

	f.water.entries = []domain.WaterLog{
		{LogMeta: meta(monday.Add(-time.Hour)), Liters: 1, Cups: 2},
	}
	goals, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 6.0, goals[0].Actual)
	assert.Equal(t, 75, goals[0].Percent)
	assert.Equal(t, refreshedAt, goals[0].UpdatedAt)
	assert.Equal(t, refreshedAt, f.goals.goals[0].UpdatedAt)

	assert.ErrorIs(t, svc.Delete(ctx, "intruder@example.com", goal.ID), ErrGoalNotFound)
	require.NoError(t, svc.Delete(ctx, owner, goal.ID))

	goals, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, goals)
}
