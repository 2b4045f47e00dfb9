package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/domain"
)

type recordingDeleter struct {
	calls []string
	err   error
}

func (r *recordingDeleter) DeleteLog(_ context.Context, kind domain.Kind, id string) error {
	r.calls = append(r.calls, string(kind)+"/"+id)
	return r.err
}

// workouts logs one entry per day starting Monday 2026-02-23.
func workouts(minutes ...int) []domain.WorkoutLog {
	monday := time.Date(2026, 2, 23, 18, 0, 0, 0, time.UTC)
	out := make([]domain.WorkoutLog, len(minutes))
	for i, m := range minutes {
		ts := monday.AddDate(0, 0, i)
		out[i] = domain.WorkoutLog{LogMeta: domain.LogMeta{ID: primitive.NewObjectID(), Timestamp: &ts}, DurationMinutes: m}
	}
	return out
}

func TestLocalLogList_DeleteAtPreservesOrder(t *testing.T) {
	entries := workouts(10, 20, 30, 40, 50)
	list := NewLocalLogList(entries)
	remote := &recordingDeleter{}
	before := aggregate.BucketByDayOfWeek(list.Entries(), time.UTC, aggregate.WorkoutMinutes, aggregate.Sum)

	removed, err := list.DeleteAt(context.Background(), remote, 2)
	require.NoError(t, err)
	assert.Equal(t, 30, removed.DurationMinutes)
	assert.Equal(t, []string{"workout/" + entries[2].ID.Hex()}, remote.calls)

	var left []int
	for _, w := range list.Entries() {
		left = append(left, w.DurationMinutes)
	}
	assert.Equal(t, []int{10, 20, 40, 50}, left)
	assert.Equal(t, 120.0, aggregate.Total(list.Entries(), aggregate.WorkoutMinutes))

	after := aggregate.BucketByDayOfWeek(list.Entries(), time.UTC, aggregate.WorkoutMinutes, aggregate.Sum)
	assert.Equal(t, aggregate.WeeklySeries{10, 20, 30, 40, 50, 0, 0}, before)
	assert.Equal(t, aggregate.WeeklySeries{10, 20, 0, 40, 50, 0, 0}, after)
	for day := range before {
		want := before[day]
		if day == aggregate.DayIndex(removed.Timestamp.Weekday()) {
			want -= aggregate.WorkoutMinutes(removed)
		}
		assert.Equal(t, want, after[day], "day %d", day)
	}
}

func TestLocalLogList_RemoteFailureKeepsEntry(t *testing.T) {
	list := NewLocalLogList(workouts(10, 20, 30))
	remote := &recordingDeleter{err: errors.New("503")}

	_, err := list.DeleteAt(context.Background(), remote, 1)
	require.Error(t, err)
	assert.Equal(t, 3, list.Len())
	assert.Len(t, remote.calls, 1)
}

func TestLocalLogList_OutOfRange(t *testing.T) {
	list := NewLocalLogList(workouts(10))
	remote := &recordingDeleter{}

	_, err := list.DeleteAt(context.Background(), remote, 1)
	assert.Error(t, err)
	_, err = list.DeleteAt(context.Background(), remote, -1)
	assert.Error(t, err)
	assert.Empty(t, remote.calls)
}
