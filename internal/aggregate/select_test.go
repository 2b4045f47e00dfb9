package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/domain"
)

func meal(ts *time.Time, mealType domain.MealType, calories int) domain.MealLog {
	return domain.MealLog{
		LogMeta:  domain.LogMeta{ID: primitive.NewObjectID(), OwnerEmail: "a@example.com", Timestamp: ts},
		MealType: mealType,
		FoodType: domain.FoodVeg,
		Calories: calories,
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestFilterToday(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	entries := []domain.WorkoutLog{
		workout(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), 10, 0),     // midnight belongs to today
		workout(time.Date(2026, 3, 3, 23, 59, 59, 0, time.UTC), 20, 0),  // yesterday
		workout(time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC), 30, 0),  // today
		workout(time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC), 40, 0),    // same day last year
		{LogMeta: domain.LogMeta{OwnerEmail: "a@example.com"}, DurationMinutes: 50}, // untimed
	}

	got := aggregate.FilterToday(entries, now)
	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].DurationMinutes)
	assert.Equal(t, 30, got[1].DurationMinutes)
}

func TestFilterToday_ConvertsIntoNowLocation(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 3, 4, 21, 0, 0, 0, newYork)
	// 03:00 UTC on the 5th is 22:00 on the 4th in New York.
	entry := workout(time.Date(2026, 3, 5, 3, 0, 0, 0, time.UTC), 25, 0)

	got := aggregate.FilterToday([]domain.WorkoutLog{entry}, now)
	assert.Len(t, got, 1)
}

func TestLatestByGroup(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	untimed := meal(nil, domain.MealDinner, 900)
	entries := []domain.MealLog{
		meal(ptr(base), domain.MealBreakfast, 300),
		meal(ptr(base.Add(time.Hour)), domain.MealBreakfast, 400),
		meal(ptr(base.Add(-time.Hour)), domain.MealBreakfast, 500),
		meal(ptr(base.Add(4*time.Hour)), domain.MealLunch, 600),
		meal(ptr(base.Add(4*time.Hour)), domain.MealLunch, 650), // tie, later wins
		meal(ptr(base.Add(10*time.Hour)), domain.MealDinner, 700),
		untimed,
	}

	got := aggregate.LatestByGroup(entries, func(m domain.MealLog) domain.MealType { return m.MealType })
	require.Len(t, got, 3)
	assert.Equal(t, 400, got[domain.MealBreakfast].Calories)
	assert.Equal(t, 650, got[domain.MealLunch].Calories)
	assert.Equal(t, 700, got[domain.MealDinner].Calories, "a timestamped entry beats an untimed one")

	only := aggregate.LatestByGroup([]domain.MealLog{untimed}, func(m domain.MealLog) domain.MealType { return m.MealType })
	assert.Equal(t, 900, only[domain.MealDinner].Calories)
}

func TestLatestByGroup_EpochBeatsUntimed(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()
	lunch := func(m domain.MealLog) domain.MealType { return m.MealType }

	got := aggregate.LatestByGroup([]domain.MealLog{
		meal(ptr(epoch), domain.MealLunch, 500),
		meal(nil, domain.MealLunch, 900),
	}, lunch)
	assert.Equal(t, 500, got[domain.MealLunch].Calories)

	sorted := aggregate.SortByTimestampDescending([]domain.MealLog{
		meal(nil, domain.MealLunch, 900),
		meal(ptr(epoch), domain.MealLunch, 500),
	})
	assert.Equal(t, 500, sorted[0].Calories)
}

func TestSortByTimestampDescending(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	entries := []domain.MealLog{
		meal(nil, domain.MealSnack, 1),
		meal(ptr(base), domain.MealSnack, 2),
		meal(ptr(base.Add(time.Hour)), domain.MealSnack, 3),
		meal(ptr(base), domain.MealSnack, 4),
		meal(nil, domain.MealSnack, 5),
	}

	got := aggregate.SortByTimestampDescending(entries)
	var order []int
	for _, e := range got {
		order = append(order, e.Calories)
	}
	assert.Equal(t, []int{3, 2, 4, 1, 5}, order)
	assert.Equal(t, 1, entries[0].Calories, "input must not be reordered")
}

func TestLatest(t *testing.T) {
	_, ok := aggregate.Latest([]domain.SleepLog{})
	assert.False(t, ok)

	s, ok := aggregate.Latest([]domain.SleepLog{sleep(monday, 6), sleep(monday.Add(24*time.Hour), 8), sleep(monday.Add(-time.Hour), 5)})
	require.True(t, ok)
	assert.Equal(t, 8.0, s.DurationHours)
}
