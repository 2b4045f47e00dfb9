package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/repository"
)

// ErrAggregationUnavailable means at least one log store could not be read,
// so no partial dashboard is produced.
var ErrAggregationUnavailable = errors.New("aggregation unavailable")

// LogStores bundles the four tracker repositories.
type LogStores struct {
	Water    repository.LogRepository[domain.WaterLog]
	Sleep    repository.LogRepository[domain.SleepLog]
	Workouts repository.LogRepository[domain.WorkoutLog]
	Meals    repository.LogRepository[domain.MealLog]
}

type WaterSummary struct {
	WeeklyGlasses aggregate.WeeklySeries `json:"weeklyGlasses"`
	WeeklyPercent aggregate.WeeklySeries `json:"weeklyPercent"`
	TodayGlasses  float64                `json:"todayGlasses"`
	GoalGlasses   float64                `json:"goalGlasses"`
	TodayPercent  int                    `json:"todayPercent"`
}

type WorkoutSummary struct {
	WeeklyMinutes  aggregate.WeeklySeries `json:"weeklyMinutes"`
	WeeklyCalories aggregate.WeeklySeries `json:"weeklyCalories"`
	TodayMinutes   float64                `json:"todayMinutes"`
	TodayCalories  float64                `json:"todayCalories"`
	TodaySessions  int                    `json:"todaySessions"`
	TotalSessions  int                    `json:"totalSessions"`
}

type SleepSummary struct {
	WeeklyHours  aggregate.WeeklySeries `json:"weeklyHours"`
	AverageHours float64                `json:"averageHours"`
	Latest       *domain.SleepLog       `json:"latest,omitempty"`
}

type MealSummary struct {
	WeeklyCalories aggregate.WeeklySeries             `json:"weeklyCalories"`
	TodayCalories  float64                            `json:"todayCalories"`
	TodayProtein   float64                            `json:"todayProtein"`
	TodayCarbs     float64                            `json:"todayCarbs"`
	TodayFats      float64                            `json:"todayFats"`
	TodayByType    map[domain.MealType]domain.MealLog `json:"todayByType"`
}

// Dashboard is the full snapshot behind the tracker pages. It is rebuilt
// from scratch on every request.
type Dashboard struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Timezone    string         `json:"timezone"`
	Labels      [7]string      `json:"labels"`
	Water       WaterSummary   `json:"water"`
	Workouts    WorkoutSummary `json:"workouts"`
	Sleep       SleepSummary   `json:"sleep"`
	Meals       MealSummary    `json:"meals"`
	Today       TodayTotals    `json:"today"`
	Goals       []GoalProgress `json:"goals"`
}

// TodayTotals are the numbers goals are measured against.
type TodayTotals struct {
	WorkoutMinutes float64 `json:"workoutMinutes"`
	MealCalories   float64 `json:"mealCalories"`
	WaterGlasses   float64 `json:"waterGlasses"`
	SleepHours     float64 `json:"sleepHours"`
}

// ActualFor maps a goal type to today's matching aggregate.
func (t TodayTotals) ActualFor(goalType domain.GoalType) float64 {
	switch goalType {
	case domain.GoalFitness:
		return t.WorkoutMinutes
	case domain.GoalNutrition:
		return t.MealCalories
	case domain.GoalHydration:
		return t.WaterGlasses
	case domain.GoalSleep:
		return t.SleepHours
	}
	return 0
}

type TrackerService interface {
	Dashboard(ctx context.Context, ownerEmail string) (*Dashboard, error)
	Today(ctx context.Context, ownerEmail string) (*TodayTotals, error)
}

// TrackerOptions configure aggregation.
type TrackerOptions struct {
	Location         *time.Location
	WaterGoalGlasses float64
}

type trackerService struct {
	stores    LogStores
	goals     repository.GoalRepository
	loc       *time.Location
	waterGoal float64
	now       func() time.Time
	logger    *zap.Logger
}

func NewTrackerService(stores LogStores, goals repository.GoalRepository, opts TrackerOptions, logger *zap.Logger) TrackerService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.WaterGoalGlasses <= 0 {
		opts.WaterGoalGlasses = 8
	}
	return &trackerService{
		stores:    stores,
		goals:     goals,
		loc:       opts.Location,
		waterGoal: opts.WaterGoalGlasses,
		now:       time.Now,
		logger:    logger,
	}
}

type snapshot struct {
	water    []domain.WaterLog
	sleep    []domain.SleepLog
	workouts []domain.WorkoutLog
	meals    []domain.MealLog
	goals    []domain.Goal
}

// fetch reads every store concurrently and waits for all of them; one
// failure fails the whole snapshot.
func (s *trackerService) fetch(ctx context.Context, ownerEmail string, withGoals bool) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.water, err = s.stores.Water.ListByOwner(gctx, ownerEmail)
		return wrapStore("water", err)
	})
	g.Go(func() (err error) {
		snap.sleep, err = s.stores.Sleep.ListByOwner(gctx, ownerEmail)
		return wrapStore("sleep", err)
	})
	g.Go(func() (err error) {
		snap.workouts, err = s.stores.Workouts.ListByOwner(gctx, ownerEmail)
		return wrapStore("workout", err)
	})
	g.Go(func() (err error) {
		snap.meals, err = s.stores.Meals.ListByOwner(gctx, ownerEmail)
		return wrapStore("meal", err)
	})
	if withGoals {
		g.Go(func() (err error) {
			snap.goals, err = s.goals.List(gctx, ownerEmail)
			return wrapStore("goal", err)
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("tracker fetch failed", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAggregationUnavailable, err)
	}
	return &snap, nil
}

func wrapStore(name string, err error) error {
	if err != nil {
		return fmt.Errorf("%s logs: %w", name, err)
	}
	return nil
}

func (s *trackerService) Dashboard(ctx context.Context, ownerEmail string) (*Dashboard, error) {
	snap, err := s.fetch(ctx, ownerEmail, true)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)

	d := &Dashboard{
		GeneratedAt: now,
		Timezone:    s.loc.String(),
		Labels:      aggregate.DayLabels,
		Water:       s.waterSummary(snap.water, now),
		Workouts:    workoutSummary(snap.workouts, s.loc, now),
		Sleep:       sleepSummary(snap.sleep, s.loc),
		Meals:       mealSummary(snap.meals, s.loc, now),
	}
	d.Today = todayTotals(snap, now)
	d.Goals = refreshGoals(ctx, s.goals, snap.goals, d.Today, now.UTC(), s.logger)
	return d, nil
}

func (s *trackerService) Today(ctx context.Context, ownerEmail string) (*TodayTotals, error) {
	snap, err := s.fetch(ctx, ownerEmail, false)
	if err != nil {
		return nil, err
	}
	totals := todayTotals(snap, s.now().In(s.loc))
	return &totals, nil
}

func (s *trackerService) waterSummary(entries []domain.WaterLog, now time.Time) WaterSummary {
	weekly := aggregate.BucketByDayOfWeek(entries, s.loc, aggregate.WaterGlasses, aggregate.Sum)
	today := aggregate.Total(aggregate.FilterToday(entries, now), aggregate.WaterGlasses)
	return WaterSummary{
		WeeklyGlasses: weekly,
		WeeklyPercent: aggregate.PercentOfGoal(weekly, s.waterGoal),
		TodayGlasses:  today,
		GoalGlasses:   s.waterGoal,
		TodayPercent:  aggregate.GoalProgressPercent(today, s.waterGoal),
	}
}

func workoutSummary(entries []domain.WorkoutLog, loc *time.Location, now time.Time) WorkoutSummary {
	today := aggregate.FilterToday(entries, now)
	return WorkoutSummary{
		WeeklyMinutes:  aggregate.BucketByDayOfWeek(entries, loc, aggregate.WorkoutMinutes, aggregate.Sum),
		WeeklyCalories: aggregate.BucketByDayOfWeek(entries, loc, aggregate.WorkoutCalories, aggregate.Sum),
		TodayMinutes:   aggregate.Total(today, aggregate.WorkoutMinutes),
		TodayCalories:  aggregate.Total(today, aggregate.WorkoutCalories),
		TodaySessions:  len(today),
		TotalSessions:  len(entries),
	}
}

// sleepSummary overwrites each day's bucket in store order (newest first)
// rather than summing naps; see DESIGN.md.
func sleepSummary(entries []domain.SleepLog, loc *time.Location) SleepSummary {
	sum := SleepSummary{
		WeeklyHours:  aggregate.BucketByDayOfWeek(entries, loc, aggregate.SleepHours, aggregate.LastWrite),
		AverageHours: aggregate.Round1(aggregate.Average(entries, aggregate.SleepHours)),
	}
	if latest, ok := aggregate.Latest(entries); ok {
		sum.Latest = &latest
	}
	return sum
}

func mealSummary(entries []domain.MealLog, loc *time.Location, now time.Time) MealSummary {
	today := aggregate.FilterToday(entries, now)
	return MealSummary{
		WeeklyCalories: aggregate.BucketByDayOfWeek(entries, loc, aggregate.MealCalories, aggregate.Sum),
		TodayCalories:  aggregate.Total(today, aggregate.MealCalories),
		TodayProtein:   aggregate.Total(today, aggregate.MealProtein),
		TodayCarbs:     aggregate.Total(today, aggregate.MealCarbs),
		TodayFats:      aggregate.Total(today, aggregate.MealFats),
		TodayByType: aggregate.LatestByGroup(today, func(m domain.MealLog) domain.MealType {
			return m.MealType
		}),
	}
}

func todayTotals(snap *snapshot, now time.Time) TodayTotals {
	totals := TodayTotals{
		WorkoutMinutes: aggregate.Total(aggregate.FilterToday(snap.workouts, now), aggregate.WorkoutMinutes),
		MealCalories:   aggregate.Total(aggregate.FilterToday(snap.meals, now), aggregate.MealCalories),
		WaterGlasses:   aggregate.Total(aggregate.FilterToday(snap.water, now), aggregate.WaterGlasses),
	}
	if latest, ok := aggregate.Latest(aggregate.FilterToday(snap.sleep, now)); ok {
		totals.SleepHours = latest.DurationHours
	}
	return totals
}
