package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/repository"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrInvalidGoal  = errors.New("invalid goal")
)

// GoalProgress is a goal with today's actual value and its percentage.
type GoalProgress struct {
	domain.Goal
	Percent int `json:"percent"`
}

type GoalService interface {
	// List returns the goals with Actual refreshed from today's logs.
	List(ctx context.Context, ownerEmail string) ([]GoalProgress, error)
	Create(ctx context.Context, ownerEmail string, goalType domain.GoalType, target float64, icon string) (*domain.Goal, error)
	Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error
}

type goalService struct {
	goals   repository.GoalRepository
	tracker TrackerService
	now     func() time.Time
	logger  *zap.Logger
}

func NewGoalService(goals repository.GoalRepository, tracker TrackerService, logger *zap.Logger) GoalService {
	return &goalService{goals: goals, tracker: tracker, now: time.Now, logger: logger}
}

func (s *goalService) List(ctx context.Context, ownerEmail string) ([]GoalProgress, error) {
	today, err := s.tracker.Today(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.List(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	return refreshGoals(ctx, s.goals, goals, *today, s.now().UTC(), s.logger), nil
}

func (s *goalService) Create(ctx context.Context, ownerEmail string, goalType domain.GoalType, target float64, icon string) (*domain.Goal, error) {
	if !goalType.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidGoal, goalType)
	}
	if !(target > 0) || math.IsInf(target, 0) {
		return nil, fmt.Errorf("%w: target must be positive", ErrInvalidGoal)
	}
	now := s.now().UTC()
	goal := &domain.Goal{
		OwnerEmail: ownerEmail,
		Type:       goalType,
		Target:     target,
		Unit:       goalType.DefaultUnit(),
		Icon:       icon,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.goals.Put(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error {
	err := s.goals.Delete(ctx, ownerEmail, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

// refreshGoals sets each goal's Actual from today and writes back the ones
// that changed, stamping them with now. A failed write is logged and does
// not fail the read.
func refreshGoals(ctx context.Context, repo repository.GoalRepository, goals []domain.Goal, today TodayTotals, now time.Time, logger *zap.Logger) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		actual := aggregate.Round1(today.ActualFor(g.Type))
		if actual != g.Actual {
			g.Actual = actual
			g.UpdatedAt = now
			if err := repo.Put(ctx, &g); err != nil {
				logger.Warn("failed to persist goal progress", zap.String("goalId", g.ID.Hex()), zap.Error(err))
			}
		}
		out = append(out, GoalProgress{Goal: g, Percent: aggregate.GoalProgressPercent(g.Actual, g.Target)})
	}
	return out
}
