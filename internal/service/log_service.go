package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/repository"
)

var ErrLogNotFound = errors.New("log entry not found")

// LogService creates, lists and deletes one kind of tracker entry for an
// owner. Entries cannot be edited.
type LogService[E domain.Loggable[E]] interface {
	Create(ctx context.Context, ownerEmail string, entry E) (E, error)
	List(ctx context.Context, ownerEmail string) ([]E, error)
	Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error
}

type logService[E domain.Loggable[E]] struct {
	repo repository.LogRepository[E]
	now  func() time.Time
}

func NewLogService[E domain.Loggable[E]](repo repository.LogRepository[E]) LogService[E] {
	return &logService[E]{repo: repo, now: time.Now}
}

// Create stamps the owner onto the entry and, when the client sent no
// timestamp, the current time.
func (s *logService[E]) Create(ctx context.Context, ownerEmail string, entry E) (E, error) {
	meta := entry.Meta()
	meta.ID = primitive.NilObjectID
	meta.OwnerEmail = ownerEmail
	if _, ok := meta.Time(); !ok {
		now := s.now().UTC()
		meta.Timestamp = &now
	}
	return s.repo.Create(ctx, entry.WithMeta(meta))
}

// List returns the owner's entries newest first.
func (s *logService[E]) List(ctx context.Context, ownerEmail string) ([]E, error) {
	entries, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	return aggregate.SortByTimestampDescending(entries), nil
}

func (s *logService[E]) Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, ownerEmail, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLogNotFound
	}
	return err
}
