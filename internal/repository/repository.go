package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellnest/tracker-api/internal/domain"
)

var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository stores accounts together with their embedded profile.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateProfile replaces the whole profile document of the user.
	UpdateProfile(ctx context.Context, email string, profile domain.Profile) (*domain.User, error)
	SetAvatarKey(ctx context.Context, email, key string) error
}

// LogRepository is the per-tracker log store. Entries are only ever
// created or deleted, never updated.
type LogRepository[E domain.Loggable[E]] interface {
	Create(ctx context.Context, entry E) (E, error)
	// ListByOwner returns every entry of the owner, newest first.
	ListByOwner(ctx context.Context, ownerEmail string) ([]E, error)
	// Delete removes the entry only if it belongs to ownerEmail.
	Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error
}

// GoalRepository is the keyed store for user goals.
type GoalRepository interface {
	List(ctx context.Context, ownerEmail string) ([]domain.Goal, error)
	// Put inserts a goal without an ID or replaces the stored one.
	Put(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error
}
