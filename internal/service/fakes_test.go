package service

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/repository"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*domain.User{}} }

func (m *memUsers) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	u := *user
	u.ID = primitive.NewObjectID()
	m.users[u.Email] = &u
	return u.ID, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, email string, profile domain.Profile) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Profile = profile
	cp := *u
	return &cp, nil
}

func (m *memUsers) SetAvatarKey(_ context.Context, email, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarKey = key
	return nil
}

// memLogs keeps entries in insertion order; err makes every call fail.
type memLogs[E domain.Loggable[E]] struct {
	mu      sync.Mutex
	entries []E
	err     error
}

func (m *memLogs[E]) Create(_ context.Context, entry E) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		var zero E
		return zero, m.err
	}
	meta := entry.Meta()
	meta.ID = primitive.NewObjectID()
	entry = entry.WithMeta(meta)
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memLogs[E]) ListByOwner(_ context.Context, ownerEmail string) ([]E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []E
	for _, e := range m.entries {
		if e.Meta().OwnerEmail == ownerEmail {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memLogs[E]) Delete(_ context.Context, ownerEmail string, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	i := slices.IndexFunc(m.entries, func(e E) bool {
		return e.Meta().ID == id && e.Meta().OwnerEmail == ownerEmail
	})
	if i < 0 {
		return repository.ErrNotFound
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return nil
}

type memGoals struct {
	mu    sync.Mutex
	goals []domain.Goal
	puts  int
}

func (m *memGoals) List(_ context.Context, ownerEmail string) ([]domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Goal
	for _, g := range m.goals {
		if g.OwnerEmail == ownerEmail {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memGoals) Put(_ context.Context, goal *domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if goal.ID.IsZero() {
		goal.ID = primitive.NewObjectID()
		m.goals = append(m.goals, *goal)
		return nil
	}
	for i := range m.goals {
		if m.goals[i].ID == goal.ID {
			m.goals[i] = *goal
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memGoals) Delete(_ context.Context, ownerEmail string, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.goals, func(g domain.Goal) bool {
		return g.ID == id && g.OwnerEmail == ownerEmail
	})
	if i < 0 {
		return repository.ErrNotFound
	}
	m.goals = slices.Delete(m.goals, i, i+1)
	return nil
}
