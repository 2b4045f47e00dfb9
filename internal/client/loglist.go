package client

import (
	"context"
	"fmt"
	"slices"

	"wellnest/tracker-api/internal/domain"
)

// RemoteDeleter deletes an entry on the server.
type RemoteDeleter interface {
	DeleteLog(ctx context.Context, kind domain.Kind, id string) error
}

// LocalLogList is the client-side copy of one tracker's entries. Removal is
// pessimistic: the server delete must succeed before the local list changes.
type LocalLogList[E domain.Entry] struct {
	entries []E
}

func NewLocalLogList[E domain.Entry](entries []E) *LocalLogList[E] {
	return &LocalLogList[E]{entries: slices.Clone(entries)}
}

func (l *LocalLogList[E]) Entries() []E {
	return slices.Clone(l.entries)
}

func (l *LocalLogList[E]) Len() int { return len(l.entries) }

// DeleteAt removes the entry at index i. On a remote failure the list is
// left untouched and the error is returned. Survivors keep their order.
func (l *LocalLogList[E]) DeleteAt(ctx context.Context, remote RemoteDeleter, i int) (E, error) {
	var zero E
	if i < 0 || i >= len(l.entries) {
		return zero, fmt.Errorf("index %d out of range [0,%d)", i, len(l.entries))
	}
	entry := l.entries[i]
	if err := remote.DeleteLog(ctx, entry.Kind(), entry.Meta().ID.Hex()); err != nil {
		return zero, err
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return entry, nil
}
