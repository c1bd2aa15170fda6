// backend-go/internal/repository/event_journal.go
package repository

import (
	"context"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
)

// EventJournal is an append-only audit log of applied webhook events.
// Inventory state is never rebuilt from it.
type EventJournal interface {
	Record(ctx context.Context, entry domain.JournalEntry) error
	Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error)
	Close() error
}

type noopEventJournal struct{}

// NewNoopEventJournal returns a journal that discards every entry.
func NewNoopEventJournal() EventJournal {
	return noopEventJournal{}
}

func (noopEventJournal) Record(ctx context.Context, entry domain.JournalEntry) error {
	return nil
}

func (noopEventJournal) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	return []domain.JournalEntry{}, nil
}

func (noopEventJournal) Close() error {
	return nil
}
