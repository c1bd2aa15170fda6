package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"github.com/andresuchdata/flowpilot/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const eventJournalSchema = `
CREATE TABLE IF NOT EXISTS automation_events (
    event_id            UUID PRIMARY KEY,
    sku                 TEXT NOT NULL,
    event_type          TEXT NOT NULL,
    delta               BIGINT NOT NULL,
    stock_after         BIGINT NOT NULL,
    anomaly_score_after DOUBLE PRECISION NOT NULL,
    alerts              TEXT[] NOT NULL DEFAULT '{}',
    received_at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_automation_events_received_at ON automation_events (received_at DESC);
`

const defaultRecentLimit = 50

type journalRow struct {
	EventID           string         `db:"event_id"`
	SKU               string         `db:"sku"`
	EventType         string         `db:"event_type"`
	Delta             int            `db:"delta"`
	StockAfter        int            `db:"stock_after"`
	AnomalyScoreAfter float64        `db:"anomaly_score_after"`
	Alerts            pq.StringArray `db:"alerts"`
	ReceivedAt        time.Time      `db:"received_at"`
}

type EventJournalRepository struct {
	db *DB
}

var _ repository.EventJournal = (*EventJournalRepository)(nil)

func NewEventJournalRepository(db *DB) *EventJournalRepository {
	return &EventJournalRepository{db: db}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (r *EventJournalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, eventJournalSchema); err != nil {
		return fmt.Errorf("failed to create automation_events: %w", err)
	}
	return nil
}

func (r *EventJournalRepository) Record(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		INSERT INTO automation_events (
			event_id, sku, event_type, delta, stock_after, anomaly_score_after, alerts, received_at
		) VALUES (
			:event_id, :sku, :event_type, :delta, :stock_after, :anomaly_score_after, :alerts, :received_at
		)
		ON CONFLICT (event_id) DO NOTHING
	`

	alerts := entry.Alerts
	if alerts == nil {
		alerts = []string{}
	}
	row := journalRow{
		EventID:           entry.EventID,
		SKU:               entry.SKU,
		EventType:         string(entry.EventType),
		Delta:             entry.Delta,
		StockAfter:        entry.StockAfter,
		AnomalyScoreAfter: entry.AnomalyScoreAfter,
		Alerts:            pq.StringArray(alerts),
		ReceivedAt:        entry.ReceivedAt,
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("failed to insert journal entry %s: %w", entry.EventID, err)
		}
		return nil
	})
}

func (r *EventJournalRepository) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	query := `
		SELECT event_id, sku, event_type, delta, stock_after, anomaly_score_after, alerts, received_at
		FROM automation_events
		ORDER BY received_at DESC
		LIMIT $1
	`

	var rows []journalRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}

	entries := make([]domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.JournalEntry{
			EventID:           row.EventID,
			SKU:               row.SKU,
			EventType:         domain.EventType(row.EventType),
			Delta:             row.Delta,
			StockAfter:        row.StockAfter,
			AnomalyScoreAfter: row.AnomalyScoreAfter,
			Alerts:            []string(row.Alerts),
			ReceivedAt:        row.ReceivedAt,
		})
	}
	return entries, nil
}

func (r *EventJournalRepository) Close() error {
	return r.db.Close()
}
