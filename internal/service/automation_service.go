package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/flowpilot/backend-go/internal/cache"
	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"github.com/andresuchdata/flowpilot/backend-go/internal/events"
	"github.com/andresuchdata/flowpilot/backend-go/internal/forecast"
	"github.com/andresuchdata/flowpilot/backend-go/internal/inventory"
	"github.com/andresuchdata/flowpilot/backend-go/internal/repository"
	"github.com/andresuchdata/flowpilot/backend-go/internal/rules"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EvaluateRulesInput is the typed request for rule evaluation. The context is
// entirely caller supplied: omitted Stock and AnomalyScore evaluate as zero and
// the inventory store is never consulted.
type EvaluateRulesInput struct {
	SKU          string
	EventType    string
	Stock        *int
	AnomalyScore *float64
	Rules        []domain.Rule
}

type AutomationService struct {
	store   *inventory.Store
	cache   cache.PredictionCache
	journal repository.EventJournal
	feed    *ActivityFeed
	now     func() time.Time
}

func NewAutomationService(store *inventory.Store, cacheImpl cache.PredictionCache, journal repository.EventJournal) *AutomationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPredictionCache()
	}
	if journal == nil {
		journal = repository.NewNoopEventJournal()
	}
	return &AutomationService{
		store:   store,
		cache:   cacheImpl,
		journal: journal,
		feed:    NewActivityFeed(defaultActivityCapacity, defaultAlertCapacity),
		now:     time.Now,
	}
}

// GetInventory returns the catalog in insertion order.
func (s *AutomationService) GetInventory(ctx context.Context) []domain.InventoryItem {
	return s.store.List()
}

// PredictRestock returns a recommendation for every SKU in catalog order.
func (s *AutomationService) PredictRestock(ctx context.Context) ([]domain.RestockPrediction, error) {
	items, version := s.store.Snapshot()

	if predictions, ok, err := s.cache.GetPredictions(ctx, version); err == nil && ok {
		return predictions, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("predict: cache get failed")
	}

	predictions := forecast.PredictAll(items)

	if err := s.cache.SetPredictions(ctx, version, predictions); err != nil {
		log.Warn().Err(err).Msg("predict: cache set failed")
	}

	s.feed.Push("ai", fmt.Sprintf("Predictor executed for %d SKUs", len(predictions)))
	return predictions, nil
}

// EvaluateRules evaluates in.Rules against the event context and returns the
// fired messages. A malformed rule value rejects the whole batch.
func (s *AutomationService) EvaluateRules(ctx context.Context, in EvaluateRulesInput) ([]string, error) {
	ruleCtx := domain.RuleContext{
		SKU:       in.SKU,
		EventType: in.EventType,
	}

	if in.Stock != nil {
		ruleCtx.Stock = *in.Stock
	}
	if in.AnomalyScore != nil {
		ruleCtx.AnomalyScore = *in.AnomalyScore
	}

	fired, err := rules.Evaluate(in.Rules, ruleCtx)
	if err != nil {
		log.Warn().Err(err).Str("sku", in.SKU).Msg("rules: batch rejected")
		return nil, fmt.Errorf("evaluate rules: %w", err)
	}

	for _, msg := range fired {
		s.feed.Push("rule", "Rule fired: "+msg)
	}
	return fired, nil
}

// SimulateWebhook applies event to the stored SKU and reports the resulting
// record and alerts. Returns domain.ErrNotFound for unknown SKUs.
func (s *AutomationService) SimulateWebhook(ctx context.Context, event domain.WebhookEvent) (*domain.WebhookResult, error) {
	if !event.EventType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEventType, event.EventType)
	}

	item, err := s.store.Mutate(event.SKU, func(item *domain.InventoryItem) error {
		return events.Apply(item, event.EventType, event.Delta)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.feed.Push("warn", fmt.Sprintf("Unknown SKU %s ignored", event.SKU))
		}
		return nil, err
	}

	event.ID = uuid.NewString()
	event.ReceivedAt = s.now().UTC()
	alerts := events.Alerts(item)

	s.feed.Push("info", fmt.Sprintf("Webhook %s for %s, delta %d, stock now %d", event.EventType, event.SKU, event.Delta, item.Stock))
	for _, alert := range alerts {
		s.feed.Alert(alert)
	}

	log.Info().
		Str("event_id", event.ID).
		Str("sku", event.SKU).
		Str("event_type", string(event.EventType)).
		Int("delta", event.Delta).
		Int("stock", item.Stock).
		Float64("anomaly_score", item.AnomalyScore).
		Strs("alerts", alerts).
		Msg("webhook applied")

	// The mutation is already visible; a journal failure must not turn into a
	// client error that invites a retry.
	if err := s.journal.Record(ctx, domain.JournalEntry{
		EventID:           event.ID,
		SKU:               event.SKU,
		EventType:         event.EventType,
		Delta:             event.Delta,
		StockAfter:        item.Stock,
		AnomalyScoreAfter: item.AnomalyScore,
		Alerts:            alerts,
		ReceivedAt:        event.ReceivedAt,
	}); err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("webhook: journal write failed")
	}

	return &domain.WebhookResult{
		Item:   item,
		Alerts: alerts,
		Event:  event,
	}, nil
}

// RecentActivity returns up to limit activity entries and alerts, newest first.
func (s *AutomationService) RecentActivity(limit int) ([]domain.ActivityEntry, []domain.AlertEntry) {
	return s.feed.Activity(limit), s.feed.Alerts(limit)
}

// RecentJournal returns the latest persisted events.
func (s *AutomationService) RecentJournal(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	return s.journal.Recent(ctx, limit)
}
