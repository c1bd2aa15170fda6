package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"github.com/andresuchdata/flowpilot/backend-go/internal/inventory"
	"github.com/andresuchdata/flowpilot/backend-go/internal/rules"
	"github.com/andresuchdata/flowpilot/backend-go/internal/service"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newStore(c *cli.Context) (*inventory.Store, error) {
	items, err := inventory.LoadCatalog(c.String("catalog"))
	if err != nil {
		return nil, err
	}
	return inventory.NewStore(items)
}

func newService(c *cli.Context) (*service.AutomationService, error) {
	store, err := newStore(c)
	if err != nil {
		return nil, err
	}
	return service.NewAutomationService(store, nil, nil), nil
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runPredict(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	predictions, err := svc.PredictRestock(c.Context)
	if err != nil {
		return fmt.Errorf("failed to predict restock: %w", err)
	}
	return writeJSON(c, map[string]any{"predictions": predictions})
}

func runSimulate(c *cli.Context) error {
	eventType, ok := domain.ParseEventType(c.String("type"))
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownEventType, c.String("type"))
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.SimulateWebhook(c.Context, domain.WebhookEvent{
		SKU:       c.String("sku"),
		EventType: eventType,
		Delta:     c.Int("delta"),
	})
	if err != nil {
		return fmt.Errorf("failed to apply event: %w", err)
	}
	return writeJSON(c, result)
}

func runRules(c *cli.Context) error {
	ruleSet, err := rules.LoadFile(c.String("file"))
	if err != nil {
		return err
	}

	store, err := newStore(c)
	if err != nil {
		return err
	}
	svc := service.NewAutomationService(store, nil, nil)

	// Unset context fields are taken from the catalog record when the SKU is known.
	stock, score := 0, 0.0
	if item, err := store.Lookup(c.String("sku")); err == nil {
		stock, score = item.Stock, item.AnomalyScore
	}
	if c.IsSet("stock") {
		stock = c.Int("stock")
	}
	if c.IsSet("anomaly-score") {
		score = c.Float64("anomaly-score")
	}

	in := service.EvaluateRulesInput{
		SKU:          c.String("sku"),
		EventType:    c.String("event-type"),
		Stock:        &stock,
		AnomalyScore: &score,
		Rules:        ruleSet,
	}

	alerts, err := svc.EvaluateRules(c.Context, in)
	if err != nil {
		return err
	}
	return writeJSON(c, map[string]any{"alerts": alerts})
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(c.Context, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func runJournal(c *cli.Context) error {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok {
		return fmt.Errorf("database connection not initialised")
	}

	rows, err := db.QueryContext(c.Context, `
		SELECT event_id::text, sku, event_type, delta, stock_after, anomaly_score_after,
		       array_to_string(alerts, '; '), received_at
		FROM automation_events
		ORDER BY received_at DESC
		LIMIT $1
	`, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RECEIVED\tEVENT\tSKU\tTYPE\tDELTA\tSTOCK\tANOMALY\tALERTS")
	for rows.Next() {
		var (
			eventID, sku, eventType, alerts string
			delta, stock                    int
			score                           float64
			receivedAt                      time.Time
		)
		if err := rows.Scan(&eventID, &sku, &eventType, &delta, &stock, &score, &alerts, &receivedAt); err != nil {
			return fmt.Errorf("failed to scan journal row: %w", err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.2f\t%s\n",
			receivedAt.UTC().Format(time.RFC3339), shortID(eventID), sku, eventType, delta, stock, score, alerts)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	return w.Flush()
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
