// backend-go/internal/domain/models.go
package domain

import "time"

// InventoryItem is the per-SKU state held by the inventory store
type InventoryItem struct {
	SKU           string  `json:"sku" yaml:"sku"`
	Name          string  `json:"name" yaml:"name"`
	Stock         int     `json:"stock" yaml:"stock"`
	ReorderPoint  int     `json:"reorder_point" yaml:"reorder_point"`
	AvgDailySales float64 `json:"avg_daily_sales" yaml:"avg_daily_sales"`
	LeadTimeDays  int     `json:"lead_time_days" yaml:"lead_time_days"`
	Volatility    float64 `json:"volatility" yaml:"volatility"`
	AnomalyScore  float64 `json:"anomaly_score" yaml:"anomaly_score"`
}

// Rule is a declarative alerting rule supplied by the caller
type Rule struct {
	Condition RuleCondition `json:"condition" yaml:"condition"`
	Value     string        `json:"value" yaml:"value"`
	Action    string        `json:"action" yaml:"action"`
}

// RuleContext is the event context a rule set is evaluated against
type RuleContext struct {
	SKU          string
	EventType    string
	Stock        int
	AnomalyScore float64
}

// WebhookEvent is an inbound inventory event
type WebhookEvent struct {
	ID         string    `json:"id,omitempty"`
	SKU        string    `json:"sku"`
	EventType  EventType `json:"event_type"`
	Delta      int       `json:"delta"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// RestockPrediction is the reorder recommendation for a single SKU
type RestockPrediction struct {
	SKU                string    `json:"sku"`
	RecommendedReorder int       `json:"recommended_reorder"`
	Confidence         float64   `json:"confidence"`
	Risk               RiskLevel `json:"risk"`
}

// WebhookResult is returned after an event has been applied
type WebhookResult struct {
	Item   InventoryItem `json:"item"`
	Alerts []string      `json:"alerts"`
	Event  WebhookEvent  `json:"event"`
}

// PlanRequest describes an automation to be templated into a plan
type PlanRequest struct {
	Objective string `json:"objective" binding:"required"`
	Trigger   string `json:"trigger" binding:"required"`
	Action    string `json:"action" binding:"required"`
	Guardrail string `json:"guardrail" binding:"required"`
}

// RiskControls holds the guardrail settings attached to a plan
type RiskControls struct {
	HumanApproval             string `json:"human_approval"`
	TargetInterventionRatePct int    `json:"target_intervention_rate_pct"`
}

// Plan is the step list produced for a PlanRequest
type Plan struct {
	Objective    string       `json:"objective"`
	Steps        []string     `json:"steps"`
	RiskControls RiskControls `json:"risk_controls"`
}

// ActivityEntry is one line of the in-memory activity feed
type ActivityEntry struct {
	At      time.Time `json:"at"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// AlertEntry is a raised alert kept in the in-memory alert feed
type AlertEntry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// JournalEntry is the audit record written for every applied webhook event
type JournalEntry struct {
	EventID           string    `json:"event_id"`
	SKU               string    `json:"sku"`
	EventType         EventType `json:"event_type"`
	Delta             int       `json:"delta"`
	StockAfter        int       `json:"stock_after"`
	AnomalyScoreAfter float64   `json:"anomaly_score_after"`
	Alerts            []string  `json:"alerts"`
	ReceivedAt        time.Time `json:"received_at"`
}
