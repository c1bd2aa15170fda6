package domain

import "strings"

// EventType is the kind of an inbound webhook event
type EventType string

const (
	EventSale       EventType = "sale"
	EventRestock    EventType = "restock"
	EventCorrection EventType = "correction"
	EventAnomaly    EventType = "anomaly"
)

// RuleCondition selects how a rule's value is interpreted
type RuleCondition string

const (
	ConditionStockBelow   RuleCondition = "stock_below"
	ConditionAnomalyAbove RuleCondition = "anomaly_above"
	ConditionEventType    RuleCondition = "event_type"
)

// RiskLevel is the stock-out risk tier of a prediction
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var eventTypes = map[string]EventType{
	"sale":       EventSale,
	"restock":    EventRestock,
	"correction": EventCorrection,
	"anomaly":    EventAnomaly,
}

// ParseEventType returns the event type for a given label (case-insensitive).
func ParseEventType(label string) (EventType, bool) {
	t, ok := eventTypes[strings.ToLower(strings.TrimSpace(label))]

	return t, ok
}

// Valid reports whether t is one of the recognised event types.
func (t EventType) Valid() bool {
	_, ok := eventTypes[string(t)]
	return ok
}

// Valid reports whether c is one of the recognised rule conditions.
func (c RuleCondition) Valid() bool {
	switch c {
	case ConditionStockBelow, ConditionAnomalyAbove, ConditionEventType:
		return true
	}
	return false
}
