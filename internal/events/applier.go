package events

import (
	"fmt"
	"math"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// AnomalyAlertThreshold is the score at which the anomaly alert fires.
const AnomalyAlertThreshold = 0.2

var (
	saleAnomalyStep    = decimal.RequireFromString("0.02")
	restockAnomalyStep = decimal.RequireFromString("0.03")
	anomalyEventStep   = decimal.RequireFromString("0.12")
	scoreFloor         = decimal.Zero
	scoreCeiling       = decimal.NewFromInt(1)
)

// Apply mutates item according to eventType and delta. Stock never drops
// below zero and the anomaly score stays within [0,1].
func Apply(item *domain.InventoryItem, eventType domain.EventType, delta int) error {
	switch eventType {
	case domain.EventSale:
		item.Stock = max(0, item.Stock-abs(delta))
		item.AnomalyScore = shiftScore(item.AnomalyScore, saleAnomalyStep)
	case domain.EventRestock:
		item.Stock = addStock(item.Stock, abs(delta))
		item.AnomalyScore = shiftScore(item.AnomalyScore, restockAnomalyStep.Neg())
	case domain.EventCorrection:
		item.Stock = addStock(item.Stock, delta)
	case domain.EventAnomaly:
		item.AnomalyScore = shiftScore(item.AnomalyScore, anomalyEventStep)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownEventType, eventType)
	}
	return nil
}

// Alerts derives alert messages from the current state of item.
// Low stock is reported before a high anomaly score.
func Alerts(item domain.InventoryItem) []string {
	alerts := make([]string, 0, 2)
	if item.Stock <= item.ReorderPoint {
		alerts = append(alerts, fmt.Sprintf("%s low stock", item.SKU))
	}
	if item.AnomalyScore >= AnomalyAlertThreshold {
		alerts = append(alerts, fmt.Sprintf("%s anomaly score high", item.SKU))
	}
	return alerts
}

// shiftScore adds step to score in decimal space and clamps to [0,1], so
// repeated steps land exactly on thresholds such as 0.2 and 1.0.
func shiftScore(score float64, step decimal.Decimal) float64 {
	next := decimal.NewFromFloat(score).Add(step)
	next = decimal.Min(scoreCeiling, decimal.Max(scoreFloor, next))
	return next.InexactFloat64()
}

// addStock returns stock+delta saturated to [0, math.MaxInt]. stock is
// never negative, so only the upper bound can overflow.
func addStock(stock, delta int) int {
	if delta > 0 && stock > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, stock+delta)
}

// abs saturates at math.MaxInt for math.MinInt.
func abs(v int) int {
	switch {
	case v == math.MinInt:
		return math.MaxInt
	case v < 0:
		return -v
	}
	return v
}
