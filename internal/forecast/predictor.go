package forecast

import (
	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	baseConfidence  = decimal.RequireFromString("0.96")
	floorConfidence = decimal.RequireFromString("0.55")
)

// PredictRestock computes the reorder recommendation for one item.
//
// Demand over the lead time is padded with a volatility buffer rounded up to
// whole units; the recommendation is whatever that target exceeds current stock
// by. Arithmetic runs on decimals so products such as 50 x 0.2 stay exact
// before the ceiling is taken.
func PredictRestock(item domain.InventoryItem) domain.RestockPrediction {
	volatility := decimal.NewFromFloat(item.Volatility)

	// 1. Demand during lead time
	demand := decimal.NewFromFloat(item.AvgDailySales).Mul(decimal.NewFromInt(int64(item.LeadTimeDays)))

	// 2. Safety buffer, partial units round up
	buffer := demand.Mul(volatility).Ceil()

	// 3. Quantity to order, never negative
	reorderQty := int(demand.Add(buffer).Sub(decimal.NewFromInt(int64(item.Stock))).IntPart())
	if reorderQty < 0 {
		reorderQty = 0
	}

	// 4. Confidence degrades with volatility, floored
	confidence := decimal.Max(floorConfidence, baseConfidence.Sub(volatility).Round(2))

	return domain.RestockPrediction{
		SKU:                item.SKU,
		RecommendedReorder: reorderQty,
		Confidence:         confidence.InexactFloat64(),
		Risk:               riskFor(reorderQty, item.ReorderPoint),
	}
}

// PredictAll runs PredictRestock over items, preserving order.
func PredictAll(items []domain.InventoryItem) []domain.RestockPrediction {
	predictions := make([]domain.RestockPrediction, 0, len(items))
	for _, item := range items {
		predictions = append(predictions, PredictRestock(item))
	}
	return predictions
}

func riskFor(reorderQty, reorderPoint int) domain.RiskLevel {
	switch {
	case reorderQty == 0:
		return domain.RiskLow
	case reorderQty > reorderPoint:
		return domain.RiskHigh
	default:
		return domain.RiskMedium
	}
}
