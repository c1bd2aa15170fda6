package domain

import (
	"fmt"
	"strings"
)

// Validate checks the bounds an InventoryItem must satisfy. NaN fails every
// range check.
func (i InventoryItem) Validate() error {
	switch {
	case strings.TrimSpace(i.SKU) == "":
		return fmt.Errorf("%w: sku is required", ErrInvalidItem)
	case i.Stock < 0:
		return fmt.Errorf("%w: %s stock %d < 0", ErrInvalidItem, i.SKU, i.Stock)
	case i.ReorderPoint < 0:
		return fmt.Errorf("%w: %s reorder_point %d < 0", ErrInvalidItem, i.SKU, i.ReorderPoint)
	case !(i.AvgDailySales >= 0):
		return fmt.Errorf("%w: %s avg_daily_sales %.2f < 0", ErrInvalidItem, i.SKU, i.AvgDailySales)
	case i.LeadTimeDays < 1:
		return fmt.Errorf("%w: %s lead_time_days %d < 1", ErrInvalidItem, i.SKU, i.LeadTimeDays)
	case !(i.Volatility >= 0 && i.Volatility <= 1):
		return fmt.Errorf("%w: %s volatility %.2f outside [0,1]", ErrInvalidItem, i.SKU, i.Volatility)
	case !(i.AnomalyScore >= 0 && i.AnomalyScore <= 1):
		return fmt.Errorf("%w: %s anomaly_score %.2f outside [0,1]", ErrInvalidItem, i.SKU, i.AnomalyScore)
	}
	return nil
}
