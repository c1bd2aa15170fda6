package events

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
)

func sampleItem() domain.InventoryItem {
	return domain.InventoryItem{
		SKU:           "SKU-1002",
		Name:          "Thermal Label Roll Pack",
		Stock:         16,
		ReorderPoint:  30,
		AvgDailySales: 9,
		LeadTimeDays:  4,
		Volatility:    0.24,
		AnomalyScore:  0.14,
	}
}

func TestApply_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		eventType domain.EventType
		delta     int
		wantStock int
		wantScore float64
	}{
		{name: "sale", eventType: domain.EventSale, delta: 4, wantStock: 12, wantScore: 0.16},
		{name: "sale_negative_delta_uses_magnitude", eventType: domain.EventSale, delta: -4, wantStock: 12, wantScore: 0.16},
		{name: "sale_clamps_stock", eventType: domain.EventSale, delta: 100, wantStock: 0, wantScore: 0.16},
		{name: "restock", eventType: domain.EventRestock, delta: 10, wantStock: 26, wantScore: 0.11},
		{name: "restock_negative_delta_uses_magnitude", eventType: domain.EventRestock, delta: -10, wantStock: 26, wantScore: 0.11},
		{name: "correction_up", eventType: domain.EventCorrection, delta: 5, wantStock: 21, wantScore: 0.14},
		{name: "correction_down", eventType: domain.EventCorrection, delta: -5, wantStock: 11, wantScore: 0.14},
		{name: "correction_clamps_stock", eventType: domain.EventCorrection, delta: -50, wantStock: 0, wantScore: 0.14},
		{name: "anomaly", eventType: domain.EventAnomaly, delta: 99, wantStock: 16, wantScore: 0.26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := sampleItem()
			if err := Apply(&item, tt.eventType, tt.delta); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.Stock != tt.wantStock {
				t.Errorf("expected stock %d, got %d", tt.wantStock, item.Stock)
			}
			if item.AnomalyScore != tt.wantScore {
				t.Errorf("expected anomaly score %v, got %v", tt.wantScore, item.AnomalyScore)
			}
		})
	}
}

func TestApply_ExtremeDeltasSaturate(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		eventType domain.EventType
		delta     int
		wantStock int
	}{
		{name: "restock_max", stock: 16, eventType: domain.EventRestock, delta: math.MaxInt, wantStock: math.MaxInt},
		{name: "restock_min", stock: 16, eventType: domain.EventRestock, delta: math.MinInt, wantStock: math.MaxInt},
		{name: "restock_at_ceiling", stock: math.MaxInt, eventType: domain.EventRestock, delta: 1, wantStock: math.MaxInt},
		{name: "restock_just_below_ceiling", stock: math.MaxInt - 5, eventType: domain.EventRestock, delta: 5, wantStock: math.MaxInt},
		{name: "correction_max", stock: 16, eventType: domain.EventCorrection, delta: math.MaxInt, wantStock: math.MaxInt},
		{name: "correction_min", stock: 16, eventType: domain.EventCorrection, delta: math.MinInt, wantStock: 0},
		{name: "sale_max", stock: 16, eventType: domain.EventSale, delta: math.MaxInt, wantStock: 0},
		{name: "sale_min", stock: math.MaxInt, eventType: domain.EventSale, delta: math.MinInt, wantStock: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := sampleItem()
			item.Stock = tt.stock
			if err := Apply(&item, tt.eventType, tt.delta); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.Stock != tt.wantStock {
				t.Errorf("expected stock %d, got %d", tt.wantStock, item.Stock)
			}
		})
	}
}

func TestApply_RepeatedLargeRestocksStayAtCeiling(t *testing.T) {
	item := sampleItem()
	for i := 0; i < 3; i++ {
		if err := Apply(&item, domain.EventRestock, math.MaxInt/2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Stock < 0 {
			t.Fatalf("restock %d: stock wrapped to %d", i, item.Stock)
		}
	}
	if item.Stock != math.MaxInt {
		t.Errorf("expected stock %d, got %d", math.MaxInt, item.Stock)
	}
}

// A zero-delta sale is not a no-op: stock is unchanged but the score still moves.
func TestApply_ZeroDeltaSaleStillRaisesScore(t *testing.T) {
	item := sampleItem()
	if err := Apply(&item, domain.EventSale, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Stock != 16 {
		t.Errorf("expected stock 16, got %d", item.Stock)
	}
	if item.AnomalyScore != 0.16 {
		t.Errorf("expected anomaly score 0.16, got %v", item.AnomalyScore)
	}
}

func TestApply_RepeatedAnomaliesConvergeToOne(t *testing.T) {
	item := sampleItem()
	for i := 0; i < 20; i++ {
		if err := Apply(&item, domain.EventAnomaly, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.AnomalyScore > 1.0 {
			t.Fatalf("anomaly score exceeded 1.0: %v", item.AnomalyScore)
		}
	}
	if item.AnomalyScore != 1.0 {
		t.Errorf("expected anomaly score 1.0, got %v", item.AnomalyScore)
	}
}

func TestApply_RestockClampsScoreAtZero(t *testing.T) {
	item := sampleItem()
	item.AnomalyScore = 0.01
	if err := Apply(&item, domain.EventRestock, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.AnomalyScore != 0 {
		t.Errorf("expected anomaly score 0, got %v", item.AnomalyScore)
	}
}

func TestApply_InvariantsHoldOverMixedSequence(t *testing.T) {
	item := sampleItem()
	sequence := []struct {
		eventType domain.EventType
		delta     int
	}{
		{domain.EventSale, 7}, {domain.EventAnomaly, 0}, {domain.EventCorrection, -40},
		{domain.EventRestock, 3}, {domain.EventSale, 9}, {domain.EventAnomaly, 0},
		{domain.EventRestock, 0}, {domain.EventRestock, 0}, {domain.EventRestock, 0},
		{domain.EventRestock, 0}, {domain.EventRestock, 0}, {domain.EventRestock, 0},
		{domain.EventRestock, 0}, {domain.EventRestock, 0}, {domain.EventRestock, 0},
		{domain.EventRestock, 0}, {domain.EventRestock, 0}, {domain.EventRestock, 0},
	}

	for i, step := range sequence {
		if err := Apply(&item, step.eventType, step.delta); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if item.Stock < 0 {
			t.Fatalf("step %d: stock went negative: %d", i, item.Stock)
		}
		if item.AnomalyScore < 0 || item.AnomalyScore > 1 {
			t.Fatalf("step %d: anomaly score out of range: %v", i, item.AnomalyScore)
		}
	}
}

func TestApply_UnknownEventType(t *testing.T) {
	item := sampleItem()
	err := Apply(&item, domain.EventType("adjustment"), 5)
	if !errors.Is(err, domain.ErrUnknownEventType) {
		t.Errorf("expected ErrUnknownEventType, got %v", err)
	}
	if item != sampleItem() {
		t.Errorf("item must be unchanged, got %+v", item)
	}
}

func TestAlerts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(item *domain.InventoryItem)
		want   []string
	}{
		{
			name:   "none",
			mutate: func(item *domain.InventoryItem) { item.Stock = 31 },
			want:   []string{},
		},
		{
			name:   "low_stock_at_reorder_point",
			mutate: func(item *domain.InventoryItem) { item.Stock = 30 },
			want:   []string{"SKU-1002 low stock"},
		},
		{
			name: "anomaly_only",
			mutate: func(item *domain.InventoryItem) {
				item.Stock = 50
				item.AnomalyScore = 0.2
			},
			want: []string{"SKU-1002 anomaly score high"},
		},
		{
			name:   "both_in_order",
			mutate: func(item *domain.InventoryItem) { item.AnomalyScore = 0.5 },
			want:   []string{"SKU-1002 low stock", "SKU-1002 anomaly score high"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := sampleItem()
			tt.mutate(&item)
			got := Alerts(item)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAlerts_SaleDropsStockBelowReorderPoint(t *testing.T) {
	item := domain.InventoryItem{
		SKU: "SKU-1003", Stock: 85, ReorderPoint: 40,
		AvgDailySales: 11, LeadTimeDays: 7, Volatility: 0.13, AnomalyScore: 0.05,
	}

	if err := Apply(&item, domain.EventSale, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Alerts(item)
	want := []string{"SKU-1003 low stock"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// Three sales take 0.14 to exactly 0.2, which must trip the anomaly alert.
func TestAlerts_ScoreStepsReachThresholdExactly(t *testing.T) {
	item := sampleItem()
	item.Stock = 500
	for i := 0; i < 3; i++ {
		if err := Apply(&item, domain.EventSale, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if item.AnomalyScore != 0.2 {
		t.Fatalf("expected anomaly score 0.2, got %v", item.AnomalyScore)
	}
	got := Alerts(item)
	want := []string{"SKU-1002 anomaly score high"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
