package inventory

import (
	"errors"
	"sync"
	"testing"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(DefaultCatalog())
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return store
}

func TestStore_ListKeepsCatalogOrder(t *testing.T) {
	store := newTestStore(t)

	items := store.List()
	want := []string{"SKU-1001", "SKU-1002", "SKU-1003"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, sku := range want {
		if items[i].SKU != sku {
			t.Errorf("position %d: expected %s, got %s", i, sku, items[i].SKU)
		}
	}
}

func TestStore_ListReturnsSnapshot(t *testing.T) {
	store := newTestStore(t)

	items := store.List()
	items[0].Stock = 0

	got, err := store.Lookup("SKU-1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Stock != 42 {
		t.Errorf("expected stored stock 42, got %d", got.Stock)
	}
}

func TestStore_LookupNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Lookup("SKU-9999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_MutateIsVisibleToLaterReads(t *testing.T) {
	store := newTestStore(t)

	updated, err := store.Mutate("SKU-1002", func(item *domain.InventoryItem) error {
		item.Stock = 3
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Stock != 3 {
		t.Errorf("expected returned stock 3, got %d", updated.Stock)
	}

	got, _ := store.Lookup("SKU-1002")
	if got.Stock != 3 {
		t.Errorf("expected stored stock 3, got %d", got.Stock)
	}
	if store.Version() != 1 {
		t.Errorf("expected version 1, got %d", store.Version())
	}
}

func TestStore_MutateErrorLeavesRecordUntouched(t *testing.T) {
	store := newTestStore(t)
	boom := errors.New("boom")

	_, err := store.Mutate("SKU-1001", func(item *domain.InventoryItem) error {
		item.Stock = 0
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := store.Lookup("SKU-1001")
	if got.Stock != 42 {
		t.Errorf("expected stock 42, got %d", got.Stock)
	}
	if store.Version() != 0 {
		t.Errorf("expected version 0, got %d", store.Version())
	}
}

func TestStore_MutateNotFound(t *testing.T) {
	store := newTestStore(t)

	called := false
	_, err := store.Mutate("SKU-9999", func(item *domain.InventoryItem) error {
		called = true
		return nil
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if called {
		t.Error("mutation must not run for a missing sku")
	}
}

func TestStore_ConcurrentMutations(t *testing.T) {
	store := newTestStore(t)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Mutate("SKU-1003", func(item *domain.InventoryItem) error {
				item.Stock++
				return nil
			})
			_ = store.List()
		}()
	}
	wg.Wait()

	got, _ := store.Lookup("SKU-1003")
	if got.Stock != 85+workers {
		t.Errorf("expected stock %d, got %d", 85+workers, got.Stock)
	}
	if store.Version() != workers {
		t.Errorf("expected version %d, got %d", workers, store.Version())
	}
}

func TestNewStore_RejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.InventoryItem
	}{
		{
			name:  "negative_stock",
			items: []domain.InventoryItem{{SKU: "A", Stock: -1, LeadTimeDays: 1}},
		},
		{
			name:  "zero_lead_time",
			items: []domain.InventoryItem{{SKU: "A", LeadTimeDays: 0}},
		},
		{
			name:  "volatility_above_one",
			items: []domain.InventoryItem{{SKU: "A", LeadTimeDays: 1, Volatility: 1.5}},
		},
		{
			name: "duplicate_sku",
			items: []domain.InventoryItem{
				{SKU: "A", LeadTimeDays: 1},
				{SKU: "A", LeadTimeDays: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.items)
			if !errors.Is(err, domain.ErrInvalidItem) {
				t.Errorf("expected ErrInvalidItem, got %v", err)
			}
		})
	}
}

func TestStore_SnapshotCarriesVersion(t *testing.T) {
	store := newTestStore(t)

	_, _ = store.Mutate("SKU-1001", func(item *domain.InventoryItem) error {
		item.Stock = 1
		return nil
	})

	items, version := store.Snapshot()
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}
	if items[0].Stock != 1 {
		t.Errorf("expected stock 1 in snapshot, got %d", items[0].Stock)
	}
}
