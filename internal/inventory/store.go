package inventory

import (
	"fmt"
	"sync"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
)

// Store holds the authoritative in-memory catalog. Records are never added
// or removed after construction; all mutation goes through Mutate.
type Store struct {
	mu      sync.RWMutex
	items   []domain.InventoryItem
	index   map[string]int
	version uint64
}

// NewStore builds a store seeded with items in the given order.
func NewStore(items []domain.InventoryItem) (*Store, error) {
	s := &Store{
		items: make([]domain.InventoryItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[item.SKU]; dup {
			return nil, fmt.Errorf("%w: duplicate sku %s", domain.ErrInvalidItem, item.SKU)
		}
		s.index[item.SKU] = len(s.items)
		s.items = append(s.items, item)
	}

	return s, nil
}

// Lookup returns a copy of the record for sku.
func (s *Store) Lookup(sku string) (domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[sku]
	if !ok {
		return domain.InventoryItem{}, fmt.Errorf("%w: %s", domain.ErrNotFound, sku)
	}
	return s.items[idx], nil
}

// List returns a snapshot of all records in catalog order.
func (s *Store) List() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot returns all records together with the version they belong to.
func (s *Store) Snapshot() ([]domain.InventoryItem, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.InventoryItem, len(s.items))
	copy(out, s.items)
	return out, s.version
}

// Mutate applies fn to the stored record for sku while holding the write lock
// and returns the post-mutation copy. fn must not call back into the store.
func (s *Store) Mutate(sku string, fn func(item *domain.InventoryItem) error) (domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[sku]
	if !ok {
		return domain.InventoryItem{}, fmt.Errorf("%w: %s", domain.ErrNotFound, sku)
	}

	// Work on a copy so a failing fn leaves the record untouched.
	next := s.items[idx]
	if err := fn(&next); err != nil {
		return domain.InventoryItem{}, err
	}
	s.items[idx] = next
	s.version++

	return next, nil
}

// Version is bumped on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Len returns the number of records in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
