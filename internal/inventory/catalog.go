package inventory

import (
	"fmt"
	"os"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultCatalog returns the built-in seed catalog.
func DefaultCatalog() []domain.InventoryItem {
	return []domain.InventoryItem{
		{
			SKU:           "SKU-1001",
			Name:          "Wireless Barcode Scanner",
			Stock:         42,
			ReorderPoint:  25,
			AvgDailySales: 7,
			LeadTimeDays:  5,
			Volatility:    0.18,
			AnomalyScore:  0.09,
		},
		{
			SKU:           "SKU-1002",
			Name:          "Thermal Label Roll Pack",
			Stock:         16,
			ReorderPoint:  30,
			AvgDailySales: 9,
			LeadTimeDays:  4,
			Volatility:    0.24,
			AnomalyScore:  0.14,
		},
		{
			SKU:           "SKU-1003",
			Name:          "Packing Tape Case",
			Stock:         85,
			ReorderPoint:  40,
			AvgDailySales: 11,
			LeadTimeDays:  7,
			Volatility:    0.13,
			AnomalyScore:  0.05,
		},
	}
}

type catalogFile struct {
	Items []domain.InventoryItem `yaml:"items"`
}

// LoadCatalog reads a YAML catalog of the form `items: [...]`.
// An empty path yields the built-in catalog.
func LoadCatalog(path string) ([]domain.InventoryItem, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(raw []byte) ([]domain.InventoryItem, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("%w: catalog has no items", domain.ErrInvalidItem)
	}

	for _, item := range doc.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return doc.Items, nil
}
