package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a SKU is not present in the inventory store.
	ErrNotFound = errors.New("sku not found")
	// ErrUnknownEventType is returned for event kinds outside sale/restock/correction/anomaly.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrUnknownRuleCondition is returned for rule conditions the evaluator does not know.
	ErrUnknownRuleCondition = errors.New("unknown rule condition")
	// ErrInvalidRuleValue matches every *InvalidRuleValueError.
	ErrInvalidRuleValue = errors.New("invalid rule value")
	// ErrInvalidItem is returned when catalog input violates the item bounds.
	ErrInvalidItem = errors.New("invalid inventory item")
)

// InvalidRuleValueError reports a rule whose value cannot be parsed for its condition.
type InvalidRuleValueError struct {
	Index     int
	Condition RuleCondition
	Value     string
	Err       error
}

func (e *InvalidRuleValueError) Error() string {
	return fmt.Sprintf("rule %d: %s value %q is not a number", e.Index, e.Condition, e.Value)
}

func (e *InvalidRuleValueError) Unwrap() error {
	return e.Err
}

func (e *InvalidRuleValueError) Is(target error) bool {
	return target == ErrInvalidRuleValue
}
