package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
)

// Evaluate runs every rule against ctx in order and returns one message per
// fired rule. If any rule carries a value that cannot be read for its
// condition, the whole batch is rejected and no messages are returned.
func Evaluate(rules []domain.Rule, ctx domain.RuleContext) ([]string, error) {
	fired := make([]string, 0, len(rules))

	for i, rule := range rules {
		ok, err := matches(i, rule, ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			fired = append(fired, fmt.Sprintf("%s: %s", ctx.SKU, rule.Action))
		}
	}

	return fired, nil
}

// Validate checks every rule without evaluating it.
func Validate(rules []domain.Rule) error {
	for i, rule := range rules {
		switch rule.Condition {
		case domain.ConditionStockBelow, domain.ConditionAnomalyAbove:
			if _, err := parseThreshold(i, rule); err != nil {
				return err
			}
		case domain.ConditionEventType:
		default:
			return fmt.Errorf("rule %d: %w: %q", i, domain.ErrUnknownRuleCondition, rule.Condition)
		}
	}
	return nil
}

func matches(index int, rule domain.Rule, ctx domain.RuleContext) (bool, error) {
	switch rule.Condition {
	case domain.ConditionStockBelow:
		threshold, err := parseThreshold(index, rule)
		if err != nil {
			return false, err
		}
		// Thresholds truncate toward zero; compared as floats so huge values cannot overflow int.
		return float64(ctx.Stock) < math.Trunc(threshold), nil
	case domain.ConditionAnomalyAbove:
		threshold, err := parseThreshold(index, rule)
		if err != nil {
			return false, err
		}
		return ctx.AnomalyScore > threshold, nil
	case domain.ConditionEventType:
		// Case-insensitive, whitespace significant.
		return strings.ToLower(rule.Value) == strings.ToLower(ctx.EventType), nil
	default:
		return false, fmt.Errorf("rule %d: %w: %q", index, domain.ErrUnknownRuleCondition, rule.Condition)
	}
}

func parseThreshold(index int, rule domain.Rule) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(rule.Value), 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = strconv.ErrRange
	}
	if err != nil {
		return 0, &domain.InvalidRuleValueError{
			Index:     index,
			Condition: rule.Condition,
			Value:     rule.Value,
			Err:       err,
		}
	}
	return v, nil
}
