package service

import (
	"errors"
	"fmt"
	"math"

	"tds-assistant/domain"
)

// Engine applies an ordered, immutable band rule set to an adjusted base.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rules         []domain.BandRule
	surchargeRate float64
}

// NewEngine validates the rule set once; Compute relies on these checks.
func NewEngine(rules []domain.BandRule, surchargeRate float64) (*Engine, error) {
	if len(rules) == 0 {
		return nil, errors.New("engine: empty band rule set")
	}
	for i, rule := range rules {
		if math.IsNaN(rule.Capacity) || rule.Capacity < 0 {
			return nil, fmt.Errorf("engine: band %q has invalid capacity %v", rule.Label, rule.Capacity)
		}
		if math.IsNaN(rule.Rate) || math.IsInf(rule.Rate, 0) || rule.Rate < 0 {
			return nil, fmt.Errorf("engine: band %q has invalid rate %v", rule.Label, rule.Rate)
		}
		if i == len(rules)-1 && rule.Capacity < math.MaxFloat64 {
			return nil, fmt.Errorf("engine: last band %q must be unbounded", rule.Label)
		}
	}
	if math.IsNaN(surchargeRate) || math.IsInf(surchargeRate, 0) || surchargeRate < 0 {
		return nil, fmt.Errorf("engine: invalid surcharge rate %v", surchargeRate)
	}

	owned := make([]domain.BandRule, len(rules))
	copy(owned, rules)
	return &Engine{rules: owned, surchargeRate: surchargeRate}, nil
}

// NewIncomeTaxEngine returns the engine for the income-tax slabs plus cess.
func NewIncomeTaxEngine() *Engine {
	e, err := NewEngine(IncomeTaxBands, CessRate)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) Rules() []domain.BandRule {
	out := make([]domain.BandRule, len(e.rules))
	copy(out, e.rules)
	return out
}

func (e *Engine) SurchargeRate() float64 { return e.surchargeRate }

// Compute expects non-negative finite inputs; callers reject anything else.
func (e *Engine) Compute(input domain.CalculationInput) domain.CalculationResult {
	adjusted := math.Max(0, input.Primary-(input.Adjustment1+input.Adjustment2))

	breakdown := make([]domain.BandEntry, 0, len(e.rules))
	remaining := adjusted
	bandTotal := 0.0

	for _, rule := range e.rules {
		if remaining <= 0 {
			break
		}

		absorbed := math.Min(remaining, rule.Capacity)
		produced := absorbed * rule.Rate

		if absorbed > 0 {
			breakdown = append(breakdown, domain.BandEntry{
				Label:    rule.Label,
				Absorbed: absorbed,
				Rate:     rule.Rate,
				Produced: produced,
			})
			bandTotal += produced
		}

		remaining -= absorbed
	}

	surcharge := bandTotal * e.surchargeRate
	grandTotal := bandTotal + surcharge

	return domain.CalculationResult{
		Input:         input,
		AdjustedBase:  adjusted,
		Breakdown:     breakdown,
		BandTotal:     bandTotal,
		Surcharge:     surcharge,
		GrandTotal:    grandTotal,
		MonthlyFigure: grandTotal / MonthsPerYear,
	}
}
