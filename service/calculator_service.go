package service

import (
	"fmt"

	"go.uber.org/zap"

	"tds-assistant/domain"
)

type CalculatorService struct {
	engine *Engine
	logger *zap.Logger
}

// NewCalculatorService creates a CalculatorService backed by the given engine.
func NewCalculatorService(engine *Engine, logger *zap.Logger) *CalculatorService {
	return &CalculatorService{engine: engine, logger: logger}
}

// Calculate validates the input, runs the engine and attaches the derived metrics.
func (s *CalculatorService) Calculate(
	input domain.CalculationInput,
) (domain.CalculationReport, error) {

	if !isUsable(input.Primary) {
		return domain.CalculationReport{}, fmt.Errorf("%w: primary amount must be a non-negative number", ErrInvalidInput)
	}
	if !isUsable(input.Adjustment1) {
		return domain.CalculationReport{}, fmt.Errorf("%w: first adjustment must be a non-negative number", ErrInvalidInput)
	}
	if !isUsable(input.Adjustment2) {
		return domain.CalculationReport{}, fmt.Errorf("%w: second adjustment must be a non-negative number", ErrInvalidInput)
	}

	result := s.engine.Compute(input)
	score := EfficiencyScore(result)

	s.logger.Debug("calculation completed",
		zap.Float64("adjusted_base", result.AdjustedBase),
		zap.Int("bands", len(result.Breakdown)),
		zap.Float64("grand_total", result.GrandTotal),
	)

	return domain.CalculationReport{
		Result:           result,
		EfficiencyScore:  score,
		EfficiencyRating: EfficiencyRating(score),
		Recommendations:  Recommendations(input),
	}, nil
}

// CalculateText parses free-text fields the way the calculator form does.
func (s *CalculatorService) CalculateText(primary, adj1, adj2 string) (domain.CalculationReport, error) {
	return s.Calculate(domain.CalculationInput{
		Primary:     ParseAmount(primary),
		Adjustment1: ParseAmount(adj1),
		Adjustment2: ParseAmount(adj2),
	})
}
