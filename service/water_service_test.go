package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tds-assistant/domain"
)

func waterInput(ec, temp, factor float64, correction bool) domain.WaterInput {
	return domain.WaterInput{
		CalculationInput: domain.CalculationInput{
			Primary:     ec,
			Adjustment1: temp,
			Adjustment2: factor,
		},
		TemperatureCorrection: correction,
	}
}

func TestMeasure_BaselineTemperature(t *testing.T) {
	svc := NewWaterService(zap.NewNop())

	result, err := svc.Measure(waterInput(500, 25, 0.64, true))
	require.NoError(t, err)

	assert.InDelta(t, 500, result.CompensatedConductivity, 1e-9)
	assert.InDelta(t, 320, result.TDS, 1e-9)
	assert.Equal(t, "Fair", result.Quality.Label)
}

func TestMeasure_TemperatureCorrection(t *testing.T) {
	svc := NewWaterService(zap.NewNop())

	corrected, err := svc.Measure(waterInput(500, 30, 0.64, true))
	require.NoError(t, err)
	assert.InDelta(t, 454.55, corrected.CompensatedConductivity, 1e-9)
	assert.InDelta(t, 290.91, corrected.TDS, 1e-9)
	assert.Equal(t, "Good", corrected.Quality.Label)

	raw, err := svc.Measure(waterInput(500, 30, 0.64, false))
	require.NoError(t, err)
	assert.InDelta(t, 320, raw.TDS, 1e-9)
}

func TestMeasure_Defaults(t *testing.T) {
	svc := NewWaterService(zap.NewNop())

	result, err := svc.Measure(waterInput(1000, 0, 0, true))
	require.NoError(t, err)

	assert.Equal(t, BaselineTemperature, result.Temperature)
	assert.Equal(t, DefaultWaterFactor, result.Factor)
	assert.InDelta(t, 640, result.TDS, 1e-9)
	assert.Equal(t, "Poor", result.Quality.Label)
}

func TestMeasure_AdvancedParameters(t *testing.T) {
	svc := NewWaterService(zap.NewNop())
	ph, turbidity, salinity := 9.1, 0.4, 12.0

	input := waterInput(200, 25, 0.67, true)
	input.PH = &ph
	input.Turbidity = &turbidity
	input.Salinity = &salinity

	result, err := svc.Measure(input)
	require.NoError(t, err)

	assert.Equal(t, "Alkaline", result.PHStatus)
	assert.Equal(t, "Clear", result.TurbidityStatus)
	assert.Equal(t, "Brackish", result.SalinityStatus)
}

func TestMeasure_RejectsInvalidReadings(t *testing.T) {
	svc := NewWaterService(zap.NewNop())

	for name, input := range map[string]domain.WaterInput{
		"negative conductivity": waterInput(-1, 25, 0.64, true),
		"NaN conductivity":      waterInput(math.NaN(), 25, 0.64, true),
		"boiling":               waterInput(500, 120, 0.64, true),
		"factor above one":      waterInput(500, 25, 1.5, true),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Measure(input)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestClassifyTDS(t *testing.T) {
	tests := []struct {
		ppm  float64
		want string
	}{
		{0, "Too Pure"},
		{49.99, "Too Pure"},
		{50, "Excellent"},
		{150, "Excellent"},
		{150.01, "Good"},
		{300, "Good"},
		{500, "Fair"},
		{600, "Acceptable"},
		{900, "Poor"},
		{1200, "Very Poor"},
		{1200.5, "Unacceptable"},
		{50_000, "Unacceptable"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTDS(tt.ppm).Label, "ppm %v", tt.ppm)
	}
}

func TestClassifyOtherParameters(t *testing.T) {
	assert.Equal(t, "Acidic", ClassifyPH(6.4))
	assert.Equal(t, "Normal", ClassifyPH(7))
	assert.Equal(t, "Normal", ClassifyPH(8.5))
	assert.Equal(t, "Good", ClassifyTurbidity(1))
	assert.Equal(t, "Cloudy", ClassifyTurbidity(5))
	assert.Equal(t, "Fresh", ClassifySalinity(0.2))
	assert.Equal(t, "Saline", ClassifySalinity(35))
}

func TestWaterTypeFactor(t *testing.T) {
	f, ok := WaterTypeFactor("seawater")
	assert.True(t, ok)
	assert.Equal(t, 0.9, f)

	_, ok = WaterTypeFactor("lemonade")
	assert.False(t, ok)
}
