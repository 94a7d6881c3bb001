package service

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"tds-assistant/domain"
)

type qualityBand struct {
	upTo      float64
	inclusive bool
	rating    domain.QualityRating
}

// Ordered by threshold; the last band is unbounded.
var qualityBands = []qualityBand{
	{upTo: 50, rating: domain.QualityRating{Label: "Too Pure", Description: "May lack essential minerals", Progress: 0.15}},
	{upTo: 150, inclusive: true, rating: domain.QualityRating{Label: "Excellent", Description: "Ideal for drinking water", Progress: 0.3}},
	{upTo: 300, inclusive: true, rating: domain.QualityRating{Label: "Good", Description: "Acceptable for drinking", Progress: 0.5}},
	{upTo: 500, inclusive: true, rating: domain.QualityRating{Label: "Fair", Description: "May affect taste", Progress: 0.65}},
	{upTo: 600, inclusive: true, rating: domain.QualityRating{Label: "Acceptable", Description: "WHO limit for drinking", Progress: 0.75}},
	{upTo: 900, inclusive: true, rating: domain.QualityRating{Label: "Poor", Description: "Not ideal for drinking", Progress: 0.85}},
	{upTo: 1200, inclusive: true, rating: domain.QualityRating{Label: "Very Poor", Description: "Not recommended", Progress: 0.95}},
	{upTo: math.Inf(1), rating: domain.QualityRating{Label: "Unacceptable", Description: "Requires treatment", Progress: 1}},
}

type WaterService struct {
	logger *zap.Logger
}

func NewWaterService(logger *zap.Logger) *WaterService {
	return &WaterService{logger: logger}
}

// Measure converts a conductivity reading into a TDS estimate in ppm.
// A zero temperature means "not given" and uses the 25°C baseline; a zero factor
// uses the natural freshwater factor.
func (s *WaterService) Measure(input domain.WaterInput) (domain.WaterResult, error) {
	if !isUsable(input.Primary) || input.Primary > MaxConductivity {
		return domain.WaterResult{}, fmt.Errorf("%w: conductivity must be between 0 and %.0f µS/cm", ErrInvalidInput, MaxConductivity)
	}
	if math.IsNaN(input.Adjustment1) || input.Adjustment1 < MinWaterTemperature || input.Adjustment1 > MaxWaterTemperature {
		return domain.WaterResult{}, fmt.Errorf("%w: temperature must be between %.0f and %.0f °C", ErrInvalidInput, MinWaterTemperature, MaxWaterTemperature)
	}
	if !isUsable(input.Adjustment2) || input.Adjustment2 > MaxConversionFactor {
		return domain.WaterResult{}, fmt.Errorf("%w: conversion factor must be between 0 and %.1f", ErrInvalidInput, MaxConversionFactor)
	}

	temperature := input.Adjustment1
	if temperature == 0 {
		temperature = BaselineTemperature
	}
	factor := input.Adjustment2
	if factor == 0 {
		factor = DefaultWaterFactor
	}

	ec25 := input.Primary
	if input.TemperatureCorrection {
		denom := 1 + TemperatureCoeff*(temperature-BaselineTemperature)
		if denom > 0 {
			ec25 = input.Primary / denom
		}
	}
	tds := roundTo2Decimals(ec25 * factor)

	result := domain.WaterResult{
		Input:                   input,
		Temperature:             temperature,
		Factor:                  factor,
		CompensatedConductivity: roundTo2Decimals(ec25),
		TDS:                     tds,
		Quality:                 ClassifyTDS(tds),
	}
	if input.PH != nil {
		result.PHStatus = ClassifyPH(*input.PH)
	}
	if input.Turbidity != nil {
		result.TurbidityStatus = ClassifyTurbidity(*input.Turbidity)
	}
	if input.Salinity != nil {
		result.SalinityStatus = ClassifySalinity(*input.Salinity)
	}

	s.logger.Debug("water reading measured",
		zap.Float64("conductivity", input.Primary),
		zap.Float64("temperature", temperature),
		zap.Float64("tds_ppm", tds),
		zap.String("quality", result.Quality.Label),
	)
	return result, nil
}

func ClassifyTDS(ppm float64) domain.QualityRating {
	for _, band := range qualityBands {
		if ppm < band.upTo || (band.inclusive && ppm == band.upTo) {
			return band.rating
		}
	}
	return qualityBands[len(qualityBands)-1].rating
}

func ClassifyPH(ph float64) string {
	switch {
	case ph < 6.5:
		return "Acidic"
	case ph > 8.5:
		return "Alkaline"
	default:
		return "Normal"
	}
}

func ClassifyTurbidity(ntu float64) string {
	switch {
	case ntu < 1:
		return "Clear"
	case ntu < 5:
		return "Good"
	default:
		return "Cloudy"
	}
}

func ClassifySalinity(ppt float64) string {
	switch {
	case ppt < 0.5:
		return "Fresh"
	case ppt < 30:
		return "Brackish"
	default:
		return "Saline"
	}
}

// WaterTypeFactor looks up a named water type, case-insensitively.
func WaterTypeFactor(name string) (float64, bool) {
	for _, wt := range WaterTypes {
		if strings.EqualFold(wt.Name, strings.TrimSpace(name)) {
			return wt.Factor, true
		}
	}
	return 0, false
}
