package service

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount turns free-text numeric input into a non-negative finite number.
// Anything it cannot use becomes 0.
func ParseAmount(text string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseAmountOr is ParseAmount with a default for empty input.
func ParseAmountOr(text string, def float64) float64 {
	if strings.TrimSpace(text) == "" {
		return def
	}
	return ParseAmount(text)
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func isUsable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
