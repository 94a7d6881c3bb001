package service

import (
	"fmt"
	"strings"
)

type Variant string

const (
	VariantIncomeTax    Variant = "income_tax"
	VariantWaterQuality Variant = "water_quality"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantIncomeTax, "":
		return VariantIncomeTax, nil
	case VariantWaterQuality:
		return VariantWaterQuality, nil
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

func (v Variant) Greeting() string {
	if v == VariantWaterQuality {
		return WaterGreeting
	}
	return DefaultGreeting
}
