package service

import (
	"math"

	"tds-assistant/domain"
)

const (
	// Health & education cess applied on the summed slab tax.
	CessRate = 0.04

	MonthsPerYear = 12

	Max80CDeduction     = 150_000.0 // section 80C
	MaxNPSDeduction     = 50_000.0  // 80CCD(1B)
	HealthInsuranceFrom = 500_000.0
	HomeLoanFrom        = 1_000_000.0

	ExcellentEfficiency = 80.0
	GoodEfficiency      = 60.0

	BaselineTemperature = 25.0 // °C
	TemperatureCoeff    = 0.02 // conductivity drift per °C
	DefaultWaterFactor  = 0.64
	MaxConductivity     = 200_000.0
	MinWaterTemperature = -5.0
	MaxWaterTemperature = 100.0
	MaxConversionFactor = 1.0

	MaxMessageLength = 4000
	DefaultGreeting  = "Hello! I'm your AI TDS assistant. How can I help you today?"
	WaterGreeting    = "Hello! I'm your water quality assistant. Ask me anything about TDS, conductivity or drinking water."
)

// IncomeTaxBands are the new-regime slabs for FY 2023-24.
var IncomeTaxBands = []domain.BandRule{
	{Label: "Up to ₹3,00,000", Capacity: 300_000, Rate: 0},
	{Label: "₹3,00,001 - ₹6,00,000", Capacity: 300_000, Rate: 0.05},
	{Label: "₹6,00,001 - ₹9,00,000", Capacity: 300_000, Rate: 0.10},
	{Label: "₹9,00,001 - ₹12,00,000", Capacity: 300_000, Rate: 0.15},
	{Label: "₹12,00,001 - ₹15,00,000", Capacity: 300_000, Rate: 0.20},
	{Label: "Above ₹15,00,000", Capacity: math.MaxFloat64, Rate: 0.30},
}

var WaterTypes = []domain.WaterType{
	{Name: "Natural Freshwater", Factor: 0.64},
	{Name: "Drinking Water", Factor: 0.67},
	{Name: "Brackish Water", Factor: 0.8},
	{Name: "Seawater", Factor: 0.9},
}
