package domain

type WaterType struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// WaterInput reuses the generic three-field input:
// Primary is conductivity (µS/cm), Adjustment1 temperature (°C), Adjustment2 the
// conductivity-to-TDS factor.
type WaterInput struct {
	CalculationInput
	TemperatureCorrection bool     `json:"temperature_correction"`
	PH                    *float64 `json:"ph,omitempty"`
	Turbidity             *float64 `json:"turbidity,omitempty"`
	Salinity              *float64 `json:"salinity,omitempty"`
}

type QualityRating struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
}

type WaterResult struct {
	Input                   WaterInput    `json:"input"`
	Temperature             float64       `json:"temperature"`
	Factor                  float64       `json:"factor"`
	CompensatedConductivity float64       `json:"compensated_conductivity"`
	TDS                     float64       `json:"tds_ppm"`
	Quality                 QualityRating `json:"quality"`
	PHStatus                string        `json:"ph_status,omitempty"`
	TurbidityStatus         string        `json:"turbidity_status,omitempty"`
	SalinityStatus          string        `json:"salinity_status,omitempty"`
}

type WaterAnalysis struct {
	Result   WaterResult `json:"result"`
	Analysis string      `json:"analysis"`
}
