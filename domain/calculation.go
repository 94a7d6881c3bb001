package domain

type CalculationInput struct {
	Primary     float64 `json:"primary"`
	Adjustment1 float64 `json:"adjustment1"`
	Adjustment2 float64 `json:"adjustment2"`
}

// BandRule absorbs at most Capacity of the remaining base and applies Rate to it.
type BandRule struct {
	Label    string
	Capacity float64
	Rate     float64
}

type BandEntry struct {
	Label    string  `json:"label"`
	Absorbed float64 `json:"absorbed"`
	Rate     float64 `json:"rate"`
	Produced float64 `json:"produced"`
}

type CalculationResult struct {
	Input         CalculationInput `json:"input"`
	AdjustedBase  float64          `json:"adjusted_base"`
	Breakdown     []BandEntry      `json:"breakdown"`
	BandTotal     float64          `json:"band_total"`
	Surcharge     float64          `json:"surcharge"`
	GrandTotal    float64          `json:"grand_total"`
	MonthlyFigure float64          `json:"monthly_figure"`
}

type CalculationReport struct {
	Result           CalculationResult `json:"result"`
	EfficiencyScore  float64           `json:"efficiency_score"`
	EfficiencyRating string            `json:"efficiency_rating"`
	Recommendations  []string          `json:"recommendations"`
}
