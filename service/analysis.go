package service

import "tds-assistant/domain"

// EfficiencyScore is 100 minus the effective rate in percent, clamped to [0, 100].
func EfficiencyScore(result domain.CalculationResult) float64 {
	if result.Input.Primary == 0 {
		return 0
	}
	effectiveRate := result.GrandTotal / result.Input.Primary * 100
	score := 100 - effectiveRate
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func EfficiencyRating(score float64) string {
	switch {
	case score >= ExcellentEfficiency:
		return "Excellent tax planning!"
	case score >= GoodEfficiency:
		return "Good, but can improve"
	default:
		return "Needs optimization"
	}
}

// Recommendations returns advisory tips in a fixed order.
func Recommendations(input domain.CalculationInput) []string {
	recs := []string{}

	if input.Adjustment1 < Max80CDeduction {
		recs = append(recs, "Maximize 80C deductions up to ₹1.5 lakh by investing in PPF, ELSS, or EPF")
	}
	if input.Adjustment2 < MaxNPSDeduction {
		recs = append(recs, "Consider NPS investment for additional ₹50,000 deduction under 80CCD(1B)")
	}
	if input.Primary > HealthInsuranceFrom {
		recs = append(recs, "Explore health insurance premiums under 80D for up to ₹25,000 deduction")
	}
	if input.Primary > HomeLoanFrom {
		recs = append(recs, "Consider home loan for interest deduction up to ₹2 lakh under Section 24(b)")
	}

	recs = append(recs,
		"Keep medical bills and receipts for reimbursement claims",
		"Plan investments at the start of financial year for better returns",
	)
	return recs
}
