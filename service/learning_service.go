package service

import "tds-assistant/domain"

type LearningService struct {
	topics []domain.InfoTopic
}

func NewLearningService(v Variant) *LearningService {
	if v == VariantWaterQuality {
		return &LearningService{topics: waterTopics}
	}
	return &LearningService{topics: incomeTaxTopics}
}

// Topics returns a copy of the informational topics for the variant.
func (s *LearningService) Topics() []domain.InfoTopic {
	out := make([]domain.InfoTopic, len(s.topics))
	for i, t := range s.topics {
		out[i] = domain.InfoTopic{
			Title:       t.Title,
			Description: t.Description,
			Details:     append([]string(nil), t.Details...),
		}
	}
	return out
}

var incomeTaxTopics = []domain.InfoTopic{
	{
		Title:       "What is TDS?",
		Description: "Tax Deducted at Source - A mechanism to collect income tax",
		Details: []string{
			"TDS is tax collected by the government at the source of income",
			"Employers deduct TDS from salary before paying employees",
			"Helps in regular tax collection throughout the year",
			"Reduces tax evasion and ensures timely revenue for government",
		},
	},
	{
		Title:       "Income Tax Slabs (New Regime)",
		Description: "Current tax rates for FY 2023-24",
		Details: []string{
			"Up to ₹3,00,000: Nil",
			"₹3,00,001 - ₹6,00,000: 5%",
			"₹6,00,001 - ₹9,00,000: 10%",
			"₹9,00,001 - ₹12,00,000: 15%",
			"₹12,00,001 - ₹15,00,000: 20%",
			"Above ₹15,00,000: 30%",
			"Plus 4% Health & Education Cess on total tax",
		},
	},
	{
		Title:       "Section 80C Deductions",
		Description: "Tax-saving investments up to ₹1.5 lakh",
		Details: []string{
			"Public Provident Fund (PPF)",
			"Employee Provident Fund (EPF)",
			"Equity Linked Savings Scheme (ELSS)",
			"National Savings Certificate (NSC)",
			"Life Insurance Premium",
			"5-year Fixed Deposits",
			"Principal repayment of Home Loan",
			"Tuition fees for children",
		},
	},
	{
		Title:       "Other Deductions",
		Description: "Additional tax-saving options",
		Details: []string{
			"80D: Health Insurance Premium (up to ₹25,000)",
			"80E: Education Loan Interest",
			"80G: Donations to Charitable Institutions",
			"80TTA: Interest on Savings Account (up to ₹10,000)",
			"24(b): Home Loan Interest (up to ₹2,00,000)",
			"80CCD(1B): NPS contribution (up to ₹50,000)",
		},
	},
	{
		Title:       "How to Save Tax?",
		Description: "Smart tax planning strategies",
		Details: []string{
			"Maximize 80C deductions (₹1.5 lakh)",
			"Invest in NPS for additional ₹50,000 deduction",
			"Take health insurance for family members",
			"Claim HRA if you're paying rent",
			"Keep medical bills and receipts",
			"Plan investments at the start of financial year",
			"Consider tax-saving fixed deposits",
			"Donate to eligible charitable institutions",
		},
	},
}

var waterTopics = []domain.InfoTopic{
	{
		Title:       "What is TDS?",
		Description: "Total Dissolved Solids in water",
		Details: []string{
			"TDS is the total amount of minerals, salts and metals dissolved in water",
			"It is measured in parts per million (ppm), equal to mg/L",
			"Calcium, magnesium, sodium, bicarbonates and chlorides are common contributors",
			"TDS alone does not tell whether water is contaminated",
		},
	},
	{
		Title:       "Measuring with Conductivity",
		Description: "How meters estimate TDS",
		Details: []string{
			"Meters measure electrical conductivity (µS/cm)",
			"TDS = conductivity × conversion factor",
			"Natural freshwater 0.64, drinking water 0.67, brackish 0.8, seawater 0.9",
			"Conductivity rises about 2% per °C, so readings are normalised to 25°C",
		},
	},
	{
		Title:       "Drinking Water Standards",
		Description: "WHO and BIS guidance",
		Details: []string{
			"Below 50 ppm: too pure, may lack essential minerals",
			"50-150 ppm: excellent",
			"150-300 ppm: good",
			"300-500 ppm: fair",
			"500-600 ppm: WHO acceptable limit",
			"Above 900 ppm: not recommended for drinking",
		},
	},
	{
		Title:       "Other Parameters",
		Description: "pH, turbidity and salinity",
		Details: []string{
			"pH 6.5-8.5 is normal for drinking water",
			"Turbidity below 1 NTU is clear, below 5 NTU acceptable",
			"Salinity below 0.5 ppt is fresh, up to 30 ppt brackish",
		},
	},
	{
		Title:       "Treating High TDS",
		Description: "Ways to reduce dissolved solids",
		Details: []string{
			"Reverse osmosis removes 90-99% of dissolved solids",
			"Distillation removes nearly all minerals",
			"Deionization resins suit laboratory use",
			"Carbon filters improve taste but barely change TDS",
		},
	},
}
