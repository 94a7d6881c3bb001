package service

import (
	"context"
	"fmt"
	"strings"
)

// Responder turns a user message into an assistant reply. Implementations never fail.
type Responder interface {
	Respond(ctx context.Context, text string) string
}

// KeywordRule matches when every group has at least one keyword contained in the
// lower-cased message.
type KeywordRule struct {
	AllOf [][]string
	Reply string
}

func (r KeywordRule) matches(lower string) bool {
	for _, group := range r.AllOf {
		found := false
		for _, kw := range group {
			if strings.Contains(lower, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(r.AllOf) > 0
}

type KeywordResponder struct {
	rules    []KeywordRule
	fallback string
}

func NewKeywordResponder(rules []KeywordRule, fallback string) *KeywordResponder {
	return &KeywordResponder{rules: rules, fallback: fallback}
}

// NewVariantResponder returns the canned-answer table for the given product variant.
func NewVariantResponder(v Variant) *KeywordResponder {
	if v == VariantWaterQuality {
		return NewKeywordResponder(waterRules, waterFallback)
	}
	return NewKeywordResponder(incomeTaxRules, incomeTaxFallback)
}

// Respond returns the first matching canned reply. The fallback may contain a %s
// verb, which receives the question as typed.
func (r *KeywordResponder) Respond(_ context.Context, text string) string {
	lower := strings.ToLower(text)
	for _, rule := range r.rules {
		if rule.matches(lower) {
			return rule.Reply
		}
	}
	if strings.Contains(r.fallback, "%s") {
		return fmt.Sprintf(r.fallback, text)
	}
	return r.fallback
}

func anyOf(words ...string) []string { return words }

var incomeTaxRules = []KeywordRule{
	{
		AllOf: [][]string{anyOf("tds"), anyOf("what")},
		Reply: "TDS (Tax Deducted at Source) is a mechanism where tax is collected at the source of income. Your employer deducts TDS from your salary based on your income and investments before paying you.",
	},
	{
		AllOf: [][]string{anyOf("save"), anyOf("tax")},
		Reply: "You can save tax by:\n1. Investing in 80C options (up to ₹1.5L)\n2. Additional NPS investment (₹50K)\n3. Health insurance premiums\n4. Home loan interest\n5. Education loan interest\n\nWould you like details on any specific option?",
	},
	{
		AllOf: [][]string{anyOf("80c")},
		Reply: "Section 80C allows deductions up to ₹1.5 lakh. Popular options include:\n• PPF (Public Provident Fund)\n• ELSS Mutual Funds\n• EPF contributions\n• Life Insurance premiums\n• 5-year Fixed Deposits\n• NSC (National Savings Certificate)",
	},
	{
		AllOf: [][]string{anyOf("slab", "rate")},
		Reply: "Current tax slabs (New Regime):\n• Up to ₹3L: 0%\n• ₹3L-₹6L: 5%\n• ₹6L-₹9L: 10%\n• ₹9L-₹12L: 15%\n• ₹12L-₹15L: 20%\n• Above ₹15L: 30%\n\nPlus 4% cess on total tax.",
	},
	{
		AllOf: [][]string{anyOf("calculate")},
		Reply: "I can help you calculate your TDS! Please go to the Calculator tab and enter:\n1. Your annual gross income\n2. Deductions under 80C\n3. Other deductions\n\nI'll show you the exact tax breakdown and monthly TDS amount.",
	},
	{
		AllOf: [][]string{anyOf("nps")},
		Reply: "NPS (National Pension System) offers:\n• Additional ₹50,000 deduction under 80CCD(1B)\n• This is over and above the ₹1.5L limit of 80C\n• Long-term retirement savings\n• Market-linked returns\n• Tax benefits on maturity",
	},
	{
		AllOf: [][]string{anyOf("hra")},
		Reply: "HRA (House Rent Allowance) exemption is the minimum of:\n1. Actual HRA received\n2. 50% of salary (metro) or 40% (non-metro)\n3. Rent paid minus 10% of salary\n\nYou need rent receipts to claim this exemption.",
	},
	{
		AllOf: [][]string{anyOf("hello", "hi")},
		Reply: "Hello! I'm your AI TDS assistant. I can help you with:\n• Understanding TDS and tax slabs\n• Tax-saving investment options\n• Calculating your TDS\n• Optimizing your tax liability\n\nWhat would you like to know?",
	},
	{
		AllOf: [][]string{anyOf("thank")},
		Reply: "You're welcome! Feel free to ask if you have more questions about TDS or tax planning. I'm here to help!",
	},
}

const incomeTaxFallback = "I understand you're asking about: \"%s\"\n\nI can help you with:\n• TDS calculations and tax slabs\n• Section 80C and other deductions\n• Tax-saving investment options\n• HRA and other exemptions\n\nCould you please be more specific about what you'd like to know?"

var waterRules = []KeywordRule{
	{
		AllOf: [][]string{anyOf("tds"), anyOf("what")},
		Reply: "TDS (Total Dissolved Solids) is the amount of minerals, salts and metals dissolved in water, measured in ppm (mg/L). Meters estimate it from electrical conductivity multiplied by a conversion factor, usually between 0.5 and 0.9.",
	},
	{
		AllOf: [][]string{anyOf("safe", "drink", "potable")},
		Reply: "Drinking water guidance by TDS:\n• Below 50 ppm: very pure, may lack minerals\n• 50-150 ppm: excellent\n• 150-300 ppm: good\n• 300-500 ppm: fair, may affect taste\n• 500-600 ppm: WHO upper limit\n• Above 900 ppm: not recommended without treatment",
	},
	{
		AllOf: [][]string{anyOf("reduce", "lower", "filter", "osmosis", "purif")},
		Reply: "To lower TDS you can use:\n• Reverse osmosis (removes 90-99%)\n• Distillation\n• Deionization resins\n\nCarbon filters improve taste and odour but barely change TDS.",
	},
	{
		AllOf: [][]string{anyOf("conductivity", "µs", "us/cm")},
		Reply: "Electrical conductivity (µS/cm) rises with dissolved ions. TDS ≈ EC × factor: 0.64 for natural freshwater, 0.67 for drinking water, 0.8 for brackish water and 0.9 for seawater.",
	},
	{
		AllOf: [][]string{anyOf("temperature", "temp", "°c")},
		Reply: "Conductivity increases about 2% per °C. Readings are normalised to 25°C with EC25 = EC / (1 + 0.02 × (T − 25)) before converting to TDS.",
	},
	{
		AllOf: [][]string{anyOf("ph", "acid", "alkal")},
		Reply: "Drinking water pH should be between 6.5 and 8.5. Below 6.5 is acidic and can corrode pipes; above 8.5 is alkaline and may taste bitter.",
	},
	{
		AllOf: [][]string{anyOf("hello", "hi")},
		Reply: "Hello! I'm your water quality assistant. I can help you with:\n• Understanding TDS readings\n• Conductivity and temperature correction\n• Drinking water standards\n• Ways to treat your water\n\nWhat would you like to know?",
	},
	{
		AllOf: [][]string{anyOf("thank")},
		Reply: "You're welcome! Test your water regularly and feel free to ask more questions.",
	},
}

const waterFallback = "I understand you're asking about: \"%s\"\n\nI can help you with:\n• TDS readings and what they mean\n• Conductivity to TDS conversion\n• Drinking water standards\n• Water treatment options\n\nCould you please be more specific about what you'd like to know?"
