package loan

import (
	"math"
)

// AffordabilityInputs parameters for backing out a maximum home price from income.
// ProvisionalHomePrice seeds the property-tax estimate: taxes depend on the final
// price, which is what we are solving for, so the calculator supplies its current
// price instead of iterating to a fixed point.
type AffordabilityInputs struct {
	MonthlyIncome            float64 `json:"monthly_income"`
	TargetDebtToIncomePct    float64 `json:"target_debt_to_income_percent"` // 0-100
	OtherMonthlyDebts        float64 `json:"other_monthly_debts"`
	ProvisionalHomePrice     float64 `json:"provisional_home_price"`
	DownPaymentPercent       float64 `json:"down_payment_percent"`
	AnnualInterestRatePct    float64 `json:"annual_interest_rate_percent"`
	TermYears                int     `json:"term_years"`
	AnnualPropertyTaxPercent float64 `json:"annual_property_tax_percent"`
	MonthlyInsurance         float64 `json:"monthly_insurance"`
	MonthlyAssociationFee    float64 `json:"monthly_association_fee"`
}

// AffordabilityResult holds the inverse-amortization outputs
type AffordabilityResult struct {
	MaxHousingBudget        float64 `json:"max_housing_budget"`
	MaxPrincipalAndInterest float64 `json:"max_principal_and_interest"`
	MaxLoanAmount           float64 `json:"max_loan_amount"`
	MaxHomePrice            float64 `json:"max_home_price"`
}

// ComputeAffordability inverts the amortization formula: given income, a target
// DTI ratio, and existing debts, it produces the largest supportable payment and
// the home price that payment carries. Every intermediate clamps at zero, so a
// household that cannot afford any home gets zeros back, never negatives.
func ComputeAffordability(input AffordabilityInputs) AffordabilityResult {
	// 1. Housing budget from DTI
	budget := input.MonthlyIncome*input.TargetDebtToIncomePct/100 - input.OtherMonthlyDebts
	if budget < 0 {
		budget = 0
	}

	// 2. Strip escrow items to isolate P&I headroom
	taxEstimate := (input.ProvisionalHomePrice * input.AnnualPropertyTaxPercent / 100) / 12
	maxPI := budget - (taxEstimate + input.MonthlyInsurance + input.MonthlyAssociationFee)
	if maxPI < 0 {
		maxPI = 0
	}

	// 3. Invert PMT to principal
	r := (input.AnnualInterestRatePct / 100) / 12
	n := float64(input.TermYears * 12)

	var maxLoan float64
	if n > 0 {
		if r == 0 {
			maxLoan = maxPI * n
		} else {
			growth := math.Pow(1+r, n)
			denom := (r * growth) / (growth - 1)
			if denom > 0 {
				maxLoan = maxPI / denom
			}
		}
	}

	// 4. Gross up by down payment to a purchase price
	// A 100% down payment means no loan backs the price; report zero rather than divide by zero.
	var maxPrice float64
	if input.DownPaymentPercent < 100 {
		maxPrice = maxLoan / (1 - input.DownPaymentPercent/100)
	}

	return AffordabilityResult{
		MaxHousingBudget:        budget,
		MaxPrincipalAndInterest: maxPI,
		MaxLoanAmount:           maxLoan,
		MaxHomePrice:            maxPrice,
	}
}
