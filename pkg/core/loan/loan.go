package loan

import (
	"math"
)

// LoanInputs parameters for a fixed-rate mortgage payment calculation.
// All percent fields are expressed as whole percentages (6.5 means 6.5%).
type LoanInputs struct {
	HomePrice                 float64 `json:"home_price"`
	DownPaymentPercent        float64 `json:"down_payment_percent"` // 0-100; >=100 clamps loan to zero
	AnnualInterestRatePercent float64 `json:"annual_interest_rate_percent"`
	TermYears                 int     `json:"term_years"`
	AnnualPropertyTaxPercent  float64 `json:"annual_property_tax_percent"`
	MonthlyInsurance          float64 `json:"monthly_insurance"`
	MonthlyAssociationFee     float64 `json:"monthly_association_fee"`
}

// LoanBreakdown holds the monthly cost components derived from LoanInputs
type LoanBreakdown struct {
	LoanAmount                  float64 `json:"loan_amount"`
	MonthlyPrincipalAndInterest float64 `json:"monthly_principal_and_interest"`
	MonthlyTaxes                float64 `json:"monthly_taxes"`
	MonthlyInsurance            float64 `json:"monthly_insurance"`
	MonthlyAssociationFee       float64 `json:"monthly_association_fee"`
	TotalMonthlyPayment         float64 `json:"total_monthly_payment"`
}

// ComputeLoanBreakdown computes the fully amortizing monthly payment and its components.
// Out-of-domain values (down payment >= 100%) clamp to zero rather than erroring:
// the calculator recomputes on every keystroke and transient bad input is expected.
// No rounding is applied; display formatting is the caller's concern.
func ComputeLoanBreakdown(input LoanInputs) LoanBreakdown {
	// 1. Loan principal after down payment
	loanAmount := input.HomePrice * (1 - input.DownPaymentPercent/100)
	if loanAmount < 0 {
		loanAmount = 0
	}

	// 2. Periodic rate and installment count
	monthlyRate := (input.AnnualInterestRatePercent / 100) / 12
	n := float64(input.TermYears * 12)

	// 3. Principal & Interest
	// PMT = L * [ r(1+r)^n / ((1+r)^n - 1) ]
	// Zero rate degenerates to straight-line (avoids 0/0 in the standard formula)
	var pi float64
	if n > 0 {
		if monthlyRate == 0 {
			pi = loanAmount / n
		} else {
			growth := math.Pow(1+monthlyRate, n)
			pi = loanAmount * (monthlyRate * growth) / (growth - 1)
		}
	}

	// 4. Escrowed extras
	monthlyTaxes := (input.HomePrice * input.AnnualPropertyTaxPercent / 100) / 12

	// 5. Total
	total := pi + monthlyTaxes + input.MonthlyInsurance + input.MonthlyAssociationFee

	return LoanBreakdown{
		LoanAmount:                  loanAmount,
		MonthlyPrincipalAndInterest: pi,
		MonthlyTaxes:                monthlyTaxes,
		MonthlyInsurance:            input.MonthlyInsurance,
		MonthlyAssociationFee:       input.MonthlyAssociationFee,
		TotalMonthlyPayment:         total,
	}
}
