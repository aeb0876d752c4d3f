package main

import (
	"fmt"

	"mortgage_engine/pkg/core/loan"
)

// Developer harness: prints the full payment table for a reference quote so
// changes to the engine can be eyeballed against a spreadsheet.
func main() {
	inputs := loan.LoanInputs{
		HomePrice:                 600000,
		DownPaymentPercent:        20,
		AnnualInterestRatePercent: 6.5,
		TermYears:                 30,
		AnnualPropertyTaxPercent:  0.9,
		MonthlyInsurance:          120,
		MonthlyAssociationFee:     0,
	}

	breakdown := loan.ComputeLoanBreakdown(inputs)

	fmt.Println("====================================================================")
	fmt.Println("                 MONTHLY PAYMENT BREAKDOWN")
	fmt.Println("====================================================================")
	pRow := func(label string, val float64) {
		fmt.Printf("%-35s | %15.2f\n", label, val)
	}
	pRow("Home Price", inputs.HomePrice)
	pRow("Loan Amount", breakdown.LoanAmount)
	pRow("Principal & Interest /mo", breakdown.MonthlyPrincipalAndInterest)
	pRow("Property Taxes /mo", breakdown.MonthlyTaxes)
	pRow("Insurance /mo", breakdown.MonthlyInsurance)
	pRow("HOA /mo", breakdown.MonthlyAssociationFee)
	fmt.Println("--------------------------------------------------------------------")
	pRow("Total /mo", breakdown.TotalMonthlyPayment)

	// Rate sensitivity around the quote
	fmt.Println()
	fmt.Println("Rate sensitivity (P&I):")
	series := loan.ComputeSensitivitySeries(inputs, loan.SweepRate,
		[]float64{5.5, 6.0, 6.5, 7.0, 7.5}, loan.ProjectPrincipalAndInterest)
	for _, p := range series {
		fmt.Printf("  %5.2f%% -> %10.2f\n", p.Value, p.Payment)
	}

	// Inverse check: afford the payment we just computed
	fmt.Println()
	fmt.Println("Affordability cross-check:")
	afford := loan.ComputeAffordability(loan.AffordabilityInputs{
		MonthlyIncome:            9000,
		TargetDebtToIncomePct:    36,
		OtherMonthlyDebts:        500,
		ProvisionalHomePrice:     inputs.HomePrice,
		DownPaymentPercent:       inputs.DownPaymentPercent,
		AnnualInterestRatePct:    inputs.AnnualInterestRatePercent,
		TermYears:                inputs.TermYears,
		AnnualPropertyTaxPercent: inputs.AnnualPropertyTaxPercent,
		MonthlyInsurance:         inputs.MonthlyInsurance,
	})
	pRow("Housing Budget /mo", afford.MaxHousingBudget)
	pRow("Max P&I /mo", afford.MaxPrincipalAndInterest)
	pRow("Max Loan", afford.MaxLoanAmount)
	pRow("Max Home Price", afford.MaxHomePrice)
}
