package advisor

import (
	"context"
	"fmt"
	"strings"

	"mortgage_engine/pkg/core/loan"
)

const summarySystemPrompt = "You are a mortgage advisor for a home-search product. " +
	"Explain payment breakdowns in plain language for first-time buyers. " +
	"Use the exact figures provided; never invent numbers. " +
	"Respond in Markdown with a short heading and at most three paragraphs."

// Advisor turns engine outputs into plain-language summaries via the
// configured LLM provider.
type Advisor struct {
	mgr *Manager
}

func NewAdvisor(mgr *Manager) *Advisor {
	return &Advisor{mgr: mgr}
}

// BuildBreakdownPrompt renders a breakdown as a prompt. Exported so the
// streaming handler can reuse the same wording.
func BuildBreakdownPrompt(inputs loan.LoanInputs, breakdown loan.LoanBreakdown) string {
	var sb strings.Builder
	sb.WriteString("Explain this monthly mortgage payment to the buyer:\n")
	fmt.Fprintf(&sb, "- Home price: $%.0f with %.1f%% down\n", inputs.HomePrice, inputs.DownPaymentPercent)
	fmt.Fprintf(&sb, "- Loan: $%.0f at %.3f%% for %d years\n", breakdown.LoanAmount, inputs.AnnualInterestRatePercent, inputs.TermYears)
	fmt.Fprintf(&sb, "- Principal & interest: $%.2f/mo\n", breakdown.MonthlyPrincipalAndInterest)
	fmt.Fprintf(&sb, "- Property taxes: $%.2f/mo\n", breakdown.MonthlyTaxes)
	fmt.Fprintf(&sb, "- Insurance: $%.2f/mo, HOA: $%.2f/mo\n", breakdown.MonthlyInsurance, breakdown.MonthlyAssociationFee)
	fmt.Fprintf(&sb, "- Total: $%.2f/mo\n", breakdown.TotalMonthlyPayment)
	return sb.String()
}

// BuildAffordabilityPrompt renders an affordability result as a prompt
func BuildAffordabilityPrompt(inputs loan.AffordabilityInputs, result loan.AffordabilityResult) string {
	var sb strings.Builder
	sb.WriteString("Explain this affordability estimate to the buyer:\n")
	fmt.Fprintf(&sb, "- Monthly income: $%.0f, target DTI: %.0f%%, other debts: $%.0f/mo\n",
		inputs.MonthlyIncome, inputs.TargetDebtToIncomePct, inputs.OtherMonthlyDebts)
	fmt.Fprintf(&sb, "- Housing budget: $%.2f/mo\n", result.MaxHousingBudget)
	fmt.Fprintf(&sb, "- Max principal & interest: $%.2f/mo\n", result.MaxPrincipalAndInterest)
	fmt.Fprintf(&sb, "- Max loan: $%.0f, max home price: $%.0f\n", result.MaxLoanAmount, result.MaxHomePrice)
	if result.MaxHomePrice == 0 {
		sb.WriteString("- Note: the budget does not support a loan under these constraints; say so gently and suggest what to adjust\n")
	}
	return sb.String()
}

// SummarizeBreakdown asks the configured model for a Markdown explanation of
// a payment breakdown.
func (a *Advisor) SummarizeBreakdown(ctx context.Context, inputs loan.LoanInputs, breakdown loan.LoanBreakdown) (string, error) {
	prompt := BuildBreakdownPrompt(inputs, breakdown)
	summary, err := a.mgr.ExecutePrompt(ctx, "summary", prompt, summarySystemPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return summary, nil
}

// SummarizeAffordability asks the configured model for a Markdown explanation
// of an affordability estimate.
func (a *Advisor) SummarizeAffordability(ctx context.Context, inputs loan.AffordabilityInputs, result loan.AffordabilityResult) (string, error) {
	prompt := BuildAffordabilityPrompt(inputs, result)
	summary, err := a.mgr.ExecutePrompt(ctx, "affordability_summary", prompt, summarySystemPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return summary, nil
}
