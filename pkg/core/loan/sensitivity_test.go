package loan

import (
	"testing"
)

func TestSensitivityRateSweep(t *testing.T) {
	base := LoanInputs{
		HomePrice:                 500000,
		DownPaymentPercent:        20,
		AnnualInterestRatePercent: 6,
		TermYears:                 30,
	}
	values := []float64{4, 5, 6, 7, 8}

	series := ComputeSensitivitySeries(base, SweepRate, values, ProjectPrincipalAndInterest)

	if len(series) != len(values) {
		t.Fatalf("Expected %d points, got %d", len(values), len(series))
	}
	for i, p := range series {
		if p.Value != values[i] {
			t.Errorf("Point %d value %f != swept %f", i, p.Value, values[i])
		}
		// Each point must match an independent recomputation
		inputs := base
		inputs.AnnualInterestRatePercent = values[i]
		want := ComputeLoanBreakdown(inputs).MonthlyPrincipalAndInterest
		if p.Payment != want {
			t.Errorf("Point %d payment %f != recomputed %f", i, p.Payment, want)
		}
		if i > 0 && p.Payment <= series[i-1].Payment {
			t.Errorf("Rate sweep not increasing at point %d", i)
		}
	}
}

func TestSensitivityDownPaymentSweepTotalPayment(t *testing.T) {
	base := LoanInputs{
		HomePrice:                 500000,
		DownPaymentPercent:        20,
		AnnualInterestRatePercent: 6,
		TermYears:                 30,
		AnnualPropertyTaxPercent:  1,
		MonthlyInsurance:          100,
	}
	values := []float64{0, 10, 20, 30, 100}

	series := ComputeSensitivitySeries(base, SweepDownPayment, values, ProjectTotalPayment)

	for i := 1; i < len(series); i++ {
		if series[i].Payment >= series[i-1].Payment {
			t.Errorf("Down-payment sweep not decreasing at point %d", i)
		}
	}

	// 100% down still pays taxes + insurance
	last := series[len(series)-1]
	expected := 500000*0.01/12 + 100
	if last.Payment != expected {
		t.Errorf("Expected escrow-only payment %f at 100%% down, got %f", expected, last.Payment)
	}
}

func TestSensitivityRestartable(t *testing.T) {
	base := LoanInputs{HomePrice: 300000, TermYears: 30, AnnualInterestRatePercent: 5}
	values := []float64{3, 4, 5}

	first := ComputeSensitivitySeries(base, SweepRate, values, ProjectPrincipalAndInterest)
	second := ComputeSensitivitySeries(base, SweepRate, values, ProjectPrincipalAndInterest)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Series not deterministic at point %d", i)
		}
	}
}

func TestSensitivityEmptySweep(t *testing.T) {
	series := ComputeSensitivitySeries(LoanInputs{}, SweepRate, nil, ProjectTotalPayment)
	if len(series) != 0 {
		t.Errorf("Expected empty series, got %d points", len(series))
	}
}
