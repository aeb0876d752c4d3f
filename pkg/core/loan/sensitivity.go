package loan

// SweepVariable selects which LoanInputs field a sensitivity sweep varies
type SweepVariable string

const (
	SweepRate        SweepVariable = "rate"
	SweepDownPayment SweepVariable = "downPayment"
)

// Projection selects which payment figure a sensitivity point reports
type Projection string

const (
	ProjectPrincipalAndInterest Projection = "principal_and_interest"
	ProjectTotalPayment         Projection = "total_payment"
)

// SensitivityPoint pairs a swept input value with the resulting monthly payment
type SensitivityPoint struct {
	Value   float64 `json:"value"`
	Payment float64 `json:"payment"`
}

// ComputeSensitivitySeries substitutes each sweep value into the base inputs and
// recomputes the breakdown, projecting a single payment figure per point. The
// series is recomputed from scratch on every call; there is no shared state, so
// chart redraws can rerun it freely.
func ComputeSensitivitySeries(base LoanInputs, sweep SweepVariable, values []float64, project Projection) []SensitivityPoint {
	points := make([]SensitivityPoint, 0, len(values))

	for _, v := range values {
		inputs := base
		switch sweep {
		case SweepRate:
			inputs.AnnualInterestRatePercent = v
		case SweepDownPayment:
			inputs.DownPaymentPercent = v
		default:
			// Unknown variable: sweep nothing, series reflects the base inputs
		}

		breakdown := ComputeLoanBreakdown(inputs)

		payment := breakdown.MonthlyPrincipalAndInterest
		if project == ProjectTotalPayment {
			payment = breakdown.TotalMonthlyPayment
		}

		points = append(points, SensitivityPoint{Value: v, Payment: payment})
	}

	return points
}
