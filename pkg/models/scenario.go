package models

import (
	"time"

	"mortgage_engine/pkg/core/loan"
)

// Scenario is a saved calculator state: the full input record plus a label,
// so a returning user can reload the exact quote they were looking at.
type Scenario struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Inputs    loan.LoanInputs `json:"inputs"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
