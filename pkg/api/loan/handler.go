package loan

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mortgage_engine/pkg/core/cache"
	coreloan "mortgage_engine/pkg/core/loan"
)

// Handler serves breakdown and sensitivity computations. Breakdowns are
// memoized through the quote cache; sensitivity series are cheap enough to
// recompute every time.
type Handler struct {
	quotes *cache.QuoteCache
}

func NewHandler(quotes *cache.QuoteCache) *Handler {
	return &Handler{quotes: quotes}
}

// applyCORS mirrors the headers the web calculator expects
func applyCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// HandleBreakdown computes the monthly payment breakdown for a quote
func (h *Handler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var inputs coreloan.LoanInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	breakdown, hit := h.quotes.Lookup(r.Context(), inputs)
	if !hit {
		breakdown = coreloan.ComputeLoanBreakdown(inputs)
		if err := h.quotes.Store(r.Context(), inputs, breakdown); err != nil {
			// Non-critical: the result is already in hand
			fmt.Printf("[WARNING] Failed to cache breakdown: %v\n", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(breakdown)
}

// SensitivityRequest sweeps one input across a range of values
type SensitivityRequest struct {
	Base       coreloan.LoanInputs    `json:"base"`
	Variable   coreloan.SweepVariable `json:"variable"`
	Values     []float64              `json:"values"`
	Projection coreloan.Projection    `json:"projection"`
}

// SensitivityResponse carries the chart series back to the UI
type SensitivityResponse struct {
	Variable coreloan.SweepVariable      `json:"variable"`
	Points   []coreloan.SensitivityPoint `json:"points"`
}

// HandleSensitivity computes a payment series for charting
func (h *Handler) HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Variable != coreloan.SweepRate && req.Variable != coreloan.SweepDownPayment {
		http.Error(w, fmt.Sprintf("unknown sweep variable: %s", req.Variable), http.StatusBadRequest)
		return
	}
	if len(req.Values) == 0 {
		http.Error(w, "no sweep values provided", http.StatusBadRequest)
		return
	}
	if req.Projection == "" {
		req.Projection = coreloan.ProjectPrincipalAndInterest
	}

	points := coreloan.ComputeSensitivitySeries(req.Base, req.Variable, req.Values, req.Projection)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SensitivityResponse{Variable: req.Variable, Points: points})
}
