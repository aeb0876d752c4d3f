package affordability

import (
	"encoding/json"
	"net/http"

	coreloan "mortgage_engine/pkg/core/loan"
)

// Handler serves the inverse calculation: income in, maximum home price out
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) HandleAffordability(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var inputs coreloan.AffordabilityInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result := coreloan.ComputeAffordability(inputs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
