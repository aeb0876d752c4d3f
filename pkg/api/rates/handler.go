package rates

import (
	"encoding/json"
	"fmt"
	"net/http"

	corerates "mortgage_engine/pkg/core/rates"
)

// Handler serves the current rate table and the sweep presets for the charts
type Handler struct {
	fetcher *corerates.Fetcher
	presets []corerates.SweepPreset
}

func NewHandler(fetcher *corerates.Fetcher, presets []corerates.SweepPreset) *Handler {
	return &Handler{fetcher: fetcher, presets: presets}
}

func applyCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// HandleCurrent returns the latest parsed average-rate table
func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quotes, err := h.fetcher.Current()
	if err != nil {
		fmt.Printf("[RATES] Fetch failed: %v\n", err)
		http.Error(w, "rate data unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotes)
}

// HandlePresets returns the configured sensitivity sweep presets
func (h *Handler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.presets)
}
