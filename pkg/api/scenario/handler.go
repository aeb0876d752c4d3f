package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	coreloan "mortgage_engine/pkg/core/loan"
	"mortgage_engine/pkg/core/store"
	"mortgage_engine/pkg/core/utils"
	"mortgage_engine/pkg/models"
)

// Handler persists and recalls saved calculator scenarios
type Handler struct {
	store *store.ScenarioStore
}

func NewHandler(s *store.ScenarioStore) *Handler {
	return &Handler{store: s}
}

func applyCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// SaveRequest names a scenario and carries its full input record
type SaveRequest struct {
	ID     string              `json:"id"` // Blank on first save
	Label  string              `json:"label"`
	Inputs coreloan.LoanInputs `json:"inputs"`
}

// HandleSave upserts a scenario and echoes it back with its assigned ID
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Label == "" {
		http.Error(w, "label is required", http.StatusBadRequest)
		return
	}

	scenario := &models.Scenario{ID: req.ID, Label: req.Label, Inputs: req.Inputs}
	id, err := h.store.Save(r.Context(), scenario)
	if err != nil {
		fmt.Printf("[SCENARIO] Save failed: %v\n", err)
		http.Error(w, "failed to save scenario", http.StatusInternalServerError)
		return
	}
	fmt.Printf("[SCENARIO] Saved %q (%s)\n", req.Label, id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenario)
}

// HandleList returns all saved scenarios, newest first
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scenarios, err := h.store.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list scenarios", http.StatusInternalServerError)
		return
	}
	if scenarios == nil {
		scenarios = []*models.Scenario{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenarios)
}

// HandleGet returns one scenario by ?id=
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	scenario, err := h.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load scenario", http.StatusInternalServerError)
		return
	}
	if scenario == nil {
		http.Error(w, fmt.Sprintf("scenario not found: %s", id), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenario)
}

// HandleDelete removes a scenario by ?id=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		fmt.Printf("[SCENARIO] Delete failed: %v\n", err)
		http.Error(w, "failed to delete scenario", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted", "id": id})
}

// HandleImport accepts a pasted scenario export. Exports get hand-edited,
// truncated by chat apps, or rewritten with single quotes, so the body goes
// through the repair ladder (JSON -> json-repair -> hjson) before saving.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var req SaveRequest
	if _, err := utils.SmartParse(string(body), &req); err != nil {
		http.Error(w, "could not recover a scenario from the pasted text", http.StatusUnprocessableEntity)
		return
	}
	if req.Label == "" {
		req.Label = "Imported scenario"
	}

	// Imports always create a fresh scenario; a stale ID from the export
	// must not overwrite whatever it pointed at.
	scenario := &models.Scenario{Label: req.Label, Inputs: req.Inputs}
	if _, err := h.store.Save(r.Context(), scenario); err != nil {
		http.Error(w, "failed to save imported scenario", http.StatusInternalServerError)
		return
	}
	fmt.Printf("[SCENARIO] Imported %q (%s)\n", scenario.Label, scenario.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenario)
}
