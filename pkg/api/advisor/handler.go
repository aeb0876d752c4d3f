package advisor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	coreadvisor "mortgage_engine/pkg/core/advisor"
	coreloan "mortgage_engine/pkg/core/loan"
	"mortgage_engine/pkg/core/utils"
)

// Handler generates plain-language summaries of engine outputs
type Handler struct {
	advisor *coreadvisor.Advisor
}

func NewHandler(a *coreadvisor.Advisor) *Handler {
	return &Handler{advisor: a}
}

// SummaryResponse carries both the raw Markdown and pre-rendered HTML so the
// UI can pick either
type SummaryResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
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

func (h *Handler) respondSummary(w http.ResponseWriter, markdown string) {
	html, err := utils.RenderMarkdownHTML(markdown)
	if err != nil {
		// Markdown is still usable without the rendered copy
		fmt.Printf("[ADVISOR] Render failed: %v\n", err)
		html = ""
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SummaryResponse{Markdown: utils.CleanMarkdown(markdown), HTML: html})
}

// HandleSummary explains a payment breakdown
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
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

	breakdown := coreloan.ComputeLoanBreakdown(inputs)
	summary, err := h.advisor.SummarizeBreakdown(r.Context(), inputs, breakdown)
	if err != nil {
		fmt.Printf("[ADVISOR] Summary failed: %v\n", err)
		http.Error(w, "summary unavailable", http.StatusServiceUnavailable)
		return
	}

	h.respondSummary(w, summary)
}

// HandleAffordabilitySummary explains an affordability estimate
func (h *Handler) HandleAffordabilitySummary(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
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
	summary, err := h.advisor.SummarizeAffordability(r.Context(), inputs, result)
	if err != nil {
		fmt.Printf("[ADVISOR] Summary failed: %v\n", err)
		http.Error(w, "summary unavailable", http.StatusServiceUnavailable)
		return
	}

	h.respondSummary(w, summary)
}

// StreamEvent is one SSE chunk of a streamed summary
type StreamEvent struct {
	Status string `json:"status"` // "chunk", "done", "error"
	Text   string `json:"text,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// HandleSummaryStream streams a breakdown summary over SSE. EventSource only
// issues GETs, so the inputs arrive as query parameters.
func (h *Handler) HandleSummaryStream(w http.ResponseWriter, r *http.Request) {
	// SSE headers - must be set before any write
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	sendEvent := func(event StreamEvent) {
		data, _ := json.Marshal(event)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	inputs := parseInputsQuery(r)
	if inputs.HomePrice <= 0 || inputs.TermYears <= 0 {
		sendEvent(StreamEvent{Status: "error", Detail: "home_price and term_years are required"})
		return
	}

	agent, err := coreadvisor.NewStreamAgent(r.Context())
	if err != nil {
		sendEvent(StreamEvent{Status: "error", Detail: err.Error()})
		return
	}
	defer agent.Close()

	breakdown := coreloan.ComputeLoanBreakdown(inputs)
	prompt := coreadvisor.BuildBreakdownPrompt(inputs, breakdown)

	err = agent.GenerateStream(r.Context(), prompt, func(chunk string) error {
		sendEvent(StreamEvent{Status: "chunk", Text: chunk})
		return nil
	})
	if err != nil {
		sendEvent(StreamEvent{Status: "error", Detail: err.Error()})
		return
	}

	sendEvent(StreamEvent{Status: "done"})
}

func parseInputsQuery(r *http.Request) coreloan.LoanInputs {
	q := r.URL.Query()
	getF := func(key string) float64 {
		v, _ := strconv.ParseFloat(q.Get(key), 64)
		return v
	}

	termYears, _ := strconv.Atoi(q.Get("term_years"))

	return coreloan.LoanInputs{
		HomePrice:                 getF("home_price"),
		DownPaymentPercent:        getF("down_payment_percent"),
		AnnualInterestRatePercent: getF("annual_interest_rate_percent"),
		TermYears:                 termYears,
		AnnualPropertyTaxPercent:  getF("annual_property_tax_percent"),
		MonthlyInsurance:          getF("monthly_insurance"),
		MonthlyAssociationFee:     getF("monthly_association_fee"),
	}
}
