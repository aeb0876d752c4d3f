package e2e_test

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	apiaffordability "mortgage_engine/pkg/api/affordability"
	apiloan "mortgage_engine/pkg/api/loan"
	apiscenario "mortgage_engine/pkg/api/scenario"
	"mortgage_engine/pkg/core/cache"
	"mortgage_engine/pkg/core/loan"
	"mortgage_engine/pkg/core/store"
)

// newTestServer wires the calculator and scenario handlers the same way
// cmd/api does, with in-memory cache and file-backed scenario storage.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	quotes := cache.NewQuoteCache(cache.NewMemoryCache())
	loanHandler := apiloan.NewHandler(quotes)
	affordabilityHandler := apiaffordability.NewHandler()
	scenarioHandler := apiscenario.NewHandler(store.NewScenarioStore(nil, t.TempDir()))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/loan/breakdown", loanHandler.HandleBreakdown)
	mux.HandleFunc("/api/loan/sensitivity", loanHandler.HandleSensitivity)
	mux.HandleFunc("/api/affordability", affordabilityHandler.HandleAffordability)
	mux.HandleFunc("/api/scenario/save", scenarioHandler.HandleSave)
	mux.HandleFunc("/api/scenario/get", scenarioHandler.HandleGet)
	mux.HandleFunc("/api/scenario/list", scenarioHandler.HandleList)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload interface{}, out interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

// Full quote flow: breakdown, save as scenario, reload, recompute identically,
// then sweep rates around the quote.
func TestE2E_QuoteFlow(t *testing.T) {
	srv := newTestServer(t)

	inputs := loan.LoanInputs{
		HomePrice:                 600000,
		DownPaymentPercent:        20,
		AnnualInterestRatePercent: 6.5,
		TermYears:                 30,
		AnnualPropertyTaxPercent:  0.9,
		MonthlyInsurance:          120,
	}

	// 1. Compute the breakdown over HTTP
	var breakdown loan.LoanBreakdown
	resp := postJSON(t, srv.URL+"/api/loan/breakdown", inputs, &breakdown)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("breakdown status: %d", resp.StatusCode)
	}
	if breakdown.LoanAmount != 480000 {
		t.Errorf("loan amount = %.2f, want 480000", breakdown.LoanAmount)
	}
	if math.Abs(breakdown.TotalMonthlyPayment-3604.72) > 0.5 {
		t.Errorf("total payment = %.2f, want ~3604.72", breakdown.TotalMonthlyPayment)
	}

	// 2. Save the inputs as a named scenario
	var saved struct {
		ID string `json:"id"`
	}
	resp = postJSON(t, srv.URL+"/api/scenario/save", map[string]interface{}{
		"label":  "Starter home",
		"inputs": inputs,
	}, &saved)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status: %d", resp.StatusCode)
	}
	if saved.ID == "" {
		t.Fatal("save returned empty id")
	}

	// 3. Reload and recompute: stored inputs must produce the same quote
	getResp, err := http.Get(srv.URL + "/api/scenario/get?id=" + saved.ID)
	if err != nil {
		t.Fatalf("GET scenario: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %d", getResp.StatusCode)
	}
	var scenario struct {
		Inputs loan.LoanInputs `json:"inputs"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&scenario); err != nil {
		t.Fatalf("decode scenario: %v", err)
	}

	var reloaded loan.LoanBreakdown
	postJSON(t, srv.URL+"/api/loan/breakdown", scenario.Inputs, &reloaded)
	if reloaded != breakdown {
		t.Errorf("reloaded breakdown differs:\n got %+v\nwant %+v", reloaded, breakdown)
	}

	// 4. Rate sweep around the quote
	var sweep apiloan.SensitivityResponse
	resp = postJSON(t, srv.URL+"/api/loan/sensitivity", map[string]interface{}{
		"base":     inputs,
		"variable": "rate",
		"values":   []float64{5.5, 6.5, 7.5},
	}, &sweep)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sensitivity status: %d", resp.StatusCode)
	}
	if len(sweep.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(sweep.Points))
	}
	if math.Abs(sweep.Points[1].Payment-breakdown.MonthlyPrincipalAndInterest) > 0.01 {
		t.Errorf("sweep at base rate %.2f != breakdown P&I %.2f",
			sweep.Points[1].Payment, breakdown.MonthlyPrincipalAndInterest)
	}
	if sweep.Points[0].Payment >= sweep.Points[2].Payment {
		t.Errorf("payments not increasing with rate: %+v", sweep.Points)
	}
}

// Affordability over HTTP must agree with the budget math and with the
// forward calculator run on its own output.
func TestE2E_AffordabilityFlow(t *testing.T) {
	srv := newTestServer(t)

	inputs := loan.AffordabilityInputs{
		MonthlyIncome:            9000,
		TargetDebtToIncomePct:    36,
		OtherMonthlyDebts:        500,
		ProvisionalHomePrice:     600000,
		DownPaymentPercent:       20,
		AnnualInterestRatePct:    6.5,
		TermYears:                30,
		AnnualPropertyTaxPercent: 0.9,
		MonthlyInsurance:         120,
	}

	var result loan.AffordabilityResult
	resp := postJSON(t, srv.URL+"/api/affordability", inputs, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("affordability status: %d", resp.StatusCode)
	}

	if math.Abs(result.MaxHousingBudget-2740) > 0.01 {
		t.Errorf("budget = %.2f, want 2740", result.MaxHousingBudget)
	}

	// Run the forward calculator on the affordability output
	var forward loan.LoanBreakdown
	postJSON(t, srv.URL+"/api/loan/breakdown", loan.LoanInputs{
		HomePrice:                 result.MaxHomePrice,
		DownPaymentPercent:        inputs.DownPaymentPercent,
		AnnualInterestRatePercent: inputs.AnnualInterestRatePct,
		TermYears:                 inputs.TermYears,
		MonthlyInsurance:          inputs.MonthlyInsurance,
	}, &forward)

	if math.Abs(forward.MonthlyPrincipalAndInterest-result.MaxPrincipalAndInterest) > 0.01 {
		t.Errorf("forward P&I %.2f != max P&I %.2f",
			forward.MonthlyPrincipalAndInterest, result.MaxPrincipalAndInterest)
	}
}

// Scenario list must reflect saves made through the API.
func TestE2E_ScenarioList(t *testing.T) {
	srv := newTestServer(t)

	for _, label := range []string{"First", "Second"} {
		resp := postJSON(t, srv.URL+"/api/scenario/save", map[string]interface{}{
			"label":  label,
			"inputs": loan.LoanInputs{HomePrice: 300000, TermYears: 15},
		}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("save %q status: %d", label, resp.StatusCode)
		}
	}

	resp, err := http.Get(srv.URL + "/api/scenario/list")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	defer resp.Body.Close()

	var scenarios []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&scenarios); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(scenarios) != 2 {
		t.Errorf("expected 2 scenarios, got %d", len(scenarios))
	}
}
