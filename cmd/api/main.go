package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	apiadvisor "mortgage_engine/pkg/api/advisor"
	apiaffordability "mortgage_engine/pkg/api/affordability"
	apiloan "mortgage_engine/pkg/api/loan"
	"mortgage_engine/pkg/api/middleware"
	apirates "mortgage_engine/pkg/api/rates"
	apiscenario "mortgage_engine/pkg/api/scenario"
	coreadvisor "mortgage_engine/pkg/core/advisor"
	"mortgage_engine/pkg/core/cache"
	corerates "mortgage_engine/pkg/core/rates"
	"mortgage_engine/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load environment variables
	godotenv.Load()
	ctx := context.Background()

	// Database is optional: without DATABASE_URL the scenario store falls
	// back to local files
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[WARNING] Database unavailable: %v\n", err)
		fmt.Println("  Scenario storage falling back to .cache/scenarios")
	}
	defer store.Close()
	scenarioStore := store.NewScenarioStore(store.GetPool(), "")

	// Breakdown memoization: Redis when configured, in-process otherwise
	var quoteBackend cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		fmt.Printf("[CACHE] Using Redis at %s\n", addr)
		quoteBackend = cache.NewRedisCache(addr)
	} else {
		fmt.Println("[CACHE] REDIS_ADDR not set, using in-memory cache")
		quoteBackend = cache.NewMemoryCache()
	}
	quotes := cache.NewQuoteCache(quoteBackend)

	// Advisor provider config
	configData, _ := os.ReadFile("config/models.yaml")
	var advisorCfg coreadvisor.Config
	yaml.Unmarshal(configData, &advisorCfg)
	advisorMgr := coreadvisor.NewManager(advisorCfg)
	fmt.Printf("[ADVISOR] Active provider: %s\n", advisorMgr.GetActiveProvider())

	// Rate table source and sweep presets
	ratesFetcher := corerates.NewFetcher(os.Getenv("RATES_SOURCE_URL"))
	presets, err := corerates.LoadPresets("config/presets.hjson")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load sweep presets: %v\n", err)
	} else {
		fmt.Printf("[RATES] Loaded %d sweep presets\n", len(presets))
	}

	// Handlers
	loanHandler := apiloan.NewHandler(quotes)
	affordabilityHandler := apiaffordability.NewHandler()
	scenarioHandler := apiscenario.NewHandler(scenarioStore)
	ratesHandler := apirates.NewHandler(ratesFetcher, presets)
	advisorHandler := apiadvisor.NewHandler(coreadvisor.NewAdvisor(advisorMgr))

	rateLimiter := middleware.NewRateLimiter(60, time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	limited := func(h http.HandlerFunc) http.Handler {
		return middleware.RateLimitMiddleware(rateLimiter, h)
	}

	// Calculator endpoints
	mux.Handle("/api/loan/breakdown", limited(loanHandler.HandleBreakdown))
	mux.Handle("/api/loan/sensitivity", limited(loanHandler.HandleSensitivity))
	mux.Handle("/api/affordability", limited(affordabilityHandler.HandleAffordability))

	// Scenario endpoints
	mux.Handle("/api/scenario/save", limited(scenarioHandler.HandleSave))
	mux.Handle("/api/scenario/list", limited(scenarioHandler.HandleList))
	mux.Handle("/api/scenario/get", limited(scenarioHandler.HandleGet))
	mux.Handle("/api/scenario/import", limited(scenarioHandler.HandleImport))
	mux.Handle("/api/scenario/delete", limited(scenarioHandler.HandleDelete))

	// Rate data endpoints
	mux.Handle("/api/rates/current", limited(ratesHandler.HandleCurrent))
	mux.Handle("/api/rates/presets", limited(ratesHandler.HandlePresets))

	// Advisor endpoints (streaming stays unlimited: one connection streams many events)
	mux.Handle("/api/advisor/summary", limited(advisorHandler.HandleSummary))
	mux.Handle("/api/advisor/affordability", limited(advisorHandler.HandleAffordabilitySummary))
	mux.HandleFunc("/api/advisor/summary-stream", advisorHandler.HandleSummaryStream)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/loan/breakdown")
	fmt.Println("  - POST /api/loan/sensitivity")
	fmt.Println("  - POST /api/affordability")
	fmt.Println("  - POST /api/scenario/save")
	fmt.Println("  - GET  /api/scenario/list")
	fmt.Println("  - GET  /api/scenario/get")
	fmt.Println("  - POST /api/scenario/import")
	fmt.Println("  - POST /api/scenario/delete")
	fmt.Println("  - GET  /api/rates/current")
	fmt.Println("  - GET  /api/rates/presets")
	fmt.Println("  - POST /api/advisor/summary")
	fmt.Println("  - POST /api/advisor/affordability")
	fmt.Println("  - GET  /api/advisor/summary-stream  (SSE streaming)")

	if err := http.ListenAndServe(":8080", mux); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
