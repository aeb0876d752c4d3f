// Package rates pulls published average-mortgage-rate tables for the
// calculator's rate defaults and sensitivity sweeps.
package rates

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// RateQuote is one row of a published rate table
type RateQuote struct {
	Product     string  `json:"product"`      // e.g. "30-Year Fixed"
	RatePercent float64 `json:"rate_percent"` // e.g. 6.5
	APRPercent  float64 `json:"apr_percent"`  // 0 when the source omits APR
}

// Fetcher downloads and parses a rate table, keeping the last good result
// for a TTL so the calculator does not hammer the upstream page.
type Fetcher struct {
	SourceURL string
	Client    *http.Client
	TTL       time.Duration

	mu        sync.Mutex
	cached    []RateQuote
	fetchedAt time.Time
}

func NewFetcher(sourceURL string) *Fetcher {
	return &Fetcher{
		SourceURL: sourceURL,
		Client:    &http.Client{Timeout: 15 * time.Second},
		TTL:       time.Hour,
	}
}

// Current returns the latest rate table, refetching when the cached copy has
// expired. A fetch failure serves the stale copy if one exists.
func (f *Fetcher) Current() ([]RateQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != nil && time.Since(f.fetchedAt) < f.TTL {
		return f.cached, nil
	}

	quotes, err := f.fetch()
	if err != nil {
		if f.cached != nil {
			log.Printf("[Rates] Fetch failed, serving stale table: %v", err)
			return f.cached, nil
		}
		return nil, err
	}

	f.cached = quotes
	f.fetchedAt = time.Now()
	return quotes, nil
}

func (f *Fetcher) fetch() ([]RateQuote, error) {
	if f.SourceURL == "" {
		return nil, fmt.Errorf("no rates source configured (set RATES_SOURCE_URL)")
	}

	resp, err := f.Client.Get(f.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("rates fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates source returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rates body read failed: %w", err)
	}

	return ParseRateTable(string(body))
}

// ParseRateTable extracts rate rows from an HTML page. It scans every table
// and keeps rows whose first cell names a loan product and whose later cells
// carry percent values. Rate pages vary in layout; the scan is deliberately
// tolerant and logs a summary instead of failing on odd rows.
func ParseRateTable(html string) ([]RateQuote, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var quotes []RateQuote
	totalRows := 0

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}
			totalRows++

			product := strings.TrimSpace(cells.First().Text())
			if !looksLikeProduct(product) {
				return
			}

			var percents []float64
			cells.Slice(1, cells.Length()).Each(func(k int, cell *goquery.Selection) {
				if v, ok := parsePercent(cell.Text()); ok {
					percents = append(percents, v)
				}
			})
			if len(percents) == 0 {
				return
			}

			quote := RateQuote{Product: product, RatePercent: percents[0]}
			if len(percents) > 1 {
				quote.APRPercent = percents[1]
			}
			quotes = append(quotes, quote)
		})
	})

	log.Printf("[Rates] SUMMARY: rows=%d, quotes=%d", totalRows, len(quotes))

	if len(quotes) == 0 {
		return nil, fmt.Errorf("no rate rows found in source page")
	}
	return quotes, nil
}

// looksLikeProduct filters header rows and footnotes from product rows
func looksLikeProduct(text string) bool {
	lower := strings.ToLower(text)
	if lower == "" || lower == "product" || lower == "loan type" {
		return false
	}
	return strings.Contains(lower, "fixed") ||
		strings.Contains(lower, "arm") ||
		strings.Contains(lower, "fha") ||
		strings.Contains(lower, "va") ||
		strings.Contains(lower, "jumbo") ||
		strings.Contains(lower, "year")
}

// parsePercent reads "6.5%", "6.500 %", or a bare "6.5" cell
func parsePercent(text string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "%", ""))
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	// Rates outside 0-25 are almost certainly prices or dates in disguise
	if v < 0 || v > 25 {
		return 0, false
	}
	return v, true
}
