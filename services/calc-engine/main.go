package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"mortgage_engine/pkg/core/loan"
)

// Standalone calculator: feeds a JSON payload through the engine without the
// API server, for scripting and spreadsheet checks.
func main() {
	mode := flag.String("mode", "breakdown", "Mode: breakdown or affordability")
	dataStr := flag.String("data", "", "JSON data payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	switch *mode {
	case "breakdown":
		var inputs loan.LoanInputs
		if err := json.Unmarshal([]byte(*dataStr), &inputs); err != nil {
			fmt.Printf("Error unmarshaling data: %v\n", err)
			os.Exit(1)
		}
		emit(loan.ComputeLoanBreakdown(inputs))
	case "affordability":
		var inputs loan.AffordabilityInputs
		if err := json.Unmarshal([]byte(*dataStr), &inputs); err != nil {
			fmt.Printf("Error unmarshaling data: %v\n", err)
			os.Exit(1)
		}
		emit(loan.ComputeAffordability(inputs))
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func emit(result interface{}) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
