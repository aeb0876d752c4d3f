package rates

import (
	"fmt"
	"os"

	"mortgage_engine/pkg/core/utils"
)

// SweepPreset names a ready-made sensitivity sweep for the charting UI
type SweepPreset struct {
	Name     string    `json:"name"`
	Variable string    `json:"variable"` // "rate" or "downPayment"
	Values   []float64 `json:"values"`
}

// LoadPresets reads sweep presets from an Hjson file. Presets are maintained
// by hand, so the format allows comments and unquoted keys.
func LoadPresets(path string) ([]SweepPreset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var wrapper struct {
		Presets []SweepPreset `json:"presets"`
	}
	if err := utils.ParseHJSONToStruct(string(raw), &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Presets) == 0 {
		return nil, fmt.Errorf("no presets defined in %s", path)
	}
	return wrapper.Presets, nil
}
