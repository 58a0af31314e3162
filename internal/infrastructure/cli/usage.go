package cli

import (
	"fmt"
	"strconv"
)

// parseUsageMinutes converts the --usage flag values into daily minutes.
func parseUsageMinutes(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	minutes := make(map[string]float64, len(raw))
	for pkg, value := range raw {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid usage minutes for %s: %q", pkg, value)
		}
		minutes[pkg] = parsed
	}
	return minutes, nil
}
