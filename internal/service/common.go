package service

import (
	"fmt"
	"math"
	"strings"
)

const poundsToKg = 0.45359237

func validatePositiveFloat(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a number", name)
	}
	if value <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if err := validatePositiveFloat("weight", value); err != nil {
		return 0, err
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * poundsToKg, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// WeightFromKg converts a stored kilogram value for display.
func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / poundsToKg, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
