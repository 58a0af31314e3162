// Package domain defines core business entities and value objects for ecoscan.
//
// This file contains the impact level enumeration and the arithmetic used to
// turn a level (plus optional observed usage) into daily and annual CO2 and
// energy figures. The domain layer is independent of infrastructure concerns
// and represents pure business logic and data structures.
package domain

import "strings"

// ImpactLevel is the ordinal classification of an application's estimated
// environmental cost.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

// ImpactRates carries the fixed per-level constants. DailyCO2Grams and
// DailyEnergyWh are the per-day baselines used by the estimator;
// CO2GramsPerHour is the per-active-hour figure shown in the details view.
type ImpactRates struct {
	CO2GramsPerHour float64
	DailyCO2Grams   float64
	DailyEnergyWh   float64
}

var impactRates = map[ImpactLevel]ImpactRates{
	ImpactHigh:   {CO2GramsPerHour: 5.0, DailyCO2Grams: 2.5, DailyEnergyWh: 8.0},
	ImpactMedium: {CO2GramsPerHour: 2.0, DailyCO2Grams: 1.0, DailyEnergyWh: 3.2},
	ImpactLow:    {CO2GramsPerHour: 0.5, DailyCO2Grams: 0.2, DailyEnergyWh: 0.8},
}

// Rates returns the rate constants for the level. Unknown levels share the
// low baseline.
func (l ImpactLevel) Rates() ImpactRates {
	if rates, ok := impactRates[l]; ok {
		return rates
	}
	return impactRates[ImpactLow]
}

// Valid reports whether the level is one of the three defined values.
func (l ImpactLevel) Valid() bool {
	_, ok := impactRates[l]
	return ok
}

// ParseImpactLevel interprets a remote impact string case-insensitively.
// The second return value is false for unrecognized input; callers are
// expected to default to ImpactLow and log.
func ParseImpactLevel(value string) (ImpactLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return ImpactHigh, true
	case "medium":
		return ImpactMedium, true
	case "low":
		return ImpactLow, true
	default:
		return ImpactLow, false
	}
}

// DailyImpact is the per-day estimate produced for one application.
type DailyImpact struct {
	CO2Grams float64
	EnergyWh float64
}

// Annual projects the daily figures over a flat 365-day year.
func (d DailyImpact) Annual() DailyImpact {
	return DailyImpact{
		CO2Grams: d.CO2Grams * DaysPerYear,
		EnergyWh: d.EnergyWh * DaysPerYear,
	}
}

// EstimateDaily converts an impact level and optional usage stats into a
// daily estimate. Without usage the level's base tuple is returned exactly.
// With usage both figures scale by dailyMinutes/30, clamped to [0.1, 3.0].
func EstimateDaily(level ImpactLevel, usage *UsageStats) DailyImpact {
	rates := level.Rates()
	impact := DailyImpact{
		CO2Grams: rates.DailyCO2Grams,
		EnergyWh: rates.DailyEnergyWh,
	}
	if usage == nil {
		return impact
	}
	multiplier := usageMultiplier(usage.DailyMinutes)
	impact.CO2Grams *= multiplier
	impact.EnergyWh *= multiplier
	return impact
}

func usageMultiplier(dailyMinutes float64) float64 {
	multiplier := dailyMinutes / UsageMultiplierStepMinutes
	if multiplier < UsageMultiplierFloor {
		return UsageMultiplierFloor
	}
	if multiplier > UsageMultiplierCeiling {
		return UsageMultiplierCeiling
	}
	return multiplier
}
