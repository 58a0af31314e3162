package augment

import (
	"fmt"
	"strings"

	"github.com/doeshing/ecoscan/internal/domain"
)

func co2ComparisonPrompt(svc domain.Service, daily domain.DailyImpact) string {
	return fmt.Sprintf(
		"The app %q emits an estimated %.2f grams of CO2 per day of typical use. "+
			"Give one short, concrete everyday comparison for that amount. "+
			"Answer in a single sentence without preamble.",
		svc.Name, daily.CO2Grams)
}

func energyComparisonPrompt(svc domain.Service, daily domain.DailyImpact) string {
	return fmt.Sprintf(
		"The app %q consumes an estimated %.2f watt-hours per day. "+
			"Give one short, concrete everyday comparison for that amount of energy. "+
			"Answer in a single sentence without preamble.",
		svc.Name, daily.EnergyWh)
}

func explanationPrompt(svc domain.Service) string {
	category := "general use"
	if svc.Category != nil && svc.Category.Description != "" {
		category = svc.Category.Description
	}
	return fmt.Sprintf(
		"Explain in two sentences why an app like %q (%s) has a %s environmental impact. "+
			"Plain language, no bullet points.",
		svc.Name, category, svc.Level)
}

func suggestionsPrompt(svc domain.Service) string {
	return fmt.Sprintf(
		"Give up to three short, practical suggestions to reduce the environmental "+
			"footprint of using the app %q. One suggestion per line, no numbering.",
		svc.Name)
}

func annualProjectionPrompt(svc domain.Service, annual domain.DailyImpact) string {
	return fmt.Sprintf(
		"Using the app %q adds up to roughly %.0f grams of CO2 and %.0f watt-hours per year. "+
			"Summarize that yearly footprint in one relatable sentence.",
		svc.Name, annual.CO2Grams, annual.EnergyWh)
}

// Canned fallback strings returned when the quota is exhausted or generation
// fails persistently.
func fallbackText(field fieldKind) string {
	switch field {
	case fieldCO2Comparison:
		return "Comparable to charging a smartphone."
	case fieldEnergyComparison:
		return "About the energy of an LED bulb running for an hour."
	case fieldExplanation:
		return "This estimate is based on the typical data and compute demand of apps in this category."
	case fieldSuggestions:
		return strings.Join([]string{
			"Reduce daily usage time where possible.",
			"Lower streaming or media quality settings.",
			"Close the app fully when not in use.",
		}, "\n")
	case fieldAnnualProjection:
		return "Over a year this adds a small but steady share to your digital footprint."
	default:
		return ""
	}
}
