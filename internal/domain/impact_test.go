package domain_test

import (
	"math"
	"testing"

	"github.com/doeshing/ecoscan/internal/domain"
)

func TestEstimateDaily_BaseTuples(t *testing.T) {
	tests := []struct {
		name    string
		level   domain.ImpactLevel
		wantCO2 float64
		wantWh  float64
	}{
		{name: "high base", level: domain.ImpactHigh, wantCO2: 2.5, wantWh: 8.0},
		{name: "medium base", level: domain.ImpactMedium, wantCO2: 1.0, wantWh: 3.2},
		{name: "low base", level: domain.ImpactLow, wantCO2: 0.2, wantWh: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.EstimateDaily(tt.level, nil)
			if got.CO2Grams != tt.wantCO2 || got.EnergyWh != tt.wantWh {
				t.Fatalf("EstimateDaily(%s, nil) = (%v, %v), want (%v, %v)",
					tt.level, got.CO2Grams, got.EnergyWh, tt.wantCO2, tt.wantWh)
			}
		})
	}
}

func TestEstimateDaily_UsageMultiplier(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		wantCO2 float64
		wantWh  float64
	}{
		{name: "15 minutes halves the base", minutes: 15, wantCO2: 1.25, wantWh: 4.0},
		{name: "30 minutes is the base", minutes: 30, wantCO2: 2.5, wantWh: 8.0},
		{name: "floor clamps tiny usage", minutes: 1, wantCO2: 0.25, wantWh: 0.8},
		{name: "ceiling clamps huge usage", minutes: 999, wantCO2: 7.5, wantWh: 24.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := domain.NewUsageStats(tt.minutes)
			got := domain.EstimateDaily(domain.ImpactHigh, &usage)
			if !closeTo(got.CO2Grams, tt.wantCO2) || !closeTo(got.EnergyWh, tt.wantWh) {
				t.Fatalf("EstimateDaily(high, %vmin) = (%v, %v), want (%v, %v)",
					tt.minutes, got.CO2Grams, got.EnergyWh, tt.wantCO2, tt.wantWh)
			}
		})
	}
}

func TestDailyImpactAnnualUsesFlat365(t *testing.T) {
	daily := domain.EstimateDaily(domain.ImpactMedium, nil)
	annual := daily.Annual()
	if !closeTo(annual.CO2Grams, 365.0) {
		t.Fatalf("annual CO2 = %v, want 365", annual.CO2Grams)
	}
	if !closeTo(annual.EnergyWh, 3.2*365) {
		t.Fatalf("annual Wh = %v, want %v", annual.EnergyWh, 3.2*365)
	}
}

func TestParseImpactLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   domain.ImpactLevel
		wantOK bool
	}{
		{input: "high", want: domain.ImpactHigh, wantOK: true},
		{input: "HIGH", want: domain.ImpactHigh, wantOK: true},
		{input: " Medium ", want: domain.ImpactMedium, wantOK: true},
		{input: "low", want: domain.ImpactLow, wantOK: true},
		{input: "extreme", want: domain.ImpactLow, wantOK: false},
		{input: "", want: domain.ImpactLow, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseImpactLevel(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseImpactLevel(%q) = (%s, %v), want (%s, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewUsageStatsBuckets(t *testing.T) {
	if got := domain.NewUsageStats(5).Frequency; got != domain.UsageRare {
		t.Errorf("5 minutes bucketed as %s, want rare", got)
	}
	if got := domain.NewUsageStats(45).Frequency; got != domain.UsageModerate {
		t.Errorf("45 minutes bucketed as %s, want moderate", got)
	}
	if got := domain.NewUsageStats(120).Frequency; got != domain.UsageHeavy {
		t.Errorf("120 minutes bucketed as %s, want heavy", got)
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
