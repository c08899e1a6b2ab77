package domain

import (
	"math"
	"testing"
)

func TestClassifyPM25_Boundaries(t *testing.T) {
	tests := []struct {
		value float64
		label string
		tier  AqiTier
	}{
		{0, "Good", TierGood},
		{15.4, "Good", TierGood},
		{15.5, "Moderate", TierModerate},
		{40.4, "Moderate", TierModerate},
		{40.5, "UnhealthyForSensitiveGroups", TierUnhealthyForSensitiveGroups},
		{65.4, "UnhealthyForSensitiveGroups", TierUnhealthyForSensitiveGroups},
		{65.5, "Unhealthy", TierUnhealthy},
		{149.9, "Unhealthy", TierUnhealthy},
		{150, "VeryUnhealthy", TierVeryUnhealthy},
		{249.9, "VeryUnhealthy", TierVeryUnhealthy},
		{250, "Hazardous", TierHazardous},
		{1000, "Hazardous", TierHazardous},
		{math.Inf(1), "Hazardous", TierHazardous},
	}
	for _, tt := range tests {
		got := ClassifyPM25(tt.value)
		if got.Label != tt.label || got.Tier != tt.tier {
			t.Errorf("ClassifyPM25(%v) = %+v, want %s/%d", tt.value, got, tt.label, tt.tier)
		}
	}
}

func TestClassifyPM25_Monotonic(t *testing.T) {
	prev := ClassifyPM25(0).Tier
	for v := 0.0; v <= 600; v += 0.1 {
		tier := ClassifyPM25(v).Tier
		if tier < prev {
			t.Fatalf("tier decreased at %v: %d after %d", v, tier, prev)
		}
		prev = tier
	}
}

func TestClassifyPM25_NaN(t *testing.T) {
	if got := ClassifyPM25(math.NaN()); got.Tier != TierGood {
		t.Errorf("expected NaN to classify as Good, got %+v", got)
	}
}

func TestAqiCategory_Description(t *testing.T) {
	if got := ClassifyPM25(50).Description(); got != "Unhealthy for Sensitive Groups" {
		t.Errorf("unexpected description %q", got)
	}
	if got := ClassifyPM25(300).Description(); got != "Hazardous" {
		t.Errorf("unexpected description %q", got)
	}
}
