package domain

import "math"

// AqiTier is the severity ordinal of an air quality category, 0 (Good) to 5 (Hazardous).
type AqiTier uint8

// Severity tiers in ascending order.
const (
	TierGood AqiTier = iota
	TierModerate
	TierUnhealthyForSensitiveGroups
	TierUnhealthy
	TierVeryUnhealthy
	TierHazardous
)

// AqiCategory is the air quality bracket a PM2.5 concentration falls into.
type AqiCategory struct {
	Label string
	Tier  AqiTier
}

// Description returns the human readable name of the category.
func (c AqiCategory) Description() string {
	switch c.Tier {
	case TierGood:
		return "Good"
	case TierModerate:
		return "Moderate"
	case TierUnhealthyForSensitiveGroups:
		return "Unhealthy for Sensitive Groups"
	case TierUnhealthy:
		return "Unhealthy"
	case TierVeryUnhealthy:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

var (
	categoryGood          = AqiCategory{Label: "Good", Tier: TierGood}
	categoryModerate      = AqiCategory{Label: "Moderate", Tier: TierModerate}
	categorySensitive     = AqiCategory{Label: "UnhealthyForSensitiveGroups", Tier: TierUnhealthyForSensitiveGroups}
	categoryUnhealthy     = AqiCategory{Label: "Unhealthy", Tier: TierUnhealthy}
	categoryVeryUnhealthy = AqiCategory{Label: "VeryUnhealthy", Tier: TierVeryUnhealthy}
	categoryHazardous     = AqiCategory{Label: "Hazardous", Tier: TierHazardous}
)

// aqiBreakpoints holds exclusive upper bounds in ascending order.
var aqiBreakpoints = []struct {
	upper    float64
	category AqiCategory
}{
	{upper: 15.5, category: categoryGood},
	{upper: 40.5, category: categoryModerate},
	{upper: 65.5, category: categorySensitive},
	{upper: 150, category: categoryUnhealthy},
	{upper: 250, category: categoryVeryUnhealthy},
}

// ClassifyPM25 maps a PM2.5 concentration in µg/m³ to its AQI category.
// A value equal to a breakpoint belongs to the higher category.
// NaN is treated as Good so that the function stays total.
func ClassifyPM25(pm25 float64) AqiCategory {
	if math.IsNaN(pm25) {
		return categoryGood
	}
	for _, bp := range aqiBreakpoints {
		if pm25 < bp.upper {
			return bp.category
		}
	}
	return categoryHazardous
}
