package aggregator

import "campaign-insights-go/internal/types"

// Thresholds are the engagement rate (percent) and growth (percent) floors
// for each performance tier.
type Thresholds struct {
	ExcellentRate   float64 `yaml:"excellent_rate"`
	ExcellentGrowth float64 `yaml:"excellent_growth"`
	GoodRate        float64 `yaml:"good_rate"`
	GoodGrowth      float64 `yaml:"good_growth"`
	AverageRate     float64 `yaml:"average_rate"`
	AverageGrowth   float64 `yaml:"average_growth"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ExcellentRate:   5,
		ExcellentGrowth: 15,
		GoodRate:        3,
		GoodGrowth:      8,
		AverageRate:     2,
		AverageGrowth:   5,
	}
}

// Classify maps an engagement rate and growth pair onto a tier. Excellent and
// good need both floors; average needs either.
func (t Thresholds) Classify(engagementRate, growth float64) types.Tier {
	switch {
	case engagementRate >= t.ExcellentRate && growth >= t.ExcellentGrowth:
		return types.TierExcellent
	case engagementRate >= t.GoodRate && growth >= t.GoodGrowth:
		return types.TierGood
	case engagementRate >= t.AverageRate || growth >= t.AverageGrowth:
		return types.TierAverage
	default:
		return types.TierPoor
	}
}
