package aggregator

import (
	"math"

	"campaign-insights-go/internal/types"
)

// Maxima holds the largest observed value of each scored metric in a set.
type Maxima struct {
	EngagementRate float64
	Growth         float64
	Engagement     float64
	Reach          float64
}

// MaximaOf returns the per-metric maxima of records. Empty input gives all zeros.
func MaximaOf(records []types.RetailerRecord) Maxima {
	var m Maxima
	for _, r := range records {
		m.EngagementRate = math.Max(m.EngagementRate, r.EngagementRate)
		m.Growth = math.Max(m.Growth, r.Growth)
		m.Engagement = math.Max(m.Engagement, float64(r.Engagement))
		m.Reach = math.Max(m.Reach, float64(r.Reach))
	}
	return m
}

// Normalize scales value against the set maximum. A non-positive maximum
// yields 0 instead of NaN or Inf.
func Normalize(value, max float64) float64 {
	return ratio(value, max)
}

// ratio is num/den, or 0 when den is not positive or the result is not finite.
func ratio(num, den float64) float64 {
	if !(den > 0) {
		return 0
	}
	q := num / den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
