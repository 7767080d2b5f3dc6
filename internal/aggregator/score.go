package aggregator

import (
	"math"

	"campaign-insights-go/internal/types"
)

// Weights of each normalized metric, in points out of 100.
const (
	engagementRateWeight = 40
	growthWeight         = 30
	engagementWeight     = 20
	reachWeight          = 10
)

// Score combines the retailer's metrics, each normalized against the set
// maxima, into an integer in [0, 100].
func Score(r types.RetailerRecord, m Maxima) int {
	s := Normalize(r.EngagementRate, m.EngagementRate)*engagementRateWeight +
		Normalize(r.Growth, m.Growth)*growthWeight +
		Normalize(float64(r.Engagement), m.Engagement)*engagementWeight +
		Normalize(float64(r.Reach), m.Reach)*reachWeight

	if math.IsNaN(s) {
		return 0
	}
	// negative growth can pull the sum below zero
	return int(math.Round(math.Min(math.Max(s, 0), 100)))
}

// ScoreAll scores every record against the maxima of the whole set, keeping
// input order.
func ScoreAll(records []types.RetailerRecord, th Thresholds) []types.ScoredRetailer {
	m := MaximaOf(records)
	out := make([]types.ScoredRetailer, 0, len(records))
	for _, r := range records {
		out = append(out, types.ScoredRetailer{
			RetailerRecord: r,
			Score:          Score(r, m),
			Tier:           th.Classify(r.EngagementRate, r.Growth),
		})
	}
	return out
}
