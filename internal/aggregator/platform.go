package aggregator

import (
	"math"
	"sort"

	"campaign-insights-go/internal/types"
)

// ComparePlatforms expresses each platform as shares of the set totals and
// its engagement rate relative to the best platform. Output order follows
// input order.
func ComparePlatforms(platforms []types.PlatformPerformance) []types.PlatformComparison {
	var totalEngagement, totalReach, maxRate float64
	for _, p := range platforms {
		totalEngagement += float64(p.Engagement)
		totalReach += float64(p.Reach)
		maxRate = math.Max(maxRate, p.EngagementRate)
	}

	out := make([]types.PlatformComparison, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, types.PlatformComparison{
			Platform:               p.Platform,
			EngagementShare:        round2(ratio(float64(p.Engagement), totalEngagement) * 100),
			ReachShare:             round2(ratio(float64(p.Reach), totalReach) * 100),
			RelativeEngagementRate: round2(ratio(p.EngagementRate, maxRate)),
			ImpressionRate:         round2(ratio(float64(p.Engagement), float64(p.Impressions)) * 100),
		})
	}
	return out
}

// RankPlatforms orders platforms by engagement rate, highest first, stable.
func RankPlatforms(platforms []types.PlatformPerformance) []types.PlatformPerformance {
	out := make([]types.PlatformPerformance, len(platforms))
	copy(out, platforms)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EngagementRate > out[j].EngagementRate
	})
	return out
}
