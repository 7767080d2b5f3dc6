package aggregator

import (
	"math"

	"campaign-insights-go/internal/types"
)

// Regional rolls retailers up into one aggregate per region, in the order
// regions first appear. Performance is the mean score of the region's
// retailers, each scored against the whole input set.
func Regional(records []types.RetailerRecord, th Thresholds) []types.RegionalAggregate {
	scored := ScoreAll(records, th)
	groups := GroupBy(scored, func(s types.ScoredRetailer) string { return s.Region })

	out := make([]types.RegionalAggregate, 0, len(groups))
	for _, g := range groups {
		members := make([]types.RetailerRecord, 0, len(g.Items))
		scoreSum := 0
		top := g.Items[0]
		for _, s := range g.Items {
			members = append(members, s.RetailerRecord)
			scoreSum += s.Score
			if s.EngagementRate > top.EngagementRate {
				top = s
			}
		}
		t := Aggregate(members)
		out = append(out, types.RegionalAggregate{
			Region:         g.Key,
			Retailers:      len(g.Items),
			Posts:          t.Posts,
			Engagement:     t.Engagement,
			Reach:          t.Reach,
			EngagementRate: round2(t.EngagementRate),
			Growth:         round2(t.Growth),
			TopRetailer:    top.Name,
			Performance:    int(math.Round(ratio(float64(scoreSum), float64(len(g.Items))))),
			Tier:           th.Classify(t.EngagementRate, t.Growth),
		})
	}
	return out
}
