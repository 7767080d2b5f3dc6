package aggregator

import "campaign-insights-go/internal/types"

// Totals are the per-group sums and unweighted means.
type Totals struct {
	Posts          int64   `json:"posts"`
	Engagement     int64   `json:"engagement"`
	Reach          int64   `json:"reach"`
	EngagementRate float64 `json:"engagementRate"`
	Growth         float64 `json:"growth"`
}

// Aggregate sums posts, engagement and reach and averages engagement rate and
// growth across the group. An empty group yields all zeros.
func Aggregate(group []types.RetailerRecord) Totals {
	var t Totals
	var rateSum, growthSum float64
	for _, r := range group {
		t.Posts += r.Posts
		t.Engagement += r.Engagement
		t.Reach += r.Reach
		rateSum += r.EngagementRate
		growthSum += r.Growth
	}
	t.EngagementRate = ratio(rateSum, float64(len(group)))
	t.Growth = ratio(growthSum, float64(len(group)))
	return t
}
