package actionable

import (
	"fmt"

	"campaign-insights-go/internal/processor"
	"campaign-insights-go/internal/types"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// lowPostingFrequency is posts per week below which a retailer is nudged
// to post more before anything else.
const lowPostingFrequency = 2.0

// Generate turns an overview into at most one card per concern: the weakest
// region, the weakest retailer and the platform engagement gap.
func Generate(ov processor.Overview) []ActionCard {
	var cards []ActionCard

	if len(ov.Regions) > 1 {
		worst := ov.Regions[0]
		for _, r := range ov.Regions[1:] {
			if r.Performance < worst.Performance {
				worst = r
			}
		}
		if worst.Tier == types.TierPoor || worst.Tier == types.TierAverage {
			cards = append(cards, ActionCard{
				Insight: fmt.Sprintf("%s region trails with performance %d (%.2f%% ER, %.1f%% growth)", worst.Region, worst.Performance, worst.EngagementRate, worst.Growth),
				Action:  fmt.Sprintf("Review content mix with %s retailers; replicate %s's playbook", worst.Region, worst.TopRetailer),
				Impact:  "Lift regional engagement toward the network average",
			})
		}
	}

	if len(ov.Rankings.Bottom) > 0 {
		r := ov.Rankings.Bottom[0]
		action := "Schedule a creative review and refresh top-performing formats"
		if r.PostingFrequency < lowPostingFrequency {
			action = fmt.Sprintf("Raise posting cadence from %.1f to at least %.0f posts/week", r.PostingFrequency, lowPostingFrequency)
		}
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%s ranks last with score %d", r.Name, r.Score),
			Action:  action,
			Impact:  "Recover reach on the weakest account",
		})
	}

	if len(ov.Platforms.Platforms) > 1 {
		best, worst := ov.Platforms.Platforms[0], ov.Platforms.Platforms[0]
		for _, p := range ov.Platforms.Platforms[1:] {
			if p.EngagementRate > best.EngagementRate {
				best = p
			}
			if p.EngagementRate < worst.EngagementRate {
				worst = p
			}
		}
		if worst.EngagementRate > 0 && best.EngagementRate >= 2*worst.EngagementRate {
			cards = append(cards, ActionCard{
				Insight: fmt.Sprintf("%s engages at %.2f%% vs %.2f%% on %s", best.Platform, best.EngagementRate, worst.EngagementRate, worst.Platform),
				Action:  fmt.Sprintf("Shift post volume from %s toward %s %s content", worst.Platform, best.Platform, best.TopContentType),
				Impact:  "Higher engagement per post at the same budget",
			})
		}
	}

	if len(cards) == 0 {
		return []ActionCard{{
			Insight: "No strong performance gap detected",
			Action:  "Monitor and collect more data",
			Impact:  "Low immediate intervention",
		}}
	}
	return cards
}
