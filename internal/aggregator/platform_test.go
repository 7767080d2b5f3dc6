package aggregator

import (
	"testing"

	"campaign-insights-go/internal/types"
)

func TestComparePlatforms(t *testing.T) {
	in := []types.PlatformPerformance{
		{Platform: "instagram", Engagement: 750, Reach: 6000, Impressions: 10000, EngagementRate: 6.0},
		{Platform: "facebook", Engagement: 250, Reach: 4000, Impressions: 0, EngagementRate: 3.0},
	}
	got := ComparePlatforms(in)
	if len(got) != 2 {
		t.Fatalf("comparisons: got %d, want 2", len(got))
	}
	if got[0].EngagementShare != 75 || got[1].EngagementShare != 25 {
		t.Errorf("engagement shares: got %v/%v, want 75/25", got[0].EngagementShare, got[1].EngagementShare)
	}
	if got[0].ReachShare != 60 {
		t.Errorf("instagram reach share: got %v, want 60", got[0].ReachShare)
	}
	if got[1].RelativeEngagementRate != 0.5 {
		t.Errorf("facebook relative rate: got %v, want 0.5", got[1].RelativeEngagementRate)
	}
	if got[0].ImpressionRate != 7.5 {
		t.Errorf("instagram impression rate: got %v, want 7.5", got[0].ImpressionRate)
	}
	if got[1].ImpressionRate != 0 {
		t.Errorf("facebook impression rate with zero impressions: got %v, want 0", got[1].ImpressionRate)
	}
}

func TestComparePlatformsAllZero(t *testing.T) {
	got := ComparePlatforms([]types.PlatformPerformance{{Platform: "x"}, {Platform: "y"}})
	for _, c := range got {
		if c.EngagementShare != 0 || c.ReachShare != 0 || c.RelativeEngagementRate != 0 {
			t.Errorf("expected zero ratios for %s, got %+v", c.Platform, c)
		}
	}
}

func TestRankPlatforms(t *testing.T) {
	in := []types.PlatformPerformance{
		{Platform: "facebook", EngagementRate: 3.1},
		{Platform: "tiktok", EngagementRate: 7.4},
		{Platform: "instagram", EngagementRate: 5.2},
	}
	got := RankPlatforms(in)
	want := []string{"tiktok", "instagram", "facebook"}
	for i, p := range want {
		if got[i].Platform != p {
			t.Errorf("ranked[%d]: got %s, want %s", i, got[i].Platform, p)
		}
	}
}
