package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campaign-insights-go/internal/types"
)

// MockSource serves the built-in demo dataset.
type MockSource struct{}

func (MockSource) FetchRetailers(ctx context.Context) ([]types.RetailerRecord, error) {
	out := make([]types.RetailerRecord, len(mockRetailers))
	copy(out, mockRetailers)
	return out, nil
}

func (MockSource) FetchPlatforms(ctx context.Context) ([]types.PlatformPerformance, error) {
	out := make([]types.PlatformPerformance, len(mockPlatforms))
	copy(out, mockPlatforms)
	return out, nil
}

func (MockSource) FetchCampaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error) {
	var out []types.Campaign
	for _, c := range mockCampaigns {
		isRetailer := c.Retailer != ""
		if (kind == types.RetailerCampaigns) == isRetailer {
			c.Platforms = append([]string(nil), c.Platforms...)
			out = append(out, c)
		}
	}
	return out, nil
}

// FetchPlatformMetrics builds the metrics view for one platform from the
// platform fixture, the top post fixtures and a fixed seven day series.
func (MockSource) FetchPlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error) {
	for _, p := range mockPlatforms {
		if !strings.EqualFold(p.Platform, platform) {
			continue
		}
		m := types.PlatformMetrics{
			Overview: types.MetricsOverview{
				Platform:       p.Platform,
				TotalPosts:     p.Posts,
				TotalReach:     p.Reach,
				Impressions:    p.Impressions,
				Engagement:     p.Engagement,
				EngagementRate: p.EngagementRate,
			},
			TopPosts: append([]types.TopPost{}, mockTopPosts[p.Platform]...),
		}
		m.Engagement = weekSeries(p, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
		return m, nil
	}
	return types.PlatformMetrics{}, fmt.Errorf("platform %q: %w", platform, ErrNotFound)
}

// weekSeries spreads a platform's engagement over seven days with a fixed
// weekday profile.
func weekSeries(p types.PlatformPerformance, start time.Time) []types.DailyMetric {
	profile := [7]int64{12, 14, 15, 16, 17, 14, 12} // sums to 100
	out := make([]types.DailyMetric, 0, len(profile))
	for i, pct := range profile {
		day := p.Engagement * pct / 100
		out = append(out, types.DailyMetric{
			Date:        start.AddDate(0, 0, i).Format("2006-01-02"),
			Likes:       day * 70 / 100,
			Comments:    day * 18 / 100,
			Shares:      day * 12 / 100,
			Impressions: p.Impressions * pct / 100,
		})
	}
	return out
}

var mockRetailers = []types.RetailerRecord{
	{ID: "ret-001", Name: "Metro Market", Region: "East", Posts: 48, Engagement: 8420, Reach: 145000, EngagementRate: 5.81, Followers: 52300, PostingFrequency: 3.4, Growth: 18.5, TopPlatform: "Instagram"},
	{ID: "ret-002", Name: "Coastal Goods", Region: "West", Posts: 32, Engagement: 2700, Reach: 132000, EngagementRate: 2.05, Followers: 41800, PostingFrequency: 2.3, Growth: 8.4, TopPlatform: "Facebook"},
	{ID: "ret-003", Name: "Heartland Foods", Region: "Central", Posts: 40, Engagement: 5100, Reach: 98000, EngagementRate: 5.2, Followers: 30500, PostingFrequency: 2.9, Growth: 12.1, TopPlatform: "TikTok"},
	{ID: "ret-004", Name: "Sunbelt Stores", Region: "South", Posts: 27, Engagement: 3900, Reach: 87000, EngagementRate: 4.48, Followers: 26100, PostingFrequency: 1.9, Growth: -2.3, TopPlatform: "Instagram"},
	{ID: "ret-005", Name: "Gulf Traders", Region: "South", Posts: 22, Engagement: 1850, Reach: 61000, EngagementRate: 3.03, Followers: 18400, PostingFrequency: 1.6, Growth: 6.7, TopPlatform: "Facebook"},
	{ID: "ret-006", Name: "Lakeside Grocers", Region: "North", Posts: 35, Engagement: 4620, Reach: 76000, EngagementRate: 6.08, Followers: 22900, PostingFrequency: 2.5, Growth: 21.4, TopPlatform: "TikTok"},
	{ID: "ret-007", Name: "Harbor Outfitters", Region: "East", Posts: 29, Engagement: 2210, Reach: 69000, EngagementRate: 3.2, Followers: 19700, PostingFrequency: 2.1, Growth: 4.9, TopPlatform: "Pinterest"},
	{ID: "ret-008", Name: "Prairie Pantry", Region: "Central", Posts: 18, Engagement: 760, Reach: 42000, EngagementRate: 1.81, Followers: 11200, PostingFrequency: 1.3, Growth: 1.2, TopPlatform: "Facebook"},
	{ID: "ret-009", Name: "Summit Supply", Region: "West", Posts: 44, Engagement: 6930, Reach: 118000, EngagementRate: 5.87, Followers: 47600, PostingFrequency: 3.1, Growth: 15.8, TopPlatform: "Instagram"},
	{ID: "ret-010", Name: "Northwind Mart", Region: "North", Posts: 25, Engagement: 1640, Reach: 58000, EngagementRate: 2.83, Followers: 16300, PostingFrequency: 1.8, Growth: 7.6, TopPlatform: "X"},
}

var mockPlatforms = []types.PlatformPerformance{
	{Platform: "Instagram", Posts: 156, Engagement: 24800, Reach: 412000, Impressions: 598000, EngagementRate: 6.02, Growth: 14.2, TopContentType: "Reels"},
	{Platform: "Facebook", Posts: 132, Engagement: 11300, Reach: 389000, Impressions: 521000, EngagementRate: 2.9, Growth: 3.8, TopContentType: "Image"},
	{Platform: "TikTok", Posts: 88, Engagement: 19700, Reach: 268000, Impressions: 402000, EngagementRate: 7.35, Growth: 27.6, TopContentType: "Short Video"},
	{Platform: "Pinterest", Posts: 64, Engagement: 3400, Reach: 97000, Impressions: 151000, EngagementRate: 3.51, Growth: 6.1, TopContentType: "Pin"},
	{Platform: "X", Posts: 71, Engagement: 2100, Reach: 88000, Impressions: 133000, EngagementRate: 2.39, Growth: -1.4, TopContentType: "Text"},
}

var mockTopPosts = map[string][]types.TopPost{
	"Instagram": {
		{ID: "ig-1", Retailer: "Metro Market", ContentType: "Reels", Caption: "Spring aisle makeover", Engagement: 1840, Reach: 21400, Rate: 8.6, PostedAt: "2024-03-05"},
		{ID: "ig-2", Retailer: "Summit Supply", ContentType: "Carousel", Caption: "Trail kit checklist", Engagement: 1320, Reach: 18900, Rate: 6.98, PostedAt: "2024-03-07"},
	},
	"TikTok": {
		{ID: "tt-1", Retailer: "Lakeside Grocers", ContentType: "Short Video", Caption: "60 second lunch hack", Engagement: 2950, Reach: 30100, Rate: 9.8, PostedAt: "2024-03-06"},
	},
	"Facebook": {
		{ID: "fb-1", Retailer: "Coastal Goods", ContentType: "Image", Caption: "Weekend deals", Engagement: 610, Reach: 24500, Rate: 2.49, PostedAt: "2024-03-04"},
	},
}

var mockCampaigns = []types.Campaign{
	{ID: "bc-101", Name: "Spring Refresh", Brand: "FreshCo", Status: "active", Platforms: []string{"Instagram", "TikTok"}, StartDate: "2024-03-01", EndDate: "2024-04-15", Budget: 45000, Posts: 120},
	{ID: "bc-102", Name: "Back to Basics", Brand: "HomeWorks", Status: "planned", Platforms: []string{"Facebook", "Pinterest"}, StartDate: "2024-05-01", EndDate: "2024-06-01", Budget: 22000},
	{ID: "rc-201", Name: "Spring Refresh", Brand: "FreshCo", Retailer: "Metro Market", Status: "active", Platforms: []string{"Instagram"}, StartDate: "2024-03-01", EndDate: "2024-04-15", Budget: 6000, Posts: 18},
	{ID: "rc-202", Name: "Spring Refresh", Brand: "FreshCo", Retailer: "Lakeside Grocers", Status: "active", Platforms: []string{"TikTok"}, StartDate: "2024-03-01", EndDate: "2024-04-15", Budget: 4500, Posts: 14},
	{ID: "rc-203", Name: "Back to Basics", Brand: "HomeWorks", Retailer: "Coastal Goods", Status: "planned", Platforms: []string{"Facebook"}, StartDate: "2024-05-01", EndDate: "2024-06-01", Budget: 3000},
}
