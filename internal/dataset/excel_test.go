package dataset

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"campaign-insights-go/internal/types"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for i, row := range rows {
			cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
			r := row
			if err := f.SetSheetRow(name, cellRef, &r); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "dataset.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestExcelRetailersByHeader(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Retailers": {
			{"Region", "Retailer Name", "ID", "Posts", "Engagement", "Reach", "Engagement Rate (%)", "Growth", "Top Platform"},
			{"East", "Metro Market", "ret-001", 48, 8420, 145000, 5.81, 18.5, "Instagram"},
			{"South", "Gulf Traders", "", 22, 1850, 61000, "3.03%", 6.7, "Facebook"},
			{"", "", "", "", "", "", "", "", ""},
		},
	})

	got, err := ExcelSource{Path: path}.FetchRetailers(context.Background())
	if err != nil {
		t.Fatalf("FetchRetailers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("retailers: got %d, want 2", len(got))
	}
	if got[0].ID != "ret-001" || got[0].Engagement != 8420 || got[0].EngagementRate != 5.81 {
		t.Errorf("first retailer: %+v", got[0])
	}
	if got[1].ID != "Gulf Traders" {
		t.Errorf("id fallback: got %q, want name", got[1].ID)
	}
	if got[1].EngagementRate != 3.03 {
		t.Errorf("percent rate: got %v, want 3.03", got[1].EngagementRate)
	}
	if got[1].TopPlatform != "Facebook" {
		t.Errorf("TopPlatform: got %q", got[1].TopPlatform)
	}
}

func TestExcelNonFiniteCellsReadAsZero(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Retailers": {
			{"ID", "Name", "Region", "Engagement Rate", "Growth"},
			{"a", "Alpha", "East", "NaN", 4.5},
			{"b", "Beta", "East", 3.2, "Inf"},
			{"c", "Gamma", "West", "-Inf", "+Infinity"},
		},
	})

	got, err := ExcelSource{Path: path}.FetchRetailers(context.Background())
	if err != nil {
		t.Fatalf("FetchRetailers: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("retailers: got %d, want 3", len(got))
	}
	for _, r := range got {
		if math.IsNaN(r.EngagementRate) || math.IsInf(r.EngagementRate, 0) ||
			math.IsNaN(r.Growth) || math.IsInf(r.Growth, 0) {
			t.Errorf("%s: non-finite value ER=%v growth=%v", r.ID, r.EngagementRate, r.Growth)
		}
	}
	if got[0].EngagementRate != 0 || got[0].Growth != 4.5 {
		t.Errorf("alpha: %+v", got[0])
	}
	if got[1].EngagementRate != 3.2 || got[1].Growth != 0 {
		t.Errorf("beta: %+v", got[1])
	}
}

func TestExcelPlatformsAndCampaigns(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Retailers": {{"id", "name"}},
		"platforms": {
			{"platform", "posts", "engagement", "reach", "impressions", "engagement_rate", "growth", "top_content_type"},
			{"TikTok", 88, 19700, 268000, 402000, 7.35, 27.6, "Short Video"},
		},
		"Campaigns": {
			{"id", "name", "brand", "retailer", "status", "platforms", "budget"},
			{"bc-1", "Spring Refresh", "FreshCo", "", "Active", "Instagram, TikTok", 45000},
			{"rc-1", "Spring Refresh", "FreshCo", "Metro Market", "active", "Instagram", 6000},
		},
	})
	src := ExcelSource{Path: path}
	ctx := context.Background()

	platforms, err := src.FetchPlatforms(ctx)
	if err != nil {
		t.Fatalf("FetchPlatforms: %v", err)
	}
	if len(platforms) != 1 || platforms[0].Impressions != 402000 {
		t.Errorf("platforms: %+v", platforms)
	}

	brand, err := src.FetchCampaigns(ctx, types.BrandCampaigns)
	if err != nil {
		t.Fatalf("FetchCampaigns: %v", err)
	}
	if len(brand) != 1 || brand[0].Status != "active" || len(brand[0].Platforms) != 2 {
		t.Errorf("brand campaigns: %+v", brand)
	}

	m, err := src.FetchPlatformMetrics(ctx, "tiktok")
	if err != nil {
		t.Fatalf("FetchPlatformMetrics: %v", err)
	}
	if m.Overview.TotalPosts != 88 {
		t.Errorf("overview posts: got %d, want 88", m.Overview.TotalPosts)
	}
}

func TestExcelMissingFile(t *testing.T) {
	if _, err := (ExcelSource{Path: filepath.Join(t.TempDir(), "none.xlsx")}).FetchRetailers(context.Background()); err == nil {
		t.Errorf("expected error for missing workbook")
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Engagement Rate (%)": "engagementrate",
		"engagement_rate":     "engagementrate",
		"engagementRate":      "engagementrate",
		"  Top Platform ":     "topplatform",
	}
	for in, want := range tests {
		if got := normalizeHeader(in); got != want {
			t.Errorf("normalizeHeader(%q) = %q; want %q", in, got, want)
		}
	}
}
