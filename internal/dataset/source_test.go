package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"campaign-insights-go/internal/logger"
	"campaign-insights-go/internal/types"
)

type failingSource struct{ err error }

func (f failingSource) FetchRetailers(context.Context) ([]types.RetailerRecord, error) {
	return nil, f.err
}
func (f failingSource) FetchPlatforms(context.Context) ([]types.PlatformPerformance, error) {
	return nil, f.err
}
func (f failingSource) FetchCampaigns(context.Context, types.CampaignKind) ([]types.Campaign, error) {
	return nil, f.err
}
func (f failingSource) FetchPlatformMetrics(context.Context, string) (types.PlatformMetrics, error) {
	return types.PlatformMetrics{}, f.err
}

func TestFallbackServesMockOnError(t *testing.T) {
	src := FallbackSource{
		Primary:  failingSource{err: errors.New("connection refused")},
		Fallback: MockSource{},
		Log:      logger.NewWith("test", "error", io.Discard),
	}
	ctx := context.Background()

	retailers, err := src.FetchRetailers(ctx)
	if err != nil {
		t.Fatalf("FetchRetailers: %v", err)
	}
	if len(retailers) != len(mockRetailers) {
		t.Errorf("retailers: got %d, want %d", len(retailers), len(mockRetailers))
	}
	if _, err := src.FetchPlatforms(ctx); err != nil {
		t.Errorf("FetchPlatforms: %v", err)
	}
	if _, err := src.FetchCampaigns(ctx, types.BrandCampaigns); err != nil {
		t.Errorf("FetchCampaigns: %v", err)
	}
	if m, err := src.FetchPlatformMetrics(ctx, "instagram"); err != nil || m.Overview.Platform != "Instagram" {
		t.Errorf("FetchPlatformMetrics: %+v, %v", m.Overview, err)
	}
}

func TestFallbackWarnsWhenServingFallback(t *testing.T) {
	var buf bytes.Buffer
	src := FallbackSource{
		Primary:  failingSource{err: fmt.Errorf("sheet %q: %w", "Platforms", ErrNotFound)},
		Fallback: MockSource{},
		Log:      logger.NewWith("test", "warn", &buf),
	}
	if _, err := src.FetchPlatforms(context.Background()); err != nil {
		t.Fatalf("FetchPlatforms: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"level":"warning"`, `"resource":"platforms"`, "serving fallback data"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := staticSource{retailers: []types.RetailerRecord{{ID: "only"}}}
	src := FallbackSource{Primary: primary, Fallback: MockSource{}}
	got, err := src.FetchRetailers(context.Background())
	if err != nil {
		t.Fatalf("FetchRetailers: %v", err)
	}
	if len(got) != 1 || got[0].ID != "only" {
		t.Errorf("expected primary data, got %+v", got)
	}
}

type staticSource struct {
	MockSource
	retailers []types.RetailerRecord
}

func (s staticSource) FetchRetailers(context.Context) ([]types.RetailerRecord, error) {
	return s.retailers, nil
}

func TestMockReturnsCopies(t *testing.T) {
	a, _ := MockSource{}.FetchRetailers(context.Background())
	a[0].Name = "changed"
	b, _ := MockSource{}.FetchRetailers(context.Background())
	if b[0].Name == "changed" {
		t.Errorf("mock fixtures were mutated through a returned slice")
	}
}

func TestMockCampaignKinds(t *testing.T) {
	brand, _ := MockSource{}.FetchCampaigns(context.Background(), types.BrandCampaigns)
	retailer, _ := MockSource{}.FetchCampaigns(context.Background(), types.RetailerCampaigns)
	if len(brand) != 2 {
		t.Errorf("brand campaigns: got %d, want 2", len(brand))
	}
	if len(retailer) != 3 {
		t.Errorf("retailer campaigns: got %d, want 3", len(retailer))
	}
	for _, c := range retailer {
		if c.Retailer == "" {
			t.Errorf("retailer campaign %s has no retailer", c.ID)
		}
	}
}

func TestMockPlatformMetrics(t *testing.T) {
	m, err := MockSource{}.FetchPlatformMetrics(context.Background(), "TikTok")
	if err != nil {
		t.Fatalf("FetchPlatformMetrics: %v", err)
	}
	if len(m.Engagement) != 7 {
		t.Errorf("daily series: got %d days, want 7", len(m.Engagement))
	}
	if len(m.TopPosts) != 1 {
		t.Errorf("top posts: got %d, want 1", len(m.TopPosts))
	}
	if _, err := (MockSource{}).FetchPlatformMetrics(context.Background(), "myspace"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown platform err: got %v, want ErrNotFound", err)
	}
}
