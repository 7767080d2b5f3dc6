package dataset

import (
	"context"
	"errors"

	"campaign-insights-go/internal/client"
	"campaign-insights-go/internal/logger"
	"campaign-insights-go/internal/types"
)

// ErrNotFound is returned when a source has no data for the requested key.
var ErrNotFound = errors.New("not found")

// Source supplies the raw records the analytics are computed from. Callers
// receive fresh slices on every call and may modify them.
type Source interface {
	FetchRetailers(ctx context.Context) ([]types.RetailerRecord, error)
	FetchPlatforms(ctx context.Context) ([]types.PlatformPerformance, error)
	FetchCampaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error)
	FetchPlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error)
}

// APISource reads from the upstream campaign API.
type APISource struct {
	Client *client.Client
}

func (s APISource) FetchRetailers(ctx context.Context) ([]types.RetailerRecord, error) {
	return s.Client.Retailers(ctx)
}

func (s APISource) FetchPlatforms(ctx context.Context) ([]types.PlatformPerformance, error) {
	return s.Client.Platforms(ctx)
}

func (s APISource) FetchCampaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error) {
	return s.Client.Campaigns(ctx, kind)
}

func (s APISource) FetchPlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error) {
	return s.Client.PlatformMetrics(ctx, platform)
}

// FallbackSource serves from Primary and, when Primary fails for any reason,
// logs the failure and serves Fallback instead.
type FallbackSource struct {
	Primary  Source
	Fallback Source
	Log      *logger.Logger
}

func (s FallbackSource) FetchRetailers(ctx context.Context) ([]types.RetailerRecord, error) {
	v, err := s.Primary.FetchRetailers(ctx)
	if err == nil {
		return v, nil
	}
	s.degraded("retailers", err)
	return s.Fallback.FetchRetailers(ctx)
}

func (s FallbackSource) FetchPlatforms(ctx context.Context) ([]types.PlatformPerformance, error) {
	v, err := s.Primary.FetchPlatforms(ctx)
	if err == nil {
		return v, nil
	}
	s.degraded("platforms", err)
	return s.Fallback.FetchPlatforms(ctx)
}

func (s FallbackSource) FetchCampaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error) {
	v, err := s.Primary.FetchCampaigns(ctx, kind)
	if err == nil {
		return v, nil
	}
	s.degraded(string(kind)+" campaigns", err)
	return s.Fallback.FetchCampaigns(ctx, kind)
}

func (s FallbackSource) FetchPlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error) {
	v, err := s.Primary.FetchPlatformMetrics(ctx, platform)
	if err == nil {
		return v, nil
	}
	s.degraded("platform metrics", err)
	return s.Fallback.FetchPlatformMetrics(ctx, platform)
}

func (s FallbackSource) degraded(what string, err error) {
	if s.Log == nil {
		return
	}
	s.Log.WithError(err).WithField("resource", what).Warn("primary source failed, serving fallback data")
}
