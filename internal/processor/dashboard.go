package processor

import (
	"context"
	"errors"
	"fmt"

	"campaign-insights-go/internal/aggregator"
	"campaign-insights-go/internal/dataset"
	"campaign-insights-go/internal/logger"
	"campaign-insights-go/internal/types"
)

// Options tune how raw records are interpreted.
type Options struct {
	RatePolicy    aggregator.RatePolicy
	RateTolerance float64
	Tiers         aggregator.Thresholds
}

// Service computes the dashboard views from a data source. Nothing is cached:
// every call reloads from the source and recomputes.
type Service struct {
	src  dataset.Source
	opts Options
	log  *logger.Logger
}

func New(src dataset.Source, opts Options, log *logger.Logger) *Service {
	return &Service{src: src, opts: opts, log: log.Component("dashboard")}
}

// Rankings is the leaderboard view.
type Rankings struct {
	Ranked []types.ScoredRetailer `json:"ranked"`
	Top    []types.ScoredRetailer `json:"top"`
	Bottom []types.ScoredRetailer `json:"bottom"`
}

// PlatformReport pairs each platform's figures with its comparison ratios.
type PlatformReport struct {
	Platforms   []types.PlatformPerformance `json:"platforms"`
	Comparisons []types.PlatformComparison  `json:"comparisons"`
	Best        string                      `json:"best"`
}

// Overview is everything the dashboard landing page needs in one payload.
type Overview struct {
	Totals    aggregator.Totals         `json:"totals"`
	Regions   []types.RegionalAggregate `json:"regions"`
	Rankings  Rankings                  `json:"rankings"`
	Platforms PlatformReport            `json:"platforms"`
}

// scored loads retailers, applies the rate policy and scores them against
// the full set.
func (s *Service) scored(ctx context.Context) ([]types.RetailerRecord, []types.ScoredRetailer, error) {
	raw, err := s.src.FetchRetailers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load retailers: %w", err)
	}

	if s.opts.RatePolicy != aggregator.RateDerive {
		for _, m := range aggregator.CheckRates(raw, s.opts.RateTolerance) {
			s.log.WithFields(map[string]interface{}{
				"retailer": m.ID,
				"supplied": m.Supplied,
				"derived":  m.Derived,
			}).Warn("engagement rate disagrees with engagement/reach")
		}
	}

	records := aggregator.ApplyRatePolicy(raw, s.opts.RatePolicy)
	return records, aggregator.ScoreAll(records, s.opts.Tiers), nil
}

// Retailers returns scored retailers narrowed by c and sorted on field.
// Scores are always relative to the unfiltered set.
func (s *Service) Retailers(ctx context.Context, c aggregator.Criteria, field string, desc bool) ([]types.ScoredRetailer, error) {
	_, scored, err := s.scored(ctx)
	if err != nil {
		return nil, err
	}
	return aggregator.SortBy(aggregator.Filter(scored, c), field, desc)
}

func (s *Service) Regions(ctx context.Context) ([]types.RegionalAggregate, error) {
	records, _, err := s.scored(ctx)
	if err != nil {
		return nil, err
	}
	return aggregator.Regional(records, s.opts.Tiers), nil
}

func (s *Service) Rankings(ctx context.Context, top, bottom int) (Rankings, error) {
	_, scored, err := s.scored(ctx)
	if err != nil {
		return Rankings{}, err
	}
	return rank(scored, top, bottom), nil
}

func rank(scored []types.ScoredRetailer, top, bottom int) Rankings {
	ranked := aggregator.Rank(scored)
	return Rankings{
		Ranked: ranked,
		Top:    aggregator.TopN(ranked, top),
		Bottom: aggregator.BottomN(ranked, bottom),
	}
}

func (s *Service) Platforms(ctx context.Context) (PlatformReport, error) {
	platforms, err := s.src.FetchPlatforms(ctx)
	if err != nil {
		return PlatformReport{}, fmt.Errorf("load platforms: %w", err)
	}
	report := PlatformReport{
		Platforms:   platforms,
		Comparisons: aggregator.ComparePlatforms(platforms),
	}
	if ranked := aggregator.RankPlatforms(platforms); len(ranked) > 0 {
		report.Best = ranked[0].Platform
	}
	return report, nil
}

func (s *Service) PlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error) {
	m, err := s.src.FetchPlatformMetrics(ctx, platform)
	if err != nil {
		return types.PlatformMetrics{}, fmt.Errorf("load platform metrics: %w", err)
	}
	return m, nil
}

func (s *Service) Campaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error) {
	c, err := s.src.FetchCampaigns(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s campaigns: %w", kind, err)
	}
	if c == nil {
		c = []types.Campaign{}
	}
	return c, nil
}

// Overview loads retailers and platforms once and builds every view from
// that snapshot. A source without platform data yields an empty platform
// report rather than failing the whole overview.
func (s *Service) Overview(ctx context.Context, top, bottom int) (Overview, error) {
	records, scored, err := s.scored(ctx)
	if err != nil {
		return Overview{}, err
	}
	platforms, err := s.Platforms(ctx)
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		s.log.WithError(err).Warn("source has no platform data, overview omits platforms")
		platforms = PlatformReport{
			Platforms:   []types.PlatformPerformance{},
			Comparisons: []types.PlatformComparison{},
		}
	case err != nil:
		return Overview{}, err
	}
	return Overview{
		Totals:    aggregator.Aggregate(records),
		Regions:   aggregator.Regional(records, s.opts.Tiers),
		Rankings:  rank(scored, top, bottom),
		Platforms: platforms,
	}, nil
}
