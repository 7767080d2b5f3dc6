package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"campaign-insights-go/internal/types"
)

// Sheet names looked up (case-insensitively) in an xlsx dataset.
const (
	RetailersSheet = "Retailers"
	PlatformsSheet = "Platforms"
	CampaignsSheet = "Campaigns"
)

// ExcelSource reads retailers, platforms and campaigns from an xlsx workbook.
// The workbook is reopened on every call so edits show up without a restart.
// Columns are matched by header name, not position.
type ExcelSource struct {
	Path string
}

func (s ExcelSource) FetchRetailers(ctx context.Context) ([]types.RetailerRecord, error) {
	header, rows, err := s.sheet(RetailersSheet, true)
	if err != nil {
		return nil, err
	}
	col := columns(header)
	var out []types.RetailerRecord
	for _, r := range rows {
		rec := types.RetailerRecord{
			ID:               cell(r, col, "id", "retailerid"),
			Name:             cell(r, col, "name", "retailer", "retailername"),
			Region:           cell(r, col, "region"),
			Posts:            cellInt(r, col, "posts"),
			Engagement:       cellInt(r, col, "engagement", "engagements"),
			Reach:            cellInt(r, col, "reach"),
			EngagementRate:   cellFloat(r, col, "engagementrate", "er"),
			Followers:        cellInt(r, col, "followers"),
			PostingFrequency: cellFloat(r, col, "postingfrequency", "frequency"),
			Growth:           cellFloat(r, col, "growth"),
			TopPlatform:      cell(r, col, "topplatform", "platform"),
		}
		// rows without an identity are notes or totals
		if rec.ID == "" && rec.Name == "" {
			continue
		}
		if rec.ID == "" {
			rec.ID = rec.Name
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s ExcelSource) FetchPlatforms(ctx context.Context) ([]types.PlatformPerformance, error) {
	header, rows, err := s.sheet(PlatformsSheet, false)
	if err != nil {
		return nil, err
	}
	col := columns(header)
	var out []types.PlatformPerformance
	for _, r := range rows {
		p := types.PlatformPerformance{
			Platform:       cell(r, col, "platform", "name"),
			Posts:          cellInt(r, col, "posts"),
			Engagement:     cellInt(r, col, "engagement"),
			Reach:          cellInt(r, col, "reach"),
			Impressions:    cellInt(r, col, "impressions"),
			EngagementRate: cellFloat(r, col, "engagementrate", "er"),
			Growth:         cellFloat(r, col, "growth"),
			TopContentType: cell(r, col, "topcontenttype", "contenttype"),
		}
		if p.Platform == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s ExcelSource) FetchCampaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error) {
	header, rows, err := s.sheet(CampaignsSheet, false)
	if err != nil {
		return nil, err
	}
	col := columns(header)
	var out []types.Campaign
	for _, r := range rows {
		c := types.Campaign{
			ID:        cell(r, col, "id", "campaignid"),
			Name:      cell(r, col, "name", "campaign"),
			Brand:     cell(r, col, "brand"),
			Retailer:  cell(r, col, "retailer"),
			Status:    strings.ToLower(cell(r, col, "status")),
			Platforms: splitList(cell(r, col, "platforms")),
			StartDate: cell(r, col, "startdate", "start"),
			EndDate:   cell(r, col, "enddate", "end"),
			Budget:    cellFloat(r, col, "budget"),
			Posts:     cellInt(r, col, "posts"),
		}
		if c.ID == "" {
			continue
		}
		if (kind == types.RetailerCampaigns) != (c.Retailer != "") {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// FetchPlatformMetrics answers from the Platforms sheet; workbooks carry no
// per-post or daily data.
func (s ExcelSource) FetchPlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error) {
	platforms, err := s.FetchPlatforms(ctx)
	if err != nil {
		return types.PlatformMetrics{}, err
	}
	for _, p := range platforms {
		if strings.EqualFold(p.Platform, platform) {
			return types.PlatformMetrics{
				Overview: types.MetricsOverview{
					Platform:       p.Platform,
					TotalPosts:     p.Posts,
					TotalReach:     p.Reach,
					Impressions:    p.Impressions,
					Engagement:     p.Engagement,
					EngagementRate: p.EngagementRate,
				},
				TopPosts:   []types.TopPost{},
				Engagement: []types.DailyMetric{},
			}, nil
		}
	}
	return types.PlatformMetrics{}, fmt.Errorf("platform %q: %w", platform, ErrNotFound)
}

// sheet returns the header and data rows of the named sheet. With
// firstAsDefault, a workbook lacking the sheet falls back to its first sheet.
func (s ExcelSource) sheet(name string, firstAsDefault bool) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets")
	}
	target := ""
	for _, sh := range sheets {
		if strings.EqualFold(strings.TrimSpace(sh), name) {
			target = sh
			break
		}
	}
	if target == "" {
		if !firstAsDefault {
			return nil, nil, fmt.Errorf("sheet %q: %w", name, ErrNotFound)
		}
		target = sheets[0]
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", target)
	}
	return rows[0], rows[1:], nil
}

// columns maps normalized header names to column indices; the first column
// wins when a header repeats.
func columns(header []string) map[string]int {
	idx := map[string]int{}
	for i, h := range header {
		k := normalizeHeader(h)
		if _, ok := idx[k]; !ok && k != "" {
			idx[k] = i
		}
	}
	return idx
}

// normalizeHeader lowercases and keeps letters and digits, so "Engagement
// Rate (%)", "engagement_rate" and "engagementRate" all match.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func cell(row []string, col map[string]int, names ...string) string {
	for _, n := range names {
		if i, ok := col[n]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
	}
	return ""
}

func cellInt(row []string, col map[string]int, names ...string) int64 {
	return int64(cellFloat(row, col, names...))
}

func cellFloat(row []string, col map[string]int, names ...string) float64 {
	v := cell(row, col, names...)
	v = strings.NewReplacer(",", "", "%", "").Replace(v)
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
