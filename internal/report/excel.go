package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"campaign-insights-go/internal/processor"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the overview as a workbook with Rankings, Regions and
// Platforms sheets.
func WriteXLSX(w io.Writer, ov processor.Overview) error {
	f := excelize.NewFile()
	defer f.Close()

	rankings := [][]any{{"Rank", "ID", "Retailer", "Region", "Score", "Tier", "Engagement Rate", "Growth", "Engagement", "Reach", "Top Platform"}}
	for i, r := range ov.Rankings.Ranked {
		rankings = append(rankings, []any{i + 1, r.ID, r.Name, r.Region, r.Score, string(r.Tier), r.EngagementRate, r.Growth, r.Engagement, r.Reach, r.TopPlatform})
	}

	regions := [][]any{{"Region", "Retailers", "Posts", "Engagement", "Reach", "Engagement Rate", "Growth", "Top Retailer", "Performance", "Tier"}}
	for _, r := range ov.Regions {
		regions = append(regions, []any{r.Region, r.Retailers, r.Posts, r.Engagement, r.Reach, r.EngagementRate, r.Growth, r.TopRetailer, r.Performance, string(r.Tier)})
	}

	platforms := [][]any{{"Platform", "Posts", "Engagement", "Reach", "Impressions", "Engagement Rate", "Growth", "Top Content Type", "Engagement Share", "Reach Share"}}
	for i, p := range ov.Platforms.Platforms {
		row := []any{p.Platform, p.Posts, p.Engagement, p.Reach, p.Impressions, p.EngagementRate, p.Growth, p.TopContentType}
		if i < len(ov.Platforms.Comparisons) {
			c := ov.Platforms.Comparisons[i]
			row = append(row, c.EngagementShare, c.ReachShare)
		}
		platforms = append(platforms, row)
	}

	if err := f.SetSheetName("Sheet1", "Rankings"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, s := range []struct {
		name string
		rows [][]any
	}{
		{"Rankings", rankings},
		{"Regions", regions},
		{"Platforms", platforms},
	} {
		if s.name != "Rankings" {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", s.name, err)
			}
		}
		if err := writeRows(f, s.name, s.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, ref, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
