package aggregator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"campaign-insights-go/internal/types"
)

// Criteria narrows a scored retailer list. Empty fields match everything.
type Criteria struct {
	Region   string
	Platform string
}

func Filter(records []types.ScoredRetailer, c Criteria) []types.ScoredRetailer {
	out := make([]types.ScoredRetailer, 0, len(records))
	for _, r := range records {
		if c.Region != "" && !strings.EqualFold(r.Region, c.Region) {
			continue
		}
		if c.Platform != "" && !strings.EqualFold(r.TopPlatform, c.Platform) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ErrUnknownSortField is returned by SortBy for a field it cannot order on.
var ErrUnknownSortField = errors.New("unknown sort field")

var sortKeys = map[string]func(types.ScoredRetailer) float64{
	"score":            func(r types.ScoredRetailer) float64 { return float64(r.Score) },
	"posts":            func(r types.ScoredRetailer) float64 { return float64(r.Posts) },
	"engagement":       func(r types.ScoredRetailer) float64 { return float64(r.Engagement) },
	"reach":            func(r types.ScoredRetailer) float64 { return float64(r.Reach) },
	"engagementrate":   func(r types.ScoredRetailer) float64 { return r.EngagementRate },
	"followers":        func(r types.ScoredRetailer) float64 { return float64(r.Followers) },
	"postingfrequency": func(r types.ScoredRetailer) float64 { return r.PostingFrequency },
	"growth":           func(r types.ScoredRetailer) float64 { return r.Growth },
}

// SortBy returns a copy of records stably sorted on a numeric field or on
// name. Field names are matched case-insensitively.
func SortBy(records []types.ScoredRetailer, field string, desc bool) ([]types.ScoredRetailer, error) {
	out := make([]types.ScoredRetailer, len(records))
	copy(out, records)

	f := strings.ToLower(field)
	if f == "" || f == "name" {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Name > out[j].Name
			}
			return out[i].Name < out[j].Name
		})
		return out, nil
	}
	key, ok := sortKeys[f]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSortField, field)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out, nil
}
