package aggregator

import (
	"fmt"
	"math"
	"strings"

	"campaign-insights-go/internal/types"
)

// RatePolicy decides where a retailer's engagement rate comes from.
type RatePolicy string

const (
	// RateTrust keeps the supplied engagementRate.
	RateTrust RatePolicy = "trust"
	// RateDerive recomputes engagement/reach*100 and ignores the supplied value.
	RateDerive RatePolicy = "derive"
)

func ParseRatePolicy(s string) (RatePolicy, error) {
	switch p := RatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", RateTrust:
		return RateTrust, nil
	case RateDerive:
		return RateDerive, nil
	default:
		return "", fmt.Errorf("unknown rate policy %q", s)
	}
}

// DerivedRate is engagement over reach as a percentage, 0 when reach is 0.
func DerivedRate(r types.RetailerRecord) float64 {
	return round2(ratio(float64(r.Engagement), float64(r.Reach)) * 100)
}

// ApplyRatePolicy returns a copy of records with engagement rates set per policy.
func ApplyRatePolicy(records []types.RetailerRecord, policy RatePolicy) []types.RetailerRecord {
	out := make([]types.RetailerRecord, len(records))
	copy(out, records)
	if policy != RateDerive {
		return out
	}
	for i := range out {
		out[i].EngagementRate = DerivedRate(out[i])
	}
	return out
}

// RateMismatch describes a record whose supplied engagement rate disagrees
// with its engagement and reach.
type RateMismatch struct {
	ID       string  `json:"id"`
	Supplied float64 `json:"supplied"`
	Derived  float64 `json:"derived"`
}

// CheckRates lists records whose supplied rate is more than tolerance
// percentage points away from the derived one.
func CheckRates(records []types.RetailerRecord, tolerance float64) []RateMismatch {
	var out []RateMismatch
	for _, r := range records {
		d := DerivedRate(r)
		if math.Abs(r.EngagementRate-d) > tolerance {
			out = append(out, RateMismatch{ID: r.ID, Supplied: r.EngagementRate, Derived: d})
		}
	}
	return out
}
