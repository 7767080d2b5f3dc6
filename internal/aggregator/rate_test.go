package aggregator

import (
	"testing"

	"campaign-insights-go/internal/types"
)

func TestParseRatePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    RatePolicy
		wantErr bool
	}{
		{"", RateTrust, false},
		{"trust", RateTrust, false},
		{" Derive ", RateDerive, false},
		{"guess", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRatePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRatePolicy(%q) err = %v; wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseRatePolicy(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyRatePolicy(t *testing.T) {
	in := []types.RetailerRecord{
		{ID: "a", Engagement: 8420, Reach: 145000, EngagementRate: 9.99},
		{ID: "b", Engagement: 10, Reach: 0, EngagementRate: 1},
	}

	trusted := ApplyRatePolicy(in, RateTrust)
	if trusted[0].EngagementRate != 9.99 {
		t.Errorf("trust policy changed rate to %v", trusted[0].EngagementRate)
	}

	derived := ApplyRatePolicy(in, RateDerive)
	if derived[0].EngagementRate != 5.81 {
		t.Errorf("derived rate: got %v, want 5.81", derived[0].EngagementRate)
	}
	if derived[1].EngagementRate != 0 {
		t.Errorf("derived rate with zero reach: got %v, want 0", derived[1].EngagementRate)
	}
	if in[0].EngagementRate != 9.99 {
		t.Errorf("ApplyRatePolicy mutated its input")
	}
}

func TestCheckRates(t *testing.T) {
	in := []types.RetailerRecord{
		{ID: "ok", Engagement: 8420, Reach: 145000, EngagementRate: 5.81},
		{ID: "off", Engagement: 2700, Reach: 132000, EngagementRate: 4.5},
	}
	got := CheckRates(in, 0.5)
	if len(got) != 1 || got[0].ID != "off" {
		t.Fatalf("mismatches: got %+v, want only off", got)
	}
	if got[0].Derived != 2.05 {
		t.Errorf("derived: got %v, want 2.05", got[0].Derived)
	}
}
