package aggregator

import (
	"testing"

	"campaign-insights-go/internal/types"
)

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		rate, growth float64
		want         types.Tier
	}{
		{5.81, 18.5, types.TierExcellent},
		{5.81, 9, types.TierGood},
		{3.2, 8.4, types.TierGood},
		{2.05, 1, types.TierAverage},
		{1.1, 6.7, types.TierAverage},
		{1.1, -2, types.TierPoor},
		{0, 0, types.TierPoor},
	}
	for _, tt := range tests {
		if got := th.Classify(tt.rate, tt.growth); got != tt.want {
			t.Errorf("Classify(%v, %v) = %s; want %s", tt.rate, tt.growth, got, tt.want)
		}
	}
}
