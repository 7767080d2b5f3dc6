package aggregator

import (
	"sort"

	"campaign-insights-go/internal/types"
)

// Rank returns a copy of scored sorted by score, highest first. The sort is
// stable: equal scores keep their input order.
func Rank(scored []types.ScoredRetailer) []types.ScoredRetailer {
	out := make([]types.ScoredRetailer, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// TopN returns the first n entries of an already ranked list.
func TopN[T any](ranked []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]T, n)
	copy(out, ranked[:n])
	return out
}

// BottomN returns the last n entries of a ranked list, worst first.
func BottomN[T any](ranked []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]T, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		out = append(out, ranked[i])
	}
	return out
}
