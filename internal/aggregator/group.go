package aggregator

import (
	"strings"

	"campaign-insights-go/internal/types"
)

// Group is one partition produced by GroupBy.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions items by key. Groups appear in the order their key was
// first seen and are never empty.
func GroupBy[T any, K comparable](items []T, key func(T) K) []Group[K, T] {
	index := map[K]int{}
	var groups []Group[K, T]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Lookup returns the items grouped under key, or nil.
func Lookup[K comparable, T any](groups []Group[K, T], key K) []T {
	for _, g := range groups {
		if g.Key == key {
			return g.Items
		}
	}
	return nil
}

// ByRegion keys a retailer by its region.
func ByRegion(r types.RetailerRecord) string { return r.Region }

// ByPlatform keys a retailer by its top platform, case-folded.
func ByPlatform(r types.RetailerRecord) string { return strings.ToLower(r.TopPlatform) }
