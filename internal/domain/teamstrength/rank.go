package teamstrength

import (
	"cmp"
	"slices"
)

// DenseRanks assigns dense ranks to keys, highest key first: equal keys
// share a rank and the next distinct key gets the following integer.
func DenseRanks[K cmp.Ordered](keys []K) []int {
	return denseRanks(keys, func(a, b K) int { return cmp.Compare(b, a) })
}

// DenseRanksAscending is DenseRanks with the lowest key ranked first.
func DenseRanksAscending[K cmp.Ordered](keys []K) []int {
	return denseRanks(keys, cmp.Compare[K])
}

func denseRanks[K cmp.Ordered](keys []K, compare func(a, b K) int) []int {
	ranks := make([]int, len(keys))
	if len(keys) == 0 {
		return ranks
	}

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compare(keys[a], keys[b])
	})

	rank := 1
	ranks[order[0]] = rank
	for i := 1; i < len(order); i++ {
		if compare(keys[order[i-1]], keys[order[i]]) != 0 {
			rank++
		}
		ranks[order[i]] = rank
	}
	return ranks
}
