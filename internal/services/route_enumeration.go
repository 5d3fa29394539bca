package services

import (
	"delivery-cost-service/internal/domain"
	"iter"
	"slices"
)

// CandidateRoutes lazily yields every admissible route for the given
// warehouses: each ordering of the warehouses, and for each ordering each
// choice of detouring to the hub between consecutive warehouse visits.
// Every route ends with a hub visit.
//
// Orderings are generated lexicographically from the sorted warehouse ids.
// Within one ordering, drop patterns are bitmasks counted upwards from 0,
// where bit i set means "visit the hub after the i-th warehouse".
// For n warehouses this yields n! * 2^(n-1) routes. The sequence can be
// ranged over more than once.
func CandidateRoutes(warehouses []string, hub string) iter.Seq[domain.Route] {
	return func(yield func(domain.Route) bool) {
		n := len(warehouses)
		if n == 0 {
			return
		}

		perm := slices.Clone(warehouses)
		slices.Sort(perm)
		perm = slices.Compact(perm)
		n = len(perm)

		patterns := 1 << (n - 1)
		for {
			for mask := 0; mask < patterns; mask++ {
				if !yield(buildRoute(perm, mask, hub)) {
					return
				}
			}
			if !nextPermutation(perm) {
				return
			}
		}
	}
}

// CandidateCount returns how many routes CandidateRoutes yields for n warehouses.
func CandidateCount(n int) int {
	if n <= 0 {
		return 0
	}
	count := 1 << (n - 1)
	for i := 2; i <= n; i++ {
		count *= i
	}
	return count
}

func buildRoute(order []string, mask int, hub string) domain.Route {
	route := make(domain.Route, 0, 2*len(order))
	for i, w := range order {
		route = append(route, w)
		if i < len(order)-1 && mask&(1<<i) != 0 {
			route = append(route, hub)
		}
	}
	return append(route, hub)
}

// nextPermutation rearranges p into the next lexicographic permutation and
// reports false once p is the last one.
func nextPermutation(p []string) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}
