// package bin quantizes continuous values into equal-width intervals.
package bin

import "gonum.org/v1/gonum/floats"

// Assign maps each value to a bin id in [0, n), splitting the range
// [min(values), max(values)] into n equal-width intervals. Intervals are
// half-open [lo, hi); the last interval is closed on the right so the
// maximum lands in bin n-1. If all values are equal, every value lands in
// bin 0. Ids are stable for a fixed n and value range.
//
// Assign panics if n < 1 or values is empty.
func Assign(values []float64, n int) []int {
	if n < 1 {
		panic("bin: nonpositive bin count")
	}
	if len(values) == 0 {
		panic("bin: no values")
	}
	lo := floats.Min(values)
	hi := floats.Max(values)
	ids := make([]int, len(values))
	if hi == lo {
		return ids
	}
	width := (hi - lo) / float64(n)
	for i, v := range values {
		id := int((v - lo) / width)
		if id >= n {
			// v is the maximum, or rounding spilled over the top edge.
			id = n - 1
		}
		ids[i] = id
	}
	return ids
}

// Edges returns the n+1 interval boundaries splitting [min, max] into n
// equal-width bins. Bin i spans [edges[i], edges[i+1]).
func Edges(min, max float64, n int) []float64 {
	edges := make([]float64, n+1)
	width := (max - min) / float64(n)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[n] = max
	return edges
}

// Counts tallies bin occupancy for an assignment produced by Assign.
func Counts(ids []int, n int) []int {
	counts := make([]int, n)
	for _, id := range ids {
		counts[id]++
	}
	return counts
}
