package stats

import (
	"sort"
)

// Sum returns the sum of all counts
func Sum(counts []int) int {
	var sum int
	for _, c := range counts {
		sum += c
	}
	return sum
}

// Mean calculates the arithmetic mean of the counts
func Mean(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	return float64(Sum(counts)) / float64(len(counts))
}

// Median calculates the median count
func Median(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}

	// Copy so the caller's order is kept
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// MinMax returns the smallest and largest count, or zeros for no counts
func MinMax(counts []int) (min, max int) {
	if len(counts) == 0 {
		return 0, 0
	}

	min, max = counts[0], counts[0]
	for _, c := range counts[1:] {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return min, max
}
