package utils

// Sum adds up values[from:to]. Bounds are clamped to the slice.
func Sum(values []float64, from, to int) float64 {
	from = max(from, 0)
	to = min(to, len(values))
	total := 0.0
	for i := from; i < to; i++ {
		total += values[i]
	}
	return total
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
