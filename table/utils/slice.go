package utils

// InsertAt returns items with values inserted before position i. i may equal
// len(items) to append.
func InsertAt[T any](items []T, i int, values ...T) []T {
	Assertf(i >= 0 && i <= len(items), "insert index %d out of range [0,%d]", i, len(items))
	if len(values) == 0 {
		return items
	}
	items = append(items, values...)
	copy(items[i+len(values):], items[i:len(items)-len(values)])
	copy(items[i:], values)
	return items
}

// RemoveAt removes the element at position i, keeping order.
func RemoveAt[T any](items []T, i int) []T {
	Assertf(i >= 0 && i < len(items), "remove index %d out of range [0,%d)", i, len(items))
	copy(items[i:], items[i+1:])
	var zero T
	items[len(items)-1] = zero
	return items[:len(items)-1]
}

// ReplaceAt replaces the element at position i with values.
func ReplaceAt[T any](items []T, i int, values ...T) []T {
	items = RemoveAt(items, i)
	return InsertAt(items, i, values...)
}
