package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAt(t *testing.T) {
	items := []int{1, 2, 5}
	items = InsertAt(items, 2, 3, 4)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)

	items = InsertAt(items, 0, 0)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, items)

	items = InsertAt(items, len(items), 6)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, items)
}

func TestInsertAtOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { InsertAt([]int{1}, 2, 3) })
	assert.Panics(t, func() { InsertAt([]int{1}, -1, 3) })
}

func TestRemoveAt(t *testing.T) {
	items := []string{"a", "b", "c"}
	items = RemoveAt(items, 1)
	assert.Equal(t, []string{"a", "c"}, items)
	items = RemoveAt(items, 1)
	assert.Equal(t, []string{"a"}, items)
	assert.Panics(t, func() { RemoveAt(items, 1) })
}

func TestReplaceAt(t *testing.T) {
	items := []int{1, 9, 4}
	items = ReplaceAt(items, 1, 2, 3)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
}

func TestSum(t *testing.T) {
	values := []float64{10, 20, 30}
	assert.Equal(t, 0.0, Sum(values, 0, 0))
	assert.Equal(t, 30.0, Sum(values, 0, 2))
	assert.Equal(t, 50.0, Sum(values, 1, 10))
	assert.Equal(t, 60.0, Sum(values, -3, 3))
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true) })
	assert.PanicsWithValue(t, "failed assertion", func() { Assert(false) })
	assert.PanicsWithValue(t, "boom", func() { Assert(false, "boom") })
	assert.PanicsWithValue(t, "row 3", func() { Assertf(false, "row %d", 3) })
	assert.NotPanics(t, func() { NoError(nil) })
	assert.PanicsWithError(t, "bad", func() { NoError(errors.New("bad")) })
}
