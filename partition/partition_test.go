package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangadi/dataflow-go/pipeerr"
)

func TestApplyRoutesInOrder(t *testing.T) {
	fn := NewCallableWrapper(func(value int, n int) int { return value % n })
	parts, err := Apply[int](fn, 3, []int{0, 1, 2, 3, 4, 5, 7})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, parts[0])
	assert.Equal(t, []int{1, 4, 7}, parts[1])
	assert.Equal(t, []int{2, 5}, parts[2])
}

func TestApplyOutOfBoundsIndex(t *testing.T) {
	fn := NewCallableWrapper(func(value int, n int) int { return n })
	_, err := Apply[int](fn, 2, []int{1})
	require.Error(t, err)
	assert.True(t, pipeerr.IsConfiguration(err))

	fn = NewCallableWrapper(func(value int, n int) int { return -1 })
	_, err = Apply[int](fn, 2, []int{1})
	require.Error(t, err)
	assert.True(t, pipeerr.IsConfiguration(err))
}

func TestApplyInvalidCount(t *testing.T) {
	fn := NewCallableWrapper(func(value int, n int) int { return 0 })
	_, err := Apply[int](fn, 0, []int{1})
	require.Error(t, err)
	assert.True(t, pipeerr.IsConfiguration(err))
}

func TestApplyEmptyInput(t *testing.T) {
	fn := NewCallableWrapper(func(value int, n int) int { return 0 })
	parts, err := Apply[int](fn, 2, nil)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Empty(t, parts[0])
	assert.Empty(t, parts[1])
}
