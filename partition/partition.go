// Package partition splits a collection into a fixed number of
// sub-collections by a user-supplied index function.
package partition

import (
	"github.com/rangadi/dataflow-go/pipeerr"
)

// Fn maps an element to its partition index in [0, n).
type Fn[T any] interface {
	PartitionFor(value T, n int) int
}

// CallableWrapperPartitionFn adapts a plain function to Fn.
type CallableWrapperPartitionFn[T any] struct {
	fn func(value T, n int) int
}

func NewCallableWrapper[T any](fn func(value T, n int) int) CallableWrapperPartitionFn[T] {
	if fn == nil {
		panic("partition: nil partition function")
	}
	return CallableWrapperPartitionFn[T]{fn: fn}
}

func (c CallableWrapperPartitionFn[T]) PartitionFor(value T, n int) int {
	return c.fn(value, n)
}

// Apply routes every element into one of n partitions, in input order. An
// index outside [0, n) is a configuration error.
func Apply[T any](fn Fn[T], n int, elements []T) ([][]T, error) {
	if n <= 0 {
		return nil, pipeerr.Errorf(pipeerr.KindConfiguration,
			"partition count must be positive, got %d", n)
	}
	parts := make([][]T, n)
	for _, value := range elements {
		index := fn.PartitionFor(value, n)
		if index < 0 || index >= n {
			return nil, pipeerr.Errorf(pipeerr.KindConfiguration,
				"PartitionFn specified out-of-bounds partition index: %d not in [0, %d)", index, n)
		}
		parts[index] = append(parts[index], value)
	}
	return parts, nil
}
