package combine

// WrappedAccumulator is the accumulator of a callable-wrapped reducer. The
// zero-input state is a distinguished empty sentinel rather than a value, so
// the wrapped function defines its own identity via fn(nil).
type WrappedAccumulator[T any] struct {
	value T
	empty bool
}

// CallableWrapperCombineFn adapts a plain reducer over a slice (like sum,
// min, max) to the four-operation protocol. The function must be reflexive:
// capable of accepting its own prior output as one more input value. For
// correct results under partitioning it must also be associative and
// commutative over partial outputs.
type CallableWrapperCombineFn[T any] struct {
	fn func([]T) T
}

func NewCallableWrapper[T any](fn func([]T) T) CallableWrapperCombineFn[T] {
	if fn == nil {
		panic("combine: nil reducer")
	}
	return CallableWrapperCombineFn[T]{fn: fn}
}

func (c CallableWrapperCombineFn[T]) CreateAccumulator() WrappedAccumulator[T] {
	return WrappedAccumulator[T]{empty: true}
}

func (c CallableWrapperCombineFn[T]) AddInput(acc WrappedAccumulator[T], input T) WrappedAccumulator[T] {
	return c.AddInputs(acc, []T{input})
}

// AddInputs reduces the new elements directly when the accumulator is still
// empty; otherwise the previous partial output is re-reduced as one more
// input alongside them.
func (c CallableWrapperCombineFn[T]) AddInputs(acc WrappedAccumulator[T], inputs []T) WrappedAccumulator[T] {
	if acc.empty {
		return WrappedAccumulator[T]{value: c.fn(inputs)}
	}
	union := make([]T, 0, len(inputs)+1)
	union = append(union, acc.value)
	union = append(union, inputs...)
	return WrappedAccumulator[T]{value: c.fn(union)}
}

// MergeAccumulators reduces the partial outputs directly, assuming the
// wrapped function is associative over them. Empty accumulators contribute
// nothing; merging none yields the empty accumulator.
func (c CallableWrapperCombineFn[T]) MergeAccumulators(accs []WrappedAccumulator[T]) WrappedAccumulator[T] {
	values := make([]T, 0, len(accs))
	for _, acc := range accs {
		if !acc.empty {
			values = append(values, acc.value)
		}
	}
	if len(values) == 0 {
		return WrappedAccumulator[T]{empty: true}
	}
	return WrappedAccumulator[T]{value: c.fn(values)}
}

// ExtractOutput of the empty accumulator is fn(nil), the function's identity
// for zero elements; otherwise the accumulator already is the output.
func (c CallableWrapperCombineFn[T]) ExtractOutput(acc WrappedAccumulator[T]) T {
	if acc.empty {
		return c.fn(nil)
	}
	return acc.value
}
