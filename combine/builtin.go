package combine

// SumInt64Fn sums int64 values; the empty sum is 0.
type SumInt64Fn struct{}

func (SumInt64Fn) CreateAccumulator() int64 { return 0 }

func (SumInt64Fn) AddInput(acc int64, input int64) int64 { return acc + input }

func (f SumInt64Fn) AddInputs(acc int64, inputs []int64) int64 {
	for _, v := range inputs {
		acc += v
	}
	return acc
}

func (SumInt64Fn) MergeAccumulators(accs []int64) int64 {
	var total int64
	for _, acc := range accs {
		total += acc
	}
	return total
}

func (SumInt64Fn) ExtractOutput(acc int64) int64 { return acc }

// MeanAccumulator is the (sum, count) pair threaded through MeanFn.
type MeanAccumulator struct {
	Sum   float64
	Count int64
}

// MeanFn computes the arithmetic mean. The mean of zero elements is defined
// as 0.
type MeanFn struct{}

func (MeanFn) CreateAccumulator() MeanAccumulator { return MeanAccumulator{} }

func (MeanFn) AddInput(acc MeanAccumulator, input float64) MeanAccumulator {
	return MeanAccumulator{Sum: acc.Sum + input, Count: acc.Count + 1}
}

func (f MeanFn) AddInputs(acc MeanAccumulator, inputs []float64) MeanAccumulator {
	return AddInputsOf[float64, MeanAccumulator, float64](f, acc, inputs)
}

func (MeanFn) MergeAccumulators(accs []MeanAccumulator) MeanAccumulator {
	var merged MeanAccumulator
	for _, acc := range accs {
		merged.Sum += acc.Sum
		merged.Count += acc.Count
	}
	return merged
}

func (MeanFn) ExtractOutput(acc MeanAccumulator) float64 {
	if acc.Count == 0 {
		return 0
	}
	return acc.Sum / float64(acc.Count)
}

// Ordered covers the types the < operator accepts.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

// MinFn keeps the smallest value seen. The min of zero elements is the zero
// value of T.
func MinFn[T Ordered]() CallableWrapperCombineFn[T] {
	return NewCallableWrapper(func(values []T) T {
		var min T
		for i, v := range values {
			if i == 0 || v < min {
				min = v
			}
		}
		return min
	})
}

// MaxFn keeps the largest value seen. The max of zero elements is the zero
// value of T.
func MaxFn[T Ordered]() CallableWrapperCombineFn[T] {
	return NewCallableWrapper(func(values []T) T {
		var max T
		for i, v := range values {
			if i == 0 || v > max {
				max = v
			}
		}
		return max
	})
}

// CountFn counts its inputs, whatever they are.
type CountFn[T any] struct{}

func (CountFn[T]) CreateAccumulator() int64 { return 0 }

func (CountFn[T]) AddInput(acc int64, _ T) int64 { return acc + 1 }

func (CountFn[T]) AddInputs(acc int64, inputs []T) int64 { return acc + int64(len(inputs)) }

func (CountFn[T]) MergeAccumulators(accs []int64) int64 {
	var total int64
	for _, acc := range accs {
		total += acc
	}
	return total
}

func (CountFn[T]) ExtractOutput(acc int64) int64 { return acc }
