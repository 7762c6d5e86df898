// Package combine implements the accumulator algebra used for all per-key
// and global reductions: create a fresh accumulator, fold inputs into it,
// merge accumulators from independent folds, extract the final output.
//
// MergeAccumulators must behave as an associative, commutative reduction;
// every grouping of the input into partial folds must extract to the same
// output. The engine enforces only the structural contract, never purity.
package combine

// CombineFn is the four-operation reduction protocol.
type CombineFn[I, A, O any] interface {
	// CreateAccumulator returns a fresh accumulator representing the
	// combination of zero values.
	CreateAccumulator() A
	// AddInput folds one element into the accumulator.
	AddInput(acc A, input I) A
	// AddInputs folds a batch of elements into the accumulator. AddInputsOf
	// gives the canonical loop for implementations with no bulk shortcut.
	AddInputs(acc A, inputs []I) A
	// MergeAccumulators reduces any number of accumulators, including zero
	// or one, to a single accumulator.
	MergeAccumulators(accs []A) A
	// ExtractOutput converts the final accumulator into the output value.
	// The accumulator must not be reused afterwards.
	ExtractOutput(acc A) O
}

// AddInputsOf folds inputs one at a time, for CombineFns whose AddInputs has
// no more efficient bulk form.
func AddInputsOf[I, A, O any](fn CombineFn[I, A, O], acc A, inputs []I) A {
	for _, input := range inputs {
		acc = fn.AddInput(acc, input)
	}
	return acc
}

// Apply is the reference single-shot reduction. Every partitioned path must
// produce the same result as Apply for a lawful CombineFn.
func Apply[I, A, O any](fn CombineFn[I, A, O], elements []I) O {
	return fn.ExtractOutput(fn.AddInputs(fn.CreateAccumulator(), elements))
}
