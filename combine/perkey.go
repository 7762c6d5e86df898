package combine

import (
	"github.com/rangadi/dataflow-go/element"
)

const defaultFanout = 3

type options struct {
	fanout int
}

type Option func(*options)

// WithFanout sets how many independent accumulators a grouped value list is
// round-robin split across before merging. The split exists to force every
// CombineFn through its merge path, proving associativity/commutativity on
// ordinary inputs; any fanout must extract to the same output.
func WithFanout(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.fanout = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{fanout: defaultFanout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PerKey reduces one key's grouped values. The values are split round-robin
// by index modulo the fanout, each sub-batch folded into its own fresh
// accumulator, the partial accumulators merged, and the output extracted.
// For a lawful CombineFn the result equals Apply(fn, values) for any fanout.
func PerKey[I, A, O any](fn CombineFn[I, A, O], values []I, opts ...Option) O {
	o := buildOptions(opts)
	var accs []A
	for k := 0; k < o.fanout && k < len(values); k++ {
		var batch []I
		for i := k; i < len(values); i += o.fanout {
			batch = append(batch, values[i])
		}
		accs = append(accs, fn.AddInputs(fn.CreateAccumulator(), batch))
	}
	return fn.ExtractOutput(fn.MergeAccumulators(accs))
}

// GroupedValues folds each pane's value list through PerKey, turning grouped
// panes into combined panes.
func GroupedValues[K comparable, I, A, O any](fn CombineFn[I, A, O], panes []element.Pane[K, I], opts ...Option) []element.CombinedPane[K, O] {
	out := make([]element.CombinedPane[K, O], 0, len(panes))
	for _, pane := range panes {
		out = append(out, element.CombinedPane[K, O]{
			Key:       pane.Key,
			Window:    pane.Window,
			Timestamp: pane.Timestamp,
			Value:     PerKey(fn, pane.Values, opts...),
		})
	}
	return out
}

// Globally reduces a whole collection to one output. Empty input yields the
// CombineFn's identity output.
func Globally[I, A, O any](fn CombineFn[I, A, O], elements []I, opts ...Option) O {
	return PerKey(fn, elements, opts...)
}

// GloballyWithoutDefaults is Globally minus the identity fallback: the second
// return is false when the input was empty and no output should be produced.
func GloballyWithoutDefaults[I, A, O any](fn CombineFn[I, A, O], elements []I, opts ...Option) (O, bool) {
	if len(elements) == 0 {
		var zero O
		return zero, false
	}
	return PerKey(fn, elements, opts...), true
}
