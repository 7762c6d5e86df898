// Package element holds the value types flowing through the execution core:
// key/value pairs, reified windowed values, and emitted panes.
package element

import (
	"github.com/rangadi/dataflow-go/window"
)

// KV is a two-component key/value pair.
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

// WindowedValue is a value reified with its event timestamp and the set of
// windows it belongs to. Immutable once reified.
type WindowedValue[V any] struct {
	Value     V
	Timestamp int64
	Windows   []window.Window
}

// NewWindowedValue reifies value into the given windows. A nil window set
// places the value in the global window.
func NewWindowedValue[V any](value V, timestamp int64, windows []window.Window) WindowedValue[V] {
	if len(windows) == 0 {
		windows = []window.Window{window.GlobalWindow{}}
	}
	return WindowedValue[V]{Value: value, Timestamp: timestamp, Windows: windows}
}

// Pane is one unit of emitted grouped output: all buffered values for one
// (key, window) released by a trigger firing. Timestamp is the window's end.
type Pane[K comparable, V any] struct {
	Key       K
	Window    window.Window
	Timestamp int64
	Values    []V
}

// CombinedPane is a pane whose values were folded through a combiner.
type CombinedPane[K comparable, O any] struct {
	Key       K
	Window    window.Window
	Timestamp int64
	Value     O
}
