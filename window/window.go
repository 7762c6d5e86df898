// Package window defines event-time windows and the assigners that place
// elements into them. Assignment is a pure function of (value, timestamp,
// existing windows); downstream grouping keys on window equality, so two
// calls with identical inputs must produce identical window sets.
package window

import (
	"fmt"
	"math"
)

const (
	// MinTimestamp is the earliest representable event timestamp (Unix millis).
	MinTimestamp int64 = math.MinInt64
	// MaxTimestamp is the latest representable event timestamp. Draining
	// timers at MaxTimestamp models "all input has been observed".
	MaxTimestamp int64 = math.MaxInt64
)

// Window is one unit of event-time grouping. End is the output timestamp of
// any pane the window produces. Key is a stable identity string used for map
// keys and equality.
type Window interface {
	Start() int64
	End() int64
	// MaxTimestamp is the latest timestamp an element may carry and still
	// belong to this window.
	MaxTimestamp() int64
	Key() string
	Equals(other Window) bool
}

// GlobalWindow spans all of time. Every GlobalWindow equals every other.
type GlobalWindow struct{}

func (GlobalWindow) Start() int64        { return MinTimestamp }
func (GlobalWindow) End() int64          { return MaxTimestamp }
func (GlobalWindow) MaxTimestamp() int64 { return MaxTimestamp }
func (GlobalWindow) Key() string         { return "global" }

func (GlobalWindow) Equals(other Window) bool {
	_, ok := other.(GlobalWindow)
	return ok
}

// IntervalWindow is the half-open interval [start, end).
type IntervalWindow struct {
	start int64
	end   int64
}

func NewIntervalWindow(start, end int64) IntervalWindow {
	return IntervalWindow{start: start, end: end}
}

func (w IntervalWindow) Start() int64        { return w.start }
func (w IntervalWindow) End() int64          { return w.end }
func (w IntervalWindow) MaxTimestamp() int64 { return w.end - 1 }

func (w IntervalWindow) Key() string {
	return fmt.Sprintf("[%d,%d)", w.start, w.end)
}

func (w IntervalWindow) Equals(other Window) bool {
	o, ok := other.(IntervalWindow)
	return ok && o.start == w.start && o.end == w.end
}

// Intersects reports whether the two intervals overlap or abut such that a
// session gap would join them.
func (w IntervalWindow) Intersects(o IntervalWindow) bool {
	return w.start < o.end && o.start < w.end
}

// Span returns the smallest interval covering both windows.
func (w IntervalWindow) Span(o IntervalWindow) IntervalWindow {
	start := w.start
	if o.start < start {
		start = o.start
	}
	end := w.end
	if o.end > end {
		end = o.end
	}
	return IntervalWindow{start: start, end: end}
}
