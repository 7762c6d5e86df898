package window

import (
	"sort"
	"time"

	"github.com/rangadi/dataflow-go/pipeerr"
)

// Assigner maps an element to the set of windows it belongs to. It must be
// deterministic and side-effect free.
type Assigner interface {
	AssignWindows(value interface{}, timestamp int64, existing []Window) ([]Window, error)
}

// Merge records one merge decision made by a MergingAssigner: all Sources
// collapse into Result.
type Merge struct {
	Sources []Window
	Result  Window
}

// MergingAssigner is the capability exposed by assigners whose windows can
// merge after assignment (sessions). Non-merging assigners do not implement
// it.
type MergingAssigner interface {
	Assigner
	MergeWindows(windows []Window) []Merge
}

// GlobalWindows assigns every element to the single GlobalWindow.
type GlobalWindows struct{}

func NewGlobalWindows() GlobalWindows { return GlobalWindows{} }

func (GlobalWindows) AssignWindows(interface{}, int64, []Window) ([]Window, error) {
	return []Window{GlobalWindow{}}, nil
}

// FixedWindows assigns each element to exactly one interval of a fixed size.
type FixedWindows struct {
	size   int64
	offset int64
}

func NewFixedWindows(size time.Duration) (FixedWindows, error) {
	return NewFixedWindowsWithOffset(size, 0)
}

func NewFixedWindowsWithOffset(size, offset time.Duration) (FixedWindows, error) {
	if size <= 0 {
		return FixedWindows{}, pipeerr.Errorf(pipeerr.KindConfiguration,
			"fixed window size must be positive, got %s", size)
	}
	return FixedWindows{size: size.Milliseconds(), offset: offset.Milliseconds() % size.Milliseconds()}, nil
}

func (f FixedWindows) AssignWindows(_ interface{}, timestamp int64, _ []Window) ([]Window, error) {
	start := timestamp - floorMod(timestamp-f.offset, f.size)
	return []Window{IntervalWindow{start: start, end: start + f.size}}, nil
}

// SlidingWindows assigns each element to every period-aligned interval of the
// given size containing its timestamp.
type SlidingWindows struct {
	size   int64
	period int64
	offset int64
}

func NewSlidingWindows(size, period time.Duration) (SlidingWindows, error) {
	if size <= 0 {
		return SlidingWindows{}, pipeerr.Errorf(pipeerr.KindConfiguration,
			"sliding window size must be positive, got %s", size)
	}
	if period <= 0 {
		return SlidingWindows{}, pipeerr.Errorf(pipeerr.KindConfiguration,
			"sliding window period must be positive, got %s", period)
	}
	return SlidingWindows{size: size.Milliseconds(), period: period.Milliseconds()}, nil
}

func (s SlidingWindows) AssignWindows(_ interface{}, timestamp int64, _ []Window) ([]Window, error) {
	var windows []Window
	lastStart := timestamp - floorMod(timestamp-s.offset, s.period)
	for start := lastStart; start > timestamp-s.size; start -= s.period {
		windows = append(windows, IntervalWindow{start: start, end: start + s.size})
	}
	return windows, nil
}

// Sessions assigns each element to a proto-window [t, t+gap); proto-windows
// of one key that overlap are merged into their span before triggering.
type Sessions struct {
	gap int64
}

func NewSessions(gap time.Duration) (Sessions, error) {
	if gap <= 0 {
		return Sessions{}, pipeerr.Errorf(pipeerr.KindConfiguration,
			"session gap must be positive, got %s", gap)
	}
	return Sessions{gap: gap.Milliseconds()}, nil
}

func (s Sessions) AssignWindows(_ interface{}, timestamp int64, _ []Window) ([]Window, error) {
	return []Window{IntervalWindow{start: timestamp, end: timestamp + s.gap}}, nil
}

func (s Sessions) MergeWindows(windows []Window) []Merge {
	intervals := make([]IntervalWindow, 0, len(windows))
	for _, w := range windows {
		if iw, ok := w.(IntervalWindow); ok {
			intervals = append(intervals, iw)
		}
	}
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].start == intervals[j].start {
			return intervals[i].end < intervals[j].end
		}
		return intervals[i].start < intervals[j].start
	})

	var (
		merges  []Merge
		sources []Window
		current IntervalWindow
		open    bool
	)
	flush := func() {
		if open && len(sources) > 1 {
			merges = append(merges, Merge{Sources: sources, Result: current})
		}
		sources = nil
		open = false
	}
	for _, iw := range intervals {
		if open && current.Intersects(iw) {
			current = current.Span(iw)
			sources = append(sources, iw)
			continue
		}
		flush()
		current = iw
		sources = []Window{iw}
		open = true
	}
	flush()
	return merges
}

// floorMod returns x mod y with the sign of y, so window starts stay aligned
// for timestamps before the epoch.
func floorMod(x, y int64) int64 {
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}
