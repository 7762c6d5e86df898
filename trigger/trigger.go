// Package trigger decides when buffered data for a window is emitted as a
// pane. Triggers themselves are stateless; all bookkeeping (element counts,
// pending timers) lives in the per-key state the driver owns, reached through
// the Context.
package trigger

import (
	"github.com/rangadi/dataflow-go/window"
)

// Result is a bitmask of the actions a trigger requests.
type Result int

const (
	Continue     Result = 0
	Fire         Result = 1
	Purge        Result = 2
	FireAndPurge Result = 3
)

func (r Result) IsFire() bool { return r&Fire != 0 }

func (r Result) IsPurge() bool { return r&Purge != 0 }

// CloseTag is the timer tag that marks a window as known complete. The
// driver registers a CloseTag timer at the window's max timestamp when the
// window is first instantiated; after it is delivered the window is CLOSED
// and its state released.
const CloseTag = "close"

// Context is the trigger's window into per-key state.
type Context interface {
	RegisterTimer(w window.Window, tag string, timestamp int64)
	DeleteTimer(w window.Window, tag string, timestamp int64)
	// ElementCount is the number of values buffered for the window since the
	// last firing.
	ElementCount(w window.Window) int64
}

// Trigger is the policy deciding when a window's buffered values become a
// pane. A trigger that never fires leaves state open indefinitely; that is a
// caller error, not something the driver guards against.
type Trigger interface {
	// OnElement is invoked after one value has been buffered into w.
	OnElement(ctx Context, timestamp int64, w window.Window) Result
	// OnTimer is invoked once per matured timer for w.
	OnTimer(ctx Context, tag string, timestamp int64, w window.Window) Result
	// IsDefault reports whether this is the default "fire once when the
	// window is complete" trigger.
	IsDefault() bool
}

type defaultTrigger struct{}

// Default fires exactly once per window, when the window is known to be
// complete, then closes it.
func Default() Trigger { return defaultTrigger{} }

func (defaultTrigger) OnElement(Context, int64, window.Window) Result { return Continue }

func (defaultTrigger) OnTimer(_ Context, tag string, _ int64, _ window.Window) Result {
	if tag == CloseTag {
		return FireAndPurge
	}
	return Continue
}

func (defaultTrigger) IsDefault() bool { return true }

type afterCount struct {
	n int64
}

// AfterCount fires each time n values have been buffered since the last
// firing, and once more at window close if any values remain.
func AfterCount(n int64) Trigger {
	if n < 1 {
		n = 1
	}
	return afterCount{n: n}
}

func (t afterCount) OnElement(ctx Context, _ int64, w window.Window) Result {
	if ctx.ElementCount(w) >= t.n {
		return Fire
	}
	return Continue
}

func (t afterCount) OnTimer(ctx Context, tag string, _ int64, w window.Window) Result {
	if tag == CloseTag {
		if ctx.ElementCount(w) > 0 {
			return FireAndPurge
		}
		return Purge
	}
	return Continue
}

func (afterCount) IsDefault() bool { return false }

type always struct{}

// Always fires on every element.
func Always() Trigger { return always{} }

func (always) OnElement(Context, int64, window.Window) Result { return Fire }

func (always) OnTimer(ctx Context, tag string, _ int64, w window.Window) Result {
	if tag == CloseTag {
		if ctx.ElementCount(w) > 0 {
			return FireAndPurge
		}
		return Purge
	}
	return Continue
}

func (always) IsDefault() bool { return false }

type repeatedly struct {
	sub Trigger
}

// Repeatedly re-arms the sub-trigger after every firing; only window close
// purges.
func Repeatedly(sub Trigger) Trigger { return repeatedly{sub: sub} }

func (t repeatedly) OnElement(ctx Context, timestamp int64, w window.Window) Result {
	return t.sub.OnElement(ctx, timestamp, w) &^ Purge
}

func (t repeatedly) OnTimer(ctx Context, tag string, timestamp int64, w window.Window) Result {
	r := t.sub.OnTimer(ctx, tag, timestamp, w)
	if tag == CloseTag {
		return r | Purge
	}
	return r &^ Purge
}

func (repeatedly) IsDefault() bool { return false }
