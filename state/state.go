// Package state holds the mutable per-key window state driven by the trigger
// driver: a buffer of values per window plus the key's pending timers. A
// KeyedState is owned by exactly one engine worker for the duration of that
// key's processing pass; it is not safe for concurrent use.
package state

import (
	"github.com/rangadi/dataflow-go/window"
)

// WindowState is the buffered state of one window of one key. A window that
// never receives a value is never instantiated.
type WindowState[V any] struct {
	Window window.Window

	buffer []V
	// values buffered since the last firing, consulted by count triggers
	countSinceFire int64
	fired          bool
	closed         bool
}

func (w *WindowState[V]) Buffer() []V { return w.buffer }

func (w *WindowState[V]) CountSinceFire() int64 { return w.countSinceFire }

func (w *WindowState[V]) Fired() bool { return w.fired }

func (w *WindowState[V]) Closed() bool { return w.closed }

// KeyedState is the full window/timer state of a single key.
type KeyedState[V any] struct {
	windows map[string]*WindowState[V]
	timers  *timerQueue
}

func NewKeyedState[V any]() *KeyedState[V] {
	return &KeyedState[V]{
		windows: map[string]*WindowState[V]{},
		timers:  newTimerQueue(),
	}
}

// Upsert returns the state for w, instantiating it on first use.
func (s *KeyedState[V]) Upsert(w window.Window) *WindowState[V] {
	ws, ok := s.windows[w.Key()]
	if !ok {
		ws = &WindowState[V]{Window: w}
		s.windows[w.Key()] = ws
	}
	return ws
}

func (s *KeyedState[V]) Get(windowKey string) (*WindowState[V], bool) {
	ws, ok := s.windows[windowKey]
	return ws, ok
}

// Add buffers one value into w and bumps its since-fire count.
func (s *KeyedState[V]) Add(w window.Window, value V) *WindowState[V] {
	ws := s.Upsert(w)
	ws.buffer = append(ws.buffer, value)
	ws.countSinceFire++
	return ws
}

// MarkFired records a firing. In discarding mode the buffer is dropped with
// it; in accumulating mode the buffer survives until the window closes.
func (s *KeyedState[V]) MarkFired(windowKey string, discardBuffer bool) {
	if ws, ok := s.windows[windowKey]; ok {
		ws.fired = true
		ws.countSinceFire = 0
		if discardBuffer {
			ws.buffer = nil
		}
	}
}

// Close marks the window complete. No further values or timers are expected.
func (s *KeyedState[V]) Close(windowKey string) {
	if ws, ok := s.windows[windowKey]; ok {
		ws.closed = true
	}
}

// Release frees a window's state. Call once the window is closed and no timer
// for it remains pending.
func (s *KeyedState[V]) Release(windowKey string) {
	delete(s.windows, windowKey)
}

func (s *KeyedState[V]) WindowCount() int { return len(s.windows) }

func (s *KeyedState[V]) SetTimer(w window.Window, tag string, timestamp int64) {
	s.timers.PushTimer(Timer{WindowKey: w.Key(), Tag: tag, Timestamp: timestamp})
}

func (s *KeyedState[V]) DeleteTimer(w window.Window, tag string, timestamp int64) {
	s.timers.Remove(Timer{WindowKey: w.Key(), Tag: tag, Timestamp: timestamp})
}

// GetAndClearTimers atomically drains every timer ready at now, removing each
// from the pending set exactly once. Firing a drained timer may register
// follow-up timers, so callers loop until nothing remains ready.
func (s *KeyedState[V]) GetAndClearTimers(now int64) []Timer {
	var ready []Timer
	for s.timers.Len() > 0 && s.timers.PeekTimer().Timestamp <= now {
		ready = append(ready, s.timers.PopTimer())
	}
	return ready
}

func (s *KeyedState[V]) PendingTimers() int {
	return s.timers.Len()
}

// HasTimersFor reports whether any pending timer references the window.
func (s *KeyedState[V]) HasTimersFor(windowKey string) bool {
	for _, t := range s.timers.items {
		if t.WindowKey == windowKey {
			return true
		}
	}
	return false
}
