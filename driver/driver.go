// Package driver implements the per-key trigger state machine. For one key it
// consumes reified values and matured timers, moves each touched window
// through OPEN -> FIRED -> CLOSED, and decides when buffered values become
// panes. The driver never owns state across keys; callers hand it the
// KeyedState they exclusively own.
package driver

import (
	"github.com/rangadi/dataflow-go/element"
	"github.com/rangadi/dataflow-go/state"
	"github.com/rangadi/dataflow-go/trigger"
	"github.com/rangadi/dataflow-go/window"
	"github.com/rangadi/dataflow-go/windowing"
)

// WindowPane is one trigger firing: the values released for one window.
type WindowPane[V any] struct {
	Window window.Window
	Values []V
}

// Driver consumes buffered elements and fired timers for one key and yields
// panes.
type Driver[V any] interface {
	// ProcessElements buffers a batch of reified values, evaluates the
	// trigger for each touched window, and yields a pane for every window
	// whose trigger fires. It may register timers.
	ProcessElements(values []element.WindowedValue[V], st *state.KeyedState[V]) ([]WindowPane[V], error)
	// ProcessTimer handles one matured timer, already removed from the
	// pending set, and yields a pane if the trigger fires for it.
	ProcessTimer(windowKey, tag string, timestamp int64, st *state.KeyedState[V]) ([]WindowPane[V], error)
}

// New picks the driver for the strategy: the trivial
// global-window/default-trigger/discarding combination gets a short-circuit
// driver that skips per-window state bookkeeping entirely.
func New[V any](strategy windowing.Strategy) Driver[V] {
	if strategy.IsDefault() {
		return &defaultDriver[V]{}
	}
	return &generalDriver[V]{strategy: strategy}
}

type generalDriver[V any] struct {
	strategy windowing.Strategy
}

// triggerContext bridges the trigger's view of state onto KeyedState.
type triggerContext[V any] struct {
	st *state.KeyedState[V]
}

func (c triggerContext[V]) RegisterTimer(w window.Window, tag string, timestamp int64) {
	c.st.SetTimer(w, tag, timestamp)
}

func (c triggerContext[V]) DeleteTimer(w window.Window, tag string, timestamp int64) {
	c.st.DeleteTimer(w, tag, timestamp)
}

func (c triggerContext[V]) ElementCount(w window.Window) int64 {
	if ws, ok := c.st.Get(w.Key()); ok {
		return ws.CountSinceFire()
	}
	return 0
}

func (d *generalDriver[V]) ProcessElements(values []element.WindowedValue[V], st *state.KeyedState[V]) ([]WindowPane[V], error) {
	var (
		panes []WindowPane[V]
		tctx  = triggerContext[V]{st: st}
		trig  = d.strategy.Trigger()
	)
	for _, wv := range values {
		for _, w := range wv.Windows {
			ws, existed := st.Get(w.Key())
			if existed && ws.Closed() {
				// late arrival for a closed window; nothing more fires
				continue
			}
			st.Add(w, wv.Value)
			if !existed {
				st.SetTimer(w, trigger.CloseTag, w.MaxTimestamp())
			}
			r := trig.OnElement(tctx, wv.Timestamp, w)
			panes = d.handleResult(r, w.Key(), st, panes)
		}
	}
	return panes, nil
}

func (d *generalDriver[V]) ProcessTimer(windowKey, tag string, timestamp int64, st *state.KeyedState[V]) ([]WindowPane[V], error) {
	ws, ok := st.Get(windowKey)
	if !ok {
		// state already released, stale timer
		return nil, nil
	}
	tctx := triggerContext[V]{st: st}
	r := d.strategy.Trigger().OnTimer(tctx, tag, timestamp, ws.Window)
	panes := d.handleResult(r, windowKey, st, nil)
	if tag == trigger.CloseTag {
		// the window is now known complete regardless of the trigger's answer
		st.Close(windowKey)
	}
	if ws.Closed() && !st.HasTimersFor(windowKey) {
		st.Release(windowKey)
	}
	return panes, nil
}

func (d *generalDriver[V]) handleResult(r trigger.Result, windowKey string, st *state.KeyedState[V], panes []WindowPane[V]) []WindowPane[V] {
	ws, ok := st.Get(windowKey)
	if !ok {
		return panes
	}
	if r.IsFire() && len(ws.Buffer()) > 0 {
		values := make([]V, len(ws.Buffer()))
		copy(values, ws.Buffer())
		panes = append(panes, WindowPane[V]{Window: ws.Window, Values: values})
		st.MarkFired(windowKey, d.strategy.Mode() == windowing.Discarding)
	}
	if r.IsPurge() {
		st.Close(windowKey)
	}
	return panes
}

// defaultDriver is the short-circuit path for default strategies: one pane
// per window with everything assigned to it, emitted as soon as the key's
// full value set is in hand. It keeps no per-window state and registers no
// timers.
type defaultDriver[V any] struct{}

func (d *defaultDriver[V]) ProcessElements(values []element.WindowedValue[V], _ *state.KeyedState[V]) ([]WindowPane[V], error) {
	var (
		order []string
		byKey = map[string]*WindowPane[V]{}
	)
	for _, wv := range values {
		for _, w := range wv.Windows {
			p, ok := byKey[w.Key()]
			if !ok {
				p = &WindowPane[V]{Window: w}
				byKey[w.Key()] = p
				order = append(order, w.Key())
			}
			p.Values = append(p.Values, wv.Value)
		}
	}
	panes := make([]WindowPane[V], 0, len(order))
	for _, k := range order {
		panes = append(panes, *byKey[k])
	}
	return panes, nil
}

func (d *defaultDriver[V]) ProcessTimer(string, string, int64, *state.KeyedState[V]) ([]WindowPane[V], error) {
	return nil, nil
}
