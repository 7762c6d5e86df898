// Package gbk is the GroupByKey engine: it reifies keyed records with their
// window metadata, partitions them by exact key equality, and drives each
// key's window state through the trigger driver to produce panes.
//
// The engine is a local, synchronous, single-pass batch model. Grouping is a
// blocking barrier: every record is materialized before any key's
// window/trigger driving begins. Keys are sharded across workers by key
// hash; a key's state is wholly owned by one worker, so no locking exists
// inside a key's pass.
package gbk

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/twmb/murmur3"
	"github.com/uber-go/tally/v4"

	"github.com/rangadi/dataflow-go/coder"
	"github.com/rangadi/dataflow-go/common/safe"
	"github.com/rangadi/dataflow-go/driver"
	"github.com/rangadi/dataflow-go/element"
	"github.com/rangadi/dataflow-go/log"
	"github.com/rangadi/dataflow-go/pipeerr"
	"github.com/rangadi/dataflow-go/state"
	"github.com/rangadi/dataflow-go/window"
	"github.com/rangadi/dataflow-go/windowing"
)

// Record is one input element: a key/value pair with its event timestamp and
// the window set assigned upstream. An empty window set means "not yet
// windowed"; Apply assigns windows with the strategy's assigner.
type Record[K comparable, V any] struct {
	Key       K
	Value     V
	Timestamp int64
	Windows   []window.Window
}

// FromKVs wraps bare pairs into records carrying the minimum timestamp and
// no windows.
func FromKVs[K comparable, V any](kvs []element.KV[K, V]) []Record[K, V] {
	records := make([]Record[K, V], 0, len(kvs))
	for _, kv := range kvs {
		records = append(records, Record[K, V]{Key: kv.Key, Value: kv.Value, Timestamp: window.MinTimestamp})
	}
	return records
}

// Engine groups a keyed batch by key and window under one windowing
// strategy.
type Engine[K comparable, V any] struct {
	strategy windowing.Strategy
	drv      driver.Driver[V]

	logger  log.Logger
	metrics *engineMetrics
	clk     clock.Clock
	coder   coder.Coder[K]
	shards  int
}

type Option[K comparable, V any] func(*Engine[K, V])

func WithLogger[K comparable, V any](logger log.Logger) Option[K, V] {
	return func(e *Engine[K, V]) { e.logger = logger }
}

func WithScope[K comparable, V any](scope tally.Scope) Option[K, V] {
	return func(e *Engine[K, V]) { e.metrics = newEngineMetrics(scope) }
}

// WithCoder replaces the default gob key coder. Grouping requires the coder
// to be deterministic; a non-deterministic coder only logs a warning.
func WithCoder[K comparable, V any](c coder.Coder[K]) Option[K, V] {
	return func(e *Engine[K, V]) { e.coder = c }
}

// WithShards sets how many workers drive keys in parallel.
func WithShards[K comparable, V any](n int) Option[K, V] {
	return func(e *Engine[K, V]) {
		if n >= 1 {
			e.shards = n
		}
	}
}

func WithClock[K comparable, V any](clk clock.Clock) Option[K, V] {
	return func(e *Engine[K, V]) { e.clk = clk }
}

func New[K comparable, V any](strategy windowing.Strategy, opts ...Option[K, V]) *Engine[K, V] {
	e := &Engine[K, V]{
		strategy: strategy,
		drv:      driver.New[V](strategy),
		logger:   log.Global().Named("gbk"),
		metrics:  newEngineMetrics(tally.NoopScope),
		clk:      clock.New(),
		coder:    coder.GobCoder[K]{},
		shards:   1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// keyGroup is one key's fully materialized value set.
type keyGroup[K comparable, V any] struct {
	key    K
	hash   uint32
	values []element.WindowedValue[V]
}

// Apply groups the batch. Output panes carry no ordering guarantee across
// keys or across windows within a key, beyond each pane being emitted after
// all records contributing to it were observed.
func (e *Engine[K, V]) Apply(ctx context.Context, records []Record[K, V]) ([]element.Pane[K, V], error) {
	groups, err := e.groupByKeyOnly(records)
	if err != nil {
		return nil, err
	}
	return e.groupAlsoByWindow(ctx, groups)
}

// ApplyAny is Apply for untyped input: every item must be an
// element.KV[K, V], anything else is a shape error.
func (e *Engine[K, V]) ApplyAny(ctx context.Context, items []any) ([]element.Pane[K, V], error) {
	records := make([]Record[K, V], 0, len(items))
	for _, item := range items {
		kv, ok := item.(element.KV[K, V])
		if !ok {
			return nil, pipeerr.Errorf(pipeerr.KindShape,
				"input to GroupByKey must be a key/value pair, got %T", item)
		}
		records = append(records, Record[K, V]{Key: kv.Key, Value: kv.Value, Timestamp: window.MinTimestamp})
	}
	return e.Apply(ctx, records)
}

// groupByKeyOnly reifies each record and buckets the windowed values by
// exact key equality. This is the blocking barrier of the engine.
func (e *Engine[K, V]) groupByKeyOnly(records []Record[K, V]) ([]*keyGroup[K, V], error) {
	if !e.coder.IsDeterministic() {
		e.logger.Warnf("the key coder %T for this GroupByKey is not deterministic; "+
			"this may result in incorrect pipeline output", e.coder)
	}
	var (
		groups   []*keyGroup[K, V]
		byKey    = map[K]*keyGroup[K, V]{}
		assigner = e.strategy.Assigner()
	)
	for _, record := range records {
		windows := record.Windows
		if len(windows) == 0 {
			assigned, err := assigner.AssignWindows(record.Value, record.Timestamp, nil)
			if err != nil {
				return nil, err
			}
			windows = assigned
		}
		// The assigner's output is authoritative: an element it maps to no
		// window belongs to no pane.
		if len(windows) == 0 {
			continue
		}
		wv := element.WindowedValue[V]{Value: record.Value, Timestamp: record.Timestamp, Windows: windows}
		e.metrics.elementsReified.Inc(1)

		group, ok := byKey[record.Key]
		if !ok {
			encoded, err := e.coder.Encode(record.Key)
			if err != nil {
				return nil, pipeerr.Wrap(pipeerr.KindShape, err, "failed to encode key")
			}
			group = &keyGroup[K, V]{key: record.Key, hash: murmur3.Sum32(encoded)}
			byKey[record.Key] = group
			groups = append(groups, group)
			e.metrics.keysGrouped.Inc(1)
		}
		group.values = append(group.values, wv)
	}
	return groups, nil
}

// groupAlsoByWindow drives every key's state through the trigger driver,
// sharding keys across workers by key hash.
func (e *Engine[K, V]) groupAlsoByWindow(ctx context.Context, groups []*keyGroup[K, V]) ([]element.Pane[K, V], error) {
	start := e.clk.Now()
	defer func() { e.metrics.groupDuration.Record(e.clk.Since(start)) }()

	shards := e.shards
	if shards > len(groups) && len(groups) > 0 {
		shards = len(groups)
	}
	if shards < 1 {
		shards = 1
	}
	sharded := make([][]*keyGroup[K, V], shards)
	for _, group := range groups {
		i := int(group.hash % uint32(shards))
		sharded[i] = append(sharded[i], group)
	}

	var (
		panes = make([][]element.Pane[K, V], shards)
		done  = make([]chan error, shards)
	)
	for i := 0; i < shards; i++ {
		i := i
		done[i] = safe.Go(func() error {
			var err error
			panes[i], err = e.driveShard(ctx, sharded[i])
			return err
		})
	}
	var firstErr error
	for i := 0; i < shards; i++ {
		if err := <-done[i]; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	var out []element.Pane[K, V]
	for i := 0; i < shards; i++ {
		out = append(out, panes[i]...)
	}
	e.metrics.panesEmitted.Inc(int64(len(out)))
	return out, nil
}

func (e *Engine[K, V]) driveShard(ctx context.Context, groups []*keyGroup[K, V]) ([]element.Pane[K, V], error) {
	var out []element.Pane[K, V]
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		panes, err := e.driveKey(group)
		if err != nil {
			return nil, err
		}
		out = append(out, panes...)
	}
	return out, nil
}

// driveKey runs one key's full value set through the driver, then drains
// pending timers until none remain ready. Firing a timer may register
// follow-up timers, so the drain loops.
func (e *Engine[K, V]) driveKey(group *keyGroup[K, V]) ([]element.Pane[K, V], error) {
	values := group.values
	if merging, ok := e.strategy.Assigner().(window.MergingAssigner); ok {
		values = mergeSessionWindows(merging, values)
	}

	st := state.NewKeyedState[V]()
	windowPanes, err := e.drv.ProcessElements(values, st)
	if err != nil {
		return nil, err
	}
	out := e.toPanes(group.key, windowPanes)

	// input is exhausted: every event-time timer is now ready
	for st.PendingTimers() > 0 {
		timers := st.GetAndClearTimers(window.MaxTimestamp)
		if len(timers) == 0 {
			break
		}
		for _, timer := range timers {
			e.metrics.timersFired.Inc(1)
			windowPanes, err = e.drv.ProcessTimer(timer.WindowKey, timer.Tag, timer.Timestamp, st)
			if err != nil {
				return nil, err
			}
			out = append(out, e.toPanes(group.key, windowPanes)...)
		}
	}
	return out, nil
}

func (e *Engine[K, V]) toPanes(key K, windowPanes []driver.WindowPane[V]) []element.Pane[K, V] {
	panes := make([]element.Pane[K, V], 0, len(windowPanes))
	for _, wp := range windowPanes {
		panes = append(panes, element.Pane[K, V]{
			Key:       key,
			Window:    wp.Window,
			Timestamp: wp.Window.End(),
			Values:    wp.Values,
		})
	}
	return panes
}

// mergeSessionWindows rewrites each value's window set through the
// assigner's merge decisions. The local engine sees a key's complete value
// set before driving, so merging happens once, up front.
func mergeSessionWindows[V any](assigner window.MergingAssigner, values []element.WindowedValue[V]) []element.WindowedValue[V] {
	var all []window.Window
	seen := map[string]struct{}{}
	for _, wv := range values {
		for _, w := range wv.Windows {
			if _, ok := seen[w.Key()]; !ok {
				seen[w.Key()] = struct{}{}
				all = append(all, w)
			}
		}
	}
	remap := map[string]window.Window{}
	for _, merge := range assigner.MergeWindows(all) {
		for _, src := range merge.Sources {
			remap[src.Key()] = merge.Result
		}
	}
	if len(remap) == 0 {
		return values
	}
	merged := make([]element.WindowedValue[V], 0, len(values))
	for _, wv := range values {
		windows := make([]window.Window, 0, len(wv.Windows))
		for _, w := range wv.Windows {
			if result, ok := remap[w.Key()]; ok {
				windows = append(windows, result)
			} else {
				windows = append(windows, w)
			}
		}
		merged = append(merged, element.WindowedValue[V]{Value: wv.Value, Timestamp: wv.Timestamp, Windows: windows})
	}
	return merged
}
