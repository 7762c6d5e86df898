// Package windowing binds a window assigner to a trigger and an accumulation
// mode, validating that the combination is coherent.
package windowing

import (
	"github.com/rangadi/dataflow-go/pipeerr"
	"github.com/rangadi/dataflow-go/trigger"
	"github.com/rangadi/dataflow-go/window"
)

// AccumulationMode states how repeated firings of one window compose.
type AccumulationMode int

const (
	modeUnspecified AccumulationMode = iota
	// Discarding clears a window's buffer after every firing; each pane
	// carries only values that arrived since the previous pane.
	Discarding
	// Accumulating retains the buffer across firings until the window
	// closes; each pane carries everything seen so far.
	Accumulating
)

func (m AccumulationMode) String() string {
	switch m {
	case Discarding:
		return "discarding"
	case Accumulating:
		return "accumulating"
	default:
		return "unspecified"
	}
}

// Strategy is an immutable (assigner, trigger, accumulation mode) tuple.
type Strategy struct {
	assigner window.Assigner
	trigger  trigger.Trigger
	mode     AccumulationMode
}

type Option func(*Strategy)

// WithTrigger replaces the default trigger. Any non-default trigger requires
// WithMode as well.
func WithTrigger(t trigger.Trigger) Option {
	return func(s *Strategy) { s.trigger = t }
}

func WithMode(mode AccumulationMode) Option {
	return func(s *Strategy) { s.mode = mode }
}

// New builds a Strategy. With no options the default trigger is used and the
// mode is Discarding. A non-default trigger with no explicit mode is a
// configuration error: the caller must state how repeated firings compose.
func New(assigner window.Assigner, opts ...Option) (Strategy, error) {
	if assigner == nil {
		return Strategy{}, pipeerr.New(pipeerr.KindConfiguration, "windowing strategy requires an assigner")
	}
	s := Strategy{assigner: assigner}
	for _, opt := range opts {
		opt(&s)
	}
	if s.trigger == nil {
		s.trigger = trigger.Default()
	}
	if s.mode == modeUnspecified {
		if !s.trigger.IsDefault() {
			return Strategy{}, pipeerr.New(pipeerr.KindConfiguration,
				"accumulation mode must be provided for non-trivial triggers")
		}
		s.mode = Discarding
	}
	return s, nil
}

// MustNew is New for statically known-good strategies.
func MustNew(assigner window.Assigner, opts ...Option) Strategy {
	s, err := New(assigner, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Strategy) Assigner() window.Assigner { return s.assigner }

func (s Strategy) Trigger() trigger.Trigger { return s.trigger }

func (s Strategy) Mode() AccumulationMode { return s.mode }

// IsDefault reports whether this is the trivial strategy: global windows,
// default trigger, discarding. Driving a default strategy can skip per-window
// state bookkeeping entirely.
func (s Strategy) IsDefault() bool {
	if _, ok := s.assigner.(window.GlobalWindows); !ok {
		return false
	}
	return s.trigger.IsDefault() && s.mode == Discarding
}
