package gbk

import (
	"github.com/uber-go/tally/v4"
)

type engineMetrics struct {
	elementsReified tally.Counter
	keysGrouped     tally.Counter
	panesEmitted    tally.Counter
	timersFired     tally.Counter
	groupDuration   tally.Timer
}

func newEngineMetrics(scope tally.Scope) *engineMetrics {
	sub := scope.SubScope("group_by_key")
	return &engineMetrics{
		elementsReified: sub.Counter("elements_reified"),
		keysGrouped:     sub.Counter("keys_grouped"),
		panesEmitted:    sub.Counter("panes_emitted"),
		timersFired:     sub.Counter("timers_fired"),
		groupDuration:   sub.Timer("group_duration"),
	}
}
