package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerQueuePeek(t *testing.T) {
	qu := newTimerQueue()
	qu.PushTimer(Timer{WindowKey: "w", Tag: "tt", Timestamp: 2})
	qu.PushTimer(Timer{WindowKey: "w", Tag: "t", Timestamp: 1})
	qu.PushTimer(Timer{WindowKey: "w", Tag: "ttt", Timestamp: 3})

	peek := qu.PeekTimer()
	assert.Equal(t, "t", peek.Tag)
	assert.Equal(t, int64(1), peek.Timestamp)
	assert.Equal(t, 3, qu.Len())
}

func TestTimerQueuePopOrder(t *testing.T) {
	qu := newTimerQueue()
	qu.PushTimer(Timer{WindowKey: "w", Tag: "tt", Timestamp: 2})
	qu.PushTimer(Timer{WindowKey: "w", Tag: "t", Timestamp: 1})
	qu.PushTimer(Timer{WindowKey: "w", Tag: "ttt", Timestamp: 3})

	assert.Equal(t, "t", qu.PopTimer().Tag)
	assert.Equal(t, 2, qu.Len())
	assert.Equal(t, "tt", qu.PopTimer().Tag)
	assert.Equal(t, "ttt", qu.PopTimer().Tag)
	assert.Equal(t, 0, qu.Len())
}

func TestTimerQueueDedupe(t *testing.T) {
	qu := newTimerQueue()
	timer := Timer{WindowKey: "w", Tag: "close", Timestamp: 9}
	qu.PushTimer(timer)
	qu.PushTimer(timer)
	assert.Equal(t, 1, qu.Len())
}

func TestTimerQueueRemove(t *testing.T) {
	qu := newTimerQueue()
	qu.PushTimer(Timer{WindowKey: "w", Tag: "tt", Timestamp: 2})
	qu.PushTimer(Timer{WindowKey: "w", Tag: "t", Timestamp: 1})

	assert.True(t, qu.Remove(Timer{WindowKey: "w", Tag: "t", Timestamp: 1}))
	assert.False(t, qu.Remove(Timer{WindowKey: "w", Tag: "t", Timestamp: 1}))
	assert.Equal(t, 1, qu.Len())
}
