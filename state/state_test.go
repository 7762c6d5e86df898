package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangadi/dataflow-go/window"
)

func TestAddInstantiatesLazily(t *testing.T) {
	st := NewKeyedState[int]()
	assert.Equal(t, 0, st.WindowCount())

	w := window.NewIntervalWindow(0, 10)
	ws := st.Add(w, 7)
	assert.Equal(t, 1, st.WindowCount())
	assert.Equal(t, []int{7}, ws.Buffer())
	assert.Equal(t, int64(1), ws.CountSinceFire())

	st.Add(w, 8)
	assert.Equal(t, []int{7, 8}, ws.Buffer())
	assert.Equal(t, int64(2), ws.CountSinceFire())
	assert.Equal(t, 1, st.WindowCount())
}

func TestMarkFiredDiscarding(t *testing.T) {
	st := NewKeyedState[int]()
	w := window.NewIntervalWindow(0, 10)
	st.Add(w, 1)
	st.Add(w, 2)

	st.MarkFired(w.Key(), true)
	ws, ok := st.Get(w.Key())
	require.True(t, ok)
	assert.True(t, ws.Fired())
	assert.Empty(t, ws.Buffer())
	assert.Equal(t, int64(0), ws.CountSinceFire())
}

func TestMarkFiredAccumulating(t *testing.T) {
	st := NewKeyedState[int]()
	w := window.NewIntervalWindow(0, 10)
	st.Add(w, 1)
	st.Add(w, 2)

	st.MarkFired(w.Key(), false)
	ws, _ := st.Get(w.Key())
	assert.Equal(t, []int{1, 2}, ws.Buffer())
	assert.Equal(t, int64(0), ws.CountSinceFire())
}

func TestGetAndClearTimersExactlyOnce(t *testing.T) {
	st := NewKeyedState[int]()
	w := window.NewIntervalWindow(0, 10)
	st.SetTimer(w, "close", 9)
	st.SetTimer(w, "early", 5)
	st.SetTimer(w, "late", 20)

	ready := st.GetAndClearTimers(10)
	require.Len(t, ready, 2)
	assert.Equal(t, "early", ready[0].Tag)
	assert.Equal(t, "close", ready[1].Tag)
	assert.Equal(t, 1, st.PendingTimers())

	// a drained timer never reappears
	assert.Empty(t, st.GetAndClearTimers(10))
	assert.Len(t, st.GetAndClearTimers(25), 1)
	assert.Equal(t, 0, st.PendingTimers())
}

func TestSetTimerDedupes(t *testing.T) {
	st := NewKeyedState[int]()
	w := window.NewIntervalWindow(0, 10)
	st.SetTimer(w, "close", 9)
	st.SetTimer(w, "close", 9)
	assert.Equal(t, 1, st.PendingTimers())
}

func TestDeleteTimer(t *testing.T) {
	st := NewKeyedState[int]()
	w := window.NewIntervalWindow(0, 10)
	st.SetTimer(w, "close", 9)
	st.DeleteTimer(w, "close", 9)
	assert.Equal(t, 0, st.PendingTimers())
}

func TestHasTimersFor(t *testing.T) {
	st := NewKeyedState[int]()
	a := window.NewIntervalWindow(0, 10)
	b := window.NewIntervalWindow(10, 20)
	st.SetTimer(a, "close", 9)

	assert.True(t, st.HasTimersFor(a.Key()))
	assert.False(t, st.HasTimersFor(b.Key()))
}

func TestCloseAndRelease(t *testing.T) {
	st := NewKeyedState[int]()
	w := window.NewIntervalWindow(0, 10)
	st.Add(w, 1)

	st.Close(w.Key())
	ws, ok := st.Get(w.Key())
	require.True(t, ok)
	assert.True(t, ws.Closed())

	st.Release(w.Key())
	_, ok = st.Get(w.Key())
	assert.False(t, ok)
	assert.Equal(t, 0, st.WindowCount())
}
