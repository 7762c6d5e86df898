package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rangadi/dataflow-go/window"
)

// fakeContext backs triggers with a plain count and records timer calls.
type fakeContext struct {
	count      int64
	registered []string
}

func (c *fakeContext) RegisterTimer(w window.Window, tag string, _ int64) {
	c.registered = append(c.registered, w.Key()+"/"+tag)
}

func (c *fakeContext) DeleteTimer(window.Window, string, int64) {}

func (c *fakeContext) ElementCount(window.Window) int64 { return c.count }

func TestResultBits(t *testing.T) {
	assert.False(t, Continue.IsFire())
	assert.False(t, Continue.IsPurge())
	assert.True(t, Fire.IsFire())
	assert.False(t, Fire.IsPurge())
	assert.False(t, Purge.IsFire())
	assert.True(t, Purge.IsPurge())
	assert.True(t, FireAndPurge.IsFire())
	assert.True(t, FireAndPurge.IsPurge())
}

func TestDefaultTrigger(t *testing.T) {
	ctx := &fakeContext{}
	w := window.NewIntervalWindow(0, 10)

	assert.Equal(t, Continue, Default().OnElement(ctx, 3, w))
	assert.Equal(t, FireAndPurge, Default().OnTimer(ctx, CloseTag, 9, w))
	assert.Equal(t, Continue, Default().OnTimer(ctx, "other", 9, w))
	assert.True(t, Default().IsDefault())
}

func TestAfterCount(t *testing.T) {
	ctx := &fakeContext{}
	w := window.GlobalWindow{}
	trig := AfterCount(3)

	ctx.count = 2
	assert.Equal(t, Continue, trig.OnElement(ctx, 0, w))
	ctx.count = 3
	assert.Equal(t, Fire, trig.OnElement(ctx, 0, w))
	assert.False(t, trig.IsDefault())
}

func TestAfterCountCloseFlushesLeftovers(t *testing.T) {
	ctx := &fakeContext{}
	w := window.GlobalWindow{}
	trig := AfterCount(3)

	ctx.count = 1
	assert.Equal(t, FireAndPurge, trig.OnTimer(ctx, CloseTag, 0, w))
	ctx.count = 0
	assert.Equal(t, Purge, trig.OnTimer(ctx, CloseTag, 0, w))
}

func TestAfterCountClampsToOne(t *testing.T) {
	ctx := &fakeContext{count: 1}
	assert.Equal(t, Fire, AfterCount(0).OnElement(ctx, 0, window.GlobalWindow{}))
}

func TestAlways(t *testing.T) {
	ctx := &fakeContext{count: 1}
	w := window.GlobalWindow{}
	assert.Equal(t, Fire, Always().OnElement(ctx, 0, w))
	assert.Equal(t, FireAndPurge, Always().OnTimer(ctx, CloseTag, 0, w))
	assert.False(t, Always().IsDefault())
}

func TestRepeatedlyStripsPurgeUntilClose(t *testing.T) {
	ctx := &fakeContext{count: 1}
	w := window.NewIntervalWindow(0, 10)
	trig := Repeatedly(Always())

	assert.Equal(t, Fire, trig.OnElement(ctx, 0, w))
	r := trig.OnTimer(ctx, CloseTag, 9, w)
	assert.True(t, r.IsPurge(), "close must purge even for repeating triggers")
	assert.Equal(t, Continue, trig.OnTimer(ctx, "other", 9, w))
	assert.False(t, trig.IsDefault())
}
