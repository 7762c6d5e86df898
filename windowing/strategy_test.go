package windowing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangadi/dataflow-go/pipeerr"
	"github.com/rangadi/dataflow-go/trigger"
	"github.com/rangadi/dataflow-go/window"
)

func TestNewDefaults(t *testing.T) {
	s, err := New(window.NewGlobalWindows())
	require.NoError(t, err)
	assert.True(t, s.Trigger().IsDefault())
	assert.Equal(t, Discarding, s.Mode())
	assert.True(t, s.IsDefault())
}

func TestNewNonDefaultTriggerRequiresMode(t *testing.T) {
	_, err := New(window.NewGlobalWindows(), WithTrigger(trigger.AfterCount(2)))
	require.Error(t, err)
	assert.True(t, pipeerr.IsConfiguration(err))
}

func TestNewNonDefaultTriggerWithMode(t *testing.T) {
	s, err := New(window.NewGlobalWindows(),
		WithTrigger(trigger.AfterCount(2)), WithMode(Accumulating))
	require.NoError(t, err)
	assert.Equal(t, Accumulating, s.Mode())
	assert.False(t, s.IsDefault())
}

func TestNewNilAssigner(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, pipeerr.IsConfiguration(err))
}

func TestIsDefaultOnlyForGlobalDefaultDiscarding(t *testing.T) {
	fixed, err := window.NewFixedWindows(time.Second)
	require.NoError(t, err)

	s, err := New(fixed)
	require.NoError(t, err)
	assert.False(t, s.IsDefault(), "fixed windows are never the default strategy")

	s, err = New(window.NewGlobalWindows(), WithMode(Accumulating))
	require.NoError(t, err)
	assert.False(t, s.IsDefault(), "accumulating mode is never the default strategy")
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(window.NewGlobalWindows(), WithTrigger(trigger.Always()))
	})
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "discarding", Discarding.String())
	assert.Equal(t, "accumulating", Accumulating.String())
	assert.Equal(t, "unspecified", modeUnspecified.String())
}
