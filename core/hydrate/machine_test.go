package hydrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachine_Ungated(t *testing.T) {
	m := NewMachine(false)
	assert.True(t, m.Hydrating())

	assert.Equal(t, TransitionNone, m.LiveChanged(true), "live changes never settle an ungated machine")
	assert.Equal(t, TransitionNone, m.SafetyElapsed())
	assert.Equal(t, TransitionTimerFired, m.GraceElapsed(false))

	assert.False(t, m.Hydrating())
	assert.Equal(t, TransitionTimerFired, m.Reason())
	assert.Equal(t, TransitionNone, m.GraceElapsed(true), "terminal state ignores events")
}

func TestMachine_Gated(t *testing.T) {
	t.Run("ConvergedBeforeGrace", func(t *testing.T) {
		m := NewMachine(true)
		assert.Equal(t, TransitionNone, m.LiveChanged(true))
		assert.Equal(t, TransitionConverged, m.GraceElapsed(true))
	})

	t.Run("ConvergedAfterGrace", func(t *testing.T) {
		m := NewMachine(true)
		assert.Equal(t, TransitionNone, m.GraceElapsed(false))
		assert.True(t, m.AwaitingConvergence())
		assert.Equal(t, TransitionNone, m.LiveChanged(false))
		assert.Equal(t, TransitionConverged, m.LiveChanged(true))
		assert.False(t, m.AwaitingConvergence())
	})

	t.Run("SafetyTimeout", func(t *testing.T) {
		m := NewMachine(true)
		m.GraceElapsed(false)
		assert.Equal(t, TransitionSafetyTimeout, m.SafetyElapsed())
		assert.Equal(t, TransitionNone, m.LiveChanged(true))
		assert.Equal(t, TransitionSafetyTimeout, m.Reason())
	})

	t.Run("SafetyAfterConvergence", func(t *testing.T) {
		m := NewMachine(true)
		m.GraceElapsed(true)
		assert.Equal(t, TransitionNone, m.SafetyElapsed())
		assert.Equal(t, TransitionConverged, m.Reason())
	})
}
