package hydrate

// Transition names the event that ended a hydrating phase.
type Transition string

const (
	// TransitionNone means the phase is still open.
	TransitionNone Transition = ""

	// TransitionTimerFired ends an ungated phase when the grace period elapses.
	TransitionTimerFired Transition = "timer-fired"

	// TransitionConverged ends a gated phase once the grace period has elapsed
	// and the live collection has caught up.
	TransitionConverged Transition = "converged"

	// TransitionSafetyTimeout ends a gated phase that never converged.
	TransitionSafetyTimeout Transition = "safety-timeout"
)

// Machine tracks the termination race of one hydrating phase. It has a single
// terminal state; once settled every event is ignored.
// A Machine is not safe for concurrent use.
type Machine struct {
	gated       bool
	graceFired  bool
	settledWith Transition
}

// NewMachine returns a Machine in the hydrating state. A gated machine needs
// convergence (or the safety timeout) in addition to the grace period.
func NewMachine(gated bool) *Machine {
	return &Machine{gated: gated}
}

// Hydrating reports whether the phase is still open.
func (m *Machine) Hydrating() bool {
	return m.settledWith == TransitionNone
}

// Reason returns the transition that settled the machine, or TransitionNone.
func (m *Machine) Reason() Transition {
	return m.settledWith
}

// AwaitingConvergence reports whether the grace period has elapsed on a gated
// machine that is still open.
func (m *Machine) AwaitingConvergence() bool {
	return m.gated && m.graceFired && m.Hydrating()
}

// GraceElapsed records the grace timer firing. converged is the convergence
// state of the latest live collection and is ignored on ungated machines.
func (m *Machine) GraceElapsed(converged bool) Transition {
	if !m.Hydrating() {
		return TransitionNone
	}
	m.graceFired = true
	if !m.gated {
		return m.settle(TransitionTimerFired)
	}
	if converged {
		return m.settle(TransitionConverged)
	}
	return TransitionNone
}

// LiveChanged records a new live collection with its convergence state.
func (m *Machine) LiveChanged(converged bool) Transition {
	if !m.AwaitingConvergence() || !converged {
		return TransitionNone
	}
	return m.settle(TransitionConverged)
}

// SafetyElapsed records the safety timer firing.
func (m *Machine) SafetyElapsed() Transition {
	if !m.gated || !m.Hydrating() {
		return TransitionNone
	}
	return m.settle(TransitionSafetyTimeout)
}

func (m *Machine) settle(t Transition) Transition {
	m.settledWith = t
	return t
}
