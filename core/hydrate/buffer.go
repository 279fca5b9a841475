package hydrate

import (
	"wallet-state/core/stream"
)

// Buffer overlays live on cached for the duration of a hydrating phase.
//
// With no grace period or an empty cache the live stream passes through with
// IsHydrating false. Otherwise every subscription runs its own phase: the cached
// collection is visible immediately, live emissions are merged into it, and once
// the phase settles only live items are emitted.
//
// Subscribe and unsubscribe must happen on opts.Scheduler's lane, and live must
// emit on it.
func Buffer[T any](cached []T, live stream.Observable[[]T], opts Options[T]) stream.Observable[Result[T]] {
	if opts.Merge == nil {
		panic("hydrate: Options.Merge is required")
	}

	if opts.GracePeriod <= 0 || len(cached) == 0 {
		return stream.Map(live, func(items []T) Result[T] {
			return Result[T]{Items: items}
		})
	}

	if opts.Scheduler == nil {
		opts.Scheduler = stream.NewScheduler()
	}

	return stream.New(func(next func(Result[T])) func() {
		p := &phase[T]{
			cached:    cached,
			opts:      opts,
			machine:   NewMachine(opts.Converged != nil),
			hydrating: stream.NewState(true),
			next:      next,
		}
		return p.run(live)
	})
}

// phase is the per-subscription state of a buffer.
type phase[T any] struct {
	cached    []T
	opts      Options[T]
	machine   *Machine
	hydrating *stream.State[bool]
	next      func(Result[T])

	latest  []T
	started bool

	cancelGrace  func()
	cancelSafety func()
}

func (p *phase[T]) run(live stream.Observable[[]T]) func() {
	var subs stream.Group

	// Emissions are driven by live values and by hydrating flipping to false.
	subs.Add(p.hydrating.Subscribe(func(bool) {
		if p.started {
			p.emit()
		}
	}))

	p.cancelGrace = p.opts.Scheduler.AfterFunc(p.opts.GracePeriod, func() {
		p.apply(p.machine.GraceElapsed(p.converged()))
	})
	if p.opts.Converged != nil {
		p.cancelSafety = p.opts.Scheduler.AfterFunc(SafetyFactor*p.opts.GracePeriod, func() {
			p.apply(p.machine.SafetyElapsed())
		})
	}

	subs.Add(stream.StartWith(live, []T{}).Subscribe(func(items []T) {
		p.latest = items
		p.started = true
		if p.apply(p.machine.LiveChanged(p.converged())) {
			return
		}
		p.emit()
	}))

	return func() {
		p.cancelTimers()
		subs.Unsubscribe()
		p.hydrating.Complete()
	}
}

func (p *phase[T]) converged() bool {
	if p.opts.Converged == nil {
		return false
	}
	return p.opts.Converged(p.latest, p.cached)
}

// apply settles the phase on a terminal transition. It reports whether the
// settled value was emitted.
func (p *phase[T]) apply(t Transition) bool {
	if t == TransitionNone {
		return false
	}
	p.cancelTimers()
	if p.opts.OnSettle != nil {
		p.opts.OnSettle(t)
	}
	p.hydrating.Set(false)
	return p.started
}

func (p *phase[T]) cancelTimers() {
	if p.cancelGrace != nil {
		p.cancelGrace()
		p.cancelGrace = nil
	}
	if p.cancelSafety != nil {
		p.cancelSafety()
		p.cancelSafety = nil
	}
}

func (p *phase[T]) emit() {
	if p.hydrating.Value() {
		p.next(Result[T]{Items: p.opts.Merge(p.latest, p.cached), IsHydrating: true})
		return
	}
	p.next(Result[T]{Items: p.latest})
}
