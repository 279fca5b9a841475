package stream

import "time"

// Map transforms every value of src with fn.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return New(func(next func(R)) func() {
		sub := src.Subscribe(func(v T) { next(fn(v)) })
		return sub.Unsubscribe
	})
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) Observable[T] {
	return New(func(next func(T)) func() {
		sub := src.Subscribe(func(v T) {
			if keep(v) {
				next(v)
			}
		})
		return sub.Unsubscribe
	})
}

// StartWith emits values synchronously before subscribing to src.
func StartWith[T any](src Observable[T], values ...T) Observable[T] {
	return New(func(next func(T)) func() {
		for _, v := range values {
			next(v)
		}
		sub := src.Subscribe(next)
		return sub.Unsubscribe
	})
}

// CombineLatest2 emits fn(a, b) with the latest value of each source once both have
// emitted, and again on every later emission of either.
func CombineLatest2[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	return New(func(next func(R)) func() {
		var (
			lastA      A
			lastB      B
			hasA, hasB bool
		)
		subA := a.Subscribe(func(v A) {
			lastA, hasA = v, true
			if hasB {
				next(fn(lastA, lastB))
			}
		})
		subB := b.Subscribe(func(v B) {
			lastB, hasB = v, true
			if hasA {
				next(fn(lastA, lastB))
			}
		})
		return func() {
			subA.Unsubscribe()
			subB.Unsubscribe()
		}
	})
}

// CombineLatestAll emits the latest value of every source, in source order, once
// all of them have emitted. With no sources it emits an empty slice immediately.
func CombineLatestAll[T any](srcs []Observable[T]) Observable[[]T] {
	if len(srcs) == 0 {
		return Of([]T{})
	}
	return New(func(next func([]T)) func() {
		latest := make([]T, len(srcs))
		seen := make([]bool, len(srcs))
		missing := len(srcs)

		var group Group
		for i, src := range srcs {
			group.Add(src.Subscribe(func(v T) {
				latest[i] = v
				if !seen[i] {
					seen[i] = true
					missing--
				}
				if missing == 0 {
					next(append([]T(nil), latest...))
				}
			}))
		}
		return group.Unsubscribe
	})
}

// DistinctUntilChanged drops values that equal reports as unchanged from the
// previously forwarded value.
func DistinctUntilChanged[T any](src Observable[T], equal func(prev, curr T) bool) Observable[T] {
	return New(func(next func(T)) func() {
		var (
			prev T
			has  bool
		)
		sub := src.Subscribe(func(v T) {
			if has && equal(prev, v) {
				return
			}
			prev, has = v, true
			next(v)
		})
		return sub.Unsubscribe
	})
}

// Throttle limits src to one value per window. The first value of a burst is
// forwarded immediately; the last value seen during the window is forwarded when
// it closes, which opens a new window.
func Throttle[T any](src Observable[T], sched Scheduler, window time.Duration) Observable[T] {
	if window <= 0 {
		return src
	}
	return New(func(next func(T)) func() {
		var (
			throttling bool
			pending    T
			hasPending bool
			cancel     func()
		)

		var open func()
		open = func() {
			throttling = true
			cancel = sched.AfterFunc(window, func() {
				if hasPending {
					v := pending
					var zero T
					pending, hasPending = zero, false
					next(v)
					open()
					return
				}
				throttling = false
			})
		}

		sub := src.Subscribe(func(v T) {
			if throttling {
				pending, hasPending = v, true
				return
			}
			next(v)
			open()
		})
		return func() {
			sub.Unsubscribe()
			if cancel != nil {
				cancel()
			}
		}
	})
}

// Debounce forwards a value only after src has been quiet for d.
func Debounce[T any](src Observable[T], sched Scheduler, d time.Duration) Observable[T] {
	return New(func(next func(T)) func() {
		var cancel func()
		sub := src.Subscribe(func(v T) {
			if cancel != nil {
				cancel()
			}
			cancel = sched.AfterFunc(d, func() {
				cancel = nil
				next(v)
			})
		})
		return func() {
			sub.Unsubscribe()
			if cancel != nil {
				cancel()
			}
		}
	})
}

// Tap calls fn for every value before forwarding it.
func Tap[T any](src Observable[T], fn func(T)) Observable[T] {
	return Map(src, func(v T) T {
		fn(v)
		return v
	})
}

// SwitchMap subscribes to project(v) for every value of src and forwards the
// values of the latest inner stream only. The new inner stream is subscribed
// before the previous one is released so shared inner streams stay warm.
func SwitchMap[T, R any](src Observable[T], project func(T) Observable[R]) Observable[R] {
	return New(func(next func(R)) func() {
		var (
			inner Subscription
			gen   uint64
		)
		outer := src.Subscribe(func(v T) {
			gen++
			current := gen
			prev := inner
			inner = project(v).Subscribe(func(r R) {
				if current == gen {
					next(r)
				}
			})
			if prev != nil {
				prev.Unsubscribe()
			}
		})
		return func() {
			outer.Unsubscribe()
			if inner != nil {
				inner.Unsubscribe()
			}
		}
	})
}
