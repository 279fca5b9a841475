package hydrate

import (
	"time"

	"wallet-state/core/stream"
)

// SafetyFactor bounds a gated hydration phase to SafetyFactor grace periods.
const SafetyFactor = 6

// Result is a single buffer emission.
type Result[T any] struct {
	// Items is the merged collection while hydrating, the live one afterwards.
	Items []T

	// IsHydrating reports whether the cache still contributes to Items.
	IsHydrating bool
}

// MergeFunc combines the latest live collection with the cached one.
type MergeFunc[T any] func(live, cached []T) []T

// ConvergedFunc reports whether the live collection has caught up with the cache.
type ConvergedFunc[T any] func(live, cached []T) bool

// Options configures a hydration buffer.
type Options[T any] struct {
	// GracePeriod is how long cached data is shown before live data takes over.
	// Zero or negative disables hydration.
	GracePeriod time.Duration

	// Merge combines live and cached items while hydrating. Required.
	Merge MergeFunc[T]

	// Converged, when set, keeps the phase open past the grace period until the
	// live collection has caught up, bounded by SafetyFactor grace periods.
	Converged ConvergedFunc[T]

	// Scheduler runs timers and must be the lane the buffer is subscribed on.
	// Defaults to a wall-clock scheduler.
	Scheduler stream.Scheduler

	// OnSettle is called once per subscription with the transition that ended
	// the hydrating phase.
	OnSettle func(Transition)
}
