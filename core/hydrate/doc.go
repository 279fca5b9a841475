// Package hydrate merges a persisted snapshot with a live stream that fills in
// gradually, so consumers see cached data at once and live data as it arrives.
//
// # Lifecycle
//
// A buffer subscription starts in the hydrating phase. While hydrating, every
// live emission is combined with the cached collection through a merge strategy
// and reported with IsHydrating set. The phase ends exactly once:
//
//  1. Without a convergence check, when the grace period elapses.
//  2. With a convergence check, at the first instant where the grace period has
//     elapsed and the live collection has caught up with the cache.
//  3. With a convergence check, unconditionally after SafetyFactor grace periods.
//
// After that only live items are emitted. The Machine type models this race
// explicitly so it can be tested on its own.
//
// # Merge strategies
//
// KeyedMerge matches items by a stable key and lets the cached copy win while
// hydrating. GroupedMerge works on Group values and replaces a cached group as soon as
// live reports that group, even with no items.
//
// # Usage Example
//
//	merge := hydrate.KeyedMerge[wallet.Wallet]{Key: wallet.Key}
//	out := hydrate.Buffer(cached, live, hydrate.Options[wallet.Wallet]{
//	    GracePeriod: 500 * time.Millisecond,
//	    Merge:       merge.Merge,
//	    Converged:   hydrate.ConnectedConverged(wallet.Key, wallet.Connected),
//	    Scheduler:   sched,
//	})
package hydrate
