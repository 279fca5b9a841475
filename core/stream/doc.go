// Package stream provides the small push-based stream toolkit the hydration engine
// is built on.
//
// Streams are synchronous: an Observable calls its subscriber directly from whatever
// code produced the value. Ordering and mutual exclusion come from a Scheduler, a
// serial lane onto which every timer callback and every externally produced value is
// posted. Code running on the lane may emit, subscribe and unsubscribe freely without
// additional locking.
//
// # Components
//
//   - Scheduler: serial lane plus delayed work (real time or virtual time for tests).
//   - Observable / Subscription: the subscribe and teardown contract.
//   - State: a re-subscribable value cell that replays its current value.
//   - Operators: Map, Filter, StartWith, CombineLatest2, CombineLatestAll,
//     DistinctUntilChanged, Throttle, Debounce, Share.
//   - Cache: keyed registry of shared streams with stampede protection.
//
// # Usage
//
//	sched := stream.NewScheduler()
//	live := stream.NewState([]string{})
//	out := stream.Throttle(stream.Map(live, strings.Join), sched, 16*time.Millisecond)
//	sub := out.Subscribe(func(v string) { fmt.Println(v) })
//	defer sub.Unsubscribe()
package stream
