package stream

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler serializes stream work and schedules delayed work on the same lane.
type Scheduler interface {
	// Do runs fn on the lane. When the lane is busy fn is queued and runs, in FIFO
	// order, as soon as the current work returns.
	Do(fn func())

	// AfterFunc runs fn on the lane once d has elapsed. Calling the returned cancel
	// func from the lane guarantees fn will not run afterwards.
	AfterFunc(d time.Duration, fn func()) (cancel func())

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

// lane is a trampoline executor: the first caller drains the queue, later callers
// only enqueue.
type lane struct {
	mu       sync.Mutex
	queue    []func()
	draining bool
}

func (l *lane) Do(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	l.mu.Unlock()
	l.drain()
}

func (l *lane) drain() {
	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.draining = false
			l.mu.Unlock()
			panic(r)
		}
	}()

	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.draining = false
			l.mu.Unlock()
			return
		}
		next := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		next()
	}
}

type realScheduler struct {
	lane
}

// NewScheduler returns a Scheduler backed by wall-clock timers.
func NewScheduler() Scheduler {
	return &realScheduler{}
}

func (s *realScheduler) AfterFunc(d time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	t := time.AfterFunc(d, func() {
		s.Do(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}

func (s *realScheduler) Now() time.Time {
	return time.Now()
}

// VirtualScheduler is a Scheduler whose clock only moves when Advance is called.
// Due timers run synchronously inside Advance, in deadline order.
type VirtualScheduler struct {
	lane

	clockMu sync.Mutex
	now     time.Time
	seq     uint64
	timers  []*virtualTimer
}

type virtualTimer struct {
	at        time.Time
	seq       uint64
	fn        func()
	cancelled atomic.Bool
}

// NewVirtualScheduler returns a VirtualScheduler starting at the Unix epoch.
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{now: time.Unix(0, 0).UTC()}
}

func (v *VirtualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}

	v.clockMu.Lock()
	t := &virtualTimer{at: v.now.Add(d), seq: v.seq, fn: fn}
	v.seq++
	v.timers = append(v.timers, t)
	v.clockMu.Unlock()

	return func() { t.cancelled.Store(true) }
}

func (v *VirtualScheduler) Now() time.Time {
	v.clockMu.Lock()
	defer v.clockMu.Unlock()
	return v.now
}

// Pending reports how many timers are scheduled and not cancelled.
func (v *VirtualScheduler) Pending() int {
	v.clockMu.Lock()
	defer v.clockMu.Unlock()

	n := 0
	for _, t := range v.timers {
		if !t.cancelled.Load() {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every timer that falls due.
// It must not be called from the lane.
func (v *VirtualScheduler) Advance(d time.Duration) {
	v.clockMu.Lock()
	target := v.now.Add(d)
	v.clockMu.Unlock()

	for {
		t := v.popDue(target)
		if t == nil {
			break
		}
		v.Do(func() {
			if !t.cancelled.Load() {
				t.fn()
			}
		})
	}

	v.clockMu.Lock()
	v.now = target
	v.clockMu.Unlock()
}

func (v *VirtualScheduler) popDue(target time.Time) *virtualTimer {
	v.clockMu.Lock()
	defer v.clockMu.Unlock()

	live := v.timers[:0]
	for _, t := range v.timers {
		if !t.cancelled.Load() {
			live = append(live, t)
		}
	}
	v.timers = live

	if len(v.timers) == 0 {
		return nil
	}
	sort.Slice(v.timers, func(i, j int) bool {
		if v.timers[i].at.Equal(v.timers[j].at) {
			return v.timers[i].seq < v.timers[j].seq
		}
		return v.timers[i].at.Before(v.timers[j].at)
	})

	next := v.timers[0]
	if next.at.After(target) {
		return nil
	}
	v.timers = v.timers[1:]
	v.now = next.at
	return next
}
