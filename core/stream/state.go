package stream

import "sync"

// broadcaster fans values out to an ordered list of subscribers.
type broadcaster[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
	done   bool
}

type subscriber[T any] struct {
	id   uint64
	next func(T)
}

func (b *broadcaster[T]) add(next func(T)) (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return 0, false
	}
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber[T]{id: id, next: next})
	return id, true
}

func (b *broadcaster[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	subs := append([]subscriber[T](nil), b.subs...)
	b.mu.Unlock()

	for _, s := range subs {
		if b.has(s.id) {
			s.next(v)
		}
	}
}

func (b *broadcaster[T]) has(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *broadcaster[T]) close() {
	b.mu.Lock()
	b.done = true
	b.subs = nil
	b.mu.Unlock()
}

func (b *broadcaster[T]) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subject multicasts values to its current subscribers without replay.
type Subject[T any] struct {
	b broadcaster[T]
}

// NewSubject returns an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Next delivers v to every current subscriber.
func (s *Subject[T]) Next(v T) {
	s.b.publish(v)
}

// Observers reports the number of active subscribers.
func (s *Subject[T]) Observers() int {
	return s.b.count()
}

func (s *Subject[T]) Subscribe(next func(T)) Subscription {
	id, ok := s.b.add(next)
	if !ok {
		return SubscriptionFunc(nil)
	}
	return SubscriptionFunc(func() { s.b.remove(id) })
}

// State is an observable value cell. Subscribers receive the current value on
// subscribe and every later value. A State never completes on its own.
type State[T any] struct {
	mu    sync.RWMutex
	value T
	b     broadcaster[T]
}

// NewState returns a State holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial}
}

// Value returns the current value.
func (s *State[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies subscribers.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
	s.b.publish(v)
}

// Update applies fn to the current value and stores the result.
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	s.mu.Unlock()
	s.b.publish(v)
}

// Observers reports the number of active subscribers.
func (s *State[T]) Observers() int {
	return s.b.count()
}

// Complete detaches every subscriber. Later Set calls only update the value.
func (s *State[T]) Complete() {
	s.b.close()
}

func (s *State[T]) Subscribe(next func(T)) Subscription {
	id, ok := s.b.add(next)
	if !ok {
		return SubscriptionFunc(nil)
	}
	sub := SubscriptionFunc(func() { s.b.remove(id) })
	if s.b.has(id) {
		next(s.Value())
	}
	return sub
}
