package stream

import "sync"

// Share multicasts src to every subscriber through a single upstream subscription.
// The latest value is replayed to late subscribers. The upstream subscription is
// opened by the first subscriber and closed, with the replay value dropped, when
// the last one leaves.
func Share[T any](src Observable[T]) Observable[T] {
	return &shared[T]{src: src}
}

type shared[T any] struct {
	mu       sync.Mutex
	src      Observable[T]
	b        broadcaster[T]
	refs     int
	upstream Subscription
	last     T
	hasLast  bool
}

func (s *shared[T]) Subscribe(next func(T)) Subscription {
	id, _ := s.b.add(next)

	s.mu.Lock()
	s.refs++
	first := s.refs == 1
	last, hasLast := s.last, s.hasLast
	s.mu.Unlock()

	if hasLast {
		next(last)
	}

	if first {
		up := s.src.Subscribe(func(v T) {
			s.mu.Lock()
			s.last, s.hasLast = v, true
			s.mu.Unlock()
			s.b.publish(v)
		})
		s.mu.Lock()
		if s.refs == 0 {
			s.mu.Unlock()
			up.Unsubscribe()
		} else {
			s.upstream = up
			s.mu.Unlock()
		}
	}

	return SubscriptionFunc(func() {
		s.b.remove(id)

		s.mu.Lock()
		s.refs--
		if s.refs > 0 {
			s.mu.Unlock()
			return
		}
		up := s.upstream
		s.upstream = nil
		var zero T
		s.last, s.hasLast = zero, false
		s.mu.Unlock()

		if up != nil {
			up.Unsubscribe()
		}
	})
}
