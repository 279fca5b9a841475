package stream

import "sync"

// Observable is a push-based source of values.
type Observable[T any] interface {
	// Subscribe registers next to receive values until the returned Subscription is
	// cancelled. Sources may call next synchronously from within Subscribe.
	Subscribe(next func(T)) Subscription
}

// Subscription cancels a subscription. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// Func adapts a subscribe function to Observable. The function receives the
// subscriber and returns the teardown to run on unsubscribe (nil is allowed).
type Func[T any] func(next func(T)) (teardown func())

// New builds an Observable from a subscribe function.
func New[T any](fn func(next func(T)) (teardown func())) Observable[T] {
	return Func[T](fn)
}

func (f Func[T]) Subscribe(next func(T)) Subscription {
	sub := &subscription{}
	teardown := f(func(v T) {
		if !sub.Closed() {
			next(v)
		}
	})
	sub.attach(teardown)
	return sub
}

type subscription struct {
	mu       sync.Mutex
	closed   bool
	teardown func()
}

func (s *subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// attach stores the teardown, running it right away if the subscription was
// cancelled while the subscribe function was still executing.
func (s *subscription) attach(teardown func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if teardown != nil {
			teardown()
		}
		return
	}
	s.teardown = teardown
	s.mu.Unlock()
}

func (s *subscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	teardown := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	if teardown != nil {
		teardown()
	}
}

// SubscriptionFunc adapts a plain func to Subscription. It runs at most once.
func SubscriptionFunc(fn func()) Subscription {
	s := &subscription{}
	s.attach(fn)
	return s
}

// Group unsubscribes a set of subscriptions together.
type Group struct {
	mu     sync.Mutex
	subs   []Subscription
	closed bool
}

// Add registers sub with the group. Adding to a closed group cancels sub at once.
func (g *Group) Add(sub Subscription) {
	if sub == nil {
		return
	}
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	g.subs = append(g.subs, sub)
	g.mu.Unlock()
}

func (g *Group) Unsubscribe() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// Of returns an Observable that emits values synchronously on every subscription.
func Of[T any](values ...T) Observable[T] {
	return New(func(next func(T)) func() {
		for _, v := range values {
			next(v)
		}
		return nil
	})
}
