package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Noop discards writes and never holds a value.
type Noop struct{}

func (Noop) GetItem(context.Context, string) (string, error) { return "", ErrNotFound }
func (Noop) SetItem(context.Context, string, string) error   { return nil }
func (Noop) RemoveItem(context.Context, string) error        { return nil }

// Memory is an in-process medium. Views created with Fork share the same values
// and see each other's writes as Messages, like tabs sharing one browser storage.
type Memory struct {
	backend *memoryBackend
	origin  string
}

type memoryBackend struct {
	mu        sync.RWMutex
	values    map[string]string
	listeners map[uint64]memoryListener
	nextID    uint64
}

type memoryListener struct {
	key    string
	origin string
	fn     func(Message)
}

// NewMemory returns an empty Memory medium.
func NewMemory() *Memory {
	return &Memory{
		backend: &memoryBackend{
			values:    make(map[string]string),
			listeners: make(map[uint64]memoryListener),
		},
		origin: uuid.NewString(),
	}
}

// Fork returns another view of the same values with its own origin.
func (m *Memory) Fork() *Memory {
	return &Memory{backend: m.backend, origin: uuid.NewString()}
}

// Origin identifies this view in Messages.
func (m *Memory) Origin() string {
	return m.origin
}

func (m *Memory) GetItem(_ context.Context, key string) (string, error) {
	m.backend.mu.RLock()
	defer m.backend.mu.RUnlock()

	v, ok := m.backend.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.backend.mu.Lock()
	m.backend.values[key] = value
	m.backend.mu.Unlock()

	m.notify(Message{Kind: MessageSet, Key: key, Value: value, Origin: m.origin})
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.backend.mu.Lock()
	_, existed := m.backend.values[key]
	delete(m.backend.values, key)
	m.backend.mu.Unlock()

	if existed {
		m.notify(Message{Kind: MessageRemove, Key: key, Origin: m.origin})
	}
	return nil
}

func (m *Memory) Subscribe(key string, fn func(Message)) func() {
	b := m.backend
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = memoryListener{key: key, origin: m.origin, fn: fn}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

func (m *Memory) notify(msg Message) {
	m.backend.mu.RLock()
	var targets []func(Message)
	for _, l := range m.backend.listeners {
		if l.key == msg.Key && l.origin != msg.Origin {
			targets = append(targets, l.fn)
		}
	}
	m.backend.mu.RUnlock()

	for _, fn := range targets {
		fn(msg)
	}
}
