package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetItem when the key holds no value.
var ErrNotFound = errors.New("storage: item not found")

// Storage is a string key-value medium.
type Storage interface {
	// GetItem returns the value stored under key, or ErrNotFound.
	GetItem(ctx context.Context, key string) (string, error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// MessageKind tells whether a key was written or removed.
type MessageKind string

const (
	MessageSet    MessageKind = "set"
	MessageRemove MessageKind = "remove"
)

// Message notifies a subscriber that another writer changed a key.
type Message struct {
	Kind  MessageKind `json:"kind"`
	Key   string      `json:"key"`
	Value string      `json:"value,omitempty"`
	// Origin identifies the writer so media can skip their own writes.
	Origin string `json:"origin"`
}

// Syncable is implemented by media shared between several writers. Subscribers
// receive changes made by the other writers only, on an arbitrary goroutine.
type Syncable interface {
	Storage
	Subscribe(key string, fn func(Message)) (unsubscribe func())
}

// Sizer is implemented by media that store values in a different form than
// given, so size budgets can be checked against what is actually kept.
type Sizer interface {
	// EncodedSize returns the number of bytes the medium keeps for key and value.
	EncodedSize(key, value string) int
}
