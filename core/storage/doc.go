// Package storage provides the key-value media that hold persisted snapshots.
//
// Every medium implements Storage: GetItem returns ErrNotFound for missing keys,
// SetItem replaces the value and RemoveItem deletes it. Media shared between
// several writers also implement Syncable and report the other writers' changes
// as typed Messages.
//
// # Media
//
//   - Noop: discards everything.
//   - Memory: in-process values; Fork returns views that notify each other.
//   - Cookie: the cookies of one HTTP exchange (request header in, Set-Cookie out).
//   - SQL: a GORM table (storage_entries) on MySQL or SQLite.
//   - Redis: plain keys plus a pub/sub channel for change notifications.
//   - Object: one object per key in an S3/MinIO bucket.
//
// # Client Interface
//
// The object medium talks to MinIO through the Client interface so that tests
// can use the mock in core/storage/mocks.
//
// # Usage
//
//	medium, err := storage.Open(ctx, cfg.Storage, storage.Deps{DB: db, Redis: cfg.Redis, Logger: log})
//	value, err := medium.GetItem(ctx, "wallet-state")
package storage
