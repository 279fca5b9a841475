package snapshot

import (
	"context"
	"errors"
	"slices"
	"sync"

	"wallet-state/core/storage"
	"wallet-state/core/stream"
	"wallet-state/feature/wallet"

	"go.uber.org/zap"
)

// StoreOptions configures a Store.
type StoreOptions struct {
	// Key names the snapshot entry in the medium.
	Key string
	// Budget is the encoded size above which a warning is logged. Zero uses DefaultBudget.
	Budget int
	// Scheduler is the lane Changes emits on.
	Scheduler stream.Scheduler
	Logger    *zap.Logger
}

// Store owns the persisted snapshot: it loads it from a medium, rewrites legacy
// values as compact, follows writes made by other writers and persists updates.
type Store struct {
	storage storage.Storage
	opts    StoreOptions

	mu      sync.Mutex
	current Snapshot
	format  Format

	changes     *stream.State[Snapshot]
	unsubscribe func()
}

// NewStore loads the snapshot stored under opts.Key. Missing, unreadable and
// corrupt values all start from Default; only a legacy value triggers a write.
func NewStore(ctx context.Context, st storage.Storage, opts StoreOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = stream.NewScheduler()
	}
	if opts.Budget <= 0 {
		opts.Budget = DefaultBudget
	}

	s := &Store{storage: st, opts: opts}
	s.current, s.format = s.load(ctx)
	s.changes = stream.NewState(s.current.Clone())

	if s.format == FormatLegacy {
		if err := s.write(ctx, s.current); err != nil {
			s.opts.Logger.Warn("Failed to migrate legacy snapshot", zap.String("key", opts.Key), zap.Error(err))
		} else {
			s.opts.Logger.Info("Migrated legacy snapshot to compact format", zap.String("key", opts.Key))
		}
	}

	if syncable, ok := st.(storage.Syncable); ok {
		s.unsubscribe = syncable.Subscribe(opts.Key, s.onMessage)
	}

	return s
}

func (s *Store) load(ctx context.Context) (Snapshot, Format) {
	raw, err := s.storage.GetItem(ctx, s.opts.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return Default(), FormatEmpty
	}
	if err != nil {
		s.opts.Logger.Warn("Failed to read snapshot, starting empty", zap.String("key", s.opts.Key), zap.Error(err))
		return Default(), FormatEmpty
	}

	snap, format := Decode(raw)
	if format == FormatInvalid {
		s.opts.Logger.Warn("Ignoring corrupt snapshot", zap.String("key", s.opts.Key), zap.Int("bytes", len(raw)))
	}
	return snap, format
}

// onMessage applies a change made by another writer. Last write wins.
func (s *Store) onMessage(msg storage.Message) {
	next := Default()
	if msg.Kind == storage.MessageSet {
		next, _ = Decode(msg.Value)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.publish(next)
}

func (s *Store) publish(snap Snapshot) {
	s.opts.Scheduler.Do(func() {
		s.changes.Set(snap.Clone())
	})
}

// Format reports the encoding the snapshot was loaded from.
func (s *Store) Format() Format {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Changes emits the current snapshot and every later one on the store's lane.
func (s *Store) Changes() stream.Observable[Snapshot] {
	return s.changes
}

// CachedState returns the cached wallets and accounts.
func (s *Store) CachedState() ([]CachedWallet, []CachedAccount) {
	snap := s.Snapshot()
	return snap.Wallets, snap.Accounts
}

// SetCachedState replaces the cached wallets and accounts.
func (s *Store) SetCachedState(ctx context.Context, wallets []CachedWallet, accounts []CachedAccount) error {
	return s.mutate(ctx, func(snap Snapshot) Snapshot {
		snap.Wallets = append([]CachedWallet{}, wallets...)
		snap.Accounts = append([]CachedAccount{}, accounts...)
		return snap
	})
}

// AddAutoReconnect marks walletID for reconnection on startup.
func (s *Store) AddAutoReconnect(ctx context.Context, walletID string) error {
	if _, _, err := wallet.ParseID(walletID); err != nil {
		return err
	}
	return s.mutate(ctx, func(snap Snapshot) Snapshot {
		if !slices.Contains(snap.AutoReconnect, walletID) {
			snap.AutoReconnect = append(snap.AutoReconnect, walletID)
		}
		return snap
	})
}

// RemoveAutoReconnect clears walletID from the reconnection list. Unknown ids are ignored.
func (s *Store) RemoveAutoReconnect(ctx context.Context, walletID string) error {
	return s.mutate(ctx, func(snap Snapshot) Snapshot {
		snap.AutoReconnect = slices.DeleteFunc(snap.AutoReconnect, func(id string) bool {
			return id == walletID
		})
		return snap
	})
}

func (s *Store) mutate(ctx context.Context, fn func(Snapshot) Snapshot) error {
	s.mu.Lock()
	next := fn(s.current.Clone())
	next.Version = Version
	if err := s.write(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	s.format = FormatCompact
	s.mu.Unlock()

	s.publish(next)
	return nil
}

func (s *Store) write(ctx context.Context, snap Snapshot) error {
	raw, err := Encode(snap)
	if err != nil {
		return err
	}
	if size := s.encodedSize(raw); size > s.opts.Budget {
		s.opts.Logger.Warn("Snapshot exceeds size budget",
			zap.String("key", s.opts.Key),
			zap.Int("bytes", size),
			zap.Int("budget", s.opts.Budget),
		)
	}
	return s.storage.SetItem(ctx, s.opts.Key, raw)
}

// encodedSize is the size of raw as the medium keeps it.
func (s *Store) encodedSize(raw string) int {
	if sizer, ok := s.storage.(storage.Sizer); ok {
		return sizer.EncodedSize(s.opts.Key, raw)
	}
	return len(raw)
}

// Close stops following other writers.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
