package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"wallet-state/core/storage"

	"go.uber.org/zap"
)

// IconKeySuffix is appended to the snapshot key to name the icon cache entry.
const IconKeySuffix = "-icons"

// IconCache keeps wallet icons out of the snapshot, in a separate medium entry
// mapping wallet ids to icon URIs.
type IconCache struct {
	storage storage.Storage
	key     string
	logger  *zap.Logger

	mu    sync.RWMutex
	icons map[string]string
}

// NewIconCache returns an IconCache stored next to the snapshot stored under snapshotKey.
func NewIconCache(st storage.Storage, snapshotKey string, logger *zap.Logger) *IconCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IconCache{
		storage: st,
		key:     snapshotKey + IconKeySuffix,
		logger:  logger,
		icons:   make(map[string]string),
	}
}

// Load reads the stored icons. Missing or corrupt entries leave the cache empty.
func (c *IconCache) Load(ctx context.Context) {
	raw, err := c.storage.GetItem(ctx, c.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("Failed to read icon cache", zap.String("key", c.key), zap.Error(err))
		}
		return
	}

	icons := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &icons); err != nil {
		c.logger.Warn("Ignoring corrupt icon cache", zap.String("key", c.key), zap.Error(err))
		return
	}
	if icons == nil {
		return
	}

	c.mu.Lock()
	c.icons = icons
	c.mu.Unlock()
}

// Get returns the cached icon of walletID, or "".
func (c *IconCache) Get(walletID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.icons[walletID]
}

// SetAll records icons and writes the cache when any entry changed. Empty icons
// are ignored.
func (c *IconCache) SetAll(ctx context.Context, icons map[string]string) error {
	c.mu.Lock()
	changed := false
	for id, icon := range icons {
		if icon != "" && c.icons[id] != icon {
			c.icons[id] = icon
			changed = true
		}
	}
	if !changed {
		c.mu.Unlock()
		return nil
	}
	raw, err := json.Marshal(c.icons)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	return c.storage.SetItem(ctx, c.key, string(raw))
}
