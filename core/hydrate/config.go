package hydrate

import "time"

// Config holds the hydration settings shared by the orchestrator and the
// snapshot store.
type Config struct {
	// GracePeriod is how long cached state is shown before live state takes over.
	GracePeriod time.Duration `mapstructure:"grace_period" json:"gracePeriod" default:"500ms"`

	// AutoReconnect reconnects the wallets listed in the snapshot on startup.
	AutoReconnect bool `mapstructure:"auto_reconnect" json:"autoReconnect" default:"true"`

	// StorageKey names the snapshot entry in the storage medium.
	StorageKey string `mapstructure:"storage_key" json:"storageKey" default:"wallet-state"`

	// Platforms lists the enabled wallet platforms.
	Platforms []string `mapstructure:"platforms" json:"platforms" default:"polkadot"`

	// AccountTypes filters polkadot accounts by key type.
	AccountTypes []string `mapstructure:"account_types" json:"accountTypes" default:"sr25519,ed25519,ecdsa,ethereum"`

	// Throttle is the minimum interval between two published states.
	Throttle time.Duration `mapstructure:"throttle" json:"throttle" default:"16ms"`

	// PersistDebounce is how long state must stay unchanged before it is persisted.
	PersistDebounce time.Duration `mapstructure:"persist_debounce" json:"persistDebounce" default:"1s"`

	// SnapshotBudget is the encoded snapshot size above which a warning is logged.
	SnapshotBudget int `mapstructure:"snapshot_budget" json:"snapshotBudget" default:"4000"`

	// Debug logs hydration transitions.
	Debug bool `mapstructure:"debug" json:"debug" default:"false"`
}
