package snapshot

import "wallet-state/feature/wallet"

// Version is the schema version written in the compact "v" field.
const Version = 1

// CachedWallet is the persisted projection of a wallet. Icons are not persisted
// with the snapshot; they live in the icon side cache.
type CachedWallet struct {
	ID          string          `json:"id"`
	Platform    wallet.Platform `json:"platform"`
	Kind        wallet.Kind     `json:"kind"`
	Name        string          `json:"name"`
	IsConnected bool            `json:"isConnected"`
}

// CachedAccount is the persisted projection of an account.
type CachedAccount struct {
	ID         string             `json:"id"`
	Platform   wallet.Platform    `json:"platform"`
	Address    string             `json:"address"`
	Name       *string            `json:"name,omitempty"`
	WalletID   string             `json:"walletId"`
	WalletName string             `json:"walletName"`
	ChainID    *int               `json:"chainId,omitempty"`
	Type       wallet.AccountType `json:"type,omitempty"`
}

// Snapshot is the persisted state restored on startup.
type Snapshot struct {
	Version       int             `json:"version"`
	AutoReconnect []string        `json:"autoReconnect"`
	Wallets       []CachedWallet  `json:"wallets"`
	Accounts      []CachedAccount `json:"accounts"`
}

// Default returns the empty snapshot used when nothing valid is stored.
func Default() Snapshot {
	return Snapshot{
		Version:       Version,
		AutoReconnect: []string{},
		Wallets:       []CachedWallet{},
		Accounts:      []CachedAccount{},
	}
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Version:       s.Version,
		AutoReconnect: append([]string{}, s.AutoReconnect...),
		Wallets:       append([]CachedWallet{}, s.Wallets...),
		Accounts:      make([]CachedAccount, len(s.Accounts)),
	}
	for i, a := range s.Accounts {
		if a.Name != nil {
			name := *a.Name
			a.Name = &name
		}
		if a.ChainID != nil {
			chain := *a.ChainID
			a.ChainID = &chain
		}
		out.Accounts[i] = a
	}
	return out
}

// Format tells which encoding a raw value was decoded from.
type Format string

const (
	// FormatEmpty means nothing was stored.
	FormatEmpty Format = "empty"
	// FormatCompact is the current tuple encoding.
	FormatCompact Format = "compact"
	// FormatLegacy is the expanded object encoding written by earlier versions.
	FormatLegacy Format = "legacy"
	// FormatInvalid means the value could not be decoded and the default was used.
	FormatInvalid Format = "invalid"
)
