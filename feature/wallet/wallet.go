package wallet

import (
	"context"
	"errors"
)

// Platform is the chain family a wallet belongs to.
type Platform string

const (
	PlatformPolkadot Platform = "polkadot"
	PlatformEthereum Platform = "ethereum"
)

// IsValid reports whether p is a known platform.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformPolkadot, PlatformEthereum:
		return true
	default:
		return false
	}
}

// Kind describes how a wallet is reached.
type Kind string

const (
	// KindInjected wallets are provided by the client environment (e.g. a browser extension).
	KindInjected Kind = "injected"
	// KindRemoteSession wallets are reached through a remote session protocol.
	KindRemoteSession Kind = "remote-session"
)

// Handle carries the live capabilities of a wallet.
type Handle interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// Wallet is a wallet reported by a connector, or a placeholder restored from cache.
type Wallet struct {
	ID          string   `json:"id"`
	Platform    Platform `json:"platform"`
	Kind        Kind     `json:"kind"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon,omitempty"`
	IsConnected bool     `json:"isConnected"`

	// Handle is nil for wallets without capabilities.
	Handle Handle `json:"-"`
}

// Connect asks the wallet to connect.
func (w Wallet) Connect(ctx context.Context) error {
	if w.Handle == nil {
		return &PendingWalletError{WalletID: w.ID}
	}
	return w.Handle.Connect(ctx)
}

// Disconnect asks the wallet to disconnect.
func (w Wallet) Disconnect(ctx context.Context) error {
	if w.Handle == nil {
		return &PendingWalletError{WalletID: w.ID}
	}
	return w.Handle.Disconnect(ctx)
}

// IsPlaceholder reports whether w was restored from cache and has no live capabilities.
func (w Wallet) IsPlaceholder() bool {
	if w.Handle == nil {
		return true
	}
	_, ok := w.Handle.(pendingHandle)
	return ok
}

// Key returns the wallet id. It is the merge key of wallet collections.
func Key(w Wallet) string { return w.ID }

// Connected reports the wallet's connection flag.
func Connected(w Wallet) bool { return w.IsConnected }

// Placeholder builds a display-only wallet from cached data. Its capabilities
// fail with *PendingWalletError.
func Placeholder(id, name, icon string, connected bool) (Wallet, error) {
	platform, _, err := ParseID(id)
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{
		ID:          id,
		Platform:    platform,
		Kind:        KindInjected,
		Name:        name,
		Icon:        icon,
		IsConnected: connected,
		Handle:      pendingHandle{walletID: id},
	}, nil
}

type pendingHandle struct {
	walletID string
}

func (h pendingHandle) Connect(context.Context) error {
	return &PendingWalletError{WalletID: h.walletID}
}

func (h pendingHandle) Disconnect(context.Context) error {
	return &PendingWalletError{WalletID: h.walletID}
}

// IsPending reports whether err is a *PendingWalletError.
func IsPending(err error) bool {
	var pending *PendingWalletError
	return errors.As(err, &pending)
}
