package orchestrator

import (
	"wallet-state/core/hydrate"
	"wallet-state/feature/wallet"
)

// State is the combined wallet and account view published to consumers.
type State struct {
	Wallets     []wallet.Wallet  `json:"wallets"`
	Accounts    []wallet.Account `json:"accounts"`
	IsHydrating bool             `json:"isHydrating"`
	Config      hydrate.Config   `json:"config"`
}

// Wallet returns the wallet with the given id.
func (s State) Wallet(id string) (wallet.Wallet, bool) {
	for _, w := range s.Wallets {
		if w.ID == id {
			return w, true
		}
	}
	return wallet.Wallet{}, false
}

// StatesEqual reports whether a and b would render the same. Only the
// hydrating flag, wallet ids with their connection flag and account ids are
// compared; ethereum accounts also compare their chain id.
func StatesEqual(a, b State) bool {
	if a.IsHydrating != b.IsHydrating {
		return false
	}
	if len(a.Wallets) != len(b.Wallets) || len(a.Accounts) != len(b.Accounts) {
		return false
	}
	for i := range a.Wallets {
		if a.Wallets[i].ID != b.Wallets[i].ID || a.Wallets[i].IsConnected != b.Wallets[i].IsConnected {
			return false
		}
	}
	for i := range a.Accounts {
		x, y := a.Accounts[i], b.Accounts[i]
		if x.ID != y.ID {
			return false
		}
		if x.Platform == wallet.PlatformEthereum && !sameChain(x.ChainID, y.ChainID) {
			return false
		}
	}
	return true
}

func sameChain(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// buffers pairs the latest output of the two hydration buffers.
type buffers struct {
	wallets  hydrate.Result[wallet.Wallet]
	accounts hydrate.Result[wallet.Account]
}

func (b buffers) settled() bool {
	return !b.wallets.IsHydrating && !b.accounts.IsHydrating
}

// sameIDs reports whether a and b hold the same wallet and account ids in order.
func sameIDs(a, b buffers) bool {
	if len(a.wallets.Items) != len(b.wallets.Items) || len(a.accounts.Items) != len(b.accounts.Items) {
		return false
	}
	for i := range a.wallets.Items {
		if a.wallets.Items[i].ID != b.wallets.Items[i].ID {
			return false
		}
	}
	for i := range a.accounts.Items {
		if a.accounts.Items[i].ID != b.accounts.Items[i].ID {
			return false
		}
	}
	return true
}
