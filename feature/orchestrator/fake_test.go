package orchestrator_test

import (
	"context"
	"slices"
	"sync/atomic"

	"wallet-state/core/stream"
	"wallet-state/feature/wallet"
)

// fakeConnector is an in-memory connector driven from tests. All mutations go
// through the scheduler lane.
type fakeConnector struct {
	platform wallet.Platform
	sched    stream.Scheduler
	wallets  *stream.State[[]wallet.Wallet]
	accounts map[string]*stream.State[[]wallet.Account]

	connects   atomic.Int32
	connectErr error
}

func newFakeConnector(sched stream.Scheduler, platform wallet.Platform) *fakeConnector {
	return &fakeConnector{
		platform: platform,
		sched:    sched,
		wallets:  stream.NewState([]wallet.Wallet{}),
		accounts: make(map[string]*stream.State[[]wallet.Account]),
	}
}

func (f *fakeConnector) Platform() wallet.Platform { return f.platform }

func (f *fakeConnector) Wallets() stream.Observable[[]wallet.Wallet] { return f.wallets }

// Accounts stays silent until the test reports accounts for w.
func (f *fakeConnector) Accounts(w wallet.Wallet) stream.Observable[[]wallet.Account] {
	return stream.Filter[[]wallet.Account](f.accountState(w.ID), func(a []wallet.Account) bool {
		return a != nil
	})
}

func (f *fakeConnector) accountState(walletID string) *stream.State[[]wallet.Account] {
	s, ok := f.accounts[walletID]
	if !ok {
		s = stream.NewState[[]wallet.Account](nil)
		f.accounts[walletID] = s
	}
	return s
}

func (f *fakeConnector) announce(id, name, icon string, connected bool) {
	f.sched.Do(func() {
		w := wallet.Wallet{
			ID:          id,
			Platform:    f.platform,
			Kind:        wallet.KindInjected,
			Name:        name,
			Icon:        icon,
			IsConnected: connected,
			Handle:      &fakeHandle{connector: f, id: id},
		}
		f.wallets.Update(func(ws []wallet.Wallet) []wallet.Wallet {
			out := slices.DeleteFunc(slices.Clone(ws), func(x wallet.Wallet) bool { return x.ID == id })
			return append(out, w)
		})
	})
}

func (f *fakeConnector) setConnected(id string, connected bool) {
	f.sched.Do(func() {
		f.wallets.Update(func(ws []wallet.Wallet) []wallet.Wallet {
			out := slices.Clone(ws)
			for i := range out {
				if out[i].ID == id {
					out[i].IsConnected = connected
				}
			}
			return out
		})
	})
}

func (f *fakeConnector) report(walletID string, accounts ...wallet.Account) {
	f.sched.Do(func() {
		f.accountState(walletID).Set(append([]wallet.Account{}, accounts...))
	})
}

type fakeHandle struct {
	connector *fakeConnector
	id        string
}

func (h *fakeHandle) Connect(context.Context) error {
	h.connector.connects.Add(1)
	if h.connector.connectErr != nil {
		return h.connector.connectErr
	}
	h.connector.setConnected(h.id, true)
	return nil
}

func (h *fakeHandle) Disconnect(context.Context) error {
	h.connector.setConnected(h.id, false)
	return nil
}

func polkadotAccount(walletID, walletName, address string) wallet.Account {
	id, _ := wallet.NewAccountID(walletID, address)
	return wallet.Account{
		ID:         id,
		Platform:   wallet.PlatformPolkadot,
		Address:    address,
		WalletID:   walletID,
		WalletName: walletName,
		Type:       wallet.AccountTypeSr25519,
	}
}
