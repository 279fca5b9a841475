package relay

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"wallet-state/core/stream"
	"wallet-state/feature/wallet"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidAnnouncement is returned for announcements and reports that do not
// describe a usable wallet or account.
var ErrInvalidAnnouncement = errors.New("invalid announcement")

// Announcement describes a wallet discovered by an agent.
type Announcement struct {
	Identifier string      `json:"identifier"`
	Name       string      `json:"name"`
	Icon       string      `json:"icon,omitempty"`
	Kind       wallet.Kind `json:"kind,omitempty"`
}

// AccountReport describes one account exposed by a connected wallet.
type AccountReport struct {
	Address         string             `json:"address"`
	Name            *string            `json:"name,omitempty"`
	ChainID         *int               `json:"chainId,omitempty"`
	Type            wallet.AccountType `json:"type,omitempty"`
	IsWalletDefault bool               `json:"isWalletDefault,omitempty"`
}

// Status is a relayed wallet together with its current session.
type Status struct {
	Wallet      wallet.Wallet `json:"wallet"`
	SessionID   string        `json:"sessionId,omitempty"`
	ConnectedAt *time.Time    `json:"connectedAt,omitempty"`
}

type session struct {
	id          string
	connectedAt time.Time
}

// Relay is a wallet.Connector for one platform whose wallets and accounts are
// pushed by discovery agents. Its methods may be called from any goroutine
// except the scheduler lane.
type Relay struct {
	platform wallet.Platform
	sched    stream.Scheduler
	logger   *zap.Logger

	wallets *stream.State[[]wallet.Wallet]

	// lane only
	accounts map[string]*stream.State[[]wallet.Account]
	sessions map[string]session
}

// New creates an empty relay for platform.
func New(platform wallet.Platform, sched stream.Scheduler, logger *zap.Logger) (*Relay, error) {
	if !platform.IsValid() {
		return nil, fmt.Errorf("relay: unknown platform %q", platform)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{
		platform: platform,
		sched:    sched,
		logger:   logger.With(zap.String("platform", string(platform))),
		wallets:  stream.NewState([]wallet.Wallet{}),
		accounts: make(map[string]*stream.State[[]wallet.Account]),
		sessions: make(map[string]session),
	}, nil
}

func (r *Relay) Platform() wallet.Platform { return r.platform }

// Wallets emits the announced wallets on the lane.
func (r *Relay) Wallets() stream.Observable[[]wallet.Wallet] {
	return r.wallets
}

// Accounts emits the accounts reported for w. Nothing is emitted until the
// first report of the current session.
func (r *Relay) Accounts(w wallet.Wallet) stream.Observable[[]wallet.Account] {
	return stream.Filter[[]wallet.Account](r.accountState(w.ID), func(a []wallet.Account) bool {
		return a != nil
	})
}

func (r *Relay) accountState(walletID string) *stream.State[[]wallet.Account] {
	s, ok := r.accounts[walletID]
	if !ok {
		s = stream.NewState[[]wallet.Account](nil)
		r.accounts[walletID] = s
	}
	return s
}

// exec runs fn on the lane and waits for its result.
func (r *Relay) exec(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	r.sched.Do(func() { done <- fn() })
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) find(id string) (int, wallet.Wallet, bool) {
	ws := r.wallets.Value()
	i := slices.IndexFunc(ws, func(w wallet.Wallet) bool { return w.ID == id })
	if i < 0 {
		return -1, wallet.Wallet{}, false
	}
	return i, ws[i], true
}

func (r *Relay) replace(w wallet.Wallet) {
	r.wallets.Update(func(ws []wallet.Wallet) []wallet.Wallet {
		out := slices.Clone(ws)
		for i := range out {
			if out[i].ID == w.ID {
				out[i] = w
				return out
			}
		}
		return append(out, w)
	})
}

// Announce adds a wallet or refreshes the name, icon and kind of a known one.
// The connection state of a known wallet is kept.
func (r *Relay) Announce(ctx context.Context, a Announcement) (wallet.Wallet, error) {
	id, err := wallet.NewID(r.platform, a.Identifier)
	if err != nil {
		return wallet.Wallet{}, err
	}
	if a.Name == "" {
		return wallet.Wallet{}, fmt.Errorf("%w: wallet %s has no name", ErrInvalidAnnouncement, id)
	}
	kind := a.Kind
	switch kind {
	case "":
		kind = wallet.KindInjected
	case wallet.KindInjected, wallet.KindRemoteSession:
	default:
		return wallet.Wallet{}, fmt.Errorf("%w: kind %q", ErrInvalidAnnouncement, a.Kind)
	}

	var out wallet.Wallet
	err = r.exec(ctx, func() error {
		_, prev, known := r.find(id)
		out = wallet.Wallet{
			ID:          id,
			Platform:    r.platform,
			Kind:        kind,
			Name:        a.Name,
			Icon:        a.Icon,
			IsConnected: known && prev.IsConnected,
			Handle:      &handle{relay: r, walletID: id},
		}
		r.replace(out)
		if !known {
			r.logger.Info("Wallet announced", zap.String("wallet_id", id))
		}
		return nil
	})
	return out, err
}

// Withdraw removes a wallet together with its session and accounts.
func (r *Relay) Withdraw(ctx context.Context, id string) error {
	return r.exec(ctx, func() error {
		if _, _, ok := r.find(id); !ok {
			return fmt.Errorf("%w: %s", wallet.ErrUnknownWallet, id)
		}
		r.wallets.Update(func(ws []wallet.Wallet) []wallet.Wallet {
			return slices.DeleteFunc(slices.Clone(ws), func(w wallet.Wallet) bool { return w.ID == id })
		})
		delete(r.sessions, id)
		if s, ok := r.accounts[id]; ok {
			s.Complete()
			delete(r.accounts, id)
		}
		r.logger.Info("Wallet withdrawn", zap.String("wallet_id", id))
		return nil
	})
}

// ReportAccounts replaces the accounts of a connected wallet.
func (r *Relay) ReportAccounts(ctx context.Context, walletID string, reports []AccountReport) error {
	return r.exec(ctx, func() error {
		_, w, ok := r.find(walletID)
		if !ok {
			return fmt.Errorf("%w: %s", wallet.ErrUnknownWallet, walletID)
		}
		if !w.IsConnected {
			return fmt.Errorf("%w: %s", wallet.ErrNotConnected, walletID)
		}

		accounts := make([]wallet.Account, 0, len(reports))
		for _, rep := range reports {
			a, err := r.account(w, rep)
			if err != nil {
				return err
			}
			accounts = append(accounts, a)
		}
		r.accountState(walletID).Set(accounts)
		return nil
	})
}

func (r *Relay) account(w wallet.Wallet, rep AccountReport) (wallet.Account, error) {
	id, err := wallet.NewAccountID(w.ID, rep.Address)
	if err != nil {
		return wallet.Account{}, err
	}
	a := wallet.Account{
		ID:         id,
		Platform:   r.platform,
		Address:    rep.Address,
		WalletID:   w.ID,
		WalletName: w.Name,
		Name:       rep.Name,
	}
	switch r.platform {
	case wallet.PlatformPolkadot:
		if rep.Type != "" && !slices.Contains(wallet.AccountTypes, rep.Type) {
			return wallet.Account{}, fmt.Errorf("%w: account type %q", ErrInvalidAnnouncement, rep.Type)
		}
		a.Type = rep.Type
	case wallet.PlatformEthereum:
		a.ChainID = rep.ChainID
		a.IsWalletDefault = rep.IsWalletDefault
	}
	return a, nil
}

// Statuses lists the relayed wallets with their sessions.
func (r *Relay) Statuses(ctx context.Context) ([]Status, error) {
	var out []Status
	err := r.exec(ctx, func() error {
		ws := r.wallets.Value()
		out = make([]Status, 0, len(ws))
		for _, w := range ws {
			st := Status{Wallet: w}
			if s, ok := r.sessions[w.ID]; ok {
				at := s.connectedAt
				st.SessionID = s.id
				st.ConnectedAt = &at
			}
			out = append(out, st)
		}
		return nil
	})
	return out, err
}

func (r *Relay) setConnected(id string, connected bool) error {
	_, w, ok := r.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", wallet.ErrUnknownWallet, id)
	}
	switch {
	case connected && w.IsConnected:
		return wallet.ErrAlreadyConnected
	case !connected && !w.IsConnected:
		return wallet.ErrNotConnected
	}

	if connected {
		r.sessions[id] = session{id: uuid.NewString(), connectedAt: r.sched.Now()}
		// A new session waits for a fresh account report.
		r.accountState(id).Set(nil)
	} else {
		delete(r.sessions, id)
	}

	w.IsConnected = connected
	r.replace(w)
	return nil
}

// handle carries the capabilities of a relayed wallet.
type handle struct {
	relay    *Relay
	walletID string
}

func (h *handle) Connect(ctx context.Context) error {
	return h.relay.exec(ctx, func() error {
		return h.relay.setConnected(h.walletID, true)
	})
}

func (h *handle) Disconnect(ctx context.Context) error {
	return h.relay.exec(ctx, func() error {
		return h.relay.setConnected(h.walletID, false)
	})
}
