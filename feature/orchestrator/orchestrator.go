package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wallet-state/core/hydrate"
	"wallet-state/core/storage"
	"wallet-state/core/stream"
	"wallet-state/feature/snapshot"
	"wallet-state/feature/wallet"

	"go.uber.org/zap"
)

// persistTimeout bounds a single snapshot write.
const persistTimeout = 5 * time.Second

// Options configures an Orchestrator.
type Options struct {
	Config     hydrate.Config
	Connectors []wallet.Connector
	// Store must emit its changes on Scheduler.
	Store *snapshot.Store
	// Icons defaults to a cache that keeps nothing.
	Icons *snapshot.IconCache
	// Scheduler is the lane all stream work runs on.
	Scheduler stream.Scheduler
	Logger    *zap.Logger
}

// Orchestrator combines the live connector feeds with the persisted snapshot
// into a single State stream.
type Orchestrator struct {
	cfg          hydrate.Config
	platforms    []wallet.Platform
	connectors   map[wallet.Platform]wallet.Connector
	accountTypes []wallet.AccountType
	store        *snapshot.Store
	icons        *snapshot.IconCache
	sched        stream.Scheduler
	logger       *zap.Logger

	streams *stream.Cache
	state   stream.Observable[State]

	mu      sync.RWMutex
	current State

	// lane only
	hot          stream.Subscription
	reconnecting map[string]struct{}
}

// New builds an orchestrator. Connectors whose platform is not enabled in the
// configuration are ignored.
func New(opts Options) (*Orchestrator, error) {
	if opts.Store == nil {
		return nil, errors.New("orchestrator: snapshot store is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = stream.NewScheduler()
	}
	if opts.Icons == nil {
		opts.Icons = snapshot.NewIconCache(storage.Noop{}, opts.Config.StorageKey, opts.Logger)
	}

	o := &Orchestrator{
		cfg:           opts.Config,
		connectors:    make(map[wallet.Platform]wallet.Connector),
		store:         opts.Store,
		icons:         opts.Icons,
		sched:         opts.Scheduler,
		logger:        opts.Logger,
		streams:       stream.NewCache(),
		reconnecting:  make(map[string]struct{}),
		current:       State{Wallets: []wallet.Wallet{}, Accounts: []wallet.Account{}, Config: opts.Config},
	}

	enabled, err := parsePlatforms(opts.Config.Platforms)
	if err != nil {
		return nil, err
	}
	for _, c := range opts.Connectors {
		p := c.Platform()
		if _, ok := enabled[p]; !ok && len(enabled) > 0 {
			o.logger.Debug("Connector platform disabled", zap.String("platform", string(p)))
			continue
		}
		if _, dup := o.connectors[p]; dup {
			return nil, fmt.Errorf("orchestrator: duplicate connector for platform %s", p)
		}
		o.connectors[p] = c
		o.platforms = append(o.platforms, p)
	}

	for _, t := range opts.Config.AccountTypes {
		o.accountTypes = append(o.accountTypes, wallet.AccountType(t))
	}

	states := stream.DistinctUntilChanged(stream.New(o.run), StatesEqual)
	throttled := stream.Throttle(states, o.sched, o.cfg.Throttle)
	o.state = stream.Share(stream.Tap(throttled, o.setCurrent))

	return o, nil
}

func parsePlatforms(names []string) (map[wallet.Platform]struct{}, error) {
	out := make(map[wallet.Platform]struct{}, len(names))
	for _, n := range names {
		p := wallet.Platform(n)
		if !p.IsValid() {
			return nil, fmt.Errorf("orchestrator: unknown platform %q", n)
		}
		out[p] = struct{}{}
	}
	return out, nil
}

// State returns the shared state stream. Subscribe to it from the scheduler lane.
func (o *Orchestrator) State() stream.Observable[State] {
	return o.state
}

// Subscribe registers fn on the state stream from any goroutine. fn runs on the lane.
func (o *Orchestrator) Subscribe(fn func(State)) stream.Subscription {
	group := &stream.Group{}
	o.sched.Do(func() {
		group.Add(o.state.Subscribe(fn))
	})
	return stream.SubscriptionFunc(func() {
		o.sched.Do(group.Unsubscribe)
	})
}

// Start keeps the state stream subscribed until Stop is called.
func (o *Orchestrator) Start() {
	o.sched.Do(func() {
		if o.hot == nil {
			o.hot = o.state.Subscribe(func(State) {})
		}
	})
}

// Stop releases the subscription taken by Start.
func (o *Orchestrator) Stop() {
	o.sched.Do(func() {
		if o.hot != nil {
			o.hot.Unsubscribe()
			o.hot = nil
		}
	})
}

// Current returns the last published state.
func (o *Orchestrator) Current() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

func (o *Orchestrator) setCurrent(s State) {
	o.mu.Lock()
	o.current = s
	o.mu.Unlock()
}

// Connect connects the wallet with the given id and marks it for auto-reconnect.
func (o *Orchestrator) Connect(ctx context.Context, id string) error {
	w, ok := o.Current().Wallet(id)
	if !ok {
		return fmt.Errorf("%w: %s", wallet.ErrUnknownWallet, id)
	}
	if err := w.Connect(ctx); err != nil {
		return err
	}
	if err := o.store.AddAutoReconnect(ctx, id); err != nil {
		o.logger.Warn("Failed to record auto-reconnect wallet", zap.String("wallet_id", id), zap.Error(err))
	}
	return nil
}

// Disconnect disconnects the wallet with the given id and drops it from auto-reconnect.
func (o *Orchestrator) Disconnect(ctx context.Context, id string) error {
	w, ok := o.Current().Wallet(id)
	if !ok {
		return fmt.Errorf("%w: %s", wallet.ErrUnknownWallet, id)
	}
	if err := w.Disconnect(ctx); err != nil {
		return err
	}
	o.streams.Invalidate(accountsKey(id))
	if err := o.store.RemoveAutoReconnect(ctx, id); err != nil {
		o.logger.Warn("Failed to clear auto-reconnect wallet", zap.String("wallet_id", id), zap.Error(err))
	}
	return nil
}

// run is one subscription cycle: it builds both hydration buffers from the
// snapshot as it is now and wires persistence and auto-reconnect to them.
func (o *Orchestrator) run(next func(State)) func() {
	ctx, cancel := context.WithCancel(context.Background())

	cachedWallets, cachedAccounts := o.cached()
	if o.cfg.Debug && len(cachedWallets) > 0 {
		o.logger.Debug("Hydrating from snapshot",
			zap.Int("wallets", len(cachedWallets)),
			zap.Int("accounts", len(cachedAccounts)),
		)
	}

	liveWallets := o.liveWallets()
	liveAccounts := stream.Share(stream.SwitchMap(liveWallets, o.accountsOf))

	walletBuf := hydrate.Buffer(cachedWallets, liveWallets, hydrate.Options[wallet.Wallet]{
		GracePeriod: o.cfg.GracePeriod,
		Merge: hydrate.KeyedMerge[wallet.Wallet]{
			Key:                 wallet.Key,
			MergeItem:           o.mergeWallet,
			TransformCachedOnly: o.withCachedIcon,
		}.Merge,
		Converged: hydrate.ConnectedConverged(wallet.Key, wallet.Connected),
		Scheduler: o.sched,
		OnSettle:  o.onSettle("wallets"),
	})

	var grouped hydrate.GroupedMerge[wallet.Account]
	groupBuf := hydrate.Buffer(hydrate.GroupBy(cachedAccounts, wallet.AccountWalletID), liveAccounts, hydrate.Options[hydrate.Group[wallet.Account]]{
		GracePeriod: o.cfg.GracePeriod,
		Merge:       grouped.Merge,
		Converged:   grouped.Converged,
		Scheduler:   o.sched,
		OnSettle:    o.onSettle("accounts"),
	})
	accountBuf := stream.Map(groupBuf, func(r hydrate.Result[hydrate.Group[wallet.Account]]) hydrate.Result[wallet.Account] {
		return hydrate.Result[wallet.Account]{Items: hydrate.Flatten(r.Items), IsHydrating: r.IsHydrating}
	})

	combined := stream.Share(stream.CombineLatest2(walletBuf, accountBuf, func(w hydrate.Result[wallet.Wallet], a hydrate.Result[wallet.Account]) buffers {
		return buffers{wallets: w, accounts: a}
	}))

	var subs stream.Group
	subs.Add(o.autoReconnectOn(ctx, liveWallets))
	subs.Add(o.persistOn(combined))
	subs.Add(combined.Subscribe(func(b buffers) {
		if o.cfg.Debug {
			o.logger.Debug("Hydration state",
				zap.Bool("wallets_hydrating", b.wallets.IsHydrating),
				zap.Bool("accounts_hydrating", b.accounts.IsHydrating),
				zap.Int("wallets", len(b.wallets.Items)),
				zap.Int("accounts", len(b.accounts.Items)),
			)
		}
		next(State{
			Wallets:     b.wallets.Items,
			Accounts:    b.accounts.Items,
			IsHydrating: b.wallets.IsHydrating || b.accounts.IsHydrating,
			Config:      o.cfg,
		})
	}))

	return func() {
		cancel()
		subs.Unsubscribe()
	}
}

func (o *Orchestrator) onSettle(buffer string) func(hydrate.Transition) {
	return func(t hydrate.Transition) {
		if o.cfg.Debug {
			o.logger.Debug("Hydration settled", zap.String("buffer", buffer), zap.String("reason", string(t)))
		}
	}
}

// cached hydrates the snapshot into placeholder wallets and display accounts.
// Entries for disabled platforms are dropped.
func (o *Orchestrator) cached() ([]wallet.Wallet, []wallet.Account) {
	cw, ca := o.store.CachedState()

	wallets := make([]wallet.Wallet, 0, len(cw))
	for _, c := range cw {
		if _, ok := o.connectors[c.Platform]; !ok {
			continue
		}
		w, err := snapshot.HydrateWallet(c, o.icons.Get(c.ID))
		if err != nil {
			o.logger.Warn("Skipping cached wallet", zap.String("wallet_id", c.ID), zap.Error(err))
			continue
		}
		wallets = append(wallets, w)
	}

	accounts := make([]wallet.Account, 0, len(ca))
	for _, c := range ca {
		if _, ok := o.connectors[c.Platform]; !ok {
			continue
		}
		accounts = append(accounts, snapshot.HydrateAccount(c))
	}

	return wallets, wallet.FilterAccountTypes(accounts, o.accountTypes)
}

// liveWallets emits the sorted wallets of every enabled connector, starting
// with an empty list.
func (o *Orchestrator) liveWallets() stream.Observable[[]wallet.Wallet] {
	sources := make([]stream.Observable[[]wallet.Wallet], 0, len(o.platforms))
	for _, p := range o.platforms {
		sources = append(sources, o.connectors[p].Wallets())
	}

	flat := stream.Map(stream.CombineLatestAll(sources), func(lists [][]wallet.Wallet) []wallet.Wallet {
		out := []wallet.Wallet{}
		for _, l := range lists {
			out = append(out, l...)
		}
		wallet.SortWallets(out)
		return out
	})
	return stream.Share(stream.StartWith(flat, []wallet.Wallet{}))
}

func accountsKey(walletID string) string {
	return "accounts:" + walletID
}

// accountsOf combines the account streams of the connected wallets in ws into
// one group per wallet. A wallet that reported no accounts, or none of the
// allowed types, still yields an empty group. Streams of disconnected wallets
// are dropped from the cache.
func (o *Orchestrator) accountsOf(ws []wallet.Wallet) stream.Observable[[]hydrate.Group[wallet.Account]] {
	reporting := make([]string, 0, len(ws))
	sources := make([]stream.Observable[[]wallet.Account], 0, len(ws))
	for _, w := range ws {
		key := accountsKey(w.ID)
		if !w.IsConnected {
			o.streams.Invalidate(key)
			continue
		}
		conn, ok := o.connectors[w.Platform]
		if !ok {
			continue
		}
		reporting = append(reporting, w.ID)
		sources = append(sources, stream.Cached(o.streams, key, func() stream.Observable[[]wallet.Account] {
			return stream.Share(conn.Accounts(w))
		}))
	}

	return stream.Map(stream.CombineLatestAll(sources), func(lists [][]wallet.Account) []hydrate.Group[wallet.Account] {
		out := []wallet.Account{}
		for _, l := range lists {
			out = append(out, l...)
		}
		out = wallet.FilterAccountTypes(out, o.accountTypes)
		wallet.SortAccounts(out)

		groups := hydrate.GroupBy(out, wallet.AccountWalletID)
		seen := make(map[string]struct{}, len(groups))
		for _, g := range groups {
			seen[g.Key] = struct{}{}
		}
		for _, id := range reporting {
			if _, ok := seen[id]; !ok {
				groups = append(groups, hydrate.Group[wallet.Account]{Key: id})
			}
		}
		return groups
	})
}

// mergeWallet keeps the cached fields, picks the first known icon and takes
// the live capabilities.
func (o *Orchestrator) mergeWallet(live, cached wallet.Wallet) wallet.Wallet {
	merged := cached
	merged.Icon = firstNonEmpty(cached.Icon, o.icons.Get(cached.ID), live.Icon)
	merged.Handle = live.Handle
	return merged
}

func (o *Orchestrator) withCachedIcon(cached wallet.Wallet) wallet.Wallet {
	if cached.Icon == "" {
		cached.Icon = o.icons.Get(cached.ID)
	}
	return cached
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// persistOn writes the snapshot once both buffers settled and the wallet or
// account id lists changed. Only accounts of connected wallets are kept.
func (o *Orchestrator) persistOn(combined stream.Observable[buffers]) stream.Subscription {
	settled := stream.Filter(combined, buffers.settled)
	quiet := stream.DistinctUntilChanged(stream.Debounce(settled, o.sched, o.cfg.PersistDebounce), sameIDs)
	return quiet.Subscribe(o.persist)
}

func (o *Orchestrator) persist(b buffers) {
	connected := make(map[string]struct{})
	wallets := make([]snapshot.CachedWallet, 0, len(b.wallets.Items))
	icons := make(map[string]string)
	for _, w := range b.wallets.Items {
		wallets = append(wallets, snapshot.SerializeWallet(w))
		if w.IsConnected {
			connected[w.ID] = struct{}{}
		}
		if w.Icon != "" {
			icons[w.ID] = w.Icon
		}
	}

	accounts := make([]snapshot.CachedAccount, 0, len(b.accounts.Items))
	for _, a := range b.accounts.Items {
		if _, ok := connected[a.WalletID]; ok {
			accounts = append(accounts, snapshot.SerializeAccount(a))
		}
	}

	if o.cfg.Debug {
		o.logger.Debug("Persisting snapshot", zap.Int("wallets", len(wallets)), zap.Int("accounts", len(accounts)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := o.store.SetCachedState(ctx, wallets, accounts); err != nil {
		o.logger.Error("Failed to persist snapshot", zap.Error(err))
	}
	if err := o.icons.SetAll(ctx, icons); err != nil {
		o.logger.Warn("Failed to persist wallet icons", zap.Error(err))
	}
}

// autoReconnectOn connects each wallet on the snapshot's auto-reconnect list
// at most once per cycle. The list follows the store, so ids added by other
// writers are picked up while the cycle runs. Connect runs off the lane and
// reports back through the scheduler.
func (o *Orchestrator) autoReconnectOn(ctx context.Context, live stream.Observable[[]wallet.Wallet]) stream.Subscription {
	if !o.cfg.AutoReconnect {
		return stream.SubscriptionFunc(func() {})
	}

	wanted := stream.Map(o.store.Changes(), func(snap snapshot.Snapshot) map[string]struct{} {
		ids := make(map[string]struct{}, len(snap.AutoReconnect))
		for _, id := range snap.AutoReconnect {
			ids[id] = struct{}{}
		}
		return ids
	})

	attempted := make(map[string]struct{})
	candidates := stream.CombineLatest2(live, wanted, func(ws []wallet.Wallet, ids map[string]struct{}) []wallet.Wallet {
		var out []wallet.Wallet
		for _, w := range ws {
			if _, ok := ids[w.ID]; !ok {
				continue
			}
			if _, seen := attempted[w.ID]; seen {
				continue
			}
			attempted[w.ID] = struct{}{}
			out = append(out, w)
		}
		return out
	})

	return candidates.Subscribe(func(ws []wallet.Wallet) {
		for _, w := range ws {
			if _, busy := o.reconnecting[w.ID]; w.IsConnected || busy {
				continue
			}
			o.reconnecting[w.ID] = struct{}{}

			go func(w wallet.Wallet) {
				err := w.Connect(ctx)
				o.sched.Do(func() {
					delete(o.reconnecting, w.ID)
					if err != nil {
						o.logger.Error("Failed to reconnect wallet", zap.String("wallet_id", w.ID), zap.Error(err))
					}
				})
			}(w)
		}
	})
}
