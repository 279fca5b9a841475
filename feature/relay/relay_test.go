package relay

import (
	"context"
	"testing"

	"wallet-state/core/stream"
	"wallet-state/feature/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRelay(t *testing.T, platform wallet.Platform) (*Relay, *stream.VirtualScheduler) {
	t.Helper()
	sched := stream.NewVirtualScheduler()
	r, err := New(platform, sched, zap.NewNop())
	require.NoError(t, err)
	return r, sched
}

func latestWallets(r *Relay) []wallet.Wallet {
	return r.wallets.Value()
}

func TestNew_RejectsUnknownPlatform(t *testing.T) {
	_, err := New("solana", stream.NewVirtualScheduler(), nil)
	assert.Error(t, err)
}

func TestRelay_Announce(t *testing.T) {
	r, _ := newTestRelay(t, wallet.PlatformPolkadot)
	ctx := context.Background()

	w, err := r.Announce(ctx, Announcement{Identifier: "talisman", Name: "Talisman"})
	require.NoError(t, err)
	assert.Equal(t, "polkadot:talisman", w.ID)
	assert.Equal(t, wallet.KindInjected, w.Kind)
	assert.False(t, w.IsPlaceholder())

	_, err = r.Announce(ctx, Announcement{Identifier: "", Name: "x"})
	assert.ErrorIs(t, err, wallet.ErrInvalidID)
	_, err = r.Announce(ctx, Announcement{Identifier: "nova"})
	assert.ErrorIs(t, err, ErrInvalidAnnouncement)
	_, err = r.Announce(ctx, Announcement{Identifier: "nova", Name: "Nova", Kind: "bluetooth"})
	assert.ErrorIs(t, err, ErrInvalidAnnouncement)

	require.NoError(t, w.Connect(ctx))
	_, err = r.Announce(ctx, Announcement{Identifier: "talisman", Name: "Talisman", Icon: "data:icon"})
	require.NoError(t, err)

	ws := latestWallets(r)
	require.Len(t, ws, 1)
	assert.True(t, ws[0].IsConnected, "re-announcing keeps the connection")
	assert.Equal(t, "data:icon", ws[0].Icon)
}

func TestRelay_ConnectLifecycle(t *testing.T) {
	r, _ := newTestRelay(t, wallet.PlatformPolkadot)
	ctx := context.Background()

	w, err := r.Announce(ctx, Announcement{Identifier: "talisman", Name: "Talisman"})
	require.NoError(t, err)

	assert.ErrorIs(t, w.Disconnect(ctx), wallet.ErrNotConnected)
	require.NoError(t, w.Connect(ctx))
	assert.ErrorIs(t, w.Connect(ctx), wallet.ErrAlreadyConnected)

	statuses, err := r.Statuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.NotEmpty(t, statuses[0].SessionID)
	assert.NotNil(t, statuses[0].ConnectedAt)

	require.NoError(t, w.Disconnect(ctx))
	statuses, err = r.Statuses(ctx)
	require.NoError(t, err)
	assert.Empty(t, statuses[0].SessionID)
	assert.False(t, statuses[0].Wallet.IsConnected)

	require.NoError(t, r.Withdraw(ctx, w.ID))
	assert.ErrorIs(t, w.Connect(ctx), wallet.ErrUnknownWallet)
	assert.ErrorIs(t, r.Withdraw(ctx, w.ID), wallet.ErrUnknownWallet)
}

func TestRelay_ReportAccounts(t *testing.T) {
	r, sched := newTestRelay(t, wallet.PlatformPolkadot)
	ctx := context.Background()

	w, err := r.Announce(ctx, Announcement{Identifier: "talisman", Name: "Talisman"})
	require.NoError(t, err)

	reports := []AccountReport{{Address: "5F", Type: wallet.AccountTypeSr25519}}
	assert.ErrorIs(t, r.ReportAccounts(ctx, w.ID, reports), wallet.ErrNotConnected)
	assert.ErrorIs(t, r.ReportAccounts(ctx, "polkadot:nova", reports), wallet.ErrUnknownWallet)

	var got [][]wallet.Account
	sched.Do(func() {
		r.Accounts(w).Subscribe(func(a []wallet.Account) { got = append(got, a) })
	})

	require.NoError(t, w.Connect(ctx))
	assert.Empty(t, got, "no report yet for this session")

	require.NoError(t, r.ReportAccounts(ctx, w.ID, reports))
	require.Len(t, got, 1)
	assert.Equal(t, "polkadot:talisman::5F", got[0][0].ID)
	assert.Equal(t, "Talisman", got[0][0].WalletName)
	assert.Equal(t, wallet.AccountTypeSr25519, got[0][0].Type)

	bad := []AccountReport{{Address: "5G", Type: "rsa"}}
	assert.ErrorIs(t, r.ReportAccounts(ctx, w.ID, bad), ErrInvalidAnnouncement)
	assert.ErrorIs(t, r.ReportAccounts(ctx, w.ID, []AccountReport{{}}), wallet.ErrInvalidID)
}

func TestRelay_EthereumAccounts(t *testing.T) {
	r, _ := newTestRelay(t, wallet.PlatformEthereum)
	ctx := context.Background()

	w, err := r.Announce(ctx, Announcement{Identifier: "metamask", Name: "MetaMask"})
	require.NoError(t, err)
	require.NoError(t, w.Connect(ctx))

	chain := 1
	require.NoError(t, r.ReportAccounts(ctx, w.ID, []AccountReport{{
		Address:         "0xabc",
		ChainID:         &chain,
		Type:            wallet.AccountTypeSr25519,
		IsWalletDefault: true,
	}}))

	accounts := r.accounts[w.ID].Value()
	require.Len(t, accounts, 1)
	assert.Empty(t, accounts[0].Type, "key types only apply to polkadot")
	assert.Equal(t, 1, *accounts[0].ChainID)
	assert.True(t, accounts[0].IsWalletDefault)
}

func TestRelay_ExecHonoursContext(t *testing.T) {
	r, sched := newTestRelay(t, wallet.PlatformPolkadot)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var err error
	sched.Do(func() {
		// Called from the lane the work is queued behind the current task.
		_, err = r.Announce(ctx, Announcement{Identifier: "talisman", Name: "Talisman"})
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, latestWallets(r), 1, "queued work still runs once the lane is free")
}
