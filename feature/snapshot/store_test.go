package snapshot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wallet-state/core/storage"
	"wallet-state/core/storage/mocks"
	"wallet-state/core/stream"
	"wallet-state/feature/wallet"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testKey = "wallet-state"

func newTestStore(t *testing.T, st storage.Storage) (*Store, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	s := NewStore(context.Background(), st, StoreOptions{
		Key:       testKey,
		Scheduler: stream.NewVirtualScheduler(),
		Logger:    zap.New(core),
	})
	t.Cleanup(s.Close)
	return s, logs
}

func TestStore_EmptyMedium(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemory())

	assert.Equal(t, FormatEmpty, s.Format())
	assert.Equal(t, Default(), s.Snapshot())
}

func TestStore_MigratesLegacyValue(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.SetItem(ctx, testKey, `{"autoReconnect":["polkadot:talisman"],"cachedWallets":[{"id":"polkadot:talisman","platform":"polkadot","type":"injected","name":"Talisman","isConnected":true}]}`))

	s, logs := newTestStore(t, mem)
	assert.Equal(t, FormatLegacy, s.Format())
	assert.Equal(t, []string{"polkadot:talisman"}, s.Snapshot().AutoReconnect)

	raw, err := mem.GetItem(ctx, testKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, `{"v":1`), raw)
	assert.Equal(t, 1, logs.FilterMessage("Migrated legacy snapshot to compact format").Len())
}

func TestStore_MigratesLegacyObject(t *testing.T) {
	client := mocks.NewClient(t)
	client.ExpectValue("bucket", "snapshots/"+testKey, `{"autoReconnect":[],"cachedWallets":[{"id":"polkadot:talisman","platform":"polkadot","type":"injected","name":"Talisman","isConnected":false}]}`)
	client.On("PutObject", mock.Anything, "bucket", "snapshots/"+testKey, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	s, _ := newTestStore(t, storage.NewObject(client, "bucket", "snapshots"))
	assert.Equal(t, FormatLegacy, s.Format())
	require.Len(t, s.Snapshot().Wallets, 1)
}

func TestStore_MissingObject(t *testing.T) {
	client := mocks.NewClient(t)
	client.ExpectMissing("bucket", testKey)

	s, _ := newTestStore(t, storage.NewObject(client, "bucket", ""))
	assert.Equal(t, FormatEmpty, s.Format())
}

func TestStore_CorruptValueIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.SetItem(ctx, testKey, `{broken`))

	s, logs := newTestStore(t, mem)
	assert.Equal(t, FormatInvalid, s.Format())
	assert.Equal(t, Default(), s.Snapshot())
	assert.Equal(t, 1, logs.FilterMessage("Ignoring corrupt snapshot").Len())

	raw, err := mem.GetItem(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `{broken`, raw)
}

type failingStorage struct{ storage.Noop }

func (failingStorage) GetItem(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingStorage) SetItem(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestStore_ReadFailureStartsEmpty(t *testing.T) {
	s, logs := newTestStore(t, failingStorage{})
	assert.Equal(t, Default(), s.Snapshot())
	assert.Equal(t, 1, logs.FilterMessage("Failed to read snapshot, starting empty").Len())

	err := s.AddAutoReconnect(context.Background(), "polkadot:talisman")
	assert.ErrorContains(t, err, "disk on fire")
	assert.Empty(t, s.Snapshot().AutoReconnect, "failed writes leave the snapshot untouched")
}

func TestStore_AutoReconnect(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, storage.NewMemory())

	require.NoError(t, s.AddAutoReconnect(ctx, "polkadot:talisman"))
	require.NoError(t, s.AddAutoReconnect(ctx, "polkadot:talisman"))
	require.NoError(t, s.AddAutoReconnect(ctx, "ethereum:io.metamask"))
	assert.Equal(t, []string{"polkadot:talisman", "ethereum:io.metamask"}, s.Snapshot().AutoReconnect)

	assert.ErrorIs(t, s.AddAutoReconnect(ctx, "invalid"), wallet.ErrInvalidID)
	assert.ErrorIs(t, s.AddAutoReconnect(ctx, ""), wallet.ErrInvalidID)

	require.NoError(t, s.RemoveAutoReconnect(ctx, "polkadot:talisman"))
	require.NoError(t, s.RemoveAutoReconnect(ctx, "polkadot:nonexistent"))
	assert.Equal(t, []string{"ethereum:io.metamask"}, s.Snapshot().AutoReconnect)
	assert.Equal(t, FormatCompact, s.Format())
}

func TestStore_CachedStatePersists(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s, _ := newTestStore(t, mem)

	wallets := []CachedWallet{{ID: "polkadot:talisman", Platform: wallet.PlatformPolkadot, Kind: wallet.KindInjected, Name: "Talisman", IsConnected: true}}
	accounts := []CachedAccount{{
		ID: "polkadot:talisman::5Grw", Platform: wallet.PlatformPolkadot, Address: "5Grw",
		WalletID: "polkadot:talisman", WalletName: "Talisman", Type: wallet.AccountTypeEthereum,
	}}
	require.NoError(t, s.SetCachedState(ctx, wallets, accounts))

	reloaded, _ := newTestStore(t, mem)
	gotWallets, gotAccounts := reloaded.CachedState()
	assert.Equal(t, wallets, gotWallets)
	require.Len(t, gotAccounts, 1)
	assert.Equal(t, wallet.AccountTypeEthereum, gotAccounts[0].Type)
}

func TestStore_BudgetWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(context.Background(), storage.NewMemory(), StoreOptions{
		Key:       testKey,
		Budget:    50,
		Scheduler: stream.NewVirtualScheduler(),
		Logger:    zap.New(core),
	})

	wallets := []CachedWallet{
		{ID: "polkadot:talisman", Name: "Talisman"},
		{ID: "polkadot:subwallet-js", Name: "SubWallet"},
	}
	require.NoError(t, s.SetCachedState(context.Background(), wallets, nil))

	entries := logs.FilterMessage("Snapshot exceeds size budget").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(50), entries[0].ContextMap()["budget"])
	assert.Len(t, s.Snapshot().Wallets, 2, "oversized snapshots are still written")
}

func TestStore_BudgetMeasuresStoredBytes(t *testing.T) {
	wallets := []CachedWallet{{ID: "polkadot:talisman", Name: "Talisman"}}

	tests := []struct {
		name     string
		medium   storage.Storage
		warnings int
	}{
		{"Raw value fits in memory", storage.NewMemory(), 0},
		{"Escaped cookie value does not fit", storage.NewCookie(""), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			s := NewStore(context.Background(), tt.medium, StoreOptions{
				Key:       testKey,
				Budget:    64,
				Scheduler: stream.NewVirtualScheduler(),
				Logger:    zap.New(core),
			})
			require.NoError(t, s.SetCachedState(context.Background(), wallets, nil))

			entries := logs.FilterMessage("Snapshot exceeds size budget").All()
			require.Len(t, entries, tt.warnings)
			if tt.warnings > 0 {
				assert.Equal(t, int64(91), entries[0].ContextMap()["bytes"])
			}
		})
	}
}

func TestStore_FollowsOtherWriters(t *testing.T) {
	ctx := context.Background()
	tabA := storage.NewMemory()
	tabB := tabA.Fork()

	sched := stream.NewVirtualScheduler()
	a := NewStore(ctx, tabA, StoreOptions{Key: testKey, Scheduler: sched})
	b := NewStore(ctx, tabB, StoreOptions{Key: testKey, Scheduler: sched})
	defer a.Close()
	defer b.Close()

	var seen [][]string
	sched.Do(func() {
		b.Changes().Subscribe(func(s Snapshot) { seen = append(seen, s.AutoReconnect) })
	})

	require.NoError(t, a.AddAutoReconnect(ctx, "polkadot:talisman"))
	assert.Equal(t, []string{"polkadot:talisman"}, b.Snapshot().AutoReconnect)

	require.NoError(t, tabA.RemoveItem(ctx, testKey))
	assert.Empty(t, b.Snapshot().AutoReconnect)

	assert.Equal(t, [][]string{{}, {"polkadot:talisman"}, {}}, seen)
}
