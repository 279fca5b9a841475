package orchestrator_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"wallet-state/feature/orchestrator"
	"wallet-state/feature/snapshot"
	"wallet-state/feature/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(e *env) *fiber.App {
	app := fiber.New()
	orchestrator.NewHandler(e.orch).RegisterRoutes(app)
	return app
}

func decodeBody(t *testing.T, body io.Reader, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(out))
}

func TestHandleGetState(t *testing.T) {
	e := newEnv(t, connectedSnapshot(), testConfig())
	e.subscribe()
	defer e.sub.Unsubscribe()

	resp, err := newApp(e).Test(httptest.NewRequest("GET", "/state", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Wallets []struct {
			ID          string `json:"id"`
			IsConnected bool   `json:"isConnected"`
		} `json:"wallets"`
		IsHydrating bool `json:"isHydrating"`
	}
	decodeBody(t, resp.Body, &body)
	assert.True(t, body.IsHydrating)
	require.Len(t, body.Wallets, 1)
	assert.Equal(t, talisman, body.Wallets[0].ID)
	assert.True(t, body.Wallets[0].IsConnected)
}

func TestHandleConnect(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		seed       bool
		wantStatus int
	}{
		{"Connects live wallet", "/wallets/" + talisman + "/connect", false, fiber.StatusOK},
		{"Unknown wallet", "/wallets/polkadot:nova/connect", false, fiber.StatusNotFound},
		{"Placeholder wallet", "/wallets/" + subwallet + "/connect", true, fiber.StatusConflict},
		{"Disconnects live wallet", "/wallets/" + talisman + "/disconnect", false, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seed *snapshot.Snapshot
			if tt.seed {
				seed = connectedSnapshot()
				seed.Wallets = append(seed.Wallets, snapshot.CachedWallet{ID: subwallet, Platform: wallet.PlatformPolkadot, Kind: wallet.KindInjected, Name: "SubWallet"})
			}
			e := newEnv(t, seed, testConfig())
			e.polkadot.announce(talisman, "Talisman", "", false)
			e.subscribe()
			defer e.sub.Unsubscribe()

			resp, err := newApp(e).Test(httptest.NewRequest("POST", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != fiber.StatusOK {
				var body map[string]string
				decodeBody(t, resp.Body, &body)
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestHandleConnect_RecordsAutoReconnect(t *testing.T) {
	e := newEnv(t, nil, testConfig())
	e.polkadot.announce(talisman, "Talisman", "", false)
	e.subscribe()
	defer e.sub.Unsubscribe()

	resp, err := newApp(e).Test(httptest.NewRequest("POST", "/wallets/"+talisman+"/connect", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body orchestrator.State
	decodeBody(t, resp.Body, &body)
	require.Len(t, body.Wallets, 1)
	assert.True(t, body.Wallets[0].IsConnected)
	assert.Equal(t, []string{talisman}, e.store.Snapshot().AutoReconnect)
}

func TestHandleGetSnapshot(t *testing.T) {
	e := newEnv(t, nil, testConfig())

	t.Run("No cookie", func(t *testing.T) {
		resp, err := newApp(e).Test(httptest.NewRequest("GET", "/snapshot", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Empty(t, resp.Header.Values("Set-Cookie"))

		var report orchestrator.SnapshotReport
		decodeBody(t, resp.Body, &report)
		assert.Equal(t, snapshot.FormatEmpty, report.Format)
		assert.False(t, report.Migrated)
	})

	t.Run("Legacy cookie is rewritten", func(t *testing.T) {
		legacy := `{"autoReconnect":["polkadot:talisman"],"cachedWallets":[{"id":"polkadot:talisman","platform":"polkadot","type":"injected","name":"Talisman","isConnected":true}],"cachedAccounts":[]}`
		req := httptest.NewRequest("GET", "/snapshot", nil)
		req.Header.Set("Cookie", "theme=dark; wallet-state="+url.PathEscape(legacy))

		resp, err := newApp(e).Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var report orchestrator.SnapshotReport
		decodeBody(t, resp.Body, &report)
		assert.Equal(t, snapshot.FormatLegacy, report.Format)
		assert.True(t, report.Migrated)
		assert.Equal(t, []string{talisman}, report.Snapshot.AutoReconnect)
		require.Len(t, report.Snapshot.Wallets, 1)

		cookies := resp.Header.Values("Set-Cookie")
		require.Len(t, cookies, 1)
		assert.True(t, strings.HasPrefix(cookies[0], "wallet-state="), cookies[0])
		assert.Contains(t, cookies[0], "path=/")
	})

	t.Run("Compact cookie is left alone", func(t *testing.T) {
		raw, err := snapshot.Encode(*connectedSnapshot())
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/snapshot", nil)
		req.Header.Set("Cookie", "wallet-state="+url.PathEscape(raw))

		resp, err := newApp(e).Test(req)
		require.NoError(t, err)

		var report orchestrator.SnapshotReport
		decodeBody(t, resp.Body, &report)
		assert.Equal(t, snapshot.FormatCompact, report.Format)
		assert.False(t, report.Migrated)
		assert.Empty(t, resp.Header.Values("Set-Cookie"))
	})
}

func TestFeature(t *testing.T) {
	e := newEnv(t, nil, testConfig())
	feature := orchestrator.NewFeature(e.orch)

	assert.Equal(t, "state", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
