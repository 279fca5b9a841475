// Package orchestrator turns the live connector feeds and the persisted
// snapshot into a single wallet state stream.
//
// # Pipeline
//
// Every subscription cycle reads the snapshot once and builds two hydration
// buffers over it: a keyed buffer for wallets and a grouped buffer for
// accounts, both with the configured grace period. Their outputs are combined
// into a State, deduplicated with StatesEqual, throttled and shared.
//
// While the cycle is open the orchestrator also:
//   - persists the snapshot once both buffers settled and the wallet or account
//     ids changed, after a debounce;
//   - reconnects the wallets listed for auto-reconnect, at most once each.
//
// # HTTP
//
// The Feature exposes the state as JSON (/state) and as server-sent events
// (/state/stream), wallet connection routes under /wallets, and /snapshot,
// which decodes the snapshot carried by the request cookies.
package orchestrator
