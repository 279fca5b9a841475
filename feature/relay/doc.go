// Package relay provides a wallet.Connector fed over HTTP.
//
// Discovery agents, such as a browser companion or a remote-session bridge,
// announce the wallets they find and report the accounts of connected wallets:
//
//	POST   /relay/{platform}/wallets
//	DELETE /relay/{platform}/wallets/{id}
//	PUT    /relay/{platform}/wallets/{id}/accounts
//	GET    /relay/{platform}/wallets
//
// Connecting a relayed wallet opens a session identified by a UUID. A new
// session discards the previous account list until the agent reports again.
package relay
