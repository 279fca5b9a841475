package wallet

import "wallet-state/core/stream"

// Connector discovers the wallets of one platform and the accounts they expose.
// Streams must emit on the scheduler lane shared with their consumers.
type Connector interface {
	Platform() Platform

	// Wallets emits the full wallet list every time it changes.
	Wallets() stream.Observable[[]Wallet]

	// Accounts emits the accounts of w every time they change. Disconnected
	// wallets report an empty list.
	Accounts(w Wallet) stream.Observable[[]Account]
}
