// Package wallet defines the wallets and accounts reported by discovery
// connectors, their identifiers and the ordering used when presenting them.
//
// # Identifiers
//
// A wallet is identified by "platform:identifier" (e.g. "polkadot:talisman") and
// an account by "walletID::address". Both forms are produced and parsed here.
//
// # Placeholders
//
// Wallets restored from a persisted snapshot carry no live capabilities. They are
// represented by placeholder wallets whose Connect and Disconnect fail with
// *PendingWalletError until the live wallet replaces them.
package wallet
