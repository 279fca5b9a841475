// Package snapshot persists the wallet state restored on startup.
//
// # Encoding
//
// Snapshots are written in a compact tuple format small enough for a cookie:
//
//	{"v":1,"r":["polkadot:talisman"],"w":[["polkadot:talisman","Talisman",1,0]],"a":[["polkadot:talisman","5Grw...","Alice",null,0]]}
//
//   - r: wallet ids to reconnect on startup.
//   - w: [id, name, connected (0|1), remote session (0|1)].
//   - a: [walletId, address, name|null, chainId|null, type|null]; trailing nulls are dropped.
//     Types are indexed sr25519=0, ed25519=1, ecdsa=2, ethereum=3.
//
// Values without the "v" discriminant are read as the expanded legacy format
// ({"autoReconnect":[...],"cachedWallets":[...],"cachedAccounts":[...]}). Decode
// never fails; corrupt input gives the default snapshot.
//
// # Store
//
// Store owns the snapshot for one storage key. It rewrites legacy values in the
// compact format when loading them, follows changes made by other writers on
// Syncable media and warns when an encoded snapshot exceeds its size budget.
//
// # Icons
//
// Icons are too large for the snapshot. IconCache keeps them in a separate
// "<key>-icons" entry of the same medium.
package snapshot
