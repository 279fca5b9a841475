package wallet

import (
	"slices"
	"strings"
)

const preferredWallet = "talisman"

// SortWallets orders wallets in place: polkadot first, then Talisman, then by name.
func SortWallets(wallets []Wallet) {
	slices.SortStableFunc(wallets, compareWallets)
}

func compareWallets(a, b Wallet) int {
	if a.Platform != b.Platform {
		if a.Platform == PlatformPolkadot {
			return -1
		}
		return 1
	}
	if c := comparePreferred(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// SortAccounts orders accounts in place. Polkadot accounts come first, sorted by
// wallet name, account name and address. Ethereum accounts are sorted by wallet
// name and otherwise keep the order their wallet reported.
func SortAccounts(accounts []Account) {
	slices.SortStableFunc(accounts, compareAccounts)
}

func compareAccounts(a, b Account) int {
	if a.Platform != b.Platform {
		if a.Platform == PlatformPolkadot {
			return -1
		}
		return 1
	}

	if a.WalletName != b.WalletName {
		if c := comparePreferred(a.WalletName, b.WalletName); c != 0 {
			return c
		}
		return strings.Compare(a.WalletName, b.WalletName)
	}

	if a.Platform != PlatformPolkadot {
		return 0
	}

	an, bn := deref(a.Name), deref(b.Name)
	if an != bn {
		return strings.Compare(an, bn)
	}
	return strings.Compare(a.Address, b.Address)
}

func comparePreferred(a, b string) int {
	ap, bp := strings.EqualFold(a, preferredWallet), strings.EqualFold(b, preferredWallet)
	switch {
	case ap && !bp:
		return -1
	case bp && !ap:
		return 1
	default:
		return 0
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
