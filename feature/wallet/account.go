package wallet

// AccountType is the key type of a polkadot account.
type AccountType string

const (
	AccountTypeSr25519  AccountType = "sr25519"
	AccountTypeEd25519  AccountType = "ed25519"
	AccountTypeEcdsa    AccountType = "ecdsa"
	AccountTypeEthereum AccountType = "ethereum"
)

// AccountTypes lists every account type in index order.
var AccountTypes = []AccountType{AccountTypeSr25519, AccountTypeEd25519, AccountTypeEcdsa, AccountTypeEthereum}

// Account is an account exposed by a wallet.
type Account struct {
	ID         string   `json:"id"`
	Platform   Platform `json:"platform"`
	Address    string   `json:"address"`
	WalletID   string   `json:"walletId"`
	WalletName string   `json:"walletName"`
	Name       *string  `json:"name,omitempty"`
	ChainID    *int     `json:"chainId,omitempty"`

	// Type is set for polkadot accounts only.
	Type AccountType `json:"type,omitempty"`

	// IsWalletDefault marks the wallet's selected ethereum account.
	IsWalletDefault bool `json:"isWalletDefault,omitempty"`
}

// AccountWalletID returns the owning wallet id. It is the group key of account collections.
func AccountWalletID(a Account) string { return a.WalletID }

// FilterAccountTypes drops polkadot accounts whose type is not in allowed.
// Accounts without a type and non-polkadot accounts are kept. An empty allowed
// list keeps everything.
func FilterAccountTypes(accounts []Account, allowed []AccountType) []Account {
	if len(allowed) == 0 {
		return accounts
	}
	keep := make(map[AccountType]struct{}, len(allowed))
	for _, t := range allowed {
		keep[t] = struct{}{}
	}

	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Platform == PlatformPolkadot && a.Type != "" {
			if _, ok := keep[a.Type]; !ok {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
