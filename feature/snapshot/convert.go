package snapshot

import "wallet-state/feature/wallet"

// HydrateWallet turns a cached wallet into a placeholder carrying icon.
func HydrateWallet(c CachedWallet, icon string) (wallet.Wallet, error) {
	w, err := wallet.Placeholder(c.ID, c.Name, icon, c.IsConnected)
	if err != nil {
		return wallet.Wallet{}, err
	}
	if c.Kind != "" {
		w.Kind = c.Kind
	}
	return w, nil
}

// HydrateAccount turns a cached account into a display account.
func HydrateAccount(c CachedAccount) wallet.Account {
	return wallet.Account{
		ID:         c.ID,
		Platform:   c.Platform,
		Address:    c.Address,
		WalletID:   c.WalletID,
		WalletName: c.WalletName,
		Name:       c.Name,
		ChainID:    c.ChainID,
		Type:       c.Type,
	}
}

// SerializeWallet projects w onto its persisted fields.
func SerializeWallet(w wallet.Wallet) CachedWallet {
	return CachedWallet{
		ID:          w.ID,
		Platform:    w.Platform,
		Kind:        w.Kind,
		Name:        w.Name,
		IsConnected: w.IsConnected,
	}
}

// SerializeAccount projects a onto its persisted fields.
func SerializeAccount(a wallet.Account) CachedAccount {
	return CachedAccount{
		ID:         a.ID,
		Platform:   a.Platform,
		Address:    a.Address,
		Name:       a.Name,
		WalletID:   a.WalletID,
		WalletName: a.WalletName,
		ChainID:    a.ChainID,
		Type:       a.Type,
	}
}
