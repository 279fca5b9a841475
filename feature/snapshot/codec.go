package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"wallet-state/core/utils"
	"wallet-state/feature/wallet"
)

// DefaultBudget is the encoded size above which a snapshot no longer fits
// comfortably in a cookie.
const DefaultBudget = 4000

// compact is the current wire shape:
//
//	{"v":1,"r":[walletId...],"w":[[id,name,connected,kind]...],"a":[[walletId,address,name,chainId,type]...]}
type compact struct {
	V int      `json:"v"`
	R []string `json:"r,omitempty"`
	W [][]any  `json:"w,omitempty"`
	A [][]any  `json:"a,omitempty"`
}

// legacy is the expanded shape written by earlier versions.
type legacy struct {
	AutoReconnect  []string        `json:"autoReconnect"`
	CachedWallets  []legacyWallet  `json:"cachedWallets"`
	CachedAccounts []legacyAccount `json:"cachedAccounts"`
}

type legacyWallet struct {
	ID          string `json:"id"`
	Platform    string `json:"platform"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	IsConnected bool   `json:"isConnected"`
}

type legacyAccount struct {
	ID                  string  `json:"id"`
	Platform            string  `json:"platform"`
	Address             string  `json:"address"`
	Name                *string `json:"name"`
	WalletID            string  `json:"walletId"`
	WalletName          string  `json:"walletName"`
	ChainID             *int    `json:"chainId"`
	PolkadotAccountType string  `json:"polkadotAccountType"`
}

// legacyRemoteSession is the legacy wallet type of remote-session wallets.
const legacyRemoteSession = "appKit"

// Encode renders s in the compact format.
func Encode(s Snapshot) (string, error) {
	c := compact{V: Version, R: s.AutoReconnect}

	for _, w := range s.Wallets {
		c.W = append(c.W, []any{w.ID, w.Name, flag(w.IsConnected), flag(w.Kind == wallet.KindRemoteSession)})
	}
	for _, a := range s.Accounts {
		c.A = append(c.A, accountTuple(a))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func accountTuple(a CachedAccount) []any {
	var name, chain, typ any
	if a.Name != nil {
		name = *a.Name
	}
	if a.ChainID != nil {
		chain = *a.ChainID
	}
	if idx, ok := typeIndex(a.Type); ok {
		typ = idx
	}

	tuple := []any{a.WalletID, a.Address, name, chain, typ}
	for len(tuple) > 2 && tuple[len(tuple)-1] == nil {
		tuple = tuple[:len(tuple)-1]
	}
	return tuple
}

// Decode parses raw as a compact or legacy snapshot. It never fails: empty and
// undecodable input give Default with FormatEmpty and FormatInvalid.
func Decode(raw string) (Snapshot, Format) {
	if len(bytes.TrimSpace([]byte(raw))) == 0 {
		return Default(), FormatEmpty
	}

	var envelope struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return Default(), FormatInvalid
	}

	if envelope.V != nil {
		var c compact
		if err := json.Unmarshal([]byte(raw), &c); err != nil || c.V != Version {
			return Default(), FormatInvalid
		}
		return fromCompact(c), FormatCompact
	}

	var l legacy
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return Default(), FormatInvalid
	}
	return fromLegacy(l), FormatLegacy
}

func fromCompact(c compact) Snapshot {
	s := Default()
	s.AutoReconnect = append(s.AutoReconnect, c.R...)

	names := make(map[string]string, len(c.W))
	for _, t := range c.W {
		if len(t) < 2 {
			continue
		}
		id := utils.ToString(t[0])
		platform, _, err := wallet.ParseID(id)
		if err != nil {
			continue
		}
		w := CachedWallet{
			ID:       id,
			Platform: platform,
			Kind:     wallet.KindInjected,
			Name:     utils.ToString(t[1]),
		}
		if len(t) > 2 {
			w.IsConnected = utils.ToBool(t[2])
		}
		if len(t) > 3 && utils.ToBool(t[3]) {
			w.Kind = wallet.KindRemoteSession
		}
		names[w.ID] = w.Name
		s.Wallets = append(s.Wallets, w)
	}

	for _, t := range c.A {
		if len(t) < 2 {
			continue
		}
		walletID, address := utils.ToString(t[0]), utils.ToString(t[1])
		platform, _, err := wallet.ParseID(walletID)
		if err != nil {
			continue
		}
		id, err := wallet.NewAccountID(walletID, address)
		if err != nil {
			continue
		}
		a := CachedAccount{
			ID:         id,
			Platform:   platform,
			Address:    address,
			WalletID:   walletID,
			WalletName: names[walletID],
		}
		if len(t) > 2 {
			a.Name = utils.ToStringPtr(t[2])
		}
		if len(t) > 3 {
			a.ChainID = utils.ToIntPtr(t[3])
		}
		if len(t) > 4 && t[4] != nil {
			a.Type = typeFromIndex(utils.ToInt(t[4]))
		}
		s.Accounts = append(s.Accounts, a)
	}

	return s
}

func fromLegacy(l legacy) Snapshot {
	s := Default()
	s.AutoReconnect = append(s.AutoReconnect, l.AutoReconnect...)

	for _, w := range l.CachedWallets {
		kind := wallet.KindInjected
		if w.Type == legacyRemoteSession || w.Type == string(wallet.KindRemoteSession) {
			kind = wallet.KindRemoteSession
		}
		s.Wallets = append(s.Wallets, CachedWallet{
			ID:          w.ID,
			Platform:    wallet.Platform(w.Platform),
			Kind:        kind,
			Name:        w.Name,
			IsConnected: w.IsConnected,
		})
	}

	for _, a := range l.CachedAccounts {
		s.Accounts = append(s.Accounts, CachedAccount{
			ID:         a.ID,
			Platform:   wallet.Platform(a.Platform),
			Address:    a.Address,
			Name:       a.Name,
			WalletID:   a.WalletID,
			WalletName: a.WalletName,
			ChainID:    a.ChainID,
			Type:       wallet.AccountType(a.PolkadotAccountType),
		})
	}

	return s
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func typeIndex(t wallet.AccountType) (int, bool) {
	for i, at := range wallet.AccountTypes {
		if at == t {
			return i, true
		}
	}
	return 0, false
}

func typeFromIndex(i int) wallet.AccountType {
	if i < 0 || i >= len(wallet.AccountTypes) {
		return ""
	}
	return wallet.AccountTypes[i]
}
