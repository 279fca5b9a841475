package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConnected is returned when connecting a connected wallet.
	ErrAlreadyConnected = errors.New("wallet already connected")
	// ErrNotConnected is returned when disconnecting a wallet that is not connected.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrUnknownWallet is returned for wallet ids no connector reports.
	ErrUnknownWallet = errors.New("unknown wallet")
	// ErrInvalidID is returned when a wallet or account id is malformed.
	ErrInvalidID = errors.New("invalid id")
)

// PendingWalletError is returned by placeholder wallets that are still loading.
type PendingWalletError struct {
	WalletID string
}

func (e *PendingWalletError) Error() string {
	return fmt.Sprintf("wallet %s is still loading, wait for hydration to finish before calling connect or disconnect", e.WalletID)
}
