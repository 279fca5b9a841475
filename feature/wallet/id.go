package wallet

import (
	"fmt"
	"strings"
)

// NewID builds a wallet id from a platform and a connector-specific identifier.
func NewID(platform Platform, identifier string) (string, error) {
	if !platform.IsValid() {
		return "", fmt.Errorf("%w: platform %q", ErrInvalidID, platform)
	}
	if identifier == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrInvalidID)
	}
	return string(platform) + ":" + identifier, nil
}

// ParseID splits a wallet id into its platform and identifier.
func ParseID(id string) (Platform, string, error) {
	platform, identifier, ok := strings.Cut(id, ":")
	if !ok || identifier == "" {
		return "", "", fmt.Errorf("%w: wallet %q", ErrInvalidID, id)
	}
	if p := Platform(platform); !p.IsValid() {
		return "", "", fmt.Errorf("%w: platform %q", ErrInvalidID, platform)
	}
	return Platform(platform), identifier, nil
}

// NewAccountID builds an account id from its wallet id and address.
func NewAccountID(walletID, address string) (string, error) {
	if walletID == "" {
		return "", fmt.Errorf("%w: missing wallet id", ErrInvalidID)
	}
	if address == "" {
		return "", fmt.Errorf("%w: missing address", ErrInvalidID)
	}
	return walletID + "::" + address, nil
}

// ParseAccountID splits an account id into its wallet id and address.
func ParseAccountID(id string) (walletID, address string, err error) {
	walletID, address, ok := strings.Cut(id, "::")
	if !ok || walletID == "" || address == "" {
		return "", "", fmt.Errorf("%w: account %q", ErrInvalidID, id)
	}
	return walletID, address, nil
}
