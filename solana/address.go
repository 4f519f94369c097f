package solana

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// ErrInvalidAddress is returned for strings that are not wallet addresses.
var ErrInvalidAddress = errors.New("invalid solana address")

// PublicKeyLength is the size of an ed25519 public key.
const PublicKeyLength = 32

// ValidateAddress checks that s is a base58 ed25519 public key on the curve.
// Program derived addresses are off the curve and are rejected as wallets.
func ValidateAddress(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != PublicKeyLength {
		return fmt.Errorf("%w: decoded to %d bytes", ErrInvalidAddress, len(raw))
	}
	if _, err := new(edwards25519.Point).SetBytes(raw); err != nil {
		return fmt.Errorf("%w: not on the ed25519 curve", ErrInvalidAddress)
	}
	return nil
}
