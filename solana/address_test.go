package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletAddress(t *testing.T) string {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return base58.Encode(pub)
}

// offCurveAddress returns a 32-byte key that is not a valid curve point, like a PDA.
func offCurveAddress(t *testing.T) string {
	t.Helper()
	var buf [8]byte
	for i := uint64(0); i < 1000; i++ {
		binary.LittleEndian.PutUint64(buf[:], i)
		h := sha256.Sum256(buf[:])
		if _, err := new(edwards25519.Point).SetBytes(h[:]); err != nil {
			return base58.Encode(h[:])
		}
	}
	t.Fatal("no off-curve candidate found")
	return ""
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{"generated wallet", walletAddress(t), true},
		{"empty", "", false},
		{"not base58", "0OIl+/", false},
		{"too short", base58.Encode([]byte{1, 2, 3}), false},
		{"off curve", offCurveAddress(t), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAddress)
			}
		})
	}
}
