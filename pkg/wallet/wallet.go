// Package wallet is the public entry point for key-pair and address
// generation. A Wallet ties together the three derived artifacts — private
// key, public key and Base58Check address — as an immutable value created in
// a single call; the heavy lifting lives in internal/crypto.
package wallet

import (
	"crypto/rand"
	"io"

	"github.com/latticelabs/go-lattice/internal/crypto/address"
	"github.com/latticelabs/go-lattice/internal/crypto/keys"
)

// SeedSize is the minimum seed length in bytes accepted by FromSeed.
const SeedSize = keys.SeedSize

// Wallet holds one generated key pair and its address. All three fields are
// derived together and never mutated; the zero value is not a valid wallet.
type Wallet struct {
	// PrivateKey is 64 lowercase hex characters (a 256-bit scalar).
	PrivateKey string

	// PublicKey is 130 lowercase hex characters beginning with "04" (the
	// uncompressed curve point).
	PublicKey string

	// Address is the Base58Check encoding of the hashed public key,
	// beginning with '1' for the version-0 payload.
	Address string
}

// New generates a wallet from the operating system's entropy source.
func New() (*Wallet, error) {
	return Generate(rand.Reader)
}

// Generate generates a wallet from the given entropy source, which must be
// cryptographically secure. On the (astronomically unlikely) ErrInvalidKey
// path the caller may simply call Generate again with the same source.
func Generate(random io.Reader) (*Wallet, error) {
	priv, err := keys.Generate(random)
	if err != nil {
		return nil, err
	}
	return fromPrivateKey(priv)
}

// FromSeed derives a wallet deterministically from a high-entropy seed of at
// least SeedSize bytes. Passwords and other low-entropy strings are not
// seeds; they fail with ErrInsufficientEntropy.
func FromSeed(seed []byte) (*Wallet, error) {
	priv, err := keys.GenerateFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return fromPrivateKey(priv)
}

func fromPrivateKey(priv *keys.PrivateKey) (*Wallet, error) {
	pub, err := priv.PublicKey()
	if err != nil {
		return nil, err
	}
	return &Wallet{
		PrivateKey: priv.Hex(),
		PublicKey:  pub.Hex(),
		Address:    address.Encode(pub.SerializeUncompressed()),
	}, nil
}

// ValidateAddress decodes addr and checks its embedded checksum.
func ValidateAddress(addr string) error {
	_, _, err := address.Decode(addr)
	return err
}
