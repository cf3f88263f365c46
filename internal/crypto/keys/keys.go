// Package keys derives secp256k1 key pairs from high-entropy seeds.
//
// A private key is the SHA-256 digest of a seed interpreted as a big-endian
// scalar; the corresponding public key is that scalar times the curve base
// point. Seeds must come from a cryptographically secure source carrying at
// least 256 bits of entropy: deriving keys from passwords or other
// low-entropy material is rejected by construction.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/latticelabs/go-lattice/internal/crypto/curve"
)

// SeedSize is the minimum seed length in bytes (256 bits).
const SeedSize = 32

var (
	// ErrInvalidKey is returned when a private scalar is zero or not less
	// than the group order.
	ErrInvalidKey = errors.New("keys: private key scalar must be in [1, n-1]")

	// ErrInsufficientEntropy is returned when a seed is too short to carry
	// the required 256 bits of entropy.
	ErrInsufficientEntropy = errors.New("keys: seed must be at least 32 bytes")
)

// PrivateKey is a secp256k1 private scalar in [1, n-1]. It is immutable
// after construction; all constructors validate the range invariant.
type PrivateKey struct {
	d *big.Int
}

// PublicKey is the non-infinity curve point corresponding to a private
// scalar times the base point.
type PublicKey struct {
	X, Y *big.Int
}

// GenerateFromSeed hashes seed with SHA-256 and interprets the digest as a
// big-endian private scalar. The caller owns retry policy: when the digest
// falls outside [1, n-1] (astronomically unlikely for random seeds) the
// returned ErrInvalidKey signals that a fresh seed is needed.
func GenerateFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) < SeedSize {
		return nil, ErrInsufficientEntropy
	}
	digest := sha256.Sum256(seed)
	return FromScalar(new(big.Int).SetBytes(digest[:]))
}

// Generate draws a fresh seed from random and derives a private key from
// it. random must be a cryptographically secure source such as
// crypto/rand.Reader.
func Generate(random io.Reader) (*PrivateKey, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, fmt.Errorf("keys: reading seed: %w", err)
	}
	return GenerateFromSeed(seed)
}

// FromScalar validates an externally supplied scalar and wraps it as a
// private key. The scalar is copied, never retained.
func FromScalar(d *big.Int) (*PrivateKey, error) {
	if d.Sign() <= 0 || d.Cmp(curve.Secp256k1().N) >= 0 {
		return nil, ErrInvalidKey
	}
	return &PrivateKey{d: new(big.Int).Set(d)}, nil
}

// FromHex parses a 64-character hex private key.
func FromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("keys: decoding private key hex: %w", err)
	}
	if len(b) != SeedSize {
		return nil, ErrInvalidKey
	}
	return FromScalar(new(big.Int).SetBytes(b))
}

// Scalar returns a copy of the private scalar.
func (k *PrivateKey) Scalar() *big.Int {
	return new(big.Int).Set(k.d)
}

// Bytes returns the 32-byte big-endian serialization of the scalar.
func (k *PrivateKey) Bytes() []byte {
	return k.d.FillBytes(make([]byte, SeedSize))
}

// Hex returns the private key as 64 lowercase hex characters.
func (k *PrivateKey) Hex() string {
	return hex.EncodeToString(k.Bytes())
}

// PublicKey multiplies the base point by the private scalar. The Jacobian
// ladder carries the multiplication; one modular inverse normalizes the
// result. The range invariant on the scalar rules out the identity, and the
// result is checked against the curve equation before being returned.
func (k *PrivateKey) PublicKey() (*PublicKey, error) {
	c := curve.Secp256k1()
	point, err := c.ScalarMultJacobian(curve.FromAffine(c.Generator()), k.d)
	if err != nil {
		return nil, err
	}
	p := c.ToAffine(point)
	if p.IsInfinity() || !c.IsOnCurve(p.X, p.Y) {
		return nil, curve.ErrInvalidPoint
	}
	return &PublicKey{X: p.X, Y: p.Y}, nil
}

// SerializeUncompressed returns the standard 65-byte uncompressed form:
// the prefix byte 0x04 followed by the 32-byte big-endian X and Y
// coordinates.
func (p *PublicKey) SerializeUncompressed() []byte {
	out := make([]byte, 65)
	out[0] = 0x04
	p.X.FillBytes(out[1:33])
	p.Y.FillBytes(out[33:65])
	return out
}

// Hex returns the uncompressed public key as 130 lowercase hex characters.
func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.SerializeUncompressed())
}
