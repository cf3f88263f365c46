package wallet

import (
	"github.com/latticelabs/go-lattice/internal/crypto/address"
	"github.com/latticelabs/go-lattice/internal/crypto/curve"
	"github.com/latticelabs/go-lattice/internal/crypto/keys"
)

// Sentinel errors surfaced by the wallet API. Errors are detected at the
// point of violation and returned immediately; nothing is retried or
// silently corrected, and no partially constructed wallet is ever returned.
var (
	// ErrInvalidKey: a private scalar is zero or not less than the group
	// order, whether generated or externally supplied.
	ErrInvalidKey = keys.ErrInvalidKey

	// ErrInvalidPoint: a point failed the on-curve check where membership
	// is a precondition.
	ErrInvalidPoint = curve.ErrInvalidPoint

	// ErrInsufficientEntropy: a seed cannot supply the required 256 bits.
	ErrInsufficientEntropy = keys.ErrInsufficientEntropy

	// ErrInvalidChecksum: an address failed checksum validation.
	ErrInvalidChecksum = address.ErrInvalidChecksum
)
