// Package address encodes public keys into Base58Check P2PKH addresses.
//
// The pipeline is the classic one: RIPEMD-160 over the SHA-256 of the public
// key bytes yields a 20-byte hash; a version byte is prepended and a 4-byte
// double-SHA-256 checksum appended; the 25-byte result is rendered in
// base-58 with one leading '1' per leading zero byte. The checksum detects
// transcription corruption, it is not cryptographic authentication.
package address

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"math/big"

	"golang.org/x/crypto/ripemd160"
)

// Version is the version marker prepended to the public key hash. 0x00 is
// the mainnet pay-to-pubkey-hash marker, which makes every encoded address
// begin with '1'.
const Version = 0x00

const checksumSize = 4

// alphabet is the base-58 digit set. Zero, uppercase O, uppercase I and
// lowercase l are excluded so no two digits can be confused for each other.
const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	// ErrInvalidAddress is returned when an address contains characters
	// outside the base-58 alphabet or is too short to carry a checksum.
	ErrInvalidAddress = errors.New("address: malformed base58 address")

	// ErrInvalidChecksum is returned when the embedded checksum does not
	// match the versioned payload.
	ErrInvalidChecksum = errors.New("address: checksum mismatch")
)

// digitIndex maps an alphabet byte back to its value, -1 for bytes outside
// the alphabet.
var digitIndex [256]int8

func init() {
	for i := range digitIndex {
		digitIndex[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		digitIndex[alphabet[i]] = int8(i)
	}
}

// Encode derives the Base58Check address for the given serialized public
// key. It is a pure function: the same bytes always yield the same address.
func Encode(publicKey []byte) string {
	payload := append([]byte{Version}, hash160(publicKey)...)
	chk := checksum(payload)
	return encodeBase58(append(payload, chk...))
}

// Decode reverses Encode: it rejects non-alphabet input, validates the
// embedded checksum and returns the version byte and 20-byte public key
// hash.
func Decode(addr string) (version byte, payload []byte, err error) {
	full, err := decodeBase58(addr)
	if err != nil {
		return 0, nil, err
	}
	if len(full) < checksumSize+1 {
		return 0, nil, ErrInvalidAddress
	}
	body, chk := full[:len(full)-checksumSize], full[len(full)-checksumSize:]
	if !bytes.Equal(checksum(body), chk) {
		return 0, nil, ErrInvalidChecksum
	}
	return body[0], body[1:], nil
}

// hash160 returns RIPEMD160(SHA256(b)), the 20-byte public key hash.
func hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// checksum returns the first four bytes of SHA256(SHA256(b)).
func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumSize]
}

var base58 = big.NewInt(58)

func encodeBase58(b []byte) string {
	// Leading zero bytes carry no weight in the big-integer representation;
	// base-58 encodes each one as a literal '1'.
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	x := new(big.Int).SetBytes(b)
	mod := new(big.Int)
	var digits []byte
	for x.Sign() > 0 {
		x.DivMod(x, base58, mod)
		digits = append(digits, alphabet[mod.Int64()])
	}

	out := make([]byte, 0, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out = append(out, alphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

func decodeBase58(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrInvalidAddress
	}

	zeros := 0
	for zeros < len(s) && s[zeros] == alphabet[0] {
		zeros++
	}

	x := new(big.Int)
	for i := zeros; i < len(s); i++ {
		d := digitIndex[s[i]]
		if d < 0 {
			return nil, ErrInvalidAddress
		}
		x.Mul(x, base58)
		x.Add(x, big.NewInt(int64(d)))
	}

	body := x.Bytes()
	out := make([]byte, zeros+len(body))
	copy(out[zeros:], body)
	return out, nil
}
