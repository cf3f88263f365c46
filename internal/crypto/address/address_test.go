package address

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	btcbase58 "github.com/btcsuite/btcd/btcutil/base58"
)

// generatorPubKey is the uncompressed serialization of the secp256k1 base
// point, i.e. the public key of the private scalar 1.
const generatorPubKey = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
	"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"

func TestEncodeKnownVector(t *testing.T) {
	pub, err := hex.DecodeString(generatorPubKey)
	if err != nil {
		t.Fatalf("decoding vector: %v", err)
	}
	const want = "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"
	if got := Encode(pub); got != want {
		t.Errorf("Encode(G) = %s, want %s", got, want)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	pub := make([]byte, 65)
	if _, err := rand.Read(pub); err != nil {
		t.Fatalf("rand.Read failed: %v", err)
	}
	a1, a2 := Encode(pub), Encode(pub)
	if a1 != a2 {
		t.Errorf("same input encoded to %s and %s", a1, a2)
	}
	if !strings.HasPrefix(a1, "1") {
		t.Errorf("version-0 address %s does not begin with '1'", a1)
	}
}

func TestEncodeMatchesBtcutil(t *testing.T) {
	for i := 0; i < 8; i++ {
		pub := make([]byte, 65)
		if _, err := rand.Read(pub); err != nil {
			t.Fatalf("rand.Read failed: %v", err)
		}
		want := btcbase58.CheckEncode(hash160(pub), Version)
		if got := Encode(pub); got != want {
			t.Errorf("Encode = %s, btcutil says %s", got, want)
		}
	}
}

func TestCorruptedInputChangesAddress(t *testing.T) {
	pub, _ := hex.DecodeString(generatorPubKey)
	original := Encode(pub)
	for i := range pub {
		corrupted := bytes.Clone(pub)
		corrupted[i] ^= 0x01
		if Encode(corrupted) == original {
			t.Errorf("flipping byte %d left the address unchanged", i)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	pub, _ := hex.DecodeString(generatorPubKey)
	addr := Encode(pub)

	version, payload, err := Decode(addr)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if version != Version {
		t.Errorf("version = %#x, want %#x", version, Version)
	}
	if !bytes.Equal(payload, hash160(pub)) {
		t.Error("decoded payload does not match the public key hash")
	}
}

func TestDecodeRejectsCorruption(t *testing.T) {
	pub, _ := hex.DecodeString(generatorPubKey)
	addr := Encode(pub)

	// Swap the last character for a different alphabet digit.
	last := addr[len(addr)-1]
	replacement := byte('2')
	if last == replacement {
		replacement = '3'
	}
	corrupted := addr[:len(addr)-1] + string(replacement)
	if _, _, err := Decode(corrupted); !errors.Is(err, ErrInvalidChecksum) {
		t.Errorf("corrupted address error = %v, want ErrInvalidChecksum", err)
	}

	// Characters outside the alphabet are rejected before the checksum.
	if _, _, err := Decode(addr[:len(addr)-1] + "0"); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("non-alphabet address error = %v, want ErrInvalidAddress", err)
	}
	if _, _, err := Decode(""); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("empty address error = %v, want ErrInvalidAddress", err)
	}
}

func TestBase58LeadingZeros(t *testing.T) {
	cases := []struct {
		in   []byte
		want string
	}{
		{[]byte{0}, "1"},
		{[]byte{0, 0, 0}, "111"},
		{[]byte{0, 0, 1}, "112"},
		{[]byte{57}, "z"},
		{[]byte{58}, "21"},
	}
	for _, tc := range cases {
		if got := encodeBase58(tc.in); got != tc.want {
			t.Errorf("encodeBase58(%v) = %s, want %s", tc.in, got, tc.want)
		}
		back, err := decodeBase58(tc.want)
		if err != nil {
			t.Fatalf("decodeBase58(%s) failed: %v", tc.want, err)
		}
		if !bytes.Equal(back, tc.in) {
			t.Errorf("decodeBase58(%s) = %v, want %v", tc.want, back, tc.in)
		}
	}
}
