package curve

import "math/big"

// Params describes the secp256k1 field and group:
//
//	E: y^2 = x^3 + A*x + B over F_P
//
// P is the characteristic of the field, (Gx, Gy) the base point, N the
// (prime) order of the group generated by the base point and H the cofactor.
// The single instance returned by Secp256k1 is created once at package init
// and must never be mutated.
type Params struct {
	P  *big.Int // field prime
	A  *big.Int // curve coefficient a = 0
	B  *big.Int // curve coefficient b = 7
	Gx *big.Int
	Gy *big.Int
	N  *big.Int // group order
	H  int      // cofactor
}

var secp256k1 *Params

func init() {
	secp256k1 = &Params{
		P:  fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
		A:  big.NewInt(0),
		B:  big.NewInt(7),
		Gx: fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		Gy: fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		N:  fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
		H:  1,
	}
}

// Secp256k1 returns the shared secp256k1 parameters. The returned value is
// read-only and safe for concurrent use.
func Secp256k1() *Params {
	return secp256k1
}

// Generator returns the base point G in affine coordinates.
func (c *Params) Generator() *Affine {
	return &Affine{
		X: new(big.Int).Set(c.Gx),
		Y: new(big.Int).Set(c.Gy),
	}
}

func fromHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: invalid hex constant " + s)
	}
	return n
}
