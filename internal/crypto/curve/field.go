package curve

import (
	"errors"
	"math/big"
)

var (
	// ErrNotInvertible is returned when a modular inverse is requested for a
	// value that is a multiple of the modulus.
	ErrNotInvertible = errors.New("curve: value has no modular inverse")

	// ErrInvalidPoint is returned when a point fails the on-curve check
	// where curve membership is a precondition.
	ErrInvalidPoint = errors.New("curve: point is not on the curve")

	// ErrInvalidScalar is returned when a scalar multiple is negative.
	ErrInvalidScalar = errors.New("curve: scalar must be non-negative")
)

// ModInverse returns x such that (v * x) mod m == 1, computed with the
// extended Euclidean algorithm. Since m is prime, every nonzero residue is
// invertible; v ≡ 0 (mod m) fails with ErrNotInvertible.
func ModInverse(v, m *big.Int) (*big.Int, error) {
	a := new(big.Int).Mod(v, m)
	if a.Sign() == 0 {
		return nil, ErrNotInvertible
	}

	// Iteratively maintain Bezout coefficients for (a, m):
	// at every step old_r = old_s*v + old_t*m, so once old_r reaches
	// gcd(a, m) == 1, old_s is the inverse of v mod m.
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(m)
	oldS, s := big.NewInt(1), big.NewInt(0)

	q, tmp := new(big.Int), new(big.Int)
	for r.Sign() != 0 {
		q.Div(oldR, r)

		tmp.Mul(q, r)
		oldR.Sub(oldR, tmp)
		oldR, r = r, oldR

		tmp.Mul(q, s)
		oldS.Sub(oldS, tmp)
		oldS, s = s, oldS
	}

	return oldS.Mod(oldS, m), nil
}

// IsOnCurve reports whether (x, y) satisfies y^2 = x^3 + A*x + B over F_P.
// The point at infinity is not a solution of the affine equation; callers
// handle it separately.
func (c *Params) IsOnCurve(x, y *big.Int) bool {
	// y^2 mod p
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, c.P)

	// (x^3 + a*x + b) mod p
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	ax := new(big.Int).Mul(c.A, x)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.B)
	rhs.Mod(rhs, c.P)

	return lhs.Cmp(rhs) == 0
}
