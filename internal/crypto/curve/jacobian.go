package curve

import "math/big"

// Jacobian is a curve point in Jacobian projective coordinates: (X, Y, Z)
// stands for the affine point (X/Z^2, Y/Z^3), and Z == 0 is the point at
// infinity. Addition and doubling in this form avoid the modular inverse the
// affine chord-and-tangent formulas pay per operation; a single inverse is
// spent when converting back with ToAffine.
type Jacobian struct {
	X, Y, Z *big.Int
}

// JacobianInfinity returns the projective representation of the identity.
func JacobianInfinity() *Jacobian {
	return &Jacobian{X: big.NewInt(1), Y: big.NewInt(1), Z: big.NewInt(0)}
}

// FromAffine lifts an affine point into Jacobian coordinates with Z = 1.
func FromAffine(p *Affine) *Jacobian {
	if p.IsInfinity() {
		return JacobianInfinity()
	}
	return &Jacobian{
		X: new(big.Int).Set(p.X),
		Y: new(big.Int).Set(p.Y),
		Z: big.NewInt(1),
	}
}

// IsInfinity reports whether p is the group identity.
func (p *Jacobian) IsInfinity() bool {
	return p.Z.Sign() == 0
}

// ToAffine normalizes p back to affine coordinates. This is the only
// operation on the Jacobian path that computes a modular inverse.
func (c *Params) ToAffine(p *Jacobian) *Affine {
	if p.IsInfinity() {
		return Infinity()
	}
	zInv, err := ModInverse(p.Z, c.P)
	if err != nil {
		// unreachable: Z != 0 was checked above
		return Infinity()
	}
	zInv2 := new(big.Int).Mul(zInv, zInv)
	zInv2.Mod(zInv2, c.P)
	zInv3 := new(big.Int).Mul(zInv2, zInv)
	zInv3.Mod(zInv3, c.P)

	x := new(big.Int).Mul(p.X, zInv2)
	x.Mod(x, c.P)
	y := new(big.Int).Mul(p.Y, zInv3)
	y.Mod(y, c.P)
	return &Affine{X: x, Y: y}
}

// DoubleJacobian returns 2*P using the standard Jacobian doubling formulas.
func (c *Params) DoubleJacobian(p *Jacobian) *Jacobian {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return JacobianInfinity()
	}

	// s = 4*x*y^2
	y2 := new(big.Int).Mul(p.Y, p.Y)
	y2.Mod(y2, c.P)
	s := new(big.Int).Mul(p.X, y2)
	s.Lsh(s, 2)
	s.Mod(s, c.P)

	// m = 3*x^2 + a*z^4
	m := new(big.Int).Mul(p.X, p.X)
	m.Mul(m, big.NewInt(3))
	if c.A.Sign() != 0 {
		z2 := new(big.Int).Mul(p.Z, p.Z)
		z2.Mod(z2, c.P)
		z4 := new(big.Int).Mul(z2, z2)
		z4.Mul(z4, c.A)
		m.Add(m, z4)
	}
	m.Mod(m, c.P)

	// x' = m^2 - 2*s
	x3 := new(big.Int).Mul(m, m)
	x3.Sub(x3, new(big.Int).Lsh(s, 1))
	x3.Mod(x3, c.P)

	// y' = m*(s - x') - 8*y^4
	y3 := new(big.Int).Sub(s, x3)
	y3.Mul(y3, m)
	y4 := new(big.Int).Mul(y2, y2)
	y4.Lsh(y4, 3)
	y3.Sub(y3, y4)
	y3.Mod(y3, c.P)

	// z' = 2*y*z
	z3 := new(big.Int).Mul(p.Y, p.Z)
	z3.Lsh(z3, 1)
	z3.Mod(z3, c.P)

	return &Jacobian{X: x3, Y: y3, Z: z3}
}

// AddJacobian returns P + Q using the standard Jacobian addition formulas.
// The same group-law branches as the affine path apply: identity operands
// pass through, equal points delegate to doubling and inverse pairs produce
// the identity.
func (c *Params) AddJacobian(p, q *Jacobian) *Jacobian {
	if p.IsInfinity() {
		return &Jacobian{X: new(big.Int).Set(q.X), Y: new(big.Int).Set(q.Y), Z: new(big.Int).Set(q.Z)}
	}
	if q.IsInfinity() {
		return &Jacobian{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y), Z: new(big.Int).Set(p.Z)}
	}

	z1z1 := new(big.Int).Mul(p.Z, p.Z)
	z1z1.Mod(z1z1, c.P)
	z2z2 := new(big.Int).Mul(q.Z, q.Z)
	z2z2.Mod(z2z2, c.P)

	// u1 = x1*z2^2, u2 = x2*z1^2
	u1 := new(big.Int).Mul(p.X, z2z2)
	u1.Mod(u1, c.P)
	u2 := new(big.Int).Mul(q.X, z1z1)
	u2.Mod(u2, c.P)

	// s1 = y1*z2^3, s2 = y2*z1^3
	s1 := new(big.Int).Mul(p.Y, z2z2)
	s1.Mul(s1, q.Z)
	s1.Mod(s1, c.P)
	s2 := new(big.Int).Mul(q.Y, z1z1)
	s2.Mul(s2, p.Z)
	s2.Mod(s2, c.P)

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) != 0 {
			return JacobianInfinity()
		}
		return c.DoubleJacobian(p)
	}

	h := new(big.Int).Sub(u2, u1)
	h.Mod(h, c.P)
	r := new(big.Int).Sub(s2, s1)
	r.Mod(r, c.P)

	h2 := new(big.Int).Mul(h, h)
	h2.Mod(h2, c.P)
	h3 := new(big.Int).Mul(h2, h)
	h3.Mod(h3, c.P)
	u1h2 := new(big.Int).Mul(u1, h2)
	u1h2.Mod(u1h2, c.P)

	// x3 = r^2 - h^3 - 2*u1*h^2
	x3 := new(big.Int).Mul(r, r)
	x3.Sub(x3, h3)
	x3.Sub(x3, new(big.Int).Lsh(u1h2, 1))
	x3.Mod(x3, c.P)

	// y3 = r*(u1*h^2 - x3) - s1*h^3
	y3 := new(big.Int).Sub(u1h2, x3)
	y3.Mul(y3, r)
	s1h3 := new(big.Int).Mul(s1, h3)
	y3.Sub(y3, s1h3)
	y3.Mod(y3, c.P)

	// z3 = h*z1*z2
	z3 := new(big.Int).Mul(h, p.Z)
	z3.Mul(z3, q.Z)
	z3.Mod(z3, c.P)

	return &Jacobian{X: x3, Y: y3, Z: z3}
}

// ScalarMultJacobian returns k*P with the same Montgomery ladder as the
// affine path, expressed over Jacobian points. Results agree with
// ScalarMult after ToAffine for every input.
func (c *Params) ScalarMultJacobian(p *Jacobian, k *big.Int) (*Jacobian, error) {
	if k.Sign() < 0 {
		return nil, ErrInvalidScalar
	}
	k = new(big.Int).Mod(k, c.N)
	if k.Sign() == 0 || p.IsInfinity() {
		return JacobianInfinity(), nil
	}

	r0 := JacobianInfinity()
	r1 := &Jacobian{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y), Z: new(big.Int).Set(p.Z)}

	for i := k.BitLen() - 1; i >= 0; i-- {
		if k.Bit(i) == 0 {
			r1 = c.AddJacobian(r0, r1)
			r0 = c.DoubleJacobian(r0)
		} else {
			r0 = c.AddJacobian(r0, r1)
			r1 = c.DoubleJacobian(r1)
		}
	}

	return r0, nil
}
