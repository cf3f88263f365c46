package curve

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAffineRoundTrip(t *testing.T) {
	c := Secp256k1()
	p := randomPoint(t, c)

	back := c.ToAffine(FromAffine(p))
	assert.True(t, back.Equal(p), "ToAffine(FromAffine(P)) != P")

	assert.True(t, FromAffine(Infinity()).IsInfinity())
	assert.True(t, c.ToAffine(JacobianInfinity()).IsInfinity())
}

func TestJacobianDoubleMatchesAffine(t *testing.T) {
	c := Secp256k1()
	for i := 0; i < 8; i++ {
		p := randomPoint(t, c)
		got := c.ToAffine(c.DoubleJacobian(FromAffine(p)))
		want := c.Double(p)
		assert.True(t, got.Equal(want), "jacobian and affine doubling disagree")
	}
}

func TestJacobianAddMatchesAffine(t *testing.T) {
	c := Secp256k1()
	for i := 0; i < 8; i++ {
		p := randomPoint(t, c)
		q := randomPoint(t, c)
		got := c.ToAffine(c.AddJacobian(FromAffine(p), FromAffine(q)))
		want := c.Add(p, q)
		assert.True(t, got.Equal(want), "jacobian and affine addition disagree")
	}
}

func TestJacobianAddGroupLawBranches(t *testing.T) {
	c := Secp256k1()
	p := randomPoint(t, c)
	jp := FromAffine(p)

	// Identity operands pass through.
	sum := c.ToAffine(c.AddJacobian(jp, JacobianInfinity()))
	assert.True(t, sum.Equal(p), "P + O != P")
	sum = c.ToAffine(c.AddJacobian(JacobianInfinity(), jp))
	assert.True(t, sum.Equal(p), "O + P != P")

	// Self-addition delegates to doubling.
	dbl := c.ToAffine(c.AddJacobian(jp, jp))
	assert.True(t, dbl.Equal(c.Double(p)), "P + P != 2P")

	// Inverse pairs cancel, even with distinct Z coordinates.
	neg := FromAffine(c.Negate(p))
	assert.True(t, c.AddJacobian(jp, neg).IsInfinity(), "P + (-P) != O")
}

// TestScalarMultPathsAgree is the required equivalence property: both
// coordinate systems must produce identical affine results for every scalar.
func TestScalarMultPathsAgree(t *testing.T) {
	c := Secp256k1()
	g := c.Generator()
	jg := FromAffine(g)

	scalars := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(3),
		new(big.Int).Set(c.N),
		new(big.Int).Sub(c.N, big.NewInt(1)),
	}
	for i := 0; i < 16; i++ {
		k, err := rand.Int(rand.Reader, c.N)
		require.NoError(t, err)
		scalars = append(scalars, k)
	}

	for _, k := range scalars {
		affine, err := c.ScalarMult(g, k)
		require.NoError(t, err)
		jacobian, err := c.ScalarMultJacobian(jg, k)
		require.NoError(t, err)
		assert.True(t, c.ToAffine(jacobian).Equal(affine),
			"scalar %s: jacobian and affine ladders disagree", k)
	}
}

func TestScalarMultJacobianRejectsNegative(t *testing.T) {
	c := Secp256k1()
	_, err := c.ScalarMultJacobian(FromAffine(c.Generator()), big.NewInt(-5))
	assert.ErrorIs(t, err, ErrInvalidScalar)
}
