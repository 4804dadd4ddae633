package plonk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkcollective/plonkish/expr"
)

func randomConstraint(rng *rand.Rand) Constraint {
	randExpr := func() *expr.Expression {
		e := expr.Scale(elt(rng.Int63n(1000)+1), expr.Var(uint32(rng.Intn(10)+1)))
		for i := rng.Intn(3); i > 0; i-- {
			e = expr.Add(e, expr.Scale(elt(rng.Int63n(1000)+1), expr.Var(uint32(rng.Intn(10)+1))))
		}
		return e
	}
	switch rng.Intn(3) {
	case 0:
		return Equal{A: randExpr(), B: randExpr()}
	case 1:
		return R1CS{A: randExpr(), B: randExpr(), C: randExpr()}
	default:
		return Boolean{V: randExpr()}
	}
}

// the digest is a pure function of the ordered sequence of accepted
// constraints: two builders fed the same constraints agree at every
// prefix
func TestDigestStability(t *testing.T) {
	assert := require.New(t)

	rng := rand.New(rand.NewSource(42))
	constraints := make([]Constraint, 100)
	for i := range constraints {
		constraints[i] = randomConstraint(rng)
	}

	s1 := NewSystem()
	s2 := NewSystem()
	assert.Equal(s1.Digest(), s2.Digest())

	for _, c := range constraints {
		assert.NoError(s1.AddConstraint(c))
		assert.NoError(s2.AddConstraint(c))
		assert.Equal(s1.Digest(), s2.Digest())
	}
}

// reordering a sum does not change the digest; changing a coefficient
// does
func TestDigestCanonicalization(t *testing.T) {
	assert := require.New(t)

	s1 := NewSystem()
	s2 := NewSystem()
	s3 := NewSystem()

	a := expr.Add(expr.Var(1), expr.Scale(elt(2), expr.Var(2)))
	b := expr.Add(expr.Scale(elt(2), expr.Var(2)), expr.Var(1))
	c := expr.Add(expr.Var(1), expr.Scale(elt(3), expr.Var(2)))

	assert.NoError(s1.AddConstraint(Equal{A: a, B: expr.Uint64(0)}))
	assert.NoError(s2.AddConstraint(Equal{A: b, B: expr.Uint64(0)}))
	assert.NoError(s3.AddConstraint(Equal{A: c, B: expr.Uint64(0)}))

	assert.Equal(s1.Digest(), s2.Digest())
	assert.NotEqual(s1.Digest(), s3.Digest())
}

// the digest distinguishes constraint kinds over identical expressions
func TestDigestTagsKinds(t *testing.T) {
	assert := require.New(t)

	s1 := NewSystem()
	s2 := NewSystem()

	assert.NoError(s1.AddConstraint(Equal{A: expr.Var(1), B: expr.Var(1)}))
	assert.NoError(s2.AddConstraint(Boolean{V: expr.Var(1)}))
	assert.NotEqual(s1.Digest(), s2.Digest())
}

// Digest may be read at any point without perturbing the rolling state
func TestDigestIsReadOnly(t *testing.T) {
	assert := require.New(t)
	s := NewSystem()

	d0 := s.Digest()
	assert.Equal(d0, s.Digest())

	assert.NoError(s.AddConstraint(Boolean{V: expr.Var(1)}))
	d1 := s.Digest()
	assert.NotEqual(d0, d1)
	assert.Equal(d1, s.Digest())
}
