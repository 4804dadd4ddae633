package expr

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func elt(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func TestToConstantAndTerms(t *testing.T) {
	assert := require.New(t)

	// 2·(x1 + 3) + x2  ==  2·x1 + x2 + 6
	e := Add(Scale(elt(2), Add(Var(1), Uint64(3))), Var(2))
	c, terms := e.ToConstantAndTerms()

	six, two, one := elt(6), elt(2), elt(1)
	assert.NotNil(c)
	assert.True(c.Equal(&six))
	assert.Len(terms, 2)
	assert.Equal(uint32(1), terms[0].VID)
	assert.True(terms[0].Coeff.Equal(&two))
	assert.Equal(uint32(2), terms[1].VID)
	assert.True(terms[1].Coeff.Equal(&one))
}

func TestToConstantAndTermsNoConstant(t *testing.T) {
	assert := require.New(t)

	c, terms := Add(Var(4), Var(2)).ToConstantAndTerms()
	assert.Nil(c)
	assert.Len(terms, 2)
}

func TestCanonicalizeSortsAndFuses(t *testing.T) {
	assert := require.New(t)

	// x3 + 2·x1 + 4·x3  ->  2·x1 + 5·x3
	e := Add(Var(3), Scale(elt(2), Var(1)), Scale(elt(4), Var(3)))
	c, terms := e.Canonicalize()

	assert.Nil(c)
	assert.Len(terms, 2)
	assert.Equal(uint32(1), terms[0].VID)
	assert.Equal(uint32(3), terms[1].VID)
	five := elt(5)
	assert.True(terms[1].Coeff.Equal(&five))
}

func TestCanonicalizeKeepsZeroCoefficients(t *testing.T) {
	assert := require.New(t)

	// x1 - x1 fuses to a zero-coefficient term; it is kept so canonical
	// forms are insensitive to reordering only, not to cancellation
	e := Sub(Var(1), Var(1))
	c, terms := e.Canonicalize()

	assert.Nil(c)
	assert.Len(terms, 1)
	assert.True(terms[0].Coeff.IsZero())
}

func TestSub(t *testing.T) {
	assert := require.New(t)

	c, terms := Sub(Uint64(7), Uint64(3)).Canonicalize()
	assert.Len(terms, 0)
	assert.NotNil(c)
	four := elt(4)
	assert.True(c.Equal(&four))
}

func TestHashCodeMatchesEqual(t *testing.T) {
	assert := require.New(t)

	_, a := Add(Var(1), Scale(elt(2), Var(2))).Canonicalize()
	_, b := Add(Scale(elt(2), Var(2)), Var(1)).Canonicalize()
	_, c := Add(Var(1), Scale(elt(3), Var(2))).Canonicalize()

	assert.True(a.Equal(b))
	assert.Equal(a.HashCode(), b.HashCode())
	assert.False(a.Equal(c))
	assert.NotEqual(a.HashCode(), c.HashCode())
}

// canonicalization must not depend on the order terms are summed in
func TestCanonicalizeCommutative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("canonicalize(a+b) == canonicalize(b+a)", prop.ForAll(
		func(coeffs []int64, vids []uint32) bool {
			n := len(coeffs)
			if len(vids) < n {
				n = len(vids)
			}
			if n == 0 {
				return true
			}
			forward := Scale(elt(coeffs[0]), Var(vids[0]))
			for i := 1; i < n; i++ {
				forward = Add(forward, Scale(elt(coeffs[i]), Var(vids[i])))
			}
			backward := Scale(elt(coeffs[n-1]), Var(vids[n-1]))
			for i := n - 2; i >= 0; i-- {
				backward = Add(backward, Scale(elt(coeffs[i]), Var(vids[i])))
			}
			_, a := forward.Canonicalize()
			_, b := backward.Canonicalize()
			return a.Equal(b) && a.HashCode() == b.HashCode()
		},
		gen.SliceOfN(6, gen.Int64Range(-1000, 1000)),
		gen.SliceOfN(6, gen.UInt32Range(1, 5)),
	))

	properties.TestingRun(t)
}
