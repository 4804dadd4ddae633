package plonk

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zkcollective/plonkish/constraint"
	"github.com/zkcollective/plonkish/expr"
)

// a sum of three externals spills two internal variables through two
// generic gates; the equality itself adds a third
func TestThreeTermSum(t *testing.T) {
	assert := require.New(t)
	s := NewSystem()
	s.SetPublicInputSize(3)

	sum := expr.Add(expr.Var(1), expr.Var(2), expr.Var(3))
	assert.NoError(s.AddConstraint(Equal{A: sum, B: expr.Uint64(0)}))

	assert.Len(s.internals, 2)
	assert.Equal(3, s.nbGates())
	for _, g := range s.gates {
		assert.Equal(constraint.KindGeneric, g.Kind)
	}

	var out constraint.RawGateVector
	s.FinalizeAndEmit(&out)
	assert.Len(out.Gates, 6)
}

func TestReduceLincomSingleTerm(t *testing.T) {
	assert := require.New(t)
	s := NewSystem()

	r := s.reduceLincom(expr.Scale(elt(7), expr.Var(2)))
	assert.False(r.isConst())
	assert.Equal(constraint.NewExternal(2), r.v)
	seven := elt(7)
	assert.True(r.scale.Equal(&seven))
	assert.Equal(0, s.nbGates())
}

func TestReduceLincomTermPlusConstant(t *testing.T) {
	assert := require.New(t)
	s := NewSystem()

	// 7·x2 + 5 spills one internal pinned by one gate
	r := s.reduceLincom(expr.Add(expr.Scale(elt(7), expr.Var(2)), expr.Uint64(5)))
	assert.False(r.isConst())
	assert.Equal(constraint.Internal, r.v.Kind)
	assert.True(r.scale.IsOne())
	assert.Equal(1, s.nbGates())
	requireCoeffs(t, s.gates[0].Coeffs, 7, 0, -1, 0, 5)
}

func TestReduceLincomConstant(t *testing.T) {
	assert := require.New(t)
	s := NewSystem()

	r := s.reduceLincom(expr.Sub(expr.Uint64(9), expr.Uint64(4)))
	assert.True(r.isConst())
	five := elt(5)
	assert.True(r.scale.Equal(&five))
	assert.Equal(0, s.nbGates())
}

func TestScaledToVResidualScale(t *testing.T) {
	assert := require.New(t)
	s := NewSystem()

	v := s.reduceToV(expr.Scale(elt(3), expr.Var(1)))
	assert.Equal(constraint.Internal, v.Kind)
	assert.Equal(1, s.nbGates())
	requireCoeffs(t, s.gates[0].Coeffs, 3, 0, -1, 0, 0)
}

func TestScaledToVConstant(t *testing.T) {
	assert := require.New(t)
	s := NewSystem()

	v := s.reduceToV(expr.Uint64(4))
	assert.Equal(constraint.Internal, v.Kind)
	assert.Equal(1, s.nbGates())
	// 1·cv - 4 == 0 pins the new wire to the constant
	requireCoeffs(t, s.gates[0].Coeffs, 1, 0, 0, 0, -4)

	rec := s.internals[v.ID]
	assert.Empty(rec.terms)
	four := elt(4)
	assert.True(rec.constant.Equal(&four))
}

// reducing a sum of k externals with distinct coefficients costs exactly
// k-1 internal variables and k-1 generic gates
func TestReduceLincomGateCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("k terms -> k-1 internals and gates", prop.ForAll(
		func(k int) bool {
			s := NewSystem()
			sum := expr.Scale(elt(2), expr.Var(1))
			for i := 2; i <= k; i++ {
				sum = expr.Add(sum, expr.Scale(elt(int64(i+1)), expr.Var(uint32(i))))
			}
			r := s.reduceLincom(sum)
			return !r.isConst() &&
				len(s.internals) == k-1 &&
				s.nbGates() == k-1
		},
		gen.IntRange(2, 12),
	))

	properties.TestingRun(t)
}
