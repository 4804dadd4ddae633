package plonk

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkcollective/plonkish/constraint"
)

// ComputeWitness produces the dense row×3 wire assignment for the
// current rows, reading external variable values through f (1-based
// index). The first publicInputSize rows carry the public inputs on
// column 0; the remaining rows follow the recorded slots. Internal
// variables are evaluated on first use and memoized; the construction
// order guarantees every internal variable a formula references was
// placed on an earlier row. ComputeWitness does not finalize the system.
func (s *System) ComputeWitness(f func(uint32) fr.Element) ([][3]fr.Element, error) {
	if !s.publicInputSizeSet {
		panic("public input size must be set before computing a witness")
	}
	n := s.publicInputSize

	res := make([][3]fr.Element, uint64(n)+uint64(s.nextRow))
	for i := uint32(0); i < n; i++ {
		res[i][0] = f(i + 1)
	}

	values := make([]fr.Element, len(s.internals))
	computed := bitset.New(uint(len(s.internals)))

	for j := range s.rows {
		i := int(n) + j
		for col, v := range s.rows[j] {
			switch v.Kind {
			case constraint.Unset:
				// stays zero
			case constraint.External:
				res[i][col] = f(uint32(v.ID))
			case constraint.Internal:
				val, err := s.internalValue(v.ID, f, values, computed)
				if err != nil {
					return nil, err
				}
				res[i][col] = val
			}
		}
	}
	return res, nil
}

// internalValue evaluates internal variable id as
// Σ coeff·value(arg) + constant, memoizing the result. Arguments must be
// external or already-evaluated internal variables; anything else means
// the system's DAG invariant was broken.
func (s *System) internalValue(id uint64, f func(uint32) fr.Element, values []fr.Element, computed *bitset.BitSet) (fr.Element, error) {
	if id >= uint64(len(s.internals)) {
		return fr.Element{}, &constraint.UnknownInternalVariableError{ID: id}
	}
	if computed.Test(uint(id)) {
		return values[id], nil
	}

	rec := &s.internals[id]
	var acc fr.Element
	if rec.constant != nil {
		acc.Set(rec.constant)
	}
	for _, t := range rec.terms {
		var arg fr.Element
		switch t.V.Kind {
		case constraint.External:
			arg = f(uint32(t.V.ID))
		case constraint.Internal:
			if !computed.Test(uint(t.V.ID)) {
				return fr.Element{}, &constraint.UnknownInternalVariableError{ID: t.V.ID}
			}
			arg = values[t.V.ID]
		default:
			return fr.Element{}, &constraint.UnknownInternalVariableError{ID: id}
		}
		var term fr.Element
		term.Mul(&t.Coeff, &arg)
		acc.Add(&acc, &term)
	}

	values[id] = acc
	computed.Set(uint(id))
	return acc, nil
}
