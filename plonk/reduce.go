package plonk

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkcollective/plonkish/constraint"
	"github.com/zkcollective/plonkish/expr"
)

// reduced is the result of collapsing a linear combination: scale·v when
// v is set, the plain constant scale otherwise.
type reduced struct {
	scale fr.Element
	v     constraint.Variable
}

func (r reduced) isConst() bool {
	return !r.v.IsSet()
}

// reduceLincom collapses an arbitrary linear combination over external
// variables to at most one effective variable with a scalar, spilling
// intermediates through generic gates. Generic gates have only three
// wire slots, so every combination of more than two variables goes
// through fresh internal wires.
//
// The tail is folded into a right-leaning chain (head fused last); the
// ordering is observable through the gate count and the circuit digest
// and must not change.
func (s *System) reduceLincom(x *expr.Expression) reduced {
	c, terms := x.Canonicalize()

	switch {
	case len(terms) == 0:
		if c != nil {
			return reduced{scale: *c}
		}
		return reduced{} // zero constant

	case len(terms) == 1 && c == nil:
		return reduced{scale: terms[0].Coeff, v: constraint.NewExternal(terms[0].VID)}

	case len(terms) == 1:
		// res == s·x + c, pinned by a generic gate
		t := terms[0]
		xv := constraint.NewExternal(t.VID)
		res := s.createInternal([]constraint.LinearTerm{{Coeff: t.Coeff, V: xv}}, c)
		s.addGeneric(xv, constraint.Variable{}, res,
			[5]fr.Element{t.Coeff, {}, s.tMinusOne, {}, *c})
		return reduced{scale: s.tOne, v: res}

	default:
		head := terms[0]
		hv := constraint.NewExternal(head.VID)
		rs, rx := s.completelyReduce(terms[1:])

		res := s.createInternal([]constraint.LinearTerm{
			{Coeff: head.Coeff, V: hv},
			{Coeff: rs, V: rx},
		}, c)
		var qC fr.Element
		if c != nil {
			qC = *c
		}
		s.addGeneric(hv, rx, res,
			[5]fr.Element{head.Coeff, rs, s.tMinusOne, {}, qC})
		return reduced{scale: s.tOne, v: res}
	}
}

// completelyReduce right-folds sorted external terms into a single
// scale·variable, one internal variable and one generic gate per fused
// pair.
func (s *System) completelyReduce(terms []expr.Term) (fr.Element, constraint.Variable) {
	if len(terms) == 0 {
		panic("cannot reduce an empty list of terms")
	}
	if len(terms) == 1 {
		return terms[0].Coeff, constraint.NewExternal(terms[0].VID)
	}

	ls := terms[0].Coeff
	lx := constraint.NewExternal(terms[0].VID)
	rs, rx := s.completelyReduce(terms[1:])

	res := s.createInternal([]constraint.LinearTerm{
		{Coeff: ls, V: lx},
		{Coeff: rs, V: rx},
	}, nil)
	s.addGeneric(lx, rx, res, [5]fr.Element{ls, rs, s.tMinusOne, {}, {}})
	return s.tOne, res
}

// scaledToV turns a reduced linear combination into a raw variable,
// spilling a residual scale or pinning a constant through one more
// generic gate when needed.
func (s *System) scaledToV(r reduced) constraint.Variable {
	if !r.isConst() {
		if r.scale.IsOne() {
			return r.v
		}
		sv := s.createInternal([]constraint.LinearTerm{{Coeff: r.scale, V: r.v}}, nil)
		s.addGeneric(r.v, constraint.Variable{}, sv,
			[5]fr.Element{r.scale, {}, s.tMinusOne, {}, {}})
		return sv
	}

	// constant: allocate cv and pin cv == r.scale
	c := r.scale
	cv := s.createInternal(nil, &c)
	var qC fr.Element
	qC.Neg(&c)
	s.addGeneric(cv, constraint.Variable{}, constraint.Variable{},
		[5]fr.Element{s.tOne, {}, {}, {}, qC})
	return cv
}

// reduceToV reduces x all the way to a raw variable.
func (s *System) reduceToV(x *expr.Expression) constraint.Variable {
	return s.scaledToV(s.reduceLincom(x))
}
