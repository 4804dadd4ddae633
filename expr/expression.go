// Package expr implements the symbolic expression algebra constraints are
// written in: trees of constants, external variables, sums and scalar
// multiples, together with flattening and canonicalization into linear
// combinations.
package expr

import (
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type op uint8

const (
	opConstant op = iota
	opVar
	opAdd
	opScale
)

// Expression is a symbolic polynomial of degree one in the external
// variables. Expressions are immutable once built; sharing subtrees is
// fine.
type Expression struct {
	op          op
	coeff       fr.Element // constant value (opConstant) or scale factor (opScale)
	vid         uint32     // opVar
	left, right *Expression
}

// Constant returns the expression holding the constant v.
func Constant(v fr.Element) *Expression {
	return &Expression{op: opConstant, coeff: v}
}

// Uint64 returns the constant expression for v.
func Uint64(v uint64) *Expression {
	var e fr.Element
	e.SetUint64(v)
	return Constant(e)
}

// Var returns the expression holding the external variable of the given
// 1-based index.
func Var(index uint32) *Expression {
	if index == 0 {
		panic("external variables are indexed from 1")
	}
	return &Expression{op: opVar, vid: index}
}

// Add returns x + ys[0] + ys[1] + ...
func Add(x *Expression, ys ...*Expression) *Expression {
	res := x
	for _, y := range ys {
		res = &Expression{op: opAdd, left: res, right: y}
	}
	return res
}

// Sub returns x - y.
func Sub(x, y *Expression) *Expression {
	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)
	return Add(x, Scale(minusOne, y))
}

// Scale returns s·x.
func Scale(s fr.Element, x *Expression) *Expression {
	return &Expression{op: opScale, coeff: s, left: x}
}

// ToConstantAndTerms flattens the expression into an optional constant and
// a list of coefficient·variable terms. The result equals the expression
// as a polynomial in the external variables; terms are in traversal order
// and may repeat variables.
func (e *Expression) ToConstantAndTerms() (*fr.Element, []Term) {
	var one fr.Element
	one.SetOne()
	return e.constantAndTerms(one, nil, nil)
}

func (e *Expression) constantAndTerms(scale fr.Element, constant *fr.Element, terms []Term) (*fr.Element, []Term) {
	switch e.op {
	case opConstant:
		var c fr.Element
		c.Mul(&scale, &e.coeff)
		if constant == nil {
			constant = &c
		} else {
			constant.Add(constant, &c)
		}
		return constant, terms
	case opVar:
		return constant, append(terms, Term{Coeff: scale, VID: e.vid})
	case opAdd:
		constant, terms = e.left.constantAndTerms(scale, constant, terms)
		return e.right.constantAndTerms(scale, constant, terms)
	case opScale:
		var s fr.Element
		s.Mul(&scale, &e.coeff)
		return e.left.constantAndTerms(s, constant, terms)
	default:
		panic("invalid expression")
	}
}

// Canonicalize flattens the expression and normalizes the terms: sorted by
// variable index ascending, runs of equal indices fused by summing their
// coefficients left-to-right. Zero coefficients produced by fusion are
// kept, so two expressions canonicalize identically exactly when they are
// equal up to reordering, not up to cancellation.
func (e *Expression) Canonicalize() (constant *fr.Element, terms LinearCombination) {
	constant, flat := e.ToConstantAndTerms()
	lc := LinearCombination(flat)
	sort.Stable(lc)

	for i := 1; i < len(lc); i++ {
		if lc[i-1].VID == lc[i].VID {
			lc[i-1].Coeff.Add(&lc[i-1].Coeff, &lc[i].Coeff)
			lc = append(lc[:i], lc[i+1:]...)
			i--
		}
	}
	return constant, lc
}
