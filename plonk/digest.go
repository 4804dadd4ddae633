package plonk

import (
	"crypto/md5"
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkcollective/plonkish/constraint"
	"github.com/zkcollective/plonkish/expr"
)

// Digest returns the fingerprint of the constraints passed to
// AddConstraint so far: an MD5 of the rolling SHA-256 output. A constraint
// of a supported kind is absorbed before it is lowered, so it stays in the
// digest even when its lowering then returns an error. It is a deduplication fingerprint,
// not a cryptographic commitment; two systems fed the same constraints
// in the same order digest identically. The byte layout (fixed-width
// little-endian coefficients followed by 8-byte little-endian variable
// ids) is relied upon by downstream caches and must not change.
func (s *System) Digest() [16]byte {
	return md5.Sum(s.h.Sum(nil))
}

// absorbConstraint hashes the constraint as given, before any lowering
// side effect.
func (s *System) absorbConstraint(c Constraint) error {
	switch c := c.(type) {
	case Equal:
		s.absorbTag("equal")
		s.absorbExpression(c.A)
		s.absorbExpression(c.B)
	case Boolean:
		s.absorbTag("boolean")
		s.absorbExpression(c.V)
	case Square:
		s.absorbTag("square")
		s.absorbExpression(c.X)
		s.absorbExpression(c.Z)
	case R1CS:
		s.absorbTag("r1cs")
		s.absorbExpression(c.A)
		s.absorbExpression(c.B)
		s.absorbExpression(c.C)
	case Generic:
		s.absorbTag("basic")
		s.absorbElement(&c.L.Coeff)
		s.absorbExpression(c.L.X)
		s.absorbElement(&c.R.Coeff)
		s.absorbExpression(c.R.X)
		s.absorbElement(&c.O.Coeff)
		s.absorbExpression(c.O.X)
		s.absorbElement(&c.M)
		s.absorbElement(&c.C)
	case Poseidon:
		s.absorbTag("poseidon")
		for i := range c.State {
			for j := range c.State[i] {
				s.absorbExpression(c.State[i][j])
			}
		}
	case ECAdd:
		s.absorbTag("ec_add")
		for _, p := range []ECPoint{c.P1, c.P2, c.P3} {
			s.absorbExpression(p.X)
			s.absorbExpression(p.Y)
		}
	case ECScale:
		s.absorbTag("ec_scale")
		for i := range c.State {
			r := &c.State[i]
			for _, x := range []*expr.Expression{r.Xt, r.B, r.Yt, r.Xp, r.L1, r.Yp, r.Xs, r.Ys} {
				s.absorbExpression(x)
			}
		}
	case ECEndoscale:
		s.absorbTag("ec_endoscale")
		for i := range c.State {
			r := &c.State[i]
			for _, x := range []*expr.Expression{r.B2i1, r.Xt, r.B2i, r.Xq, r.Yt, r.Xp, r.L1, r.Yp, r.Xs, r.Ys} {
				s.absorbExpression(x)
			}
		}
	default:
		return constraint.ErrUnsupportedConstraint
	}
	return nil
}

func (s *System) absorbTag(tag string) {
	s.h.Write([]byte(tag))
}

func (s *System) absorbElement(e *fr.Element) {
	b := constraint.BytesLE(e)
	s.h.Write(b[:])
}

// absorbExpression hashes the canonical form of x: the constant, if
// present, prepended as a term of variable id 0, then each
// coefficient·id pair.
func (s *System) absorbExpression(x *expr.Expression) {
	c, terms := x.Canonicalize()
	var id [8]byte
	if c != nil {
		s.absorbElement(c)
		binary.LittleEndian.PutUint64(id[:], 0)
		s.h.Write(id[:])
	}
	for i := range terms {
		s.absorbElement(&terms[i].Coeff)
		binary.LittleEndian.PutUint64(id[:], uint64(terms[i].VID))
		s.h.Write(id[:])
	}
}
