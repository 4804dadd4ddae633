// Package plonk implements an incremental PLONK constraint system builder:
// it lowers high-level algebraic constraints into a canonical sequence of
// 3-wire gates, tracks wire equivalence classes for the copy-permutation
// argument, fingerprints the accepted constraints, and produces a dense
// witness assignment from external variable values.
package plonk

import (
	"crypto/sha256"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkcollective/plonkish/constraint"
	"github.com/zkcollective/plonkish/logger"
)

// hashSeed is absorbed once at construction; every digest of every system
// is relative to it.
const hashSeed = "plonk_constraint_system"

// System is the constraint system under construction. It is single
// threaded and non-reentrant; all storage is owned exclusively by the
// builder.
type System struct {
	// equivalence maps each variable to the wire slots it occupies, in
	// placement order (most recent occurrence last). Closing each class
	// into a cycle downstream yields the copy permutation.
	equivalence map[constraint.Variable][]constraint.Position

	// internals records how each internal variable is computed from
	// earlier ones, indexed by allocation id. Construction order makes
	// the reference graph a DAG.
	internals []internalVariable

	// rows mirrors gates with the variable placed on each wire slot;
	// it is the witness template.
	rows [][3]constraint.Variable

	// gates accumulates unfinalized gate specs in insertion order.
	// Public-input gates are synthesized only at finalization.
	gates     []constraint.Gate
	finalized bool

	// nextRow counts rows added after the public input; it is also the
	// relative row index of the next gate.
	nextRow uint32

	h             hash.Hash
	nbConstraints uint32

	publicInputSize    uint32
	publicInputSizeSet bool
	auxiliaryInputSize uint32

	poseidon *constraint.PoseidonParams

	// frequently used coefficients
	tOne, tMinusOne fr.Element
}

// internalVariable defines an internal variable as
// Σ terms[i].Coeff · value(terms[i].V) + constant.
type internalVariable struct {
	terms    []constraint.LinearTerm
	constant *fr.Element
}

type config struct {
	capacity int
	poseidon *constraint.PoseidonParams
}

// Option configures a System at construction.
type Option func(*config)

// WithCapacity pre-sizes the gate and row buffers. It has quite some
// impact on large circuits.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithPoseidonParams supplies the round constants Poseidon constraints
// lower with.
func WithPoseidonParams(p constraint.PoseidonParams) Option {
	return func(c *config) { c.poseidon = &p }
}

// NewSystem returns an empty constraint system.
func NewSystem(opts ...Option) *System {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &System{
		equivalence: make(map[constraint.Variable][]constraint.Position, cfg.capacity),
		rows:        make([][3]constraint.Variable, 0, cfg.capacity),
		gates:       make([]constraint.Gate, 0, cfg.capacity),
		h:           sha256.New(),
		poseidon:    cfg.poseidon,
	}
	s.h.Write([]byte(hashSeed))
	s.tOne.SetOne()
	s.tMinusOne.Neg(&s.tOne)
	return s
}

// SetPublicInputSize records the number of public inputs. It must be
// called exactly once, before finalization or witness computation.
func (s *System) SetPublicInputSize(n uint32) {
	if s.publicInputSizeSet {
		panic("public input size already set")
	}
	s.publicInputSize = n
	s.publicInputSizeSet = true
}

// PublicInputSize returns the public input size; it panics if the size
// was never set.
func (s *System) PublicInputSize() uint32 {
	if !s.publicInputSizeSet {
		panic("public input size not set")
	}
	return s.publicInputSize
}

// SetAuxiliaryInputSize records the number of caller-supplied variables
// past the public input.
func (s *System) SetAuxiliaryInputSize(n uint32) {
	s.auxiliaryInputSize = n
}

// AuxiliaryInputSize returns the auxiliary input size.
func (s *System) AuxiliaryInputSize() uint32 {
	return s.auxiliaryInputSize
}

// GetNbConstraints returns the number of constraints accepted so far.
func (s *System) GetNbConstraints() int {
	return int(s.nbConstraints)
}

// nbGates returns the number of gates added after the public input.
func (s *System) nbGates() int {
	return len(s.gates)
}

// createInternal allocates a fresh internal variable computed as
// Σ terms + constant from already-created variables.
func (s *System) createInternal(terms []constraint.LinearTerm, c *fr.Element) constraint.Variable {
	id := uint64(len(s.internals))
	s.internals = append(s.internals, internalVariable{terms: terms, constant: c})
	return constraint.NewInternal(id)
}

// wire places v at (row, col) and returns the previous slot holding v,
// or the slot itself on first occurrence. The gate stores this
// back-pointer; the head of each equivalence class therefore keeps its
// first occurrence, which closes the permutation cycle downstream.
func (s *System) wire(v constraint.Variable, row constraint.Row, col uint8) constraint.Position {
	pos := constraint.Position{Row: row, Col: col}
	class := s.equivalence[v]
	prev := pos
	if len(class) > 0 {
		prev = class[len(class)-1]
	}
	s.equivalence[v] = append(class, pos)
	return prev
}

// wireOrSelf wires v if set; an empty slot's back-pointer self-loops.
func (s *System) wireOrSelf(v constraint.Variable, row constraint.Row, col uint8) constraint.Position {
	if !v.IsSet() {
		return constraint.Position{Row: row, Col: col}
	}
	return s.wire(v, row, col)
}

// addRow appends a gate and its witness template row.
func (s *System) addRow(vars [3]constraint.Variable, kind constraint.GateKind, lp, rp, op constraint.Position, coeffs []fr.Element) {
	if s.finalized {
		panic("cannot add a row to a finalized constraint system")
	}
	s.gates = append(s.gates, constraint.Gate{
		Kind:   kind,
		Row:    constraint.AfterPublicInputRow(s.nextRow),
		L:      lp,
		R:      rp,
		O:      op,
		Coeffs: coeffs,
	})
	s.rows = append(s.rows, vars)
	s.nextRow++
}

// addFullRow wires all three columns of a new row of the given kind.
func (s *System) addFullRow(vars [3]constraint.Variable, kind constraint.GateKind, coeffs []fr.Element) {
	row := constraint.AfterPublicInputRow(s.nextRow)
	lp := s.wireOrSelf(vars[0], row, 0)
	rp := s.wireOrSelf(vars[1], row, 1)
	op := s.wireOrSelf(vars[2], row, 2)
	s.addRow(vars, kind, lp, rp, op, coeffs)
}

// addGeneric emits a generic gate
// qL·l + qR·r + qO·o + qM·l·r + qC == 0 with the given wire slots;
// unset slots leave the wire unconstrained and self-loop in the
// permutation.
func (s *System) addGeneric(l, r, o constraint.Variable, coeffs [5]fr.Element) {
	if !coeffs[3].IsZero() && (!l.IsSet() || !r.IsSet()) {
		log := logger.Logger()
		log.Warn().Msg("adding a generic gate with qM set but l or r unset")
	}
	s.addFullRow([3]constraint.Variable{l, r, o}, constraint.KindGeneric, coeffs[:])
}
