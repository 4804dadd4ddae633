package constraint

import (
	"strconv"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// GateKind is the numeric gate tag consumed by the prover backend.
// The encoding is fixed; changing a value breaks every circuit digest
// and proving key derived from it.
type GateKind uint8

const (
	// KindZero carries the output row of a Poseidon permutation; it has
	// no selectors of its own.
	KindZero GateKind = 0
	// KindGeneric is the 5-selector arithmetic gate
	// qL·l + qR·r + qO·o + qM·l·r + qC == 0. Public-input rows are
	// generic gates with selectors [1,0,0,0,0].
	KindGeneric GateKind = 1
	// KindPoseidon is one full round of the Poseidon permutation; its
	// selectors are the round constants of the next state.
	KindPoseidon GateKind = 2

	// Incomplete EC addition spans two rows: y coordinates then x.
	KindAdd1 GateKind = 3
	KindAdd2 GateKind = 4

	// Variable-base scalar multiplication spans three rows per round.
	KindVbmul1 GateKind = 5
	KindVbmul2 GateKind = 6
	KindVbmul3 GateKind = 7

	// Endoscalar multiplication spans four rows per round.
	KindEndomul1 GateKind = 8
	KindEndomul2 GateKind = 9
	KindEndomul3 GateKind = 10
	KindEndomul4 GateKind = 11
)

// NbSelectors returns the selector count streamed for this gate kind:
// 5 for generic and Poseidon kinds, 0 for the EC kinds.
func (k GateKind) NbSelectors() int {
	switch k {
	case KindZero, KindGeneric, KindPoseidon:
		return 5
	default:
		return 0
	}
}

func (k GateKind) String() string {
	switch k {
	case KindZero:
		return "zero"
	case KindGeneric:
		return "generic"
	case KindPoseidon:
		return "poseidon"
	case KindAdd1:
		return "add1"
	case KindAdd2:
		return "add2"
	case KindVbmul1:
		return "vbmul1"
	case KindVbmul2:
		return "vbmul2"
	case KindVbmul3:
		return "vbmul3"
	case KindEndomul1:
		return "endomul1"
	case KindEndomul2:
		return "endomul2"
	case KindEndomul3:
		return "endomul3"
	case KindEndomul4:
		return "endomul4"
	default:
		return "gate(" + strconv.Itoa(int(k)) + ")"
	}
}

// Gate is one unfinalized row of the arithmetization. L, R and O point at
// the previous wire slot holding the variable currently on this row's
// columns 0, 1 and 2; a slot whose variable occurs for the first time
// (or holds no variable) points at itself; the unused third slot of a
// KindEndomul1 row points at column 3 of its own row. The copy permutation is
// reconstructed downstream by closing each such chain into a cycle.
type Gate struct {
	Kind    GateKind
	Row     Row
	L, R, O Position
	Coeffs  []fr.Element
}

// GateVector is the sink the finalized gate table streams into. Row
// indices are absolute: public-input rows occupy [0,n), user rows follow.
// AddRaw is called exactly once per gate, public-input gates first in
// ascending row order, then user gates in insertion order.
type GateVector interface {
	AddRaw(kind GateKind,
		row uint64,
		lrow uint64, lcol uint8,
		rrow uint64, rcol uint8,
		orow uint64, ocol uint8,
		coeffs []fr.Element)
}

// RawGate is one streamed gate as recorded by RawGateVector.
type RawGate struct {
	Kind       GateKind
	Row        uint64
	LRow, RRow uint64
	ORow       uint64
	LCol, RCol uint8
	OCol       uint8
	Coeffs     []fr.Element
}

// RawGateVector is an in-memory GateVector for tests and in-process
// consumers.
type RawGateVector struct {
	Gates []RawGate
}

func (v *RawGateVector) AddRaw(kind GateKind,
	row uint64,
	lrow uint64, lcol uint8,
	rrow uint64, rcol uint8,
	orow uint64, ocol uint8,
	coeffs []fr.Element) {
	c := make([]fr.Element, len(coeffs))
	copy(c, coeffs)
	v.Gates = append(v.Gates, RawGate{
		Kind: kind,
		Row:  row,
		LRow: lrow, LCol: lcol,
		RRow: rrow, RCol: rcol,
		ORow: orow, OCol: ocol,
		Coeffs: c,
	})
}
