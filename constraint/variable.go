package constraint

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// VariableKind tags a Variable as caller-supplied or builder-allocated.
type VariableKind uint8

const (
	// Unset is the zero value; an unset Variable marks an empty wire slot.
	Unset VariableKind = iota
	// External variables are circuit inputs supplied by the caller at
	// witness time, indexed from 1.
	External
	// Internal variables are introduced by the builder while lowering
	// linear combinations; ids are dense and monotone within one system.
	Internal
)

// Variable identifies a value placed on circuit wires. The zero value is
// not a variable; use NewExternal / NewInternal.
type Variable struct {
	Kind VariableKind
	ID   uint64
}

// NewExternal returns the external variable of the given 1-based index.
func NewExternal(index uint32) Variable {
	if index == 0 {
		panic("external variables are indexed from 1")
	}
	return Variable{Kind: External, ID: uint64(index)}
}

// NewInternal returns the internal variable with the given allocation id.
func NewInternal(id uint64) Variable {
	return Variable{Kind: Internal, ID: id}
}

// IsSet returns false for the zero value (an empty wire slot).
func (v Variable) IsSet() bool {
	return v.Kind != Unset
}

// Less orders variables by kind tag, then id. External sorts before
// Internal so the order is stable across systems with differing numbers
// of spilled intermediates.
func (v Variable) Less(o Variable) bool {
	if v.Kind != o.Kind {
		return v.Kind < o.Kind
	}
	return v.ID < o.ID
}

func (v Variable) String() string {
	switch v.Kind {
	case External:
		return fmt.Sprintf("x%d", v.ID)
	case Internal:
		return fmt.Sprintf("i%d", v.ID)
	default:
		return "_"
	}
}

// LinearTerm is one coeff·variable summand in an internal variable's
// defining formula. Unlike expr.Term it may reference internal variables.
type LinearTerm struct {
	Coeff fr.Element
	V     Variable
}
