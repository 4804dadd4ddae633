package constraint

import (
	"errors"
	"fmt"
)

var (
	// ErrNonConstantRequired is returned for a generic constraint whose
	// multiplicative selector is nonzero while both factors reduced to
	// constants; the gate has no wire to carry the product.
	ErrNonConstantRequired = errors.New("multiplicative term requires at least one non-constant factor")

	// ErrUnsupportedConstraint is returned for a constraint kind outside
	// the supported enumeration.
	ErrUnsupportedConstraint = errors.New("unsupported constraint kind")

	// ErrMissingPoseidonParams is returned when a Poseidon constraint is
	// added to a system built without round constants.
	ErrMissingPoseidonParams = errors.New("poseidon constraint requires round constants")
)

// AssertionError reports a constraint whose operands all reduced to
// constants and which is unsatisfiable; the circuit is ill-formed and
// cannot be completed.
type AssertionError struct {
	Constraint string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s constraint is unsatisfiable over constant operands", e.Constraint)
}

// UnknownInternalVariableError reports an internal variable referenced
// during witness computation before any earlier row defined its value.
// It indicates a corrupted system: construction order guarantees the
// dependency graph among internal variables is a DAG.
type UnknownInternalVariableError struct {
	ID uint64
}

func (e *UnknownInternalVariableError) Error() string {
	return fmt.Sprintf("internal variable %d has no computed value", e.ID)
}
