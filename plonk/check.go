package plonk

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/zkcollective/plonkish/constraint"
	"github.com/zkcollective/plonkish/logger"
)

// CheckUnconstrainedInputs returns an error if an external variable in
// [1, publicInputSize+auxiliaryInputSize] never occupies a wire. Such an
// input is not bound by any gate and makes the circuit underdetermined.
// Both input sizes must be set before calling.
func (s *System) CheckUnconstrainedInputs() error {
	if !s.publicInputSizeSet {
		panic("public input size must be set before checking inputs")
	}
	total := uint(s.publicInputSize) + uint(s.auxiliaryInputSize)

	seen := bitset.New(total + 1)
	for v := range s.equivalence {
		if v.Kind == constraint.External && v.ID <= uint64(total) {
			seen.Set(uint(v.ID))
		}
	}

	var missing []uint32
	for i := uint(1); i <= total; i++ {
		if !seen.Test(i) {
			missing = append(missing, uint32(i))
		}
	}
	if len(missing) == 0 {
		return nil
	}

	log := logger.Logger()
	preview := missing
	if len(preview) > 5 {
		preview = preview[:5]
	}
	log.Warn().
		Int("nbUnconstrained", len(missing)).
		Uints32("first", preview).
		Msg("circuit has unconstrained inputs")

	return fmt.Errorf("%d unconstrained input(s), first is x%d", len(missing), missing[0])
}
