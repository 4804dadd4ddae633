package plonk

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkcollective/plonkish/constraint"
	"github.com/zkcollective/plonkish/logger"
)

// FinalizeAndEmit synthesizes the public-input gates, maps every row to
// its absolute index and streams the full gate table into out, in order:
// public-input gates by ascending row, then user gates in insertion
// order. The sink is called exactly once per gate. After finalization no
// further constraints may be added; calling FinalizeAndEmit twice
// panics.
func (s *System) FinalizeAndEmit(out constraint.GateVector) {
	if s.finalized {
		panic("constraint system already finalized")
	}
	if !s.publicInputSizeSet {
		panic("public input size must be set before finalization")
	}
	n := s.publicInputSize

	log := logger.Logger()
	log.Info().
		Uint32("nbPublicInputs", n).
		Int("nbGates", s.nbGates()).
		Int("nbConstraints", s.GetNbConstraints()).
		Msg("finalizing constraint system")

	// one generic gate per public input pins external variable r+1 on
	// column 0 of row r; the remaining wires self-loop
	selectors := [5]fr.Element{s.tOne}
	for r := uint32(0); r < n; r++ {
		row := constraint.PublicInputRow(r)
		lp := s.wire(constraint.NewExternal(r+1), row, 0)
		out.AddRaw(constraint.KindGeneric,
			row.Absolute(n),
			lp.Row.Absolute(n), lp.Col,
			row.Absolute(n), 1,
			row.Absolute(n), 2,
			selectors[:])
	}

	for i := range s.gates {
		g := &s.gates[i]
		out.AddRaw(g.Kind,
			g.Row.Absolute(n),
			g.L.Row.Absolute(n), g.L.Col,
			g.R.Row.Absolute(n), g.R.Col,
			g.O.Row.Absolute(n), g.O.Col,
			g.Coeffs)
	}

	s.finalized = true
}
