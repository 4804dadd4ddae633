package constraint

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// PoseidonParams supplies the round constants of the Poseidon permutation
// the KindPoseidon gates implement. RoundConstants must have one entry per
// permutation state, i.e. len(state) entries for a constraint over
// len(state) states (the last state is carried by a KindZero row with no
// selectors of its own).
type PoseidonParams struct {
	RoundConstants [][3]fr.Element
}
