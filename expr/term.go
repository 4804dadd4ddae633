package expr

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/blake2b"
)

// Term represents a coeff * external variable summand in a linear
// combination.
type Term struct {
	Coeff fr.Element
	VID   uint32
}

// LinearCombination is a list of terms over external variables. A
// canonical linear combination is sorted by variable index with no
// duplicate indices; see (*Expression).Canonicalize.
type LinearCombination []Term

// Len returns the number of terms (implements sort.Interface)
func (l LinearCombination) Len() int {
	return len(l)
}

// Swap swaps two terms (implements sort.Interface)
func (l LinearCombination) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// Less orders terms by variable index (implements sort.Interface)
func (l LinearCombination) Less(i, j int) bool {
	return l[i].VID < l[j].VID
}

// Equal returns true if both SORTED combinations hold the same terms.
func (l LinearCombination) Equal(o LinearCombination) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i].VID != o[i].VID || !l[i].Coeff.Equal(&o[i].Coeff) {
			return false
		}
	}
	return true
}

// HashCode returns a collision-resistant identifier of the linear
// combination, built from the canonical encoding of each term.
func (l LinearCombination) HashCode() [16]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	var buf [8]byte
	for i := range l {
		b := l[i].Coeff.Bytes()
		h.Write(b[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(l[i].VID))
		h.Write(buf[:])
	}
	crc := h.Sum(nil)
	return [16]byte(crc[:16])
}
