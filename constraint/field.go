package constraint

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// FieldBytes is the width of the canonical byte encoding fed to the
// circuit digest per coefficient.
const FieldBytes = fr.Bytes

// BytesLE returns the canonical little-endian encoding of e. The digest
// byte layout depends on it being exactly FieldBytes wide and stable
// across runs and platforms.
func BytesLE(e *fr.Element) [FieldBytes]byte {
	b := e.Bytes()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// One returns 1.
func One() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

// MinusOne returns -1.
func MinusOne() fr.Element {
	var e fr.Element
	e.SetOne()
	e.Neg(&e)
	return e
}
