package constraint

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestRowAbsolute(t *testing.T) {
	assert := require.New(t)

	assert.Equal(uint64(2), PublicInputRow(2).Absolute(5))
	assert.Equal(uint64(5), AfterPublicInputRow(0).Absolute(5))
	assert.Equal(uint64(12), AfterPublicInputRow(7).Absolute(5))
}

func TestVariableOrder(t *testing.T) {
	assert := require.New(t)

	assert.True(NewExternal(1).Less(NewExternal(2)))
	assert.True(NewExternal(1000).Less(NewInternal(0)))
	assert.True(NewInternal(3).Less(NewInternal(4)))
	assert.False(NewInternal(0).Less(NewExternal(1)))

	assert.False(Variable{}.IsSet())
	assert.True(NewExternal(1).IsSet())
	assert.Panics(func() { NewExternal(0) })
}

func TestBytesLE(t *testing.T) {
	assert := require.New(t)

	var e fr.Element
	e.SetUint64(0x0102)
	b := BytesLE(&e)
	assert.Equal(byte(0x02), b[0])
	assert.Equal(byte(0x01), b[1])
	for i := 2; i < len(b); i++ {
		assert.Equal(byte(0), b[i])
	}
}

func TestGateKindSelectors(t *testing.T) {
	assert := require.New(t)

	assert.Equal(5, KindGeneric.NbSelectors())
	assert.Equal(5, KindPoseidon.NbSelectors())
	assert.Equal(5, KindZero.NbSelectors())
	for _, k := range []GateKind{KindAdd1, KindAdd2, KindVbmul1, KindVbmul2, KindVbmul3,
		KindEndomul1, KindEndomul2, KindEndomul3, KindEndomul4} {
		assert.Equal(0, k.NbSelectors())
	}
}

func TestRawGateVectorCopiesCoeffs(t *testing.T) {
	assert := require.New(t)

	var v RawGateVector
	coeffs := []fr.Element{One()}
	v.AddRaw(KindGeneric, 0, 0, 0, 0, 1, 0, 2, coeffs)
	coeffs[0].SetZero()

	assert.True(v.Gates[0].Coeffs[0].IsOne())
}
