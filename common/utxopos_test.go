package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtxoPositionEncode(t *testing.T) {
	pos, err := NewUtxoPosition(123000, 111, 2).Encode()
	require.NoError(t, err)
	assert.Equal(t, "123000001110002", pos.String())

	pos, err = NewUtxoPosition(0, 0, 0).Encode()
	require.NoError(t, err)
	assert.Equal(t, "0", pos.String())
}

func TestUtxoPositionRoundTrip(t *testing.T) {
	cases := []UtxoPosition{
		NewUtxoPosition(0, 0, 0),
		NewUtxoPosition(1, 0, 0),
		NewUtxoPosition(1000, 9999, 3),
		NewUtxoPosition(123000, 111, 2),
		// block numbers keep round-tripping far beyond native ranges
		NewUtxoPosition(1<<48, 9999, 3),
		NewUtxoPosition(1<<48-1, 0, 1),
	}
	for _, want := range cases {
		encoded, err := want.Encode()
		require.NoError(t, err)
		got, err := DecodeUtxoPosition(encoded)
		require.NoError(t, err)
		assert.Zero(t, want.BlkNum.Cmp(got.BlkNum))
		assert.Equal(t, want.TxIndex, got.TxIndex)
		assert.Equal(t, want.OIndex, got.OIndex)
	}
}

func TestUtxoPositionEncodeBounds(t *testing.T) {
	_, err := UtxoPosition{BlkNum: big.NewInt(1), TxIndex: 10000}.Encode()
	require.Error(t, err)

	_, err = UtxoPosition{BlkNum: big.NewInt(1), OIndex: 4}.Encode()
	require.Error(t, err)

	_, err = UtxoPosition{BlkNum: big.NewInt(-1)}.Encode()
	require.Error(t, err)

	_, err = UtxoPosition{}.Encode()
	require.Error(t, err)
}

func TestDecodeUtxoPositionRejectsOutOfRange(t *testing.T) {
	// 5*1e9 + 70000*1e4 + 9999: both coordinates exceed their bounds and
	// must fail instead of wrapping around to TxIndex 4464 / OIndex 15
	packed := big.NewInt(5*1000000000 + 70000*10000 + 9999)
	_, err := DecodeUtxoPosition(packed)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = DecodeUtxoPosition(big.NewInt(1*1000000000 + 9999*10000 + 4))
	require.Error(t, err)

	// boundary values still decode
	got, err := DecodeUtxoPosition(big.NewInt(1*1000000000 + 9999*10000 + 3))
	require.NoError(t, err)
	assert.Equal(t, uint16(9999), got.TxIndex)
	assert.Equal(t, uint8(3), got.OIndex)
}

func TestDecodeUtxoPositionRejectsNegative(t *testing.T) {
	_, err := DecodeUtxoPosition(big.NewInt(-1))
	require.Error(t, err)
	_, err = DecodeUtxoPosition(nil)
	require.Error(t, err)
}
