package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeExitPriority(t *testing.T) {
	// bits [0,42) hold 1600000000, bits [96,256) hold 42
	raw, ok := new(big.Int).SetString(
		"42124916667422874679167211073468172927558038160219644501724391014400000042", 10)
	require.True(t, ok)

	priority, err := DecodeExitPriority(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(1600000000), priority.ExitableAt)
	assert.Equal(t, "42", priority.ExitID.String())
	assert.Zero(t, raw.Cmp(priority.Priority))
}

func TestDecodeExitPriorityZero(t *testing.T) {
	priority, err := DecodeExitPriority(big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), priority.ExitableAt)
	assert.Equal(t, "0", priority.ExitID.String())
}

func TestDecodeExitPriorityReservedBitsIgnored(t *testing.T) {
	// bits [42,96) are reserved padding and must not leak into either field
	raw := new(big.Int).Lsh(big.NewInt(1), 200)
	raw.Or(raw, big.NewInt(7))

	priority, err := DecodeExitPriority(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), priority.ExitableAt)
	assert.Equal(t, "7", priority.ExitID.String())
}

func TestDecodeExitPriorityRejectsBadValues(t *testing.T) {
	_, err := DecodeExitPriority(nil)
	require.Error(t, err)

	_, err = DecodeExitPriority(big.NewInt(-1))
	require.Error(t, err)

	tooWide := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = DecodeExitPriority(tooWide)
	require.Error(t, err)
}
