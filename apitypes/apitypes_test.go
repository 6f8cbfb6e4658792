package apitypes

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigIntStrJSON(t *testing.T) {
	var fromNumber BigIntStr
	require.NoError(t, json.Unmarshal([]byte(`1000000000000000000`), &fromNumber))
	assert.Equal(t, BigIntStr("1000000000000000000"), fromNumber)

	var fromString BigIntStr
	require.NoError(t, json.Unmarshal([]byte(`"1000000000000000000"`), &fromString))
	assert.Equal(t, fromNumber, fromString)

	// values beyond float64 precision survive
	var huge BigIntStr
	require.NoError(t, json.Unmarshal([]byte(`123456789012345678901234567890`), &huge))
	n, err := huge.ToBigInt()
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", n.String())

	out, err := json.Marshal(fromNumber)
	require.NoError(t, err)
	assert.Equal(t, `"1000000000000000000"`, string(out))

	var bad BigIntStr
	require.Error(t, json.Unmarshal([]byte(`"not a number"`), &bad))
}

func TestBigIntStrSQL(t *testing.T) {
	var b BigIntStr
	require.NoError(t, b.Scan("333"))
	assert.Equal(t, BigIntStr("333"), b)

	require.NoError(t, b.Scan([]byte("42")))
	assert.Equal(t, BigIntStr("42"), b)

	require.Error(t, b.Scan(3.14))
	require.Error(t, b.Scan("xyz"))

	v, err := BigIntStr("1001").Value()
	require.NoError(t, err)
	assert.Equal(t, "1001", v)

	_, err = BigIntStr("").Value()
	require.Error(t, err)
}

func TestNewBigIntStr(t *testing.T) {
	assert.Nil(t, NewBigIntStr(nil))
	assert.Equal(t, BigIntStr("7"), *NewBigIntStr(big.NewInt(7)))
}
