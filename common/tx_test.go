package common

import (
	"encoding/hex"
	"math/big"
	"testing"

	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/hermeznetwork/tracerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOwner = ethCommon.HexToAddress("0x854951e37c68a99a52d9e3ae15e0cb62184a613e")

// depositFixture is the canonical encoding of a deposit of 333 wei of the
// native asset for testOwner.  Regression fixture: the childchain and the
// rootchain contracts consume this byte string bit-for-bit.
const depositFixture = "f85501c0f0ef01ed94854951e37c68a99a52d9e3ae15e0cb62184a613e" +
	"94000000000000000000000000000000000000000082014d80" +
	"a00000000000000000000000000000000000000000000000000000000000000000"

func TestEncodeDepositFixture(t *testing.T) {
	b, err := EncodeDeposit(testOwner, big.NewInt(333), EthCurrency)
	require.NoError(t, err)
	assert.Equal(t, depositFixture, hex.EncodeToString(b))
}

func TestEncodeDepositRejectsZeroAmount(t *testing.T) {
	_, err := EncodeDeposit(testOwner, big.NewInt(0), EthCurrency)
	require.Error(t, err)
	_, err = EncodeDeposit(testOwner, nil, EthCurrency)
	require.Error(t, err)
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := &Transaction{
		TxType: TxTypePayment,
		Inputs: []Input{
			{BlkNum: big.NewInt(1000), TxIndex: 0, OIndex: 0},
			{BlkNum: big.NewInt(2000), TxIndex: 1, OIndex: 1},
		},
		Outputs: []Output{
			{OutputType: OutputTypePayment, OutputGuard: testOwner, Currency: EthCurrency, Amount: big.NewInt(123)},
			{OutputType: OutputTypePayment, OutputGuard: testOwner, Currency: EthCurrency,
				Amount: new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)},
		},
	}
	b, err := tx.Encode()
	require.NoError(t, err)

	decoded, err := DecodeTransaction(b)
	require.NoError(t, err)
	assert.True(t, tx.Equal(decoded))
	assert.Equal(t, "1000000000000000000", decoded.Outputs[1].AmountString())
}

func TestTransactionRoundTripEmpty(t *testing.T) {
	tx := &Transaction{TxType: TxTypePayment}
	b, err := tx.Encode()
	require.NoError(t, err)

	decoded, err := DecodeTransaction(b)
	require.NoError(t, err)
	assert.True(t, tx.Equal(decoded))
	assert.Equal(t, [32]byte{}, decoded.Metadata)
}

func TestTransactionMetadataRoundTrip(t *testing.T) {
	var metadata [32]byte
	copy(metadata[:], []byte("some data to record on the chain"))
	tx := &Transaction{
		TxType:   TxTypePayment,
		Inputs:   []Input{{BlkNum: big.NewInt(123000), TxIndex: 111, OIndex: 0}},
		Outputs:  []Output{{OutputType: OutputTypePayment, OutputGuard: testOwner, Currency: EthCurrency, Amount: big.NewInt(1)}},
		Metadata: metadata,
	}
	b, err := tx.Encode()
	require.NoError(t, err)
	decoded, err := DecodeTransaction(b)
	require.NoError(t, err)
	assert.Equal(t, metadata, decoded.Metadata)
}

func TestAmountRepresentationsEncodeIdentically(t *testing.T) {
	fromUint, err := NewAmount(uint64(1000000000000000000))
	require.NoError(t, err)
	fromString, err := NewAmount("1000000000000000000")
	require.NoError(t, err)
	fromBig, err := NewAmount(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	require.NoError(t, err)

	var encodings [][]byte
	for _, amount := range []*big.Int{fromUint, fromString, fromBig} {
		tx := &Transaction{
			TxType:  TxTypePayment,
			Outputs: []Output{{OutputType: OutputTypePayment, OutputGuard: testOwner, Currency: EthCurrency, Amount: amount}},
		}
		b, err := tx.Encode()
		require.NoError(t, err)
		encodings = append(encodings, b)
	}
	assert.Equal(t, encodings[0], encodings[1])
	assert.Equal(t, encodings[0], encodings[2])
}

func TestNewAmountRejectsBadValues(t *testing.T) {
	for name, v := range map[string]interface{}{
		"negative int":    -1,
		"negative string": "-42",
		"non-decimal":     "0x2a",
		"nil big.Int":     (*big.Int)(nil),
		"float":           1.5,
	} {
		_, err := NewAmount(v)
		assert.Error(t, err, name)
	}
}

func TestValidateBounds(t *testing.T) {
	in := Input{BlkNum: big.NewInt(1), TxIndex: 0, OIndex: 0}
	out := Output{OutputType: OutputTypePayment, OutputGuard: testOwner, Currency: EthCurrency, Amount: big.NewInt(1)}

	tooManyIn := &Transaction{TxType: TxTypePayment, Inputs: []Input{in, in, in, in, in}}
	err := tooManyIn.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), ErrTooManyInputs)

	tooManyOut := &Transaction{TxType: TxTypePayment, Outputs: []Output{out, out, out, out, out}}
	err = tooManyOut.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), ErrTooManyOutputs)

	badIndex := &Transaction{TxType: TxTypePayment,
		Inputs: []Input{{BlkNum: big.NewInt(1), TxIndex: 10000}}}
	require.Error(t, badIndex.Validate())
}

func TestDecodeMalformedBytes(t *testing.T) {
	cases := map[string]string{
		"truncated":       "f85501c0f0",
		"not a list":      "82014d",
		"bad length byte": "f9",
		"empty":           "",
	}
	for name, h := range cases {
		b, err := hex.DecodeString(h)
		require.NoError(t, err, name)
		_, err = DecodeTransaction(b)
		require.Error(t, err, name)
		var codecErr *CodecError
		assert.ErrorAs(t, tracerr.Unwrap(err), &codecErr, name)
	}
}

func TestDecodeTooManyInputs(t *testing.T) {
	// well-formed at the wire level, but carries five inputs
	b, err := hex.DecodeString("f83e01d9843b9aca00843b9aca00843b9aca00843b9aca00843b9aca00c080" +
		"a00000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	_, err = DecodeTransaction(b)
	require.Error(t, err)
	var codecErr *CodecError
	require.ErrorAs(t, tracerr.Unwrap(err), &codecErr)
	assert.ErrorIs(t, codecErr, ErrTooManyInputs)
}

func TestDecodeOutOfRangeInputPosition(t *testing.T) {
	// well-formed at the wire level, but the single input packs
	// txindex 70000 and oindex 9999, both past their protocol bounds
	b, err := hex.DecodeString("eb01c6850153bf400fc080" +
		"a00000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	_, err = DecodeTransaction(b)
	require.Error(t, err)
	var codecErr *CodecError
	require.ErrorAs(t, tracerr.Unwrap(err), &codecErr)
}
