package common

import (
	"bytes"
	"fmt"
	"math/big"

	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/hermeznetwork/tracerr"
)

const (
	// TxTypePayment is the transaction type of a plain payment transaction
	TxTypePayment = 1
	// OutputTypePayment is the output type of a plain payment output
	OutputTypePayment = 1
	// MaxInputs is the protocol bound on inputs per transaction
	MaxInputs = 4
	// MaxOutputs is the protocol bound on outputs per transaction
	MaxOutputs = 4
)

// EthCurrency is the currency identifier of the chain's native asset.
var EthCurrency = ethCommon.Address{}

// Input references an existing unspent output by its position coordinates.
type Input struct {
	BlkNum  *big.Int
	TxIndex uint16
	OIndex  uint8
}

// Position returns the input as a UtxoPosition.
func (in Input) Position() UtxoPosition {
	return UtxoPosition{BlkNum: in.BlkNum, TxIndex: in.TxIndex, OIndex: in.OIndex}
}

// Output is a fungible-token output: an owner guard, a currency and an
// arbitrary-precision amount.
type Output struct {
	OutputType  uint64
	OutputGuard ethCommon.Address
	Currency    ethCommon.Address
	Amount      *big.Int
}

// AmountString renders the output amount as a decimal string, which is the
// lossless representation callers should persist or display.
func (o Output) AmountString() string {
	if o.Amount == nil {
		return "0"
	}
	return o.Amount.String()
}

// Transaction is the childchain transaction body.  Metadata defaults to the
// all-zero word and TxData to 0; both are always present on the wire.
type Transaction struct {
	TxType   uint64
	Inputs   []Input
	Outputs  []Output
	TxData   uint64
	Metadata [32]byte
}

// NewAmount converts any of the accepted amount representations (uint64,
// decimal string, *big.Int) into the canonical *big.Int form.  All three
// representations of the same value encode to identical bytes.
func NewAmount(v interface{}) (*big.Int, error) {
	switch a := v.(type) {
	case uint64:
		return new(big.Int).SetUint64(a), nil
	case int:
		if a < 0 {
			return nil, tracerr.Wrap(NewValidationError("amount", "must not be negative"))
		}
		return big.NewInt(int64(a)), nil
	case string:
		n, ok := new(big.Int).SetString(a, 10)
		if !ok || n.Sign() < 0 {
			return nil, tracerr.Wrap(NewValidationError("amount",
				"not a non-negative decimal string: %q", a))
		}
		return n, nil
	case *big.Int:
		if a == nil || a.Sign() < 0 {
			return nil, tracerr.Wrap(NewValidationError("amount", "must not be negative"))
		}
		return new(big.Int).Set(a), nil
	default:
		return nil, tracerr.Wrap(NewValidationError("amount", "unsupported type %T", v))
	}
}

// Wire types.  The canonical encoding is RLP of
// [txType, [utxoPos, ...], [[outputType, [guard, currency, amount]], ...],
// txData, metadata], with each input packed into its position integer and
// addresses emitted as fixed 20-byte strings.
type wireOutputData struct {
	OutputGuard ethCommon.Address
	Currency    ethCommon.Address
	Amount      *big.Int
}

type wireOutput struct {
	OutputType uint64
	Data       wireOutputData
}

type wireTx struct {
	TxType   uint64
	Inputs   []*big.Int
	Outputs  []wireOutput
	TxData   uint64
	Metadata [32]byte
}

// Validate checks the protocol bounds on the transaction body.
func (tx *Transaction) Validate() error {
	if len(tx.Inputs) > MaxInputs {
		return tracerr.Wrap(ErrTooManyInputs)
	}
	if len(tx.Outputs) > MaxOutputs {
		return tracerr.Wrap(ErrTooManyOutputs)
	}
	for i, in := range tx.Inputs {
		if in.BlkNum == nil || in.BlkNum.Sign() < 0 {
			return tracerr.Wrap(NewValidationError("inputs",
				"input %d: blknum must be a non-negative integer", i))
		}
		if in.TxIndex > MaxTxIndex {
			return tracerr.Wrap(NewValidationError("inputs",
				"input %d: txindex must be at most %d", i, MaxTxIndex))
		}
		if in.OIndex > MaxOutputIndex {
			return tracerr.Wrap(NewValidationError("inputs",
				"input %d: oindex must be at most %d", i, MaxOutputIndex))
		}
	}
	for i, out := range tx.Outputs {
		if out.Amount == nil || out.Amount.Sign() < 0 {
			return tracerr.Wrap(NewValidationError("outputs",
				"output %d: amount must be a non-negative integer", i))
		}
	}
	return nil
}

// Encode serializes the transaction body into its canonical byte form.  Any
// two correct implementations must agree bit-for-bit on this encoding, as it
// is consumed identically by the childchain and the rootchain contracts.
func (tx *Transaction) Encode() ([]byte, error) {
	if err := tx.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	w := wireTx{
		TxType:   tx.TxType,
		Inputs:   make([]*big.Int, len(tx.Inputs)),
		Outputs:  make([]wireOutput, len(tx.Outputs)),
		TxData:   tx.TxData,
		Metadata: tx.Metadata,
	}
	for i, in := range tx.Inputs {
		pos, err := in.Position().Encode()
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		w.Inputs[i] = pos
	}
	for i, out := range tx.Outputs {
		w.Outputs[i] = wireOutput{
			OutputType: out.OutputType,
			Data: wireOutputData{
				OutputGuard: out.OutputGuard,
				Currency:    out.Currency,
				Amount:      out.Amount,
			},
		}
	}
	b, err := rlp.EncodeToBytes(&w)
	if err != nil {
		return nil, tracerr.Wrap(&CodecError{Op: "encode transaction", Err: err})
	}
	return b, nil
}

// DecodeTransaction is the exact inverse of Encode.  Malformed length
// prefixes, wrong field counts and out-of-bound arities all surface as a
// CodecError.
func DecodeTransaction(b []byte) (*Transaction, error) {
	var w wireTx
	if err := rlp.DecodeBytes(b, &w); err != nil {
		return nil, tracerr.Wrap(&CodecError{Op: "decode transaction", Err: err})
	}
	if len(w.Inputs) > MaxInputs {
		return nil, tracerr.Wrap(&CodecError{Op: "decode transaction", Err: ErrTooManyInputs})
	}
	if len(w.Outputs) > MaxOutputs {
		return nil, tracerr.Wrap(&CodecError{Op: "decode transaction", Err: ErrTooManyOutputs})
	}
	tx := &Transaction{
		TxType:   w.TxType,
		Inputs:   make([]Input, len(w.Inputs)),
		Outputs:  make([]Output, len(w.Outputs)),
		TxData:   w.TxData,
		Metadata: w.Metadata,
	}
	for i, posInt := range w.Inputs {
		pos, err := DecodeUtxoPosition(posInt)
		if err != nil {
			return nil, tracerr.Wrap(&CodecError{Op: "decode transaction",
				Err: fmt.Errorf("input %d: %w", i, err)})
		}
		tx.Inputs[i] = Input{BlkNum: pos.BlkNum, TxIndex: pos.TxIndex, OIndex: pos.OIndex}
	}
	for i, out := range w.Outputs {
		tx.Outputs[i] = Output{
			OutputType:  out.OutputType,
			OutputGuard: out.Data.OutputGuard,
			Currency:    out.Data.Currency,
			Amount:      out.Data.Amount,
		}
	}
	return tx, nil
}

// EncodeDeposit builds and encodes the input-less transaction that a vault
// deposit submits onto the childchain: a single payment output owned by
// `owner` in the given currency.
func EncodeDeposit(owner ethCommon.Address, amount *big.Int, currency ethCommon.Address) ([]byte, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, tracerr.Wrap(NewValidationError("amount", "must be a positive integer"))
	}
	tx := &Transaction{
		TxType: TxTypePayment,
		Outputs: []Output{{
			OutputType:  OutputTypePayment,
			OutputGuard: owner,
			Currency:    currency,
			Amount:      amount,
		}},
	}
	return tx.Encode()
}

// Equal compares two transaction bodies by value; amounts compare by
// numeric value rather than representation.
func (tx *Transaction) Equal(other *Transaction) bool {
	if tx.TxType != other.TxType || tx.TxData != other.TxData ||
		tx.Metadata != other.Metadata ||
		len(tx.Inputs) != len(other.Inputs) || len(tx.Outputs) != len(other.Outputs) {
		return false
	}
	for i := range tx.Inputs {
		a, b := tx.Inputs[i], other.Inputs[i]
		if a.BlkNum.Cmp(b.BlkNum) != 0 || a.TxIndex != b.TxIndex || a.OIndex != b.OIndex {
			return false
		}
	}
	for i := range tx.Outputs {
		a, b := tx.Outputs[i], other.Outputs[i]
		if a.OutputType != b.OutputType ||
			!bytes.Equal(a.OutputGuard[:], b.OutputGuard[:]) ||
			!bytes.Equal(a.Currency[:], b.Currency[:]) ||
			a.Amount.Cmp(b.Amount) != 0 {
			return false
		}
	}
	return true
}
