package common

import (
	"math/big"
)

const (
	// MaxTxIndex is the highest transaction index a childchain block can hold
	MaxTxIndex = 9999
	// MaxOutputIndex is the highest output index a transaction can hold
	MaxOutputIndex = 3
)

var (
	blockOffset = big.NewInt(1000000000)
	txOffset    = big.NewInt(10000)
)

// UtxoPosition identifies one output on the childchain by the block that
// included its creating transaction, the index of that transaction inside
// the block, and the index of the output inside the transaction.
type UtxoPosition struct {
	BlkNum  *big.Int
	TxIndex uint16
	OIndex  uint8
}

// NewUtxoPosition builds a UtxoPosition from its three coordinates.
func NewUtxoPosition(blkNum uint64, txIndex uint16, oIndex uint8) UtxoPosition {
	return UtxoPosition{
		BlkNum:  new(big.Int).SetUint64(blkNum),
		TxIndex: txIndex,
		OIndex:  oIndex,
	}
}

// Encode packs the position into the single integer identifier used across
// the wire format and the rootchain contracts:
// blknum*1_000_000_000 + txindex*10_000 + oindex.  The result is a big.Int
// since blknum alone can exceed the range of a native integer.
func (p UtxoPosition) Encode() (*big.Int, error) {
	if p.BlkNum == nil || p.BlkNum.Sign() < 0 {
		return nil, NewValidationError("blknum", "must be a non-negative integer")
	}
	if p.TxIndex > MaxTxIndex {
		return nil, NewValidationError("txindex", "must be at most %d", MaxTxIndex)
	}
	if p.OIndex > MaxOutputIndex {
		return nil, NewValidationError("oindex", "must be at most %d", MaxOutputIndex)
	}
	pos := new(big.Int).Mul(p.BlkNum, blockOffset)
	pos.Add(pos, new(big.Int).SetUint64(uint64(p.TxIndex)*10000))
	pos.Add(pos, new(big.Int).SetUint64(uint64(p.OIndex)))
	return pos, nil
}

// DecodeUtxoPosition unpacks a position identifier back into its
// (blknum, txindex, oindex) coordinates.
func DecodeUtxoPosition(pos *big.Int) (UtxoPosition, error) {
	if pos == nil || pos.Sign() < 0 {
		return UtxoPosition{}, NewValidationError("utxoPos", "must be a non-negative integer")
	}
	blkNum, rem := new(big.Int).QuoRem(pos, blockOffset, new(big.Int))
	txIndex, oIndex := new(big.Int).QuoRem(rem, txOffset, new(big.Int))
	if txIndex.Uint64() > MaxTxIndex {
		return UtxoPosition{}, NewValidationError("txindex", "must be at most %d", MaxTxIndex)
	}
	if oIndex.Uint64() > MaxOutputIndex {
		return UtxoPosition{}, NewValidationError("oindex", "must be at most %d", MaxOutputIndex)
	}
	return UtxoPosition{
		BlkNum:  blkNum,
		TxIndex: uint16(txIndex.Uint64()),
		OIndex:  uint8(oIndex.Uint64()),
	}, nil
}
