package common

import (
	"time"

	ethCommon "github.com/ethereum/go-ethereum/common"
)

// Block is a minimal view of a rootchain block: all the exit scheduling
// logic needs from a block is its number and timestamp.
type Block struct {
	EthBlockNum uint64
	Timestamp   time.Time
	Hash        ethCommon.Hash
}

// ChildBlockInterval is the childchain block-number spacing for mined
// blocks.  Deposit blocks are slotted between mined blocks, so a deposit
// position never lands on a multiple of this interval.
const ChildBlockInterval = 1000

// IsDepositPosition reports whether a childchain block number belongs to a
// deposit-style block.  Deposit positions receive elevated exit priority.
func IsDepositPosition(blkNum uint64) bool {
	return blkNum%ChildBlockInterval != 0
}
