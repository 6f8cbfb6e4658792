package common

import (
	"math/big"
)

// Bit layout of a rootchain priority-queue entry, seen as a 256-bit
// big-endian word: bits [0,42) hold the exitable-at timestamp, bits [42,96)
// are reserved padding and bits [96,256) hold the 160-bit exit id.  This
// layout is shared with the rootchain contracts and must not be altered.
const (
	exitableAtBits = 42
	exitIDBits     = 160
)

var exitIDMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), exitIDBits), big.NewInt(1))

// ExitPriority is one decoded entry of a rootchain exit queue.
type ExitPriority struct {
	// Priority is the raw 256-bit queue entry
	Priority *big.Int
	// ExitableAt is the unix timestamp after which the exit can be processed
	ExitableAt uint64
	// ExitID identifies the exit inside the exit game
	ExitID *big.Int
}

// DecodeExitPriority unpacks a raw priority-queue entry.
func DecodeExitPriority(priority *big.Int) (ExitPriority, error) {
	if priority == nil || priority.Sign() < 0 || priority.BitLen() > 256 {
		return ExitPriority{}, NewValidationError("priority", "must be a 256-bit unsigned integer")
	}
	exitableAt := new(big.Int).Rsh(priority, 256-exitableAtBits)
	exitID := new(big.Int).And(priority, exitIDMask)
	return ExitPriority{
		Priority:   new(big.Int).Set(priority),
		ExitableAt: exitableAt.Uint64(),
		ExitID:     exitID,
	}, nil
}
