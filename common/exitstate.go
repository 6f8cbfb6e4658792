package common

import (
	"fmt"
	"math/big"

	"github.com/hermeznetwork/tracerr"
)

// ExitKind distinguishes the two exit flavours of the exit game.
type ExitKind string

const (
	// StandardExit exits an output already included on the childchain
	StandardExit ExitKind = "standard"
	// InFlightExit exits a transaction not yet confirmed as included
	InFlightExit ExitKind = "inflight"
)

// ExitState is the lifecycle state of one exit id.
type ExitState string

const (
	// ExitStateNone means no exit has been started for the id
	ExitStateNone ExitState = "none"
	// ExitStateStarted means the exit bond has been posted
	ExitStateStarted ExitState = "started"
	// ExitStateChallenged means a challenge has been recorded against the exit
	ExitStateChallenged ExitState = "challenged"
	// ExitStatePiggybacked means at least one party joined an in-flight exit
	ExitStatePiggybacked ExitState = "piggybacked"
	// ExitStateProcessable means the exit period has elapsed
	ExitStateProcessable ExitState = "processable"
	// ExitStateProcessed means the exit has been drained from the queue
	ExitStateProcessed ExitState = "processed"
	// ExitStateDeleted means a non-piggybacked in-flight exit was removed
	ExitStateDeleted ExitState = "deleted"
)

// ErrBadExitTransition is used when an exit state transition is not allowed
// by the protocol.
var ErrBadExitTransition = fmt.Errorf("exit state transition not allowed")

// exitTransitions lists the allowed next states per state.
var exitTransitions = map[ExitState][]ExitState{
	ExitStateNone:        {ExitStateStarted},
	ExitStateStarted:     {ExitStateChallenged, ExitStatePiggybacked, ExitStateProcessable, ExitStateDeleted},
	ExitStateChallenged:  {ExitStatePiggybacked, ExitStateProcessable},
	ExitStatePiggybacked: {ExitStateChallenged, ExitStatePiggybacked, ExitStateProcessable},
	ExitStateProcessable: {ExitStateProcessed},
}

// CanTransition reports whether moving from s to next is allowed.
func (s ExitState) CanTransition(next ExitState) bool {
	for _, allowed := range exitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ExitRecord tracks one exit driven by this client.
type ExitRecord struct {
	ExitID   *big.Int
	Kind     ExitKind
	BondPaid *big.Int
	State    ExitState
}

// NewExitRecord creates a record in the initial state.
func NewExitRecord(exitID *big.Int, kind ExitKind) *ExitRecord {
	return &ExitRecord{
		ExitID:   new(big.Int).Set(exitID),
		Kind:     kind,
		BondPaid: big.NewInt(0),
		State:    ExitStateNone,
	}
}

// Transition moves the record to the next state, failing when the protocol
// does not allow the step.  Deletion is only defined for in-flight exits.
func (r *ExitRecord) Transition(next ExitState) error {
	if next == ExitStateDeleted && r.Kind != InFlightExit {
		return tracerr.Wrap(fmt.Errorf("%w: only in-flight exits can be deleted",
			ErrBadExitTransition))
	}
	if !r.State.CanTransition(next) {
		return tracerr.Wrap(fmt.Errorf("%w: %s -> %s", ErrBadExitTransition, r.State, next))
	}
	r.State = next
	return nil
}

// AddBond accumulates a posted bond amount on the record.
func (r *ExitRecord) AddBond(amount *big.Int) {
	if amount == nil {
		return
	}
	r.BondPaid = new(big.Int).Add(r.BondPaid, amount)
}
