package common

import (
	"math/big"
	"testing"

	"github.com/hermeznetwork/tracerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitRecordStandardLifecycle(t *testing.T) {
	rec := NewExitRecord(big.NewInt(42), StandardExit)
	assert.Equal(t, ExitStateNone, rec.State)

	require.NoError(t, rec.Transition(ExitStateStarted))
	require.NoError(t, rec.Transition(ExitStateChallenged))
	require.NoError(t, rec.Transition(ExitStateProcessable))
	require.NoError(t, rec.Transition(ExitStateProcessed))
}

func TestExitRecordInFlightLifecycle(t *testing.T) {
	rec := NewExitRecord(big.NewInt(7), InFlightExit)
	require.NoError(t, rec.Transition(ExitStateStarted))
	require.NoError(t, rec.Transition(ExitStatePiggybacked))
	// repeated piggybacks are allowed
	require.NoError(t, rec.Transition(ExitStatePiggybacked))
	require.NoError(t, rec.Transition(ExitStateChallenged))
	require.NoError(t, rec.Transition(ExitStateProcessable))
	require.NoError(t, rec.Transition(ExitStateProcessed))
}

func TestExitRecordDeleteOnlyInFlight(t *testing.T) {
	standard := NewExitRecord(big.NewInt(1), StandardExit)
	require.NoError(t, standard.Transition(ExitStateStarted))
	err := standard.Transition(ExitStateDeleted)
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), ErrBadExitTransition)

	inflight := NewExitRecord(big.NewInt(2), InFlightExit)
	require.NoError(t, inflight.Transition(ExitStateStarted))
	require.NoError(t, inflight.Transition(ExitStateDeleted))
}

func TestExitRecordRejectsSkippedStates(t *testing.T) {
	rec := NewExitRecord(big.NewInt(3), StandardExit)

	err := rec.Transition(ExitStateProcessed)
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), ErrBadExitTransition)

	require.NoError(t, rec.Transition(ExitStateStarted))
	err = rec.Transition(ExitStateStarted)
	require.Error(t, err)
}

func TestExitRecordAddBond(t *testing.T) {
	rec := NewExitRecord(big.NewInt(4), InFlightExit)
	rec.AddBond(big.NewInt(100))
	rec.AddBond(big.NewInt(55))
	rec.AddBond(nil)
	assert.Equal(t, "155", rec.BondPaid.String())
}
