package eth

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omgnetwork/go-plasma/common"
)

func TestTrackerLifecycle(t *testing.T) {
	tracker := NewExitTracker()
	exitID := big.NewInt(42)

	tracker.Started(exitID, common.StandardExit, big.NewInt(14000000000000000))
	rec := tracker.Get(exitID)
	require.NotNil(t, rec)
	assert.Equal(t, common.ExitStateStarted, rec.State)
	assert.Equal(t, "14000000000000000", rec.BondPaid.String())

	tracker.Challenged(exitID)
	assert.Equal(t, common.ExitStateChallenged, tracker.Get(exitID).State)

	tracker.Processable(exitID)
	tracker.Processed(exitID)
	assert.Equal(t, common.ExitStateProcessed, tracker.Get(exitID).State)
}

func TestTrackerPiggybackAccumulatesBond(t *testing.T) {
	tracker := NewExitTracker()
	exitID := big.NewInt(7)

	tracker.Started(exitID, common.InFlightExit, big.NewInt(100))
	tracker.Piggybacked(exitID, big.NewInt(30))
	tracker.Piggybacked(exitID, big.NewInt(30))

	rec := tracker.Get(exitID)
	require.NotNil(t, rec)
	assert.Equal(t, common.ExitStatePiggybacked, rec.State)
	assert.Equal(t, "160", rec.BondPaid.String())
}

func TestTrackerIgnoresBadTransition(t *testing.T) {
	tracker := NewExitTracker()
	exitID := big.NewInt(1)

	tracker.Started(exitID, common.StandardExit, nil)
	// standard exits cannot be deleted; the record must stay untouched
	tracker.Deleted(exitID)
	assert.Equal(t, common.ExitStateStarted, tracker.Get(exitID).State)

	// transitions for unknown exits are dropped
	tracker.Challenged(big.NewInt(999))
	assert.Nil(t, tracker.Get(big.NewInt(999)))
}

func TestTrackerSnapshotIsolation(t *testing.T) {
	tracker := NewExitTracker()
	tracker.Started(big.NewInt(1), common.StandardExit, big.NewInt(10))
	tracker.Started(big.NewInt(2), common.InFlightExit, big.NewInt(20))

	snapshot := tracker.Snapshot()
	require.Len(t, snapshot, 2)

	// mutating the snapshot must not leak back into the tracker
	for _, rec := range snapshot {
		rec.State = common.ExitStateProcessed
		rec.BondPaid.SetInt64(0)
	}
	assert.Equal(t, common.ExitStateStarted, tracker.Get(big.NewInt(1)).State)
	assert.Equal(t, "10", tracker.Get(big.NewInt(1)).BondPaid.String())
}
