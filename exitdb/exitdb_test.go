package exitdb

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/common"
)

func newTestDB(t *testing.T) *ExitDB {
	db, err := NewExitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func newStartedExit(exitID int64, kind common.ExitKind, bond int64) *TrackedExit {
	record := common.NewExitRecord(big.NewInt(exitID), kind)
	if err := record.Transition(common.ExitStateStarted); err != nil {
		panic(err)
	}
	record.AddBond(big.NewInt(bond))
	return &TrackedExit{
		Record:  *record,
		UtxoPos: big.NewInt(123000001110000),
		TxHash:  "0xabcd",
	}
}

func TestSaveAndGet(t *testing.T) {
	db := newTestDB(t)

	exit := newStartedExit(42, common.StandardExit, 14000000000000000)
	require.NoError(t, db.Save(exit))

	got, err := db.Get(big.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, "42", got.Record.ExitID.String())
	assert.Equal(t, common.StandardExit, got.Record.Kind)
	assert.Equal(t, common.ExitStateStarted, got.Record.State)
	assert.Equal(t, "14000000000000000", got.Record.BondPaid.String())
	assert.Equal(t, "123000001110000", got.UtxoPos.String())
	assert.Equal(t, "0xabcd", got.TxHash)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Get(big.NewInt(999))
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), ErrExitNotFound)
}

func TestUpdateState(t *testing.T) {
	db := newTestDB(t)

	exit := newStartedExit(7, common.InFlightExit, 0)
	require.NoError(t, db.Save(exit))

	require.NoError(t, db.UpdateState(big.NewInt(7), common.ExitStatePiggybacked))
	got, err := db.Get(big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, common.ExitStatePiggybacked, got.Record.State)

	// processable requires the exit period to elapse first; started exits
	// cannot jump straight to processed
	err = db.UpdateState(big.NewInt(7), common.ExitStateProcessed)
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), common.ErrBadExitTransition)
}

func TestGetByState(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Save(newStartedExit(1, common.StandardExit, 0)))
	require.NoError(t, db.Save(newStartedExit(2, common.StandardExit, 0)))
	require.NoError(t, db.Save(newStartedExit(3, common.InFlightExit, 0)))
	require.NoError(t, db.UpdateState(big.NewInt(2), common.ExitStateChallenged))

	started, err := db.GetByState(common.ExitStateStarted)
	require.NoError(t, err)
	assert.Len(t, started, 2)

	challenged, err := db.GetByState(common.ExitStateChallenged)
	require.NoError(t, err)
	require.Len(t, challenged, 1)
	assert.Equal(t, "2", challenged[0].Record.ExitID.String())

	all, err := db.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
