package eth

import (
	"math/big"
	"sync"

	"github.com/mitchellh/copystructure"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/log"
)

// ExitTracker keeps an in-memory record of the exits driven by this
// client, keyed by exit id.  Transitions that the protocol does not allow
// are logged and dropped rather than surfaced; tracking is advisory and
// must never fail a rootchain submission that already succeeded.
type ExitTracker struct {
	mtx     sync.Mutex
	records map[string]*common.ExitRecord
}

// NewExitTracker creates an empty tracker.
func NewExitTracker() *ExitTracker {
	return &ExitTracker{
		records: make(map[string]*common.ExitRecord),
	}
}

func (t *ExitTracker) record(exitID *big.Int, kind common.ExitKind) *common.ExitRecord {
	key := exitID.String()
	rec, ok := t.records[key]
	if !ok {
		rec = common.NewExitRecord(exitID, kind)
		t.records[key] = rec
	}
	return rec
}

// Started records a newly opened exit and the bond posted for it.
func (t *ExitTracker) Started(exitID *big.Int, kind common.ExitKind, bond *big.Int) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	rec := t.record(exitID, kind)
	if err := rec.Transition(common.ExitStateStarted); err != nil {
		log.Warnw("ignoring exit transition", "exitID", exitID, "err", err)
		return
	}
	rec.AddBond(bond)
}

// Challenged records a challenge against a tracked exit.
func (t *ExitTracker) Challenged(exitID *big.Int) {
	t.transition(exitID, common.ExitStateChallenged, nil)
}

// Piggybacked records a piggyback on a tracked in-flight exit and the bond
// posted for it.
func (t *ExitTracker) Piggybacked(exitID *big.Int, bond *big.Int) {
	t.transition(exitID, common.ExitStatePiggybacked, bond)
}

// Processable records that the exit period of a tracked exit has elapsed.
func (t *ExitTracker) Processable(exitID *big.Int) {
	t.transition(exitID, common.ExitStateProcessable, nil)
}

// Processed records that a tracked exit has been drained from the queue.
func (t *ExitTracker) Processed(exitID *big.Int) {
	t.transition(exitID, common.ExitStateProcessed, nil)
}

// Deleted records the removal of a non-piggybacked in-flight exit.
func (t *ExitTracker) Deleted(exitID *big.Int) {
	t.transition(exitID, common.ExitStateDeleted, nil)
}

func (t *ExitTracker) transition(exitID *big.Int, next common.ExitState, bond *big.Int) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	rec, ok := t.records[exitID.String()]
	if !ok {
		// Exits started elsewhere are not tracked
		return
	}
	if err := rec.Transition(next); err != nil {
		log.Warnw("ignoring exit transition", "exitID", exitID, "next", next, "err", err)
		return
	}
	rec.AddBond(bond)
}

// Get returns a deep copy of the record for an exit id, or nil when the
// exit is not tracked.
func (t *ExitTracker) Get(exitID *big.Int) *common.ExitRecord {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	rec, ok := t.records[exitID.String()]
	if !ok {
		return nil
	}
	copied, err := copystructure.Copy(rec)
	if err != nil {
		log.Errorw("copying exit record", "exitID", exitID, "err", err)
		return nil
	}
	return copied.(*common.ExitRecord)
}

// Snapshot returns a deep copy of every tracked record, so callers can
// inspect state without holding the tracker lock.
func (t *ExitTracker) Snapshot() []*common.ExitRecord {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	records := make([]*common.ExitRecord, 0, len(t.records))
	for _, rec := range t.records {
		copied, err := copystructure.Copy(rec)
		if err != nil {
			log.Errorw("copying exit record", "exitID", rec.ExitID, "err", err)
			continue
		}
		records = append(records, copied.(*common.ExitRecord))
	}
	return records
}
