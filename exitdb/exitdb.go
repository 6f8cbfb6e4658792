package exitdb

import (
	"database/sql"
	"errors"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	// driver for the embedded sqlite DB
	_ "github.com/mattn/go-sqlite3"

	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/apitypes"
	"github.com/omgnetwork/go-plasma/common"
)

// ErrExitNotFound is used when the requested exit id is not in the store.
var ErrExitNotFound = errors.New("exit not found")

// schema holds the tracked exits.  Exit ids and bonds exceed native
// integer range, so both are stored as decimal text.
const schema = `
CREATE TABLE IF NOT EXISTS tracked_exit (
	exit_id    TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	state      TEXT NOT NULL,
	bond_paid  TEXT NOT NULL,
	utxo_pos   TEXT,
	tx_hash    TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// ExitDB persists the exits driven by this client, so a CLI run can pick
// up exits started by an earlier one.
type ExitDB struct {
	db *sqlx.DB
}

// exitRow is the sql shape of one tracked exit.
type exitRow struct {
	ExitID    apitypes.BigIntStr `db:"exit_id"`
	Kind      string             `db:"kind"`
	State     string             `db:"state"`
	BondPaid  apitypes.BigIntStr `db:"bond_paid"`
	UtxoPos   sql.NullString     `db:"utxo_pos"`
	TxHash    sql.NullString     `db:"tx_hash"`
	CreatedAt time.Time          `db:"created_at"`
	UpdatedAt time.Time          `db:"updated_at"`
}

// TrackedExit is one persisted exit together with its bookkeeping data.
type TrackedExit struct {
	Record    common.ExitRecord
	UtxoPos   *big.Int
	TxHash    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExitDB opens (and migrates if needed) the exit store at path.  The
// special path ":memory:" creates a throwaway in-memory store.
func NewExitDB(path string) (*ExitDB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &ExitDB{db: db}, nil
}

// Close closes the underlying database.
func (e *ExitDB) Close() error {
	return tracerr.Wrap(e.db.Close())
}

// Save inserts or updates one tracked exit.
func (e *ExitDB) Save(exit *TrackedExit) error {
	now := time.Now().UTC()
	row := exitRow{
		ExitID:    *apitypes.NewBigIntStr(exit.Record.ExitID),
		Kind:      string(exit.Record.Kind),
		State:     string(exit.Record.State),
		BondPaid:  *apitypes.NewBigIntStr(exit.Record.BondPaid),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if exit.UtxoPos != nil {
		row.UtxoPos = sql.NullString{String: exit.UtxoPos.String(), Valid: true}
	}
	if exit.TxHash != "" {
		row.TxHash = sql.NullString{String: exit.TxHash, Valid: true}
	}
	_, err := e.db.NamedExec(`
		INSERT INTO tracked_exit
			(exit_id, kind, state, bond_paid, utxo_pos, tx_hash, created_at, updated_at)
		VALUES
			(:exit_id, :kind, :state, :bond_paid, :utxo_pos, :tx_hash, :created_at, :updated_at)
		ON CONFLICT(exit_id) DO UPDATE SET
			state = :state, bond_paid = :bond_paid, utxo_pos = :utxo_pos,
			tx_hash = :tx_hash, updated_at = :updated_at`, row)
	return tracerr.Wrap(err)
}

// UpdateState moves one tracked exit to a new state, enforcing the same
// transitions as the in-memory record.
func (e *ExitDB) UpdateState(exitID *big.Int, next common.ExitState) error {
	exit, err := e.Get(exitID)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err := exit.Record.Transition(next); err != nil {
		return tracerr.Wrap(err)
	}
	_, err = e.db.Exec(
		`UPDATE tracked_exit SET state = ?, updated_at = ? WHERE exit_id = ?`,
		string(next), time.Now().UTC(), exitID.String())
	return tracerr.Wrap(err)
}

// Get returns one tracked exit by id.
func (e *ExitDB) Get(exitID *big.Int) (*TrackedExit, error) {
	var row exitRow
	err := e.db.Get(&row,
		`SELECT * FROM tracked_exit WHERE exit_id = ?`, exitID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tracerr.Wrap(ErrExitNotFound)
	}
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return rowToExit(&row)
}

// GetAll returns every tracked exit, oldest first.
func (e *ExitDB) GetAll() ([]*TrackedExit, error) {
	var rows []exitRow
	if err := e.db.Select(&rows,
		`SELECT * FROM tracked_exit ORDER BY created_at ASC`); err != nil {
		return nil, tracerr.Wrap(err)
	}
	exits := make([]*TrackedExit, 0, len(rows))
	for i := range rows {
		exit, err := rowToExit(&rows[i])
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		exits = append(exits, exit)
	}
	return exits, nil
}

// GetByState returns the tracked exits in the given state, oldest first.
func (e *ExitDB) GetByState(state common.ExitState) ([]*TrackedExit, error) {
	var rows []exitRow
	if err := e.db.Select(&rows,
		`SELECT * FROM tracked_exit WHERE state = ? ORDER BY created_at ASC`,
		string(state)); err != nil {
		return nil, tracerr.Wrap(err)
	}
	exits := make([]*TrackedExit, 0, len(rows))
	for i := range rows {
		exit, err := rowToExit(&rows[i])
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		exits = append(exits, exit)
	}
	return exits, nil
}

func rowToExit(row *exitRow) (*TrackedExit, error) {
	exitID, err := row.ExitID.ToBigInt()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	bond, err := row.BondPaid.ToBigInt()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	exit := &TrackedExit{
		Record: common.ExitRecord{
			ExitID:   exitID,
			Kind:     common.ExitKind(row.Kind),
			BondPaid: bond,
			State:    common.ExitState(row.State),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.UtxoPos.Valid {
		pos, ok := new(big.Int).SetString(row.UtxoPos.String, 10)
		if !ok {
			return nil, tracerr.Wrap(errors.New("invalid utxo position in store"))
		}
		exit.UtxoPos = pos
	}
	if row.TxHash.Valid {
		exit.TxHash = row.TxHash.String
	}
	return exit, nil
}
