package eth

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/merkle"
)

func validProof() []byte {
	return make([]byte, merkle.DefaultDepth*32)
}

func TestStartStandardExitParamsValidate(t *testing.T) {
	valid := StartStandardExitParams{
		UtxoPos:        common.NewUtxoPosition(123000, 111, 0),
		TxBytes:        []byte{0xf8, 0x51},
		InclusionProof: validProof(),
	}
	require.NoError(t, valid.Validate())

	noTx := valid
	noTx.TxBytes = nil
	assertValidationError(t, noTx.Validate(), "txBytes")

	shortProof := valid
	shortProof.InclusionProof = make([]byte, 31)
	assertValidationError(t, shortProof.Validate(), "inclusionProof")

	badPos := valid
	badPos.UtxoPos = common.UtxoPosition{BlkNum: big.NewInt(1), TxIndex: 10000}
	assertValidationError(t, badPos.Validate(), "txindex")
}

func TestChallengeStandardExitParamsValidate(t *testing.T) {
	valid := ChallengeStandardExitParams{
		ExitID:      big.NewInt(42),
		ExitingTx:   []byte{0x01},
		ChallengeTx: []byte{0x02},
		Witness:     []byte{0x03},
	}
	require.NoError(t, valid.Validate())

	noID := valid
	noID.ExitID = nil
	assertValidationError(t, noID.Validate(), "exitId")

	// ids fit in 192 bits at most
	hugeID := valid
	hugeID.ExitID = new(big.Int).Lsh(big.NewInt(1), 192)
	assertValidationError(t, hugeID.Validate(), "exitId")

	maxID := valid
	maxID.ExitID = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 192), big.NewInt(1))
	require.NoError(t, maxID.Validate())

	noWitness := valid
	noWitness.Witness = nil
	assertValidationError(t, noWitness.Validate(), "witness")
}

func TestStartInFlightExitParamsValidate(t *testing.T) {
	valid := StartInFlightExitParams{
		InFlightTx:              []byte{0x01},
		InputTxs:                [][]byte{{0x02}, {0x03}},
		InputUtxosPos:           []common.UtxoPosition{common.NewUtxoPosition(1000, 0, 0), common.NewUtxoPosition(2000, 1, 1)},
		InputTxsInclusionProofs: [][]byte{validProof(), validProof()},
		InFlightTxSigs:          [][]byte{{0x04}, {0x05}},
	}
	require.NoError(t, valid.Validate())

	tooMany := valid
	tooMany.InputTxs = [][]byte{{1}, {2}, {3}, {4}, {5}}
	assertValidationError(t, tooMany.Validate(), "inputTxs")

	mismatched := valid
	mismatched.InFlightTxSigs = [][]byte{{0x04}}
	assertValidationError(t, mismatched.Validate(), "inputs")
}

func TestPiggybackParamsValidate(t *testing.T) {
	valid := PiggybackParams{InFlightTx: []byte{0x01}, Index: 3}
	require.NoError(t, valid.Validate())

	badIndex := PiggybackParams{InFlightTx: []byte{0x01}, Index: 4}
	assertValidationError(t, badIndex.Validate(), "index")

	noTx := PiggybackParams{Index: 0}
	assertValidationError(t, noTx.Validate(), "inFlightTx")
}

func TestChallengeInFlightExitNotCanonicalParamsValidate(t *testing.T) {
	valid := ChallengeInFlightExitNotCanonicalParams{
		InputTx:      []byte{0x01},
		InputUtxoPos: common.NewUtxoPosition(1000, 0, 0),
		InFlightTx:   []byte{0x02},
		CompetingTx:  []byte{0x03},
	}
	require.NoError(t, valid.Validate())

	noCompeting := valid
	noCompeting.CompetingTx = nil
	assertValidationError(t, noCompeting.Validate(), "competingTx")
}

func TestRespondToNonCanonicalChallengeParamsValidate(t *testing.T) {
	valid := RespondToNonCanonicalChallengeParams{
		InFlightTx:               []byte{0x01},
		InFlightTxPos:            common.NewUtxoPosition(3000, 5, 1),
		InFlightTxInclusionProof: validProof(),
	}
	require.NoError(t, valid.Validate())

	noProof := valid
	noProof.InFlightTxInclusionProof = nil
	assertValidationError(t, noProof.Validate(), "inFlightTxInclusionProof")
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var validationErr *common.ValidationError
	require.ErrorAs(t, tracerr.Unwrap(err), &validationErr)
	assert.Equal(t, field, validationErr.Field)
}
