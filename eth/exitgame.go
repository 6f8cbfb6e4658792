package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/eth/contracts/paymentexitgame"
	"github.com/omgnetwork/go-plasma/merkle"
	"github.com/omgnetwork/go-plasma/metric"
)

// maxExitIDBits bounds a standard exit id; ids are 160-bit on chain but the
// challenge interface historically accepts up to 192 bits of hex input.
const maxExitIDBits = 192

// StartStandardExitParams are the arguments to StartStandardExit.
type StartStandardExitParams struct {
	// UtxoPos is the position of the exiting output
	UtxoPos common.UtxoPosition
	// TxBytes is the encoded transaction that created the output
	TxBytes []byte
	// InclusionProof proves the transaction's inclusion in its childchain block
	InclusionProof []byte
}

// Validate checks the parameters before any network call.
func (p *StartStandardExitParams) Validate() error {
	if len(p.TxBytes) == 0 {
		return tracerr.Wrap(common.NewValidationError("txBytes", "must not be empty"))
	}
	if len(p.InclusionProof) != merkle.DefaultDepth*32 {
		return tracerr.Wrap(common.NewValidationError("inclusionProof",
			"must hold %d sibling hashes", merkle.DefaultDepth))
	}
	if _, err := p.UtxoPos.Encode(); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// StartStandardExit opens a standard exit for an included output, posting
// the standard exit bond.  The call resolves with the rootchain submission
// receipt; it does not wait for finalization.
func (c *RootchainClient) StartStandardExit(ctx context.Context, params StartStandardExitParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	utxoPos, err := params.UtxoPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			auth.Value = handles.StandardExitBond
			return handles.ExitGame.StartStandardExit(auth, paymentexitgame.StartStandardExitArgs{
				UtxoPos:                utxoPos,
				RlpOutputTx:            params.TxBytes,
				OutputTxInclusionProof: params.InclusionProof,
			})
		})
	if err != nil {
		return nil, submissionError("startStandardExit", err)
	}
	metric.Submissions.WithLabelValues("startStandardExit").Inc()
	if exitID, err := c.GetStandardExitID(ctx, params.UtxoPos, params.TxBytes); err == nil {
		c.tracker.Started(exitID, common.StandardExit, handles.StandardExitBond)
	}
	return tx, nil
}

// GetStandardExitID computes the deterministic id of a standard exit from
// the exiting transaction and its position.  Deposit positions derive their
// id differently, which the exit game handles given the isDeposit flag.
func (c *RootchainClient) GetStandardExitID(ctx context.Context, utxoPos common.UtxoPosition, txBytes []byte) (*big.Int, error) {
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	pos, err := utxoPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	isDeposit := common.IsDepositPosition(utxoPos.BlkNum.Uint64())
	exitID, err := handles.ExitGame.GetStandardExitId(&bind.CallOpts{Context: ctx},
		isDeposit, txBytes, pos)
	return exitID, tracerr.Wrap(err)
}

// GetInFlightExitID computes the deterministic id of an in-flight exit.
func (c *RootchainClient) GetInFlightExitID(ctx context.Context, txBytes []byte) (*big.Int, error) {
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	exitID, err := handles.ExitGame.GetInFlightExitId(&bind.CallOpts{Context: ctx}, txBytes)
	return exitID, tracerr.Wrap(err)
}

// ChallengeStandardExitParams are the arguments to ChallengeStandardExit.
type ChallengeStandardExitParams struct {
	// ExitID is the standard exit id; it can reach 192 bits, beyond safe
	// native-number range, so it travels as a big integer end to end
	ExitID *big.Int
	// ExitingTx is the encoded transaction whose output is exiting
	ExitingTx []byte
	// ChallengeTx is an encoded transaction spending the same output
	ChallengeTx []byte
	// InputIndex is the index of the spent input inside ChallengeTx
	InputIndex uint16
	// Witness is the output owner's signature over the spend
	Witness []byte
	// SenderData commits the challenger address
	SenderData [32]byte
}

// Validate checks the parameters before any network call.
func (p *ChallengeStandardExitParams) Validate() error {
	if p.ExitID == nil || p.ExitID.Sign() < 0 || p.ExitID.BitLen() > maxExitIDBits {
		return tracerr.Wrap(common.NewValidationError("exitId",
			"must be an unsigned integer of at most %d bits", maxExitIDBits))
	}
	if len(p.ExitingTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("exitingTx", "must not be empty"))
	}
	if len(p.ChallengeTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("challengeTx", "must not be empty"))
	}
	if len(p.Witness) == 0 {
		return tracerr.Wrap(common.NewValidationError("witness", "must not be empty"))
	}
	return nil
}

// ChallengeStandardExit invalidates a standard exit by proving its output
// was spent elsewhere.
func (c *RootchainClient) ChallengeStandardExit(ctx context.Context, params ChallengeStandardExitParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return handles.ExitGame.ChallengeStandardExit(auth, paymentexitgame.ChallengeStandardExitArgs{
				ExitId:      params.ExitID,
				ExitingTx:   params.ExitingTx,
				ChallengeTx: params.ChallengeTx,
				InputIndex:  params.InputIndex,
				Witness:     params.Witness,
				SenderData:  params.SenderData,
			})
		})
	if err != nil {
		return nil, submissionError("challengeStandardExit", err)
	}
	metric.Submissions.WithLabelValues("challengeStandardExit").Inc()
	c.tracker.Challenged(params.ExitID)
	return tx, nil
}

// StartInFlightExitParams are the arguments to StartInFlightExit.
type StartInFlightExitParams struct {
	// InFlightTx is the encoded transaction being exited
	InFlightTx []byte
	// InputTxs are the encoded transactions that created each input
	InputTxs [][]byte
	// InputUtxosPos are the positions of each input
	InputUtxosPos []common.UtxoPosition
	// InputTxsInclusionProofs prove each input tx's inclusion
	InputTxsInclusionProofs [][]byte
	// InFlightTxSigs is one signature per input
	InFlightTxSigs [][]byte
}

// Validate checks the parameters before any network call.  The per-input
// sequences must agree in length.
func (p *StartInFlightExitParams) Validate() error {
	if len(p.InFlightTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTx", "must not be empty"))
	}
	n := len(p.InputTxs)
	if n == 0 || n > common.MaxInputs {
		return tracerr.Wrap(common.NewValidationError("inputTxs",
			"must hold between 1 and %d transactions", common.MaxInputs))
	}
	if len(p.InputUtxosPos) != n || len(p.InputTxsInclusionProofs) != n || len(p.InFlightTxSigs) != n {
		return tracerr.Wrap(common.NewValidationError("inputs",
			"positions, proofs and signatures must match the input transaction count"))
	}
	for i := range p.InputUtxosPos {
		if _, err := p.InputUtxosPos[i].Encode(); err != nil {
			return tracerr.Wrap(err)
		}
	}
	return nil
}

// StartInFlightExit opens an exit for a transaction not yet confirmed as
// included, posting the in-flight exit bond.
func (c *RootchainClient) StartInFlightExit(ctx context.Context, params StartInFlightExitParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	positions := make([]*big.Int, len(params.InputUtxosPos))
	for i, pos := range params.InputUtxosPos {
		p, err := pos.Encode()
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		positions[i] = p
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			auth.Value = handles.InFlightExitBond
			return handles.ExitGame.StartInFlightExit(auth, paymentexitgame.StartExitArgs{
				InFlightTx:              params.InFlightTx,
				InputTxs:                params.InputTxs,
				InputUtxosPos:           positions,
				InputTxsInclusionProofs: params.InputTxsInclusionProofs,
				InFlightTxWitnesses:     params.InFlightTxSigs,
			})
		})
	if err != nil {
		return nil, submissionError("startInFlightExit", err)
	}
	metric.Submissions.WithLabelValues("startInFlightExit").Inc()
	if exitID, err := c.GetInFlightExitID(ctx, params.InFlightTx); err == nil {
		c.tracker.Started(exitID, common.InFlightExit, handles.InFlightExitBond)
	}
	return tx, nil
}

// PiggybackParams are the arguments to the piggyback operations.
type PiggybackParams struct {
	// InFlightTx is the encoded in-flight transaction
	InFlightTx []byte
	// Index is the input or output index to piggyback on
	Index uint16
}

// Validate checks the parameters before any network call.
func (p *PiggybackParams) Validate() error {
	if len(p.InFlightTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTx", "must not be empty"))
	}
	if p.Index > common.MaxOutputIndex {
		return tracerr.Wrap(common.NewValidationError("index",
			"must be at most %d", common.MaxOutputIndex))
	}
	return nil
}

// PiggybackInFlightExitOnInput joins an in-flight exit on one of its
// inputs, posting the piggyback bond.
func (c *RootchainClient) PiggybackInFlightExitOnInput(ctx context.Context, params PiggybackParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			auth.Value = handles.PiggybackBond
			return handles.ExitGame.PiggybackInFlightExitOnInput(auth,
				paymentexitgame.PiggybackInFlightExitOnInputArgs{
					InFlightTx: params.InFlightTx,
					InputIndex: params.Index,
				})
		})
	if err != nil {
		return nil, submissionError("piggybackInFlightExitOnInput", err)
	}
	metric.Submissions.WithLabelValues("piggybackInFlightExitOnInput").Inc()
	c.piggybacked(ctx, params.InFlightTx, handles.PiggybackBond)
	return tx, nil
}

// PiggybackInFlightExitOnOutput joins an in-flight exit on one of its
// outputs, posting the piggyback bond.
func (c *RootchainClient) PiggybackInFlightExitOnOutput(ctx context.Context, params PiggybackParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			auth.Value = handles.PiggybackBond
			return handles.ExitGame.PiggybackInFlightExitOnOutput(auth,
				paymentexitgame.PiggybackInFlightExitOnOutputArgs{
					InFlightTx:  params.InFlightTx,
					OutputIndex: params.Index,
				})
		})
	if err != nil {
		return nil, submissionError("piggybackInFlightExitOnOutput", err)
	}
	metric.Submissions.WithLabelValues("piggybackInFlightExitOnOutput").Inc()
	c.piggybacked(ctx, params.InFlightTx, handles.PiggybackBond)
	return tx, nil
}

func (c *RootchainClient) piggybacked(ctx context.Context, inFlightTx []byte, bond *big.Int) {
	if exitID, err := c.GetInFlightExitID(ctx, inFlightTx); err == nil {
		c.tracker.Piggybacked(exitID, bond)
	}
}

// ChallengeInFlightExitNotCanonicalParams are the arguments to the
// canonicity challenge: the challenger proves a competing transaction also
// spent one of the exit's inputs.
type ChallengeInFlightExitNotCanonicalParams struct {
	InputTx                   []byte
	InputUtxoPos              common.UtxoPosition
	InFlightTx                []byte
	InFlightTxInputIndex      uint16
	CompetingTx               []byte
	CompetingTxInputIndex     uint16
	CompetingTxPos            *big.Int
	CompetingTxInclusionProof []byte
	CompetingTxWitness        []byte
}

// Validate checks the parameters before any network call.
func (p *ChallengeInFlightExitNotCanonicalParams) Validate() error {
	if len(p.InputTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inputTx", "must not be empty"))
	}
	if len(p.InFlightTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTx", "must not be empty"))
	}
	if len(p.CompetingTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("competingTx", "must not be empty"))
	}
	if _, err := p.InputUtxoPos.Encode(); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// ChallengeInFlightExitNotCanonical challenges the canonicity of an
// in-flight exit.
func (c *RootchainClient) ChallengeInFlightExitNotCanonical(ctx context.Context, params ChallengeInFlightExitNotCanonicalParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	inputPos, err := params.InputUtxoPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	competingPos := params.CompetingTxPos
	if competingPos == nil {
		competingPos = big.NewInt(0)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return handles.ExitGame.ChallengeInFlightExitNotCanonical(auth,
				paymentexitgame.ChallengeCanonicityArgs{
					InputTx:                   params.InputTx,
					InputUtxoPos:              inputPos,
					InFlightTx:                params.InFlightTx,
					InFlightTxInputIndex:      params.InFlightTxInputIndex,
					CompetingTx:               params.CompetingTx,
					CompetingTxInputIndex:     params.CompetingTxInputIndex,
					CompetingTxPos:            competingPos,
					CompetingTxInclusionProof: params.CompetingTxInclusionProof,
					CompetingTxWitness:        params.CompetingTxWitness,
				})
		})
	if err != nil {
		return nil, submissionError("challengeInFlightExitNotCanonical", err)
	}
	metric.Submissions.WithLabelValues("challengeInFlightExitNotCanonical").Inc()
	if exitID, err := c.GetInFlightExitID(ctx, params.InFlightTx); err == nil {
		c.tracker.Challenged(exitID)
	}
	return tx, nil
}

// RespondToNonCanonicalChallengeParams are the arguments to the response:
// the exit owner proves the in-flight transaction was itself included
// earlier than the competitor.
type RespondToNonCanonicalChallengeParams struct {
	InFlightTx               []byte
	InFlightTxPos            common.UtxoPosition
	InFlightTxInclusionProof []byte
}

// Validate checks the parameters before any network call.
func (p *RespondToNonCanonicalChallengeParams) Validate() error {
	if len(p.InFlightTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTx", "must not be empty"))
	}
	if len(p.InFlightTxInclusionProof) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTxInclusionProof", "must not be empty"))
	}
	if _, err := p.InFlightTxPos.Encode(); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// RespondToNonCanonicalChallenge answers a canonicity challenge with an
// inclusion proof of the in-flight transaction.
func (c *RootchainClient) RespondToNonCanonicalChallenge(ctx context.Context, params RespondToNonCanonicalChallengeParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	pos, err := params.InFlightTxPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return handles.ExitGame.RespondToNonCanonicalChallenge(auth,
				params.InFlightTx, pos, params.InFlightTxInclusionProof)
		})
	if err != nil {
		return nil, submissionError("respondToNonCanonicalChallenge", err)
	}
	metric.Submissions.WithLabelValues("respondToNonCanonicalChallenge").Inc()
	return tx, nil
}

// ChallengeInFlightExitInputSpentParams are the arguments proving one of
// the exit's inputs was already spent elsewhere.
type ChallengeInFlightExitInputSpentParams struct {
	InFlightTx              []byte
	InFlightTxInputIndex    uint16
	ChallengingTx           []byte
	ChallengingTxInputIndex uint16
	ChallengingTxWitness    []byte
	InputTx                 []byte
	InputUtxoPos            common.UtxoPosition
	SenderData              [32]byte
}

// Validate checks the parameters before any network call.
func (p *ChallengeInFlightExitInputSpentParams) Validate() error {
	if len(p.InFlightTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTx", "must not be empty"))
	}
	if len(p.ChallengingTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("challengingTx", "must not be empty"))
	}
	if len(p.InputTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inputTx", "must not be empty"))
	}
	if _, err := p.InputUtxoPos.Encode(); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// ChallengeInFlightExitInputSpent removes an input from the piggybackable
// set by proving it was double spent.
func (c *RootchainClient) ChallengeInFlightExitInputSpent(ctx context.Context, params ChallengeInFlightExitInputSpentParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	inputPos, err := params.InputUtxoPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return handles.ExitGame.ChallengeInFlightExitInputSpent(auth,
				paymentexitgame.ChallengeInputSpentArgs{
					InFlightTx:              params.InFlightTx,
					InFlightTxInputIndex:    params.InFlightTxInputIndex,
					ChallengingTx:           params.ChallengingTx,
					ChallengingTxInputIndex: params.ChallengingTxInputIndex,
					ChallengingTxWitness:    params.ChallengingTxWitness,
					InputTx:                 params.InputTx,
					InputUtxoPos:            inputPos,
					SenderData:              params.SenderData,
				})
		})
	if err != nil {
		return nil, submissionError("challengeInFlightExitInputSpent", err)
	}
	metric.Submissions.WithLabelValues("challengeInFlightExitInputSpent").Inc()
	return tx, nil
}

// ChallengeInFlightExitOutputSpentParams are the arguments proving one of
// the exit's outputs was already spent elsewhere.
type ChallengeInFlightExitOutputSpentParams struct {
	InFlightTx               []byte
	InFlightTxInclusionProof []byte
	OutputUtxoPos            common.UtxoPosition
	ChallengingTx            []byte
	ChallengingTxInputIndex  uint16
	ChallengingTxWitness     []byte
	SenderData               [32]byte
}

// Validate checks the parameters before any network call.
func (p *ChallengeInFlightExitOutputSpentParams) Validate() error {
	if len(p.InFlightTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTx", "must not be empty"))
	}
	if len(p.InFlightTxInclusionProof) == 0 {
		return tracerr.Wrap(common.NewValidationError("inFlightTxInclusionProof", "must not be empty"))
	}
	if len(p.ChallengingTx) == 0 {
		return tracerr.Wrap(common.NewValidationError("challengingTx", "must not be empty"))
	}
	if _, err := p.OutputUtxoPos.Encode(); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// ChallengeInFlightExitOutputSpent removes an output from the
// piggybackable set by proving it was double spent.
func (c *RootchainClient) ChallengeInFlightExitOutputSpent(ctx context.Context, params ChallengeInFlightExitOutputSpentParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	outputPos, err := params.OutputUtxoPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return handles.ExitGame.ChallengeInFlightExitOutputSpent(auth,
				paymentexitgame.ChallengeOutputSpentArgs{
					InFlightTx:               params.InFlightTx,
					InFlightTxInclusionProof: params.InFlightTxInclusionProof,
					OutputUtxoPos:            outputPos,
					ChallengingTx:            params.ChallengingTx,
					ChallengingTxInputIndex:  params.ChallengingTxInputIndex,
					ChallengingTxWitness:     params.ChallengingTxWitness,
					SenderData:               params.SenderData,
				})
		})
	if err != nil {
		return nil, submissionError("challengeInFlightExitOutputSpent", err)
	}
	metric.Submissions.WithLabelValues("challengeInFlightExitOutputSpent").Inc()
	return tx, nil
}

// DeleteNonPiggybackedInFlightExit reclaims the bond of an in-flight exit
// nobody piggybacked within the first phase of its challenge window.
func (c *RootchainClient) DeleteNonPiggybackedInFlightExit(ctx context.Context, exitID *big.Int) (*types.Transaction, error) {
	if exitID == nil || exitID.Sign() < 0 {
		return nil, tracerr.Wrap(common.NewValidationError("exitId", "must be a non-negative integer"))
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return handles.ExitGame.DeleteNonPiggybackedInFlightExit(auth, exitID)
		})
	if err != nil {
		return nil, submissionError("deleteNonPiggybackedInFlightExit", err)
	}
	metric.Submissions.WithLabelValues("deleteNonPiggybackedInFlightExit").Inc()
	c.tracker.Deleted(exitID)
	return tx, nil
}
