package watcher

import (
	"context"
	"encoding/json"

	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/apitypes"
	"github.com/omgnetwork/go-plasma/common"
)

// Balance is one entry of an account balance, one per currency.
type Balance struct {
	Currency FlexAddr           `json:"currency"`
	Amount   apitypes.BigIntStr `json:"amount"`
}

// GetBalance returns the childchain balance of an address, one entry per
// currency the address holds.
func (c *Client) GetBalance(ctx context.Context, address ethCommon.Address) ([]Balance, error) {
	var balances []Balance
	err := c.rpcRequest(ctx, "account.get_balance", rpcBody{
		"address": address.Hex(),
	}, &balances)
	return balances, tracerr.Wrap(err)
}

// UTXO is one unspent output as reported by the watcher.
type UTXO struct {
	BlkNum         uint64             `json:"blknum"`
	TxIndex        uint16             `json:"txindex"`
	OIndex         uint8              `json:"oindex"`
	UtxoPos        apitypes.BigIntStr `json:"utxo_pos"`
	Owner          FlexAddr           `json:"owner"`
	Currency       FlexAddr           `json:"currency"`
	Amount         apitypes.BigIntStr `json:"amount"`
	CreatingTxHash string             `json:"creating_txhash"`
}

// Position returns the packed position of the UTXO.
func (u *UTXO) Position() common.UtxoPosition {
	return common.NewUtxoPosition(u.BlkNum, u.TxIndex, u.OIndex)
}

// GetUtxos returns the spendable outputs owned by an address.
func (c *Client) GetUtxos(ctx context.Context, address ethCommon.Address) ([]UTXO, error) {
	var utxos []UTXO
	err := c.rpcRequest(ctx, "account.get_utxos", rpcBody{
		"address": address.Hex(),
	}, &utxos)
	return utxos, tracerr.Wrap(err)
}

// Status is the watcher's view of childchain health.  Byzantine events are
// kept raw; their shapes vary per event type and callers that care decode
// the ones they handle.
type Status struct {
	LastValidatedChildBlockNumber    uint64            `json:"last_validated_child_block_number"`
	LastValidatedChildBlockTimestamp uint64            `json:"last_validated_child_block_timestamp"`
	LastMinedChildBlockNumber        uint64            `json:"last_mined_child_block_number"`
	LastMinedChildBlockTimestamp     uint64            `json:"last_mined_child_block_timestamp"`
	EthSyncing                       bool              `json:"eth_syncing"`
	ByzantineEvents                  []json.RawMessage `json:"byzantine_events"`
	InFlightExits                    []json.RawMessage `json:"in_flight_exits"`
}

// GetStatus returns the watcher status.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.rpcRequest(ctx, "status.get", rpcBody{}, &status); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &status, nil
}

// TransactionInfo is one childchain transaction as reported by the
// watcher.
type TransactionInfo struct {
	TxHash   string          `json:"txhash"`
	TxBytes  hexutil.Bytes   `json:"txbytes"`
	TxIndex  uint16          `json:"txindex"`
	Block    json.RawMessage `json:"block"`
	Inputs   []UTXO          `json:"inputs"`
	Outputs  []UTXO          `json:"outputs"`
	Metadata string          `json:"metadata"`
}

// GetTransaction returns a transaction by hash.
func (c *Client) GetTransaction(ctx context.Context, txHash string) (*TransactionInfo, error) {
	var tx TransactionInfo
	if err := c.rpcRequest(ctx, "transaction.get", rpcBody{
		"id": txHash,
	}, &tx); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &tx, nil
}

// GetTransactions returns the transactions involving an address, most
// recent first, up to limit entries.
func (c *Client) GetTransactions(ctx context.Context, address ethCommon.Address, limit int) ([]TransactionInfo, error) {
	var txs []TransactionInfo
	err := c.rpcRequest(ctx, "transaction.all", rpcBody{
		"address": address.Hex(),
		"limit":   limit,
	}, &txs)
	return txs, tracerr.Wrap(err)
}

// ExitData is everything needed to start a standard exit for one output.
type ExitData struct {
	UtxoPos apitypes.BigIntStr `json:"utxo_pos"`
	TxBytes hexutil.Bytes      `json:"txbytes"`
	Proof   hexutil.Bytes      `json:"proof"`
}

// GetExitData returns the exit data of an output, identified by its
// packed position.
func (c *Client) GetExitData(ctx context.Context, utxoPos common.UtxoPosition) (*ExitData, error) {
	pos, err := utxoPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	var data ExitData
	if err := c.rpcRequest(ctx, "utxo.get_exit_data", rpcBody{
		"utxo_pos": pos.String(),
	}, &data); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &data, nil
}

// ChallengeData is everything needed to challenge an invalid standard
// exit.
type ChallengeData struct {
	ExitID     apitypes.BigIntStr `json:"exit_id"`
	ExitingTx  hexutil.Bytes      `json:"exiting_tx"`
	TxBytes    hexutil.Bytes      `json:"txbytes"`
	InputIndex uint16             `json:"input_index"`
	Sig        hexutil.Bytes      `json:"sig"`
}

// GetChallengeData returns the challenge data for an exiting output that
// was already spent on the childchain.
func (c *Client) GetChallengeData(ctx context.Context, utxoPos common.UtxoPosition) (*ChallengeData, error) {
	pos, err := utxoPos.Encode()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	var data ChallengeData
	if err := c.rpcRequest(ctx, "utxo.get_challenge_data", rpcBody{
		"utxo_pos": pos.String(),
	}, &data); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &data, nil
}

// InFlightExitData is everything needed to start an in-flight exit.
type InFlightExitData struct {
	InFlightTx              hexutil.Bytes        `json:"in_flight_tx"`
	InputTxs                []hexutil.Bytes      `json:"input_txs"`
	InputUtxosPos           []apitypes.BigIntStr `json:"input_utxos_pos"`
	InputTxsInclusionProofs []hexutil.Bytes      `json:"input_txs_inclusion_proofs"`
	InFlightTxSigs          []hexutil.Bytes      `json:"in_flight_tx_sigs"`
}

// InFlightExitGetData returns the exit data of a transaction to exit
// in flight.
func (c *Client) InFlightExitGetData(ctx context.Context, txBytes []byte) (*InFlightExitData, error) {
	var data InFlightExitData
	if err := c.rpcRequest(ctx, "in_flight_exit.get_data", rpcBody{
		"txbytes": hexutil.Encode(txBytes),
	}, &data); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &data, nil
}

// CompetitorData is everything needed to challenge the canonicity of an
// in-flight exit.
type CompetitorData struct {
	InFlightTxBytes     hexutil.Bytes      `json:"in_flight_txbytes"`
	InFlightInputIndex  uint16             `json:"in_flight_input_index"`
	CompetingTxBytes    hexutil.Bytes      `json:"competing_txbytes"`
	CompetingInputIndex uint16             `json:"competing_input_index"`
	CompetingSig        hexutil.Bytes      `json:"competing_sig"`
	CompetingTxPos      apitypes.BigIntStr `json:"competing_tx_pos"`
	CompetingProof      hexutil.Bytes      `json:"competing_proof"`
	InputTx             hexutil.Bytes      `json:"input_tx"`
	InputUtxoPos        apitypes.BigIntStr `json:"input_utxo_pos"`
}

// InFlightExitGetCompetitor returns a transaction competing with the
// given in-flight transaction, when one exists.
func (c *Client) InFlightExitGetCompetitor(ctx context.Context, txBytes []byte) (*CompetitorData, error) {
	var data CompetitorData
	if err := c.rpcRequest(ctx, "in_flight_exit.get_competitor", rpcBody{
		"txbytes": hexutil.Encode(txBytes),
	}, &data); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &data, nil
}

// CanonicalProof is everything needed to respond to a non-canonical
// challenge.
type CanonicalProof struct {
	InFlightTxBytes hexutil.Bytes      `json:"in_flight_txbytes"`
	InFlightTxPos   apitypes.BigIntStr `json:"in_flight_tx_pos"`
	InFlightProof   hexutil.Bytes      `json:"in_flight_proof"`
}

// InFlightExitProveCanonical returns the inclusion proof showing the
// in-flight transaction is canonical.
func (c *Client) InFlightExitProveCanonical(ctx context.Context, txBytes []byte) (*CanonicalProof, error) {
	var data CanonicalProof
	if err := c.rpcRequest(ctx, "in_flight_exit.prove_canonical", rpcBody{
		"txbytes": hexutil.Encode(txBytes),
	}, &data); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &data, nil
}

// SubmitReceipt is the childchain's acknowledgment of a submitted
// transaction.
type SubmitReceipt struct {
	BlkNum  uint64 `json:"blknum"`
	TxIndex uint16 `json:"txindex"`
	TxHash  string `json:"txhash"`
}

// SubmitTransaction sends a signed, encoded transaction to the childchain
// through the watcher.
func (c *Client) SubmitTransaction(ctx context.Context, txBytes []byte) (*SubmitReceipt, error) {
	var receipt SubmitReceipt
	if err := c.rpcRequest(ctx, "transaction.submit", rpcBody{
		"transaction": hexutil.Encode(txBytes),
	}, &receipt); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &receipt, nil
}
