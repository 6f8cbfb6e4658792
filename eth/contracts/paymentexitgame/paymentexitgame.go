// Package paymentexitgame binds the PaymentExitGame contract: the rootchain
// game that arbitrates standard and in-flight exits of payment transactions.
package paymentexitgame

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PaymentexitgameABI is the input ABI used to generate the binding from.
const PaymentexitgameABI = `[{"inputs":[{"internalType":"struct PaymentInFlightExitRouterArgs.ChallengeInputSpentArgs","name":"args","type":"tuple","components":[{"internalType":"bytes","name":"inFlightTx","type":"bytes"},{"internalType":"uint16","name":"inFlightTxInputIndex","type":"uint16"},{"internalType":"bytes","name":"challengingTx","type":"bytes"},{"internalType":"uint16","name":"challengingTxInputIndex","type":"uint16"},{"internalType":"bytes","name":"challengingTxWitness","type":"bytes"},{"internalType":"bytes","name":"inputTx","type":"bytes"},{"internalType":"uint256","name":"inputUtxoPos","type":"uint256"},{"internalType":"bytes32","name":"senderData","type":"bytes32"}]}],"name":"challengeInFlightExitInputSpent","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"struct PaymentInFlightExitRouterArgs.ChallengeCanonicityArgs","name":"args","type":"tuple","components":[{"internalType":"bytes","name":"inputTx","type":"bytes"},{"internalType":"uint256","name":"inputUtxoPos","type":"uint256"},{"internalType":"bytes","name":"inFlightTx","type":"bytes"},{"internalType":"uint16","name":"inFlightTxInputIndex","type":"uint16"},{"internalType":"bytes","name":"competingTx","type":"bytes"},{"internalType":"uint16","name":"competingTxInputIndex","type":"uint16"},{"internalType":"uint256","name":"competingTxPos","type":"uint256"},{"internalType":"bytes","name":"competingTxInclusionProof","type":"bytes"},{"internalType":"bytes","name":"competingTxWitness","type":"bytes"}]}],"name":"challengeInFlightExitNotCanonical","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"struct PaymentInFlightExitRouterArgs.ChallengeOutputSpent","name":"args","type":"tuple","components":[{"internalType":"bytes","name":"inFlightTx","type":"bytes"},{"internalType":"bytes","name":"inFlightTxInclusionProof","type":"bytes"},{"internalType":"uint256","name":"outputUtxoPos","type":"uint256"},{"internalType":"bytes","name":"challengingTx","type":"bytes"},{"internalType":"uint16","name":"challengingTxInputIndex","type":"uint16"},{"internalType":"bytes","name":"challengingTxWitness","type":"bytes"},{"internalType":"bytes32","name":"senderData","type":"bytes32"}]}],"name":"challengeInFlightExitOutputSpent","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"struct PaymentStandardExitRouterArgs.ChallengeStandardExitArgs","name":"args","type":"tuple","components":[{"internalType":"uint160","name":"exitId","type":"uint160"},{"internalType":"bytes","name":"exitingTx","type":"bytes"},{"internalType":"bytes","name":"challengeTx","type":"bytes"},{"internalType":"uint16","name":"inputIndex","type":"uint16"},{"internalType":"bytes","name":"witness","type":"bytes"},{"internalType":"bytes32","name":"senderData","type":"bytes32"}]}],"name":"challengeStandardExit","outputs":[],"stateMutability":"payable","type":"function"},{"inputs":[{"internalType":"uint160","name":"exitId","type":"uint160"}],"name":"deleteNonPiggybackedInFlightExit","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"bytes","name":"txBytes","type":"bytes"}],"name":"getInFlightExitId","outputs":[{"internalType":"uint160","name":"","type":"uint160"}],"stateMutability":"pure","type":"function"},{"inputs":[{"internalType":"bool","name":"isDeposit","type":"bool"},{"internalType":"bytes","name":"txBytes","type":"bytes"},{"internalType":"uint256","name":"utxoPos","type":"uint256"}],"name":"getStandardExitId","outputs":[{"internalType":"uint160","name":"","type":"uint160"}],"stateMutability":"pure","type":"function"},{"inputs":[],"name":"piggybackBondSize","outputs":[{"internalType":"uint128","name":"","type":"uint128"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"struct PaymentInFlightExitRouterArgs.PiggybackInFlightExitOnInputArgs","name":"args","type":"tuple","components":[{"internalType":"bytes","name":"inFlightTx","type":"bytes"},{"internalType":"uint16","name":"inputIndex","type":"uint16"}]}],"name":"piggybackInFlightExitOnInput","outputs":[],"stateMutability":"payable","type":"function"},{"inputs":[{"internalType":"struct PaymentInFlightExitRouterArgs.PiggybackInFlightExitOnOutputArgs","name":"args","type":"tuple","components":[{"internalType":"bytes","name":"inFlightTx","type":"bytes"},{"internalType":"uint16","name":"outputIndex","type":"uint16"}]}],"name":"piggybackInFlightExitOnOutput","outputs":[],"stateMutability":"payable","type":"function"},{"inputs":[{"internalType":"uint160","name":"exitId","type":"uint160"},{"internalType":"uint256","name":"vaultId","type":"uint256"},{"internalType":"address","name":"token","type":"address"},{"internalType":"address","name":"processExitInitiator","type":"address"}],"name":"processExit","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"bytes","name":"inFlightTx","type":"bytes"},{"internalType":"uint256","name":"inFlightTxPos","type":"uint256"},{"internalType":"bytes","name":"inFlightTxInclusionProof","type":"bytes"}],"name":"respondToNonCanonicalChallenge","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[],"name":"startIFEBondSize","outputs":[{"internalType":"uint128","name":"","type":"uint128"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"struct PaymentInFlightExitRouterArgs.StartExitArgs","name":"args","type":"tuple","components":[{"internalType":"bytes","name":"inFlightTx","type":"bytes"},{"internalType":"bytes[]","name":"inputTxs","type":"bytes[]"},{"internalType":"uint256[]","name":"inputUtxosPos","type":"uint256[]"},{"internalType":"bytes[]","name":"inputTxsInclusionProofs","type":"bytes[]"},{"internalType":"bytes[]","name":"inFlightTxWitnesses","type":"bytes[]"}]}],"name":"startInFlightExit","outputs":[],"stateMutability":"payable","type":"function"},{"inputs":[{"internalType":"struct PaymentStandardExitRouterArgs.StartStandardExitArgs","name":"args","type":"tuple","components":[{"internalType":"uint256","name":"utxoPos","type":"uint256"},{"internalType":"bytes","name":"rlpOutputTx","type":"bytes"},{"internalType":"bytes","name":"outputTxInclusionProof","type":"bytes"}]}],"name":"startStandardExit","outputs":[],"stateMutability":"payable","type":"function"},{"inputs":[],"name":"startStandardExitBondSize","outputs":[{"internalType":"uint128","name":"","type":"uint128"}],"stateMutability":"view","type":"function"}]`

// StartStandardExitArgs mirrors PaymentStandardExitRouterArgs.StartStandardExitArgs.
type StartStandardExitArgs struct {
	UtxoPos                *big.Int
	RlpOutputTx            []byte
	OutputTxInclusionProof []byte
}

// ChallengeStandardExitArgs mirrors PaymentStandardExitRouterArgs.ChallengeStandardExitArgs.
type ChallengeStandardExitArgs struct {
	ExitId      *big.Int
	ExitingTx   []byte
	ChallengeTx []byte
	InputIndex  uint16
	Witness     []byte
	SenderData  [32]byte
}

// StartExitArgs mirrors PaymentInFlightExitRouterArgs.StartExitArgs.
type StartExitArgs struct {
	InFlightTx              []byte
	InputTxs                [][]byte
	InputUtxosPos           []*big.Int
	InputTxsInclusionProofs [][]byte
	InFlightTxWitnesses     [][]byte
}

// PiggybackInFlightExitOnInputArgs mirrors the piggyback-on-input tuple.
type PiggybackInFlightExitOnInputArgs struct {
	InFlightTx []byte
	InputIndex uint16
}

// PiggybackInFlightExitOnOutputArgs mirrors the piggyback-on-output tuple.
type PiggybackInFlightExitOnOutputArgs struct {
	InFlightTx  []byte
	OutputIndex uint16
}

// ChallengeCanonicityArgs mirrors PaymentInFlightExitRouterArgs.ChallengeCanonicityArgs.
type ChallengeCanonicityArgs struct {
	InputTx                   []byte
	InputUtxoPos              *big.Int
	InFlightTx                []byte
	InFlightTxInputIndex      uint16
	CompetingTx               []byte
	CompetingTxInputIndex     uint16
	CompetingTxPos            *big.Int
	CompetingTxInclusionProof []byte
	CompetingTxWitness        []byte
}

// ChallengeInputSpentArgs mirrors PaymentInFlightExitRouterArgs.ChallengeInputSpentArgs.
type ChallengeInputSpentArgs struct {
	InFlightTx              []byte
	InFlightTxInputIndex    uint16
	ChallengingTx           []byte
	ChallengingTxInputIndex uint16
	ChallengingTxWitness    []byte
	InputTx                 []byte
	InputUtxoPos            *big.Int
	SenderData              [32]byte
}

// ChallengeOutputSpentArgs mirrors PaymentInFlightExitRouterArgs.ChallengeOutputSpent.
type ChallengeOutputSpentArgs struct {
	InFlightTx               []byte
	InFlightTxInclusionProof []byte
	OutputUtxoPos            *big.Int
	ChallengingTx            []byte
	ChallengingTxInputIndex  uint16
	ChallengingTxWitness     []byte
	SenderData               [32]byte
}

// Paymentexitgame is a Go binding around the PaymentExitGame contract.
type Paymentexitgame struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewPaymentexitgame creates a new instance bound to a deployed contract.
func NewPaymentexitgame(address common.Address, backend bind.ContractBackend) (*Paymentexitgame, error) {
	parsed, err := abi.JSON(strings.NewReader(PaymentexitgameABI))
	if err != nil {
		return nil, err
	}
	return &Paymentexitgame{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (c *Paymentexitgame) Address() common.Address {
	return c.address
}

func (c *Paymentexitgame) callUint(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, method, params...)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// StartStandardExitBondSize is a free data retrieval call binding the
// contract method startStandardExitBondSize().
func (c *Paymentexitgame) StartStandardExitBondSize(opts *bind.CallOpts) (*big.Int, error) {
	return c.callUint(opts, "startStandardExitBondSize")
}

// PiggybackBondSize is a free data retrieval call binding the contract
// method piggybackBondSize().
func (c *Paymentexitgame) PiggybackBondSize(opts *bind.CallOpts) (*big.Int, error) {
	return c.callUint(opts, "piggybackBondSize")
}

// StartIFEBondSize is a free data retrieval call binding the contract
// method startIFEBondSize().
func (c *Paymentexitgame) StartIFEBondSize(opts *bind.CallOpts) (*big.Int, error) {
	return c.callUint(opts, "startIFEBondSize")
}

// GetStandardExitId is a free data retrieval call binding the contract
// method getStandardExitId(bool,bytes,uint256).
func (c *Paymentexitgame) GetStandardExitId(opts *bind.CallOpts, isDeposit bool, txBytes []byte, utxoPos *big.Int) (*big.Int, error) {
	return c.callUint(opts, "getStandardExitId", isDeposit, txBytes, utxoPos)
}

// GetInFlightExitId is a free data retrieval call binding the contract
// method getInFlightExitId(bytes).
func (c *Paymentexitgame) GetInFlightExitId(opts *bind.CallOpts, txBytes []byte) (*big.Int, error) {
	return c.callUint(opts, "getInFlightExitId", txBytes)
}

// StartStandardExit is a paid mutator transaction binding the contract
// method startStandardExit((uint256,bytes,bytes)).
func (c *Paymentexitgame) StartStandardExit(opts *bind.TransactOpts, args StartStandardExitArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "startStandardExit", args)
}

// ChallengeStandardExit is a paid mutator transaction binding the contract
// method challengeStandardExit((uint160,bytes,bytes,uint16,bytes,bytes32)).
func (c *Paymentexitgame) ChallengeStandardExit(opts *bind.TransactOpts, args ChallengeStandardExitArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "challengeStandardExit", args)
}

// StartInFlightExit is a paid mutator transaction binding the contract
// method startInFlightExit((bytes,bytes[],uint256[],bytes[],bytes[])).
func (c *Paymentexitgame) StartInFlightExit(opts *bind.TransactOpts, args StartExitArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "startInFlightExit", args)
}

// PiggybackInFlightExitOnInput is a paid mutator transaction binding the
// contract method piggybackInFlightExitOnInput((bytes,uint16)).
func (c *Paymentexitgame) PiggybackInFlightExitOnInput(opts *bind.TransactOpts, args PiggybackInFlightExitOnInputArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "piggybackInFlightExitOnInput", args)
}

// PiggybackInFlightExitOnOutput is a paid mutator transaction binding the
// contract method piggybackInFlightExitOnOutput((bytes,uint16)).
func (c *Paymentexitgame) PiggybackInFlightExitOnOutput(opts *bind.TransactOpts, args PiggybackInFlightExitOnOutputArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "piggybackInFlightExitOnOutput", args)
}

// ChallengeInFlightExitNotCanonical is a paid mutator transaction binding
// the contract method challengeInFlightExitNotCanonical(...).
func (c *Paymentexitgame) ChallengeInFlightExitNotCanonical(opts *bind.TransactOpts, args ChallengeCanonicityArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "challengeInFlightExitNotCanonical", args)
}

// RespondToNonCanonicalChallenge is a paid mutator transaction binding the
// contract method respondToNonCanonicalChallenge(bytes,uint256,bytes).
func (c *Paymentexitgame) RespondToNonCanonicalChallenge(opts *bind.TransactOpts, inFlightTx []byte, inFlightTxPos *big.Int, inFlightTxInclusionProof []byte) (*types.Transaction, error) {
	return c.contract.Transact(opts, "respondToNonCanonicalChallenge", inFlightTx, inFlightTxPos, inFlightTxInclusionProof)
}

// ChallengeInFlightExitInputSpent is a paid mutator transaction binding the
// contract method challengeInFlightExitInputSpent(...).
func (c *Paymentexitgame) ChallengeInFlightExitInputSpent(opts *bind.TransactOpts, args ChallengeInputSpentArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "challengeInFlightExitInputSpent", args)
}

// ChallengeInFlightExitOutputSpent is a paid mutator transaction binding the
// contract method challengeInFlightExitOutputSpent(...).
func (c *Paymentexitgame) ChallengeInFlightExitOutputSpent(opts *bind.TransactOpts, args ChallengeOutputSpentArgs) (*types.Transaction, error) {
	return c.contract.Transact(opts, "challengeInFlightExitOutputSpent", args)
}

// DeleteNonPiggybackedInFlightExit is a paid mutator transaction binding the
// contract method deleteNonPiggybackedInFlightExit(uint160).
func (c *Paymentexitgame) DeleteNonPiggybackedInFlightExit(opts *bind.TransactOpts, exitID *big.Int) (*types.Transaction, error) {
	return c.contract.Transact(opts, "deleteNonPiggybackedInFlightExit", exitID)
}
