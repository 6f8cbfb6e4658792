// Package plasmaframework binds the PlasmaFramework contract: the rootchain
// registry of vaults, exit games, child blocks and exit queues.
package plasmaframework

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PlasmaframeworkABI is the input ABI used to generate the binding from.
const PlasmaframeworkABI = `[{"inputs":[{"internalType":"uint256","name":"vaultId","type":"uint256"},{"internalType":"address","name":"token","type":"address"}],"name":"addExitQueue","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"uint256","name":"blockNumber","type":"uint256"}],"name":"blocks","outputs":[{"internalType":"bytes32","name":"root","type":"bytes32"},{"internalType":"uint256","name":"timestamp","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"childBlockInterval","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"txType","type":"uint256"}],"name":"exitGames","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"bytes32","name":"key","type":"bytes32"}],"name":"exitsQueues","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"vaultId","type":"uint256"},{"internalType":"address","name":"token","type":"address"}],"name":"hasExitQueue","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"minExitPeriod","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"nextChildBlock","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"vaultId","type":"uint256"},{"internalType":"address","name":"token","type":"address"},{"internalType":"uint160","name":"topExitId","type":"uint160"},{"internalType":"uint256","name":"maxExitsToProcess","type":"uint256"}],"name":"processExits","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"uint256","name":"vaultId","type":"uint256"}],"name":"vaults","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

// Plasmaframework is a Go binding around the PlasmaFramework contract.
type Plasmaframework struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewPlasmaframework creates a new instance bound to a deployed contract.
func NewPlasmaframework(address common.Address, backend bind.ContractBackend) (*Plasmaframework, error) {
	parsed, err := abi.JSON(strings.NewReader(PlasmaframeworkABI))
	if err != nil {
		return nil, err
	}
	return &Plasmaframework{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (c *Plasmaframework) Address() common.Address {
	return c.address
}

// Vaults is a free data retrieval call binding the contract method vaults(uint256).
func (c *Plasmaframework) Vaults(opts *bind.CallOpts, vaultID *big.Int) (common.Address, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "vaults", vaultID)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// ExitGames is a free data retrieval call binding the contract method exitGames(uint256).
func (c *Plasmaframework) ExitGames(opts *bind.CallOpts, txType *big.Int) (common.Address, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "exitGames", txType)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// ExitsQueues is a free data retrieval call binding the contract method exitsQueues(bytes32).
func (c *Plasmaframework) ExitsQueues(opts *bind.CallOpts, key [32]byte) (common.Address, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "exitsQueues", key)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// HasExitQueue is a free data retrieval call binding the contract method hasExitQueue(uint256,address).
func (c *Plasmaframework) HasExitQueue(opts *bind.CallOpts, vaultID *big.Int, token common.Address) (bool, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "hasExitQueue", vaultID, token)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// MinExitPeriod is a free data retrieval call binding the contract method minExitPeriod().
func (c *Plasmaframework) MinExitPeriod(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "minExitPeriod")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// ChildBlockInterval is a free data retrieval call binding the contract method childBlockInterval().
func (c *Plasmaframework) ChildBlockInterval(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "childBlockInterval")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// NextChildBlock is a free data retrieval call binding the contract method nextChildBlock().
func (c *Plasmaframework) NextChildBlock(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "nextChildBlock")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// ChildBlock is the stored commitment of one childchain block.
type ChildBlock struct {
	Root      [32]byte
	Timestamp *big.Int
}

// Blocks is a free data retrieval call binding the contract method blocks(uint256).
func (c *Plasmaframework) Blocks(opts *bind.CallOpts, blockNumber *big.Int) (ChildBlock, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "blocks", blockNumber)
	if err != nil {
		return ChildBlock{}, err
	}
	return ChildBlock{
		Root:      *abi.ConvertType(out[0], new([32]byte)).(*[32]byte),
		Timestamp: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
	}, nil
}

// AddExitQueue is a paid mutator transaction binding the contract method addExitQueue(uint256,address).
func (c *Plasmaframework) AddExitQueue(opts *bind.TransactOpts, vaultID *big.Int, token common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "addExitQueue", vaultID, token)
}

// ProcessExits is a paid mutator transaction binding the contract method
// processExits(uint256,address,uint160,uint256).
func (c *Plasmaframework) ProcessExits(opts *bind.TransactOpts, vaultID *big.Int, token common.Address, topExitID *big.Int, maxExitsToProcess *big.Int) (*types.Transaction, error) {
	return c.contract.Transact(opts, "processExits", vaultID, token, topExitID, maxExitsToProcess)
}
