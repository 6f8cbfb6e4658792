// Package priorityqueue binds the per-token exit PriorityQueue contract.
package priorityqueue

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// PriorityqueueABI is the input ABI used to generate the binding from.
const PriorityqueueABI = `[{"inputs":[],"name":"currentSize","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"getMin","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"heapList","outputs":[{"internalType":"uint256[]","name":"","type":"uint256[]"}],"stateMutability":"view","type":"function"}]`

// Priorityqueue is a Go binding around a PriorityQueue contract.
type Priorityqueue struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewPriorityqueue creates a new instance bound to a deployed contract.
func NewPriorityqueue(address common.Address, backend bind.ContractBackend) (*Priorityqueue, error) {
	parsed, err := abi.JSON(strings.NewReader(PriorityqueueABI))
	if err != nil {
		return nil, err
	}
	return &Priorityqueue{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (c *Priorityqueue) Address() common.Address {
	return c.address
}

// CurrentSize is a free data retrieval call binding the contract method currentSize().
func (c *Priorityqueue) CurrentSize(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "currentSize")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// GetMin is a free data retrieval call binding the contract method getMin().
func (c *Priorityqueue) GetMin(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "getMin")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// HeapList is a free data retrieval call binding the contract method
// heapList().  The returned array is the raw 1-indexed heap storage,
// including the sentinel at index 0.
func (c *Priorityqueue) HeapList(opts *bind.CallOpts) ([]*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(opts, &out, "heapList")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int), nil
}
