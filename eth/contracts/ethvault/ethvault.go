// Package ethvault binds the EthVault contract holding native-asset deposits.
package ethvault

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthvaultABI is the input ABI used to generate the binding from.
const EthvaultABI = `[{"inputs":[{"internalType":"bytes","name":"depositTx","type":"bytes"}],"name":"deposit","outputs":[],"stateMutability":"payable","type":"function"}]`

// Ethvault is a Go binding around the EthVault contract.
type Ethvault struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewEthvault creates a new instance bound to a deployed contract.
func NewEthvault(address common.Address, backend bind.ContractBackend) (*Ethvault, error) {
	parsed, err := abi.JSON(strings.NewReader(EthvaultABI))
	if err != nil {
		return nil, err
	}
	return &Ethvault{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (c *Ethvault) Address() common.Address {
	return c.address
}

// Deposit is a paid mutator transaction binding the contract method
// deposit(bytes).  The deposited value rides on the transaction itself.
func (c *Ethvault) Deposit(opts *bind.TransactOpts, depositTx []byte) (*types.Transaction, error) {
	return c.contract.Transact(opts, "deposit", depositTx)
}
