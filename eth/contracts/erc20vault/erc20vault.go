// Package erc20vault binds the Erc20Vault contract holding token deposits.
package erc20vault

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Erc20vaultABI is the input ABI used to generate the binding from.
const Erc20vaultABI = `[{"inputs":[{"internalType":"bytes","name":"depositTx","type":"bytes"}],"name":"deposit","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

// Erc20vault is a Go binding around the Erc20Vault contract.
type Erc20vault struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewErc20vault creates a new instance bound to a deployed contract.
func NewErc20vault(address common.Address, backend bind.ContractBackend) (*Erc20vault, error) {
	parsed, err := abi.JSON(strings.NewReader(Erc20vaultABI))
	if err != nil {
		return nil, err
	}
	return &Erc20vault{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (c *Erc20vault) Address() common.Address {
	return c.address
}

// Deposit is a paid mutator transaction binding the contract method
// deposit(bytes).  The vault pulls the tokens via a prior allowance.
func (c *Erc20vault) Deposit(opts *bind.TransactOpts, depositTx []byte) (*types.Transaction, error) {
	return c.contract.Transact(opts, "deposit", depositTx)
}
