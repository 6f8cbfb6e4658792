package eth

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethKeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/log"
)

// EthereumInterface is the interface to the rootchain node.
type EthereumInterface interface {
	EthCurrentBlock() (int64, error)
	EthBlockByNumber(context.Context, int64) (*common.Block, error)
	EthAddress() (*ethCommon.Address, error)
	EthTransactionReceipt(context.Context, ethCommon.Hash) (*types.Receipt, error)
	EthChainID() (*big.Int, error)
}

var (
	// ErrAccountNil is used when the calls can not be made because the account is nil
	ErrAccountNil = fmt.Errorf("authorized calls can't be made when the account is nil")
	// ErrReceiptStatusFailed is used when receiving a failed transaction
	ErrReceiptStatusFailed = fmt.Errorf("receipt status is failed")
	// ErrReceiptNotReceived is used when unable to retrieve a transaction
	ErrReceiptNotReceived = fmt.Errorf("receipt not available")
)

const (
	// default values
	defaultCallGasLimit        = 300000
	defaultGasPriceDiv         = 100
	defaultReceiptTimeout      = 60 * time.Second
	defaultIntervalReceiptLoop = 200 * time.Millisecond
)

// EthereumConfig defines the configuration parameters of the EthereumClient
type EthereumConfig struct {
	CallGasLimit        uint64
	GasPriceDiv         uint64
	ReceiptTimeout      time.Duration
	IntervalReceiptLoop time.Duration
}

// EthereumClient is a rootchain client to call smart contract methods and
// check blockchain information.
type EthereumClient struct {
	client         *ethclient.Client
	account        *accounts.Account
	ks             *ethKeystore.KeyStore
	ReceiptTimeout time.Duration
	config         *EthereumConfig
}

// NewEthereumClient creates a EthereumClient instance.  The account is not
// mandatory (it can be nil).  If the account is nil, CallAuth will fail with
// ErrAccountNil.
func NewEthereumClient(client *ethclient.Client, account *accounts.Account,
	ks *ethKeystore.KeyStore, config *EthereumConfig) *EthereumClient {
	if config == nil {
		config = &EthereumConfig{}
	}
	if config.CallGasLimit == 0 {
		config.CallGasLimit = defaultCallGasLimit
	}
	if config.GasPriceDiv == 0 {
		config.GasPriceDiv = defaultGasPriceDiv
	}
	if config.ReceiptTimeout == 0 {
		config.ReceiptTimeout = defaultReceiptTimeout
	}
	if config.IntervalReceiptLoop == 0 {
		config.IntervalReceiptLoop = defaultIntervalReceiptLoop
	}
	return &EthereumClient{client: client, account: account, ks: ks,
		ReceiptTimeout: config.ReceiptTimeout, config: config}
}

// BalanceAt retrieves the rootchain balance of an address.
func (c *EthereumClient) BalanceAt(addr ethCommon.Address) (*big.Int, error) {
	return c.client.BalanceAt(context.TODO(), addr, nil)
}

// Account returns the underlying ethereum account
func (c *EthereumClient) Account() *accounts.Account {
	return c.account
}

// EthAddress returns the ethereum address of the account loaded into the EthereumClient
func (c *EthereumClient) EthAddress() (*ethCommon.Address, error) {
	if c.account == nil {
		return nil, tracerr.Wrap(ErrAccountNil)
	}
	return &c.account.Address, nil
}

// EthChainID returns the chain id of the connected rootchain node.
func (c *EthereumClient) EthChainID() (*big.Int, error) {
	return c.client.ChainID(context.Background())
}

// NewAuth builds a TransactOpts for the loaded account with a gas price
// bumped by 1/GasPriceDiv over the suggested price.
func (c *EthereumClient) NewAuth() (*bind.TransactOpts, error) {
	if c.account == nil {
		return nil, tracerr.Wrap(ErrAccountNil)
	}
	gasPrice, err := c.client.SuggestGasPrice(context.Background())
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	inc := new(big.Int).Set(gasPrice)
	inc.Div(inc, new(big.Int).SetUint64(c.config.GasPriceDiv))
	gasPrice.Add(gasPrice, inc)

	auth, err := bind.NewKeyStoreTransactor(c.ks, *c.account)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	auth.Value = big.NewInt(0) // in wei
	auth.GasLimit = c.config.CallGasLimit
	auth.GasPrice = gasPrice
	return auth, nil
}

// CallAuth performs a smart contract method call that requires
// authorization.  This call requires a valid account with Ether that can be
// spent during the call.
func (c *EthereumClient) CallAuth(gasLimit uint64,
	fn func(*ethclient.Client, *bind.TransactOpts) (*types.Transaction, error)) (*types.Transaction, error) {
	auth, err := c.NewAuth()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if gasLimit != 0 {
		auth.GasLimit = gasLimit
	}
	log.Debugw("Transaction metadata", "gasPrice", auth.GasPrice)

	tx, err := fn(c.client, auth)
	if tx != nil {
		log.Debugw("Transaction", "tx", tx.Hash().Hex(), "nonce", tx.Nonce())
	}
	return tx, err
}

// Call performs a read only smart contract method call.
func (c *EthereumClient) Call(fn func(*ethclient.Client) error) error {
	return fn(c.client)
}

// WaitReceipt will block until a transaction is confirmed.  Internally it
// polls the state every 200 milliseconds.
func (c *EthereumClient) WaitReceipt(tx *types.Transaction) (*types.Receipt, error) {
	return c.waitReceipt(context.TODO(), tx, c.ReceiptTimeout)
}

// GetReceipt will check if a transaction is confirmed and return
// immediately, waiting at most 1 second and returning error if the
// transaction is still pending.
func (c *EthereumClient) GetReceipt(tx *types.Transaction) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), 1*time.Second)
	defer cancel()
	return c.waitReceipt(ctx, tx, 0)
}

// EthTransactionReceipt returns the transaction receipt of the given txHash
func (c *EthereumClient) EthTransactionReceipt(ctx context.Context, txHash ethCommon.Hash) (*types.Receipt, error) {
	return c.client.TransactionReceipt(ctx, txHash)
}

func (c *EthereumClient) waitReceipt(ctx context.Context, tx *types.Transaction, timeout time.Duration) (*types.Receipt, error) {
	var err error
	var receipt *types.Receipt

	txHash := tx.Hash()
	log.Debugw("Waiting for receipt", "tx", txHash.Hex())

	start := time.Now()
	for {
		receipt, err = c.client.TransactionReceipt(ctx, txHash)
		if receipt != nil || time.Since(start) >= timeout {
			break
		}
		time.Sleep(c.config.IntervalReceiptLoop)
	}

	if receipt != nil && receipt.Status == types.ReceiptStatusFailed {
		log.Errorw("Failed transaction", "tx", txHash.Hex())
		return receipt, tracerr.Wrap(ErrReceiptStatusFailed)
	}

	if receipt == nil {
		log.Debugw("Pending transaction / wait receipt timeout", "tx", txHash.Hex(), "lasterr", err)
		return receipt, tracerr.Wrap(ErrReceiptNotReceived)
	}
	log.Debugw("Successful transaction", "tx", txHash.Hex())

	return receipt, tracerr.Wrap(err)
}

// EthCurrentBlock returns the current block number in the blockchain
func (c *EthereumClient) EthCurrentBlock() (int64, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), 1*time.Second)
	defer cancel()
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, tracerr.Wrap(err)
	}
	return header.Number.Int64(), nil
}

// EthBlockByNumber internally calls ethclient.Client HeaderByNumber and
// returns a *common.Block.  A number of 0 returns the latest block.
func (c *EthereumClient) EthBlockByNumber(ctx context.Context, number int64) (*common.Block, error) {
	blockNum := big.NewInt(number)
	if number == 0 {
		blockNum = nil
	}
	header, err := c.client.HeaderByNumber(ctx, blockNum)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	b := &common.Block{
		EthBlockNum: header.Number.Uint64(),
		Timestamp:   time.Unix(int64(header.Time), 0),
		Hash:        header.Hash(),
	}
	return b, nil
}

// Client returns the internal ethclient.Client
func (c *EthereumClient) Client() *ethclient.Client {
	return c.client
}
