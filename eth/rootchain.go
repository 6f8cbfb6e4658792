package eth

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hermeznetwork/tracerr"
	"golang.org/x/sync/singleflight"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/eth/contracts/erc20"
	"github.com/omgnetwork/go-plasma/eth/contracts/erc20vault"
	"github.com/omgnetwork/go-plasma/eth/contracts/ethvault"
	"github.com/omgnetwork/go-plasma/eth/contracts/paymentexitgame"
	"github.com/omgnetwork/go-plasma/eth/contracts/plasmaframework"
	"github.com/omgnetwork/go-plasma/eth/contracts/priorityqueue"
	"github.com/omgnetwork/go-plasma/log"
	"github.com/omgnetwork/go-plasma/metric"
)

const (
	// PaymentTxType selects the payment exit game in the framework registry
	PaymentTxType = 1

	defaultExitTimeRetries    = 10
	defaultExitTimeRetryDelay = 5 * time.Second
	exitTimeBuffer            = 5 * time.Second
)

// RootChainHandles are the lazily resolved addresses, contract instances and
// bond sizes of the framework's collaborators.  They are resolved at most
// once per client instance; every caller observes the same values.
type RootChainHandles struct {
	EthVaultAddr   ethCommon.Address
	Erc20VaultAddr ethCommon.Address
	ExitGameAddr   ethCommon.Address

	EthVault   *ethvault.Ethvault
	Erc20Vault *erc20vault.Erc20vault
	ExitGame   *paymentexitgame.Paymentexitgame

	StandardExitBond *big.Int
	PiggybackBond    *big.Int
	InFlightExitBond *big.Int
}

// RootchainInterface is the interface to the rootchain exit protocol.
type RootchainInterface interface {
	Handles(ctx context.Context) (*RootChainHandles, error)
	GetExitTime(ctx context.Context, params GetExitTimeParams) (*ExitSchedule, error)
	GetExitQueue(ctx context.Context, token ethCommon.Address) ([]common.ExitPriority, error)
	HasExitQueue(ctx context.Context, token ethCommon.Address) (bool, error)
	AddExitQueue(ctx context.Context, token ethCommon.Address) (*types.Transaction, error)
	ProcessExits(ctx context.Context, params ProcessExitsParams) (*types.Transaction, error)
	Deposit(ctx context.Context, params DepositParams) (*types.Transaction, error)
	ApproveToken(ctx context.Context, token ethCommon.Address, amount *big.Int) (*types.Transaction, error)
	TokenBalance(ctx context.Context, token, holder ethCommon.Address) (*big.Int, error)

	GetStandardExitID(ctx context.Context, utxoPos common.UtxoPosition, txBytes []byte) (*big.Int, error)
	GetInFlightExitID(ctx context.Context, txBytes []byte) (*big.Int, error)
	StartStandardExit(ctx context.Context, params StartStandardExitParams) (*types.Transaction, error)
	ChallengeStandardExit(ctx context.Context, params ChallengeStandardExitParams) (*types.Transaction, error)
	StartInFlightExit(ctx context.Context, params StartInFlightExitParams) (*types.Transaction, error)
	PiggybackInFlightExitOnInput(ctx context.Context, params PiggybackParams) (*types.Transaction, error)
	PiggybackInFlightExitOnOutput(ctx context.Context, params PiggybackParams) (*types.Transaction, error)
	ChallengeInFlightExitNotCanonical(ctx context.Context, params ChallengeInFlightExitNotCanonicalParams) (*types.Transaction, error)
	RespondToNonCanonicalChallenge(ctx context.Context, params RespondToNonCanonicalChallengeParams) (*types.Transaction, error)
	ChallengeInFlightExitInputSpent(ctx context.Context, params ChallengeInFlightExitInputSpentParams) (*types.Transaction, error)
	ChallengeInFlightExitOutputSpent(ctx context.Context, params ChallengeInFlightExitOutputSpentParams) (*types.Transaction, error)
	DeleteNonPiggybackedInFlightExit(ctx context.Context, exitID *big.Int) (*types.Transaction, error)
}

// RootchainClient drives the exit protocol against the PlasmaFramework and
// its registered vaults and exit game.
type RootchainClient struct {
	client    *EthereumClient
	address   ethCommon.Address
	framework *plasmaframework.Plasmaframework

	handlesOnce singleflight.Group
	handlesMtx  sync.RWMutex
	handles     *RootChainHandles

	tracker *ExitTracker

	// block lookup and retry policy for GetExitTime, replaceable in tests
	fetchBlock         func(ctx context.Context, blockNum int64) (*common.Block, error)
	exitTimeRetries    int
	exitTimeRetryDelay time.Duration
}

// NewRootchainClient binds a RootchainClient to a deployed PlasmaFramework.
func NewRootchainClient(client *EthereumClient, address ethCommon.Address) (*RootchainClient, error) {
	framework, err := plasmaframework.NewPlasmaframework(address, client.Client())
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &RootchainClient{
		client:             client,
		address:            address,
		framework:          framework,
		tracker:            NewExitTracker(),
		fetchBlock:         client.EthBlockByNumber,
		exitTimeRetries:    defaultExitTimeRetries,
		exitTimeRetryDelay: defaultExitTimeRetryDelay,
	}, nil
}

// Address returns the PlasmaFramework address.
func (c *RootchainClient) Address() ethCommon.Address {
	return c.address
}

// Tracker returns the client's exit record tracker.
func (c *RootchainClient) Tracker() *ExitTracker {
	return c.tracker
}

// Handles resolves the vault and exit-game addresses and the bond sizes.
// Resolution happens at most once per client: concurrent first callers are
// collapsed into a single on-chain lookup and later callers read the
// memoized value.
func (c *RootchainClient) Handles(ctx context.Context) (*RootChainHandles, error) {
	c.handlesMtx.RLock()
	h := c.handles
	c.handlesMtx.RUnlock()
	if h != nil {
		return h, nil
	}
	v, err, _ := c.handlesOnce.Do("handles", func() (interface{}, error) {
		h, err := c.resolveHandles(ctx)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		c.handlesMtx.Lock()
		c.handles = h
		c.handlesMtx.Unlock()
		return h, nil
	})
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return v.(*RootChainHandles), nil
}

func (c *RootchainClient) resolveHandles(ctx context.Context) (*RootChainHandles, error) {
	opts := &bind.CallOpts{Context: ctx}
	ethVaultAddr, err := c.framework.Vaults(opts, new(big.Int).SetUint64(common.AssetEth.VaultID()))
	if err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("resolve eth vault: %w", err))
	}
	erc20VaultAddr, err := c.framework.Vaults(opts, new(big.Int).SetUint64(common.AssetErc20.VaultID()))
	if err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("resolve erc20 vault: %w", err))
	}
	exitGameAddr, err := c.framework.ExitGames(opts, big.NewInt(PaymentTxType))
	if err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("resolve exit game: %w", err))
	}
	backend := c.client.Client()
	ethVault, err := ethvault.NewEthvault(ethVaultAddr, backend)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	erc20Vault, err := erc20vault.NewErc20vault(erc20VaultAddr, backend)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	exitGame, err := paymentexitgame.NewPaymentexitgame(exitGameAddr, backend)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	standardBond, err := exitGame.StartStandardExitBondSize(opts)
	if err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("read standard exit bond: %w", err))
	}
	piggybackBond, err := exitGame.PiggybackBondSize(opts)
	if err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("read piggyback bond: %w", err))
	}
	ifeBond, err := exitGame.StartIFEBondSize(opts)
	if err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("read in-flight exit bond: %w", err))
	}
	log.Infow("Resolved rootchain handles",
		"ethVault", ethVaultAddr.Hex(), "erc20Vault", erc20VaultAddr.Hex(),
		"exitGame", exitGameAddr.Hex())
	return &RootChainHandles{
		EthVaultAddr:     ethVaultAddr,
		Erc20VaultAddr:   erc20VaultAddr,
		ExitGameAddr:     exitGameAddr,
		EthVault:         ethVault,
		Erc20Vault:       erc20Vault,
		ExitGame:         exitGame,
		StandardExitBond: standardBond,
		PiggybackBond:    piggybackBond,
		InFlightExitBond: ifeBond,
	}, nil
}

// exitQueueKey derives the storage key of a token's exit queue:
// keccak256(vaultId . token), with vaultId packed into a 32-byte word.
func exitQueueKey(vaultID uint64, token ethCommon.Address) [32]byte {
	packed := make([]byte, 0, 52)
	packed = append(packed, ethCommon.LeftPadBytes(new(big.Int).SetUint64(vaultID).Bytes(), 32)...)
	packed = append(packed, token.Bytes()...)
	var key [32]byte
	copy(key[:], crypto.Keccak256(packed))
	return key
}

// GetExitQueue reads a token's raw priority queue and decodes every entry.
// The stored sentinel at heap index 0 is discarded; the remaining entries
// are returned in heap storage order, which is not further sorted.
func (c *RootchainClient) GetExitQueue(ctx context.Context, token ethCommon.Address) ([]common.ExitPriority, error) {
	vaultID := common.ResolveAssetKind(token).VaultID()
	opts := &bind.CallOpts{Context: ctx}
	queueAddr, err := c.framework.ExitsQueues(opts, exitQueueKey(vaultID, token))
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	queue, err := priorityqueue.NewPriorityqueue(queueAddr, c.client.Client())
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	heap, err := queue.HeapList(opts)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return decodeExitQueue(heap)
}

func decodeExitQueue(heap []*big.Int) ([]common.ExitPriority, error) {
	if len(heap) == 0 {
		return []common.ExitPriority{}, nil
	}
	entries := make([]common.ExitPriority, 0, len(heap)-1)
	for _, raw := range heap[1:] {
		entry, err := common.DecodeExitPriority(raw)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// HasExitQueue reports whether a token's exit queue has been registered.
func (c *RootchainClient) HasExitQueue(ctx context.Context, token ethCommon.Address) (bool, error) {
	vaultID := common.ResolveAssetKind(token).VaultID()
	has, err := c.framework.HasExitQueue(&bind.CallOpts{Context: ctx},
		new(big.Int).SetUint64(vaultID), token)
	return has, tracerr.Wrap(err)
}

// AddExitQueue registers an exit queue for a token.
func (c *RootchainClient) AddExitQueue(ctx context.Context, token ethCommon.Address) (*types.Transaction, error) {
	vaultID := common.ResolveAssetKind(token).VaultID()
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return c.framework.AddExitQueue(auth, new(big.Int).SetUint64(vaultID), token)
		})
	if err != nil {
		return nil, submissionError("addExitQueue", err)
	}
	metric.Submissions.WithLabelValues("addExitQueue").Inc()
	return tx, nil
}

// ProcessExitsParams are the arguments to ProcessExits.
type ProcessExitsParams struct {
	// Token selects the priority queue to drain
	Token ethCommon.Address
	// TopExitID must be the id of the first exit in the queue, or zero to
	// let the contract start from the top
	TopExitID *big.Int
	// MaxExitsToProcess bounds how many matured exits are drained
	MaxExitsToProcess uint64
}

// Validate checks the parameters before any network call.
func (p *ProcessExitsParams) Validate() error {
	if p.MaxExitsToProcess == 0 {
		return tracerr.Wrap(common.NewValidationError("maxExitsToProcess", "must be positive"))
	}
	if p.TopExitID != nil && p.TopExitID.Sign() < 0 {
		return tracerr.Wrap(common.NewValidationError("topExitId", "must not be negative"))
	}
	return nil
}

// ProcessExits drains up to MaxExitsToProcess matured exits from a token's
// priority queue.
func (c *RootchainClient) ProcessExits(ctx context.Context, params ProcessExitsParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	vaultID := common.ResolveAssetKind(params.Token).VaultID()
	topExitID := params.TopExitID
	if topExitID == nil {
		topExitID = big.NewInt(0)
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return c.framework.ProcessExits(auth, new(big.Int).SetUint64(vaultID),
				params.Token, topExitID,
				new(big.Int).SetUint64(params.MaxExitsToProcess))
		})
	if err != nil {
		return nil, submissionError("processExits", err)
	}
	metric.Submissions.WithLabelValues("processExits").Inc()
	return tx, nil
}

// DepositParams are the arguments to Deposit.
type DepositParams struct {
	Owner    ethCommon.Address
	Amount   *big.Int
	Currency ethCommon.Address
}

// Validate checks the parameters before any network call.
func (p *DepositParams) Validate() error {
	if p.Amount == nil || p.Amount.Sign() <= 0 {
		return tracerr.Wrap(common.NewValidationError("amount", "must be a positive integer"))
	}
	return nil
}

// Deposit submits funds onto the childchain through the vault responsible
// for the currency's asset kind.  ERC20 deposits require a prior allowance,
// see ApproveToken.
func (c *RootchainClient) Deposit(ctx context.Context, params DepositParams) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	depositTx, err := common.EncodeDeposit(params.Owner, params.Amount, params.Currency)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	kind := common.ResolveAssetKind(params.Currency)
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			if kind == common.AssetEth {
				auth.Value = params.Amount
				return handles.EthVault.Deposit(auth, depositTx)
			}
			return handles.Erc20Vault.Deposit(auth, depositTx)
		})
	if err != nil {
		return nil, submissionError("deposit", err)
	}
	metric.Submissions.WithLabelValues("deposit").Inc()
	return tx, nil
}

// ApproveToken grants the ERC20 vault an allowance covering a token deposit.
// When the existing allowance already covers the amount no transaction is
// sent and a nil transaction is returned.
func (c *RootchainClient) ApproveToken(ctx context.Context, token ethCommon.Address, amount *big.Int) (*types.Transaction, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, tracerr.Wrap(common.NewValidationError("amount", "must be a positive integer"))
	}
	if common.ResolveAssetKind(token) != common.AssetErc20 {
		return nil, tracerr.Wrap(common.NewValidationError("token", "native asset deposits need no approval"))
	}
	handles, err := c.Handles(ctx)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	instance, err := erc20.NewErc20(token, c.client.Client())
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	owner, err := c.client.EthAddress()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	allowance, err := instance.Allowance(&bind.CallOpts{Context: ctx}, *owner, handles.Erc20VaultAddr)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if allowance.Cmp(amount) >= 0 {
		return nil, nil
	}
	tx, err := c.client.CallAuth(0,
		func(client *ethclient.Client, auth *bind.TransactOpts) (*types.Transaction, error) {
			auth.Context = ctx
			return instance.Approve(auth, handles.Erc20VaultAddr, amount)
		})
	if err != nil {
		return nil, submissionError("approveToken", err)
	}
	metric.Submissions.WithLabelValues("approveToken").Inc()
	return tx, nil
}

// TokenBalance reads a holder's rootchain ERC20 balance.
func (c *RootchainClient) TokenBalance(ctx context.Context, token, holder ethCommon.Address) (*big.Int, error) {
	if common.ResolveAssetKind(token) != common.AssetErc20 {
		return nil, tracerr.Wrap(common.NewValidationError("token", "must be an ERC20 token"))
	}
	instance, err := erc20.NewErc20(token, c.client.Client())
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	balance, err := instance.BalanceOf(&bind.CallOpts{Context: ctx}, holder)
	return balance, tracerr.Wrap(err)
}

// submissionError records a failed rootchain submission in the error metric
// and wraps it for the caller.
func submissionError(op string, err error) error {
	serr := &common.SubmissionError{Op: op, Err: err}
	metric.CollectError(serr)
	return tracerr.Wrap(serr)
}

// GetExitTimeParams are the arguments to GetExitTime.
type GetExitTimeParams struct {
	// ExitRequestBlockNumber is the rootchain block that included the exit
	// request transaction
	ExitRequestBlockNumber uint64
	// SubmissionBlockNumber is the childchain block that included the
	// exiting output
	SubmissionBlockNumber uint64
}

// Validate checks the parameters before any network call.
func (p *GetExitTimeParams) Validate() error {
	if p.ExitRequestBlockNumber == 0 {
		return tracerr.Wrap(common.NewValidationError("exitRequestBlockNumber", "must be positive"))
	}
	if p.SubmissionBlockNumber == 0 {
		return tracerr.Wrap(common.NewValidationError("submissionBlockNumber", "must be positive"))
	}
	return nil
}

// ExitSchedule is the computed finalization schedule of an exit.
type ExitSchedule struct {
	ScheduledFinalizationTime time.Time
	UntilFinalization         time.Duration
}

// GetExitTime computes when an exit becomes processable.  The minimum exit
// period is read from the framework once per call.  Deposit-style
// submissions (childchain block number not a multiple of 1000) receive
// elevated priority: their finalization needs a single exit period, a
// regular submission needs a doubled period on top of its block timestamp.
// A fixed 5 second buffer is added to the result.
//
// If the exit-request block is not yet available from the chain, the lookup
// is retried a bounded number of times with a fixed delay before the call
// fails with an error naming the missing block.
func (c *RootchainClient) GetExitTime(ctx context.Context, params GetExitTimeParams) (*ExitSchedule, error) {
	if err := params.Validate(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	minExitPeriod, err := c.framework.MinExitPeriod(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	period := time.Duration(minExitPeriod.Uint64()) * time.Second

	exitBlock, err := c.waitExitRequestBlock(ctx, params.ExitRequestBlockNumber)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	submissionBlock, err := c.framework.Blocks(&bind.CallOpts{Context: ctx},
		new(big.Int).SetUint64(params.SubmissionBlockNumber))
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	subTs := time.Unix(submissionBlock.Timestamp.Int64(), 0)
	finalization := scheduledFinalization(period, exitBlock.Timestamp, subTs,
		params.SubmissionBlockNumber)
	return &ExitSchedule{
		ScheduledFinalizationTime: finalization,
		UntilFinalization:         time.Until(finalization),
	}, nil
}

// scheduledFinalization computes when an exit finalizes.  Deposit-style
// submission block numbers get the elevated-priority single period; regular
// blocks wait out a doubled period from their own timestamp.
func scheduledFinalization(period time.Duration, exitTs, subTs time.Time, submissionBlockNumber uint64) time.Time {
	var finalization time.Time
	if common.IsDepositPosition(submissionBlockNumber) {
		finalization = maxTime(exitTs, subTs).Add(period)
	} else {
		finalization = maxTime(exitTs, subTs.Add(2*period))
	}
	return finalization.Add(exitTimeBuffer)
}

// waitExitRequestBlock fetches a rootchain block, retrying on a bounded
// schedule while the block is not yet available.  The retry is an explicit
// loop with a fixed delay; once the budget is exhausted the caller gets a
// ChainQueryError naming the block.
func (c *RootchainClient) waitExitRequestBlock(ctx context.Context, blockNum uint64) (*common.Block, error) {
	for attempt := 0; ; attempt++ {
		block, err := c.fetchBlock(ctx, int64(blockNum))
		if err == nil {
			return block, nil
		}
		if !errors.Is(tracerr.Unwrap(err), ethereum.NotFound) {
			return nil, tracerr.Wrap(err)
		}
		if attempt >= c.exitTimeRetries {
			return nil, tracerr.Wrap(&common.ChainQueryError{BlockNum: blockNum})
		}
		metric.ExitTimeRetries.Inc()
		log.Debugw("Exit request block not yet available, retrying",
			"block", blockNum, "attempt", attempt+1)
		select {
		case <-ctx.Done():
			return nil, tracerr.Wrap(ctx.Err())
		case <-time.After(c.exitTimeRetryDelay):
		}
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
