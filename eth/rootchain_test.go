package eth

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hermeznetwork/tracerr"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/metric"
)

func TestScheduledFinalization(t *testing.T) {
	period := 60 * time.Second
	reqTs := time.Unix(1600000000, 0)

	// deposit-style block numbers get elevated priority: a single period
	// on top of the later of the two timestamps
	t.Run("deposit later request", func(t *testing.T) {
		subTs := time.Unix(1599999000, 0)
		got := scheduledFinalization(period, reqTs, subTs, 1001)
		assert.Equal(t, reqTs.Add(period).Add(exitTimeBuffer), got)
	})
	t.Run("deposit later submission", func(t *testing.T) {
		subTs := time.Unix(1600000500, 0)
		got := scheduledFinalization(period, reqTs, subTs, 1001)
		assert.Equal(t, subTs.Add(period).Add(exitTimeBuffer), got)
	})

	// regular block numbers wait out a doubled period from the submission
	// timestamp, unless the request came even later
	t.Run("regular doubled period dominates", func(t *testing.T) {
		subTs := time.Unix(1599999990, 0)
		got := scheduledFinalization(period, reqTs, subTs, 2000)
		assert.Equal(t, subTs.Add(2*period).Add(exitTimeBuffer), got)
	})
	t.Run("regular late request dominates", func(t *testing.T) {
		subTs := time.Unix(1599999000, 0)
		lateReq := time.Unix(1600001000, 0)
		got := scheduledFinalization(period, lateReq, subTs, 2000)
		assert.Equal(t, lateReq.Add(exitTimeBuffer), got)
	})
}

func TestWaitExitRequestBlockRetries(t *testing.T) {
	calls := 0
	client := &RootchainClient{
		fetchBlock: func(ctx context.Context, blockNum int64) (*common.Block, error) {
			calls++
			if calls < 3 {
				return nil, tracerr.Wrap(ethereum.NotFound)
			}
			return &common.Block{
				EthBlockNum: uint64(blockNum),
				Timestamp:   time.Unix(1600000000, 0),
			}, nil
		},
		exitTimeRetries:    5,
		exitTimeRetryDelay: time.Millisecond,
	}

	block, err := client.waitExitRequestBlock(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), block.EthBlockNum)
	assert.Equal(t, 3, calls)
}

func TestWaitExitRequestBlockExhausted(t *testing.T) {
	calls := 0
	client := &RootchainClient{
		fetchBlock: func(ctx context.Context, blockNum int64) (*common.Block, error) {
			calls++
			return nil, tracerr.Wrap(ethereum.NotFound)
		},
		exitTimeRetries:    2,
		exitTimeRetryDelay: time.Millisecond,
	}

	_, err := client.waitExitRequestBlock(context.Background(), 456)
	require.Error(t, err)
	var queryErr *common.ChainQueryError
	require.ErrorAs(t, tracerr.Unwrap(err), &queryErr)
	assert.Equal(t, uint64(456), queryErr.BlockNum)
	assert.Equal(t, 3, calls)
}

func TestWaitExitRequestBlockOtherError(t *testing.T) {
	wantErr := tracerr.Wrap(assert.AnError)
	calls := 0
	client := &RootchainClient{
		fetchBlock: func(ctx context.Context, blockNum int64) (*common.Block, error) {
			calls++
			return nil, wantErr
		},
		exitTimeRetries:    5,
		exitTimeRetryDelay: time.Millisecond,
	}

	_, err := client.waitExitRequestBlock(context.Background(), 789)
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestWaitExitRequestBlockContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &RootchainClient{
		fetchBlock: func(ctx context.Context, blockNum int64) (*common.Block, error) {
			cancel()
			return nil, tracerr.Wrap(ethereum.NotFound)
		},
		exitTimeRetries:    5,
		exitTimeRetryDelay: time.Minute,
	}

	_, err := client.waitExitRequestBlock(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, tracerr.Unwrap(err), context.Canceled)
}

func TestExitQueueKey(t *testing.T) {
	token := ethCommon.HexToAddress("0x854951e37c68a99a52d9e3ae15e0cb62184a613e")
	key := exitQueueKey(2, token)

	packed := append(ethCommon.LeftPadBytes(big.NewInt(2).Bytes(), 32), token.Bytes()...)
	assert.Equal(t, crypto.Keccak256(packed), key[:])

	ethKey := exitQueueKey(1, common.EthCurrency)
	assert.NotEqual(t, key, ethKey)
}

func TestTokenBalanceRejectsNativeAsset(t *testing.T) {
	client := &RootchainClient{}
	_, err := client.TokenBalance(context.Background(), common.EthCurrency, ethCommon.Address{})
	require.Error(t, err)
	var vErr *common.ValidationError
	require.ErrorAs(t, tracerr.Unwrap(err), &vErr)
}

func TestSubmissionErrorCollected(t *testing.T) {
	err := submissionError("processExits", assert.AnError)
	require.Error(t, err)
	var subErr *common.SubmissionError
	require.ErrorAs(t, tracerr.Unwrap(err), &subErr)
	assert.Equal(t, "processExits", subErr.Op)
	assert.ErrorIs(t, subErr, assert.AnError)

	counter, cErr := metric.Errors.GetMetricWithLabelValues(subErr.Error())
	require.NoError(t, cErr)
	assert.GreaterOrEqual(t, testutil.ToFloat64(counter), 1.0)
}

func TestDecodeExitQueue(t *testing.T) {
	t.Run("empty heap", func(t *testing.T) {
		entries, err := decodeExitQueue(nil)
		require.NoError(t, err)
		assert.Equal(t, []common.ExitPriority{}, entries)
	})

	t.Run("sentinel discarded", func(t *testing.T) {
		priority := new(big.Int).Lsh(big.NewInt(1600000000), 214)
		priority.Or(priority, big.NewInt(42))
		entries, err := decodeExitQueue([]*big.Int{big.NewInt(0), priority})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, uint64(1600000000), entries[0].ExitableAt)
		assert.Equal(t, big.NewInt(42), entries[0].ExitID)
	})
}

func TestProcessExitsParamsValidate(t *testing.T) {
	params := ProcessExitsParams{MaxExitsToProcess: 0}
	require.Error(t, params.Validate())

	params = ProcessExitsParams{MaxExitsToProcess: 1, TopExitID: big.NewInt(-1)}
	require.Error(t, params.Validate())

	params = ProcessExitsParams{MaxExitsToProcess: 1}
	require.NoError(t, params.Validate())
}

func TestDepositParamsValidate(t *testing.T) {
	params := DepositParams{Amount: big.NewInt(0)}
	require.Error(t, params.Validate())

	params = DepositParams{Amount: big.NewInt(333)}
	require.NoError(t, params.Validate())
}

func TestGetExitTimeParamsValidate(t *testing.T) {
	params := GetExitTimeParams{ExitRequestBlockNumber: 0, SubmissionBlockNumber: 1}
	require.Error(t, params.Validate())

	params = GetExitTimeParams{ExitRequestBlockNumber: 1, SubmissionBlockNumber: 0}
	require.Error(t, params.Validate())

	params = GetExitTimeParams{ExitRequestBlockNumber: 1, SubmissionBlockNumber: 1000}
	require.NoError(t, params.Validate())
}
