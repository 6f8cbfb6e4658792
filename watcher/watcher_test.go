package watcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/common"
)

func newTestServer(t *testing.T, wantPath string, response string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2.0", body["jsonrpc"])
		_, hasID := body["id"]
		assert.True(t, hasID)

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(response))
		require.NoError(t, err)
	}))
}

func TestNewClientBaseURL(t *testing.T) {
	assert.Equal(t, "http://w:7434/", NewClient("http://w:7434").URL)
	assert.Equal(t, "http://w:7434/", NewClient("http://w:7434/").URL)
	assert.NotPanics(t, func() { NewClient("") })
}

func TestGetBalance(t *testing.T) {
	srv := newTestServer(t, "/account.get_balance", `{
		"success": true,
		"data": [{"currency": "0000000000000000000000000000000000000000", "amount": 1000000000000000000}]
	}`)
	defer srv.Close()

	client := NewClient(srv.URL)
	balances, err := client.GetBalance(context.Background(),
		ethCommon.HexToAddress("0x854951e37c68a99a52d9e3ae15e0cb62184a613e"))
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, common.EthCurrency, balances[0].Currency.Address())
	amount, err := balances[0].Amount.ToBigInt()
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", amount.String())
}

func TestGetBalanceRemoteError(t *testing.T) {
	srv := newTestServer(t, "/account.get_balance", `{
		"success": false,
		"data": {"code": "the_error_code", "description": "The error description"}
	}`)
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetBalance(context.Background(),
		ethCommon.HexToAddress("0x854951e37c68a99a52d9e3ae15e0cb62184a613e"))
	require.Error(t, err)
	var remoteErr *common.RemoteServiceError
	require.ErrorAs(t, tracerr.Unwrap(err), &remoteErr)
	assert.Equal(t, "the_error_code", remoteErr.Code)
	assert.Equal(t, "The error description", remoteErr.Description)
	assert.Contains(t, err.Error(), "The error description")
}

func TestGetUtxos(t *testing.T) {
	srv := newTestServer(t, "/account.get_utxos", `{
		"success": true,
		"data": [{
			"blknum": 123000,
			"txindex": 111,
			"oindex": 0,
			"utxo_pos": 123000001110000,
			"owner": "0x854951e37c68a99a52d9e3ae15e0cb62184a613e",
			"currency": "0x0000000000000000000000000000000000000000",
			"amount": "333"
		}]
	}`)
	defer srv.Close()

	client := NewClient(srv.URL)
	utxos, err := client.GetUtxos(context.Background(),
		ethCommon.HexToAddress("0x854951e37c68a99a52d9e3ae15e0cb62184a613e"))
	require.NoError(t, err)
	require.Len(t, utxos, 1)

	pos, err := utxos[0].Position().Encode()
	require.NoError(t, err)
	assert.Equal(t, "123000001110000", pos.String())
	amount, err := utxos[0].Amount.ToBigInt()
	require.NoError(t, err)
	assert.Equal(t, "333", amount.String())
}

func TestGetExitData(t *testing.T) {
	srv := newTestServer(t, "/utxo.get_exit_data", `{
		"success": true,
		"data": {
			"utxo_pos": 123000001110000,
			"txbytes": "0xf851",
			"proof": "0x1234"
		}
	}`)
	defer srv.Close()

	client := NewClient(srv.URL)
	data, err := client.GetExitData(context.Background(),
		common.NewUtxoPosition(123000, 111, 0))
	require.NoError(t, err)
	assert.Equal(t, "123000001110000", string(data.UtxoPos))
	assert.Equal(t, []byte{0xf8, 0x51}, []byte(data.TxBytes))
	assert.Equal(t, []byte{0x12, 0x34}, []byte(data.Proof))
}

func TestSubmitTransaction(t *testing.T) {
	srv := newTestServer(t, "/transaction.submit", `{
		"success": true,
		"data": {"blknum": 124000, "txindex": 7, "txhash": "0xabcd"}
	}`)
	defer srv.Close()

	client := NewClient(srv.URL)
	receipt, err := client.SubmitTransaction(context.Background(), []byte{0xf8, 0x51})
	require.NoError(t, err)
	assert.Equal(t, uint64(124000), receipt.BlkNum)
	assert.Equal(t, uint16(7), receipt.TxIndex)
	assert.Equal(t, "0xabcd", receipt.TxHash)
}
