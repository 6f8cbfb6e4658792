package watcher

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/sling"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/hermeznetwork/tracerr"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/metric"
)

// Client queries a watcher service over its JSON-RPC-over-HTTP interface.
// Every call posts a JSON body to `<base>/<resource>.<verb>` and unwraps
// the `{success, data}` envelope; a `success: false` reply surfaces the
// server-supplied code and description as a common.RemoteServiceError.
type Client struct {
	URL    string
	client *sling.Sling
}

// NewClient creates a watcher Client for the given base URL.
func NewClient(url string) *Client {
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	tr := &http.Transport{
		MaxIdleConns:    10,
		IdleConnTimeout: 10 * time.Second,
	}
	httpClient := &http.Client{Transport: tr}
	client := sling.New().Base(url).Client(httpClient)
	return &Client{URL: url, client: client}
}

// envelope is the watcher response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// remoteError is the shape of envelope.Data when Success is false.
type remoteError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type rpcBody map[string]interface{}

func (c *Client) rpcRequest(ctx context.Context, endpoint string, params rpcBody, ret interface{}) error {
	start := time.Now()
	body := rpcBody{
		"jsonrpc": "2.0",
		"id":      0,
	}
	for k, v := range params {
		body[k] = v
	}
	endpoint = strings.TrimPrefix(endpoint, "/")
	req, err := c.client.New().Post(endpoint).BodyJSON(body).Request()
	if err != nil {
		return tracerr.Wrap(err)
	}
	var env envelope
	res, err := c.client.Do(req.WithContext(ctx), &env, &env)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer res.Body.Close() //nolint:errcheck
	metric.WatcherRequests.WithLabelValues(endpoint).Inc()
	metric.MeasureDuration(metric.WatcherRequestDuration, start, endpoint)
	if !env.Success {
		var remote remoteError
		if err := json.Unmarshal(env.Data, &remote); err != nil {
			return tracerr.Wrap(fmt.Errorf("unexpected watcher response (HTTP %v): %s",
				res.StatusCode, env.Data))
		}
		return tracerr.Wrap(&common.RemoteServiceError{
			Code:        remote.Code,
			Description: remote.Description,
		})
	}
	if ret == nil {
		return nil
	}
	return tracerr.Wrap(json.Unmarshal(env.Data, ret))
}

// FlexAddr is a 20-byte address that unmarshals from hex with or without
// the 0x prefix; watcher endpoints are inconsistent about the prefix.
type FlexAddr ethCommon.Address

// UnmarshalJSON implements json.Unmarshaler.
func (a *FlexAddr) UnmarshalJSON(text []byte) error {
	str := strings.TrimPrefix(strings.Trim(string(text), `"`), "0x")
	raw, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	if len(raw) != ethCommon.AddressLength {
		return fmt.Errorf("invalid address length %v", len(raw))
	}
	copy(a[:], raw)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a FlexAddr) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ethCommon.Address(a).Hex() + `"`), nil
}

// Address returns the address as the go-ethereum type.
func (a FlexAddr) Address() ethCommon.Address {
	return ethCommon.Address(a)
}
