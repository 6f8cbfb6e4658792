package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/hermeznetwork/tracerr"
	"gopkg.in/go-playground/validator.v9"
)

// Duration is a wrapper type that parses time duration from text.
type Duration struct {
	time.Duration `validate:"required"`
}

// UnmarshalText unmarshalls time duration from text.
func (d *Duration) UnmarshalText(data []byte) error {
	duration, err := time.ParseDuration(string(data))
	if err != nil {
		return tracerr.Wrap(err)
	}
	d.Duration = duration
	return nil
}

// Client is the go-plasma client configuration.
type Client struct {
	Web3 struct {
		// URL is the URL of the web3 rootchain-node RPC server
		URL string `validate:"required,url"`
	} `validate:"required"`
	SmartContracts struct {
		// PlasmaFramework is the address of the deployed framework
		// contract; every other contract address is resolved from it
		PlasmaFramework ethCommon.Address `validate:"required"`
	} `validate:"required"`
	Watcher struct {
		// URL is the base URL of the watcher service
		URL string `validate:"required,url"`
	} `validate:"required"`
	Ethereum struct {
		// CallGasLimit is the default gas limit for submitted transactions
		CallGasLimit uint64
		// GasPriceDiv divides the suggested gas price
		GasPriceDiv uint64
		// ReceiptTimeout is how long to poll for a transaction receipt
		ReceiptTimeout Duration
		// IntervalReceiptLoop is the delay between receipt polls
		IntervalReceiptLoop Duration
	}
	Keystore struct {
		// Path is the directory of the encrypted keystore
		Path string
		// Password unlocks the account used to sign submissions
		Password string
	}
	ExitDB struct {
		// Path is the sqlite file tracking exits across runs; empty
		// disables persistence
		Path string
	}
	Log struct {
		Level string
	}
}

// LoadClient loads the Client configuration from path.
func LoadClient(path string) (*Client, error) {
	var cfg Client
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("error loading configuration file: %w", err))
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, tracerr.Wrap(fmt.Errorf("error validating configuration file: %w", err))
	}
	return &cfg, nil
}
