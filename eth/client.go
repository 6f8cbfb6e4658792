package eth

import (
	"github.com/ethereum/go-ethereum/accounts"
	ethKeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hermeznetwork/tracerr"
)

// ClientInterface is the eth Client interface used by go-plasma modules to
// interact with the rootchain node and the plasma smart contracts.
type ClientInterface interface {
	EthereumInterface
	RootchainInterface
}

//
// Implementation
//

var (
	_ RootchainInterface = (*RootchainClient)(nil)
	_ ClientInterface    = (*Client)(nil)
)

// Client is used to interact with the rootchain and the plasma smart
// contracts.
type Client struct {
	*EthereumClient
	*RootchainClient
}

// NewClient creates a new Client to interact with the rootchain and the
// plasma smart contracts deployed under the given PlasmaFramework address.
func NewClient(client *ethclient.Client, account *accounts.Account, ks *ethKeystore.KeyStore,
	config *EthereumConfig, framework ethCommon.Address) (*Client, error) {
	ethereumClient := NewEthereumClient(client, account, ks, config)
	rootchainClient, err := NewRootchainClient(ethereumClient, framework)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &Client{
		EthereumClient:  ethereumClient,
		RootchainClient: rootchainClient,
	}, nil
}
