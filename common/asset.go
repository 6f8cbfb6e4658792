package common

import (
	ethCommon "github.com/ethereum/go-ethereum/common"
)

// AssetKind is the enumerated asset class of a currency, resolved once at
// the API boundary instead of re-branching on the currency value inside
// every operation.
type AssetKind int

const (
	// AssetEth is the chain's native asset, identified by the zero address
	AssetEth AssetKind = iota + 1
	// AssetErc20 is any token contract
	AssetErc20
)

// ResolveAssetKind classifies a currency identifier.
func ResolveAssetKind(currency ethCommon.Address) AssetKind {
	if currency == EthCurrency {
		return AssetEth
	}
	return AssetErc20
}

// VaultID returns the rootchain vault id responsible for the asset kind.
func (k AssetKind) VaultID() uint64 {
	switch k {
	case AssetEth:
		return 1
	default:
		return 2
	}
}
