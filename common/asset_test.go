package common

import (
	"testing"

	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestResolveAssetKind(t *testing.T) {
	assert.Equal(t, AssetEth, ResolveAssetKind(EthCurrency))
	assert.Equal(t, AssetErc20,
		ResolveAssetKind(ethCommon.HexToAddress("0x854951e37c68a99a52d9e3ae15e0cb62184a613e")))
}

func TestVaultID(t *testing.T) {
	assert.Equal(t, uint64(1), AssetEth.VaultID())
	assert.Equal(t, uint64(2), AssetErc20.VaultID())
}

func TestIsDepositPosition(t *testing.T) {
	assert.True(t, IsDepositPosition(1001))
	assert.True(t, IsDepositPosition(1))
	assert.False(t, IsDepositPosition(1000))
	assert.False(t, IsDepositPosition(123000))
	assert.False(t, IsDepositPosition(0))
}
