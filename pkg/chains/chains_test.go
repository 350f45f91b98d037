package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	info, ok := Lookup(Ethereum)
	require.True(t, ok)
	assert.Equal(t, uint64(1), info.ChainID)
	assert.Equal(t, "ETH", info.NativeSymbol)
	assert.Equal(t, "WETH", info.WrappedSymbol)

	_, ok = Lookup(Chain("somechain"))
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	c, err := Parse("  Ethereum ")
	require.NoError(t, err)
	assert.Equal(t, Ethereum, c)

	_, err = Parse("dogechain")
	assert.Error(t, err)
}

func TestAllStableOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 6)
	assert.Equal(t, Ethereum, all[0].Chain)
	assert.Equal(t, All()[3].Chain, all[3].Chain)
}

func TestIsNativeSentinel(t *testing.T) {
	assert.True(t, IsNativeSentinel("native"))
	assert.True(t, IsNativeSentinel("NATIVE"))
	assert.True(t, IsNativeSentinel("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"))
	assert.False(t, IsNativeSentinel("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"))
	assert.False(t, IsNativeSentinel(""))
}
