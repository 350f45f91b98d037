package gas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wallet-swap/pkg/chains"
)

func TestCacheTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	cache := NewCache(30*time.Second, clock)
	key := CacheKey{Chain: chains.Ethereum, Kind: Swap}

	_, ok := cache.Get(key)
	assert.False(t, ok)

	est := EstimateCost(nativeETH(), Swap, nil, 0)
	cache.Put(key, est)

	got, ok := cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, est.CostNative, got.CostNative)

	// expiry is driven by the injected clock
	now = now.Add(31 * time.Second)
	_, ok = cache.Get(key)
	assert.False(t, ok)
}

func TestCacheKeyScoping(t *testing.T) {
	cache := NewCache(time.Minute, nil)

	cache.Put(CacheKey{Chain: chains.Ethereum, Kind: Swap}, EstimateCost(nativeETH(), Swap, nil, 0))

	// a different operation kind never sees the swap entry
	_, ok := cache.Get(CacheKey{Chain: chains.Ethereum, Kind: TransferNative})
	assert.False(t, ok)

	// nor does another chain
	_, ok = cache.Get(CacheKey{Chain: chains.BSC, Kind: Swap})
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache(time.Minute, nil)
	key := CacheKey{Chain: chains.Ethereum, Kind: Swap}

	cache.Put(key, EstimateCost(nativeETH(), Swap, nil, 0))
	cache.Invalidate(key)

	_, ok := cache.Get(key)
	assert.False(t, ok)
}
