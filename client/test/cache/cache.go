package cache

import (
	"sync"

	"github.com/randa-mu/drand-client-go/drand"
)

// MapCache is a simple unbounded cache backed by a map, for tests that need
// to observe exactly what the client cached.
type MapCache struct {
	sync.RWMutex
	data map[uint64]*drand.Beacon
}

// NewMapCache creates a new in memory cache backed by a map.
func NewMapCache() *MapCache {
	return &MapCache{data: make(map[uint64]*drand.Beacon)}
}

// TryGet provides a round beacon or nil if it is not cached.
func (mc *MapCache) TryGet(round uint64) *drand.Beacon {
	mc.RLock()
	defer mc.RUnlock()
	return mc.data[round]
}

// Add adds an item to the cache.
func (mc *MapCache) Add(round uint64, b *drand.Beacon) {
	mc.Lock()
	mc.data[round] = b
	mc.Unlock()
}

// Len returns how many beacons are cached.
func (mc *MapCache) Len() int {
	mc.RLock()
	defer mc.RUnlock()
	return len(mc.data)
}
