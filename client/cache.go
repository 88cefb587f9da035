package client

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/randa-mu/drand-client-go/drand"
)

// Cache stores verified beacons keyed by round. Only beacons that already
// passed scheme verification go in, so a hit never skips a check.
type Cache interface {
	// TryGet provides a beacon or nil if it is not cached.
	TryGet(round uint64) *drand.Beacon
	// Add adds a verified beacon to the cache.
	Add(round uint64, b *drand.Beacon)
}

// makeCache creates a cache of the given size, or a no-op cache for size 0.
func makeCache(size int) (Cache, error) {
	if size <= 0 {
		return &nilCache{}, nil
	}
	arc, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &lruCache{arc}, nil
}

type lruCache struct {
	data *lru.ARCCache
}

func (c *lruCache) TryGet(round uint64) *drand.Beacon {
	v, ok := c.data.Get(round)
	if !ok {
		return nil
	}
	return v.(*drand.Beacon)
}

func (c *lruCache) Add(round uint64, b *drand.Beacon) {
	c.data.Add(round, b)
}

// nilCache implements a cache that never stores anything.
type nilCache struct{}

func (*nilCache) TryGet(_ uint64) *drand.Beacon {
	return nil
}

func (*nilCache) Add(_ uint64, _ *drand.Beacon) {}
