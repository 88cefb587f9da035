package client

import (
	clock "github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/drand/drand/v2/common/log"

	"github.com/randa-mu/drand-client-go/chain"
	"github.com/randa-mu/drand-client-go/drand"
)

type clientConfig struct {
	// transport used for every fetch; defaults to the HTTP transport.
	transport drand.Transport
	// full chain information - serves as a root of trust and skips the
	// /info fetch at construction time.
	chainInfo *chain.Info
	// expected chain hash; construction fails when the fetched chain info
	// does not hash to it.
	chainHash []byte
	// cache size - how many verified beacons to keep locally.
	cacheSize int
	// cache overrides the default LRU cache with a custom implementation.
	cache Cache
	// customized client log.
	log log.Logger
	// clock drives Watch polling; swapped for a fake one in tests.
	clock clock.Clock
	// prometheus is an interface to a Prometheus system
	prometheus prometheus.Registerer
}

// Option is an option configuring a client.
type Option func(cfg *clientConfig) error

// WithTransport replaces the default HTTP transport.
func WithTransport(t drand.Transport) Option {
	return func(cfg *clientConfig) error {
		cfg.transport = t
		return nil
	}
}

// WithChainInfo configures the client to root trust in the given chain
// information, preventing the construction-time fetch of /info.
func WithChainInfo(info *chain.Info) Option {
	return func(cfg *clientConfig) error {
		cfg.chainInfo = info
		return nil
	}
}

// WithChainHash pins the client to a chain hash: construction fails with
// ErrInvalidChainInfo when the fetched chain info does not hash to it.
func WithChainHash(chainHash []byte) Option {
	return func(cfg *clientConfig) error {
		cfg.chainHash = chainHash
		return nil
	}
}

// WithCacheSize specifies how many verified beacons should be kept locally.
// Default 32; zero disables caching.
func WithCacheSize(size int) Option {
	return func(cfg *clientConfig) error {
		cfg.cacheSize = size
		return nil
	}
}

// WithCache replaces the built-in LRU cache with a custom implementation.
func WithCache(cache Cache) Option {
	return func(cfg *clientConfig) error {
		cfg.cache = cache
		return nil
	}
}

// WithLogger overrides the logging options for the client.
func WithLogger(l log.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.log = l
		return nil
	}
}

// WithClock replaces the wall clock driving Watch, for tests.
func WithClock(clk clock.Clock) Option {
	return func(cfg *clientConfig) error {
		cfg.clock = clk
		return nil
	}
}

// WithPrometheus specifies a registry into which to report metrics.
func WithPrometheus(r prometheus.Registerer) Option {
	return func(cfg *clientConfig) error {
		cfg.prometheus = r
		return nil
	}
}
