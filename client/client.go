package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	clock "github.com/jonboulle/clockwork"
	json "github.com/nikkolasg/hexjson"

	"github.com/drand/drand/v2/common/log"

	"github.com/randa-mu/drand-client-go/chain"
	"github.com/randa-mu/drand-client-go/client/http"
	"github.com/randa-mu/drand-client-go/crypto"
	"github.com/randa-mu/drand-client-go/drand"
	"github.com/randa-mu/drand-client-go/internal/metrics"
)

// Client fetches beacons from one drand API endpoint and hands none of them
// to the caller before the active scheme has verified them against the
// chain's public key. Construction fetches the chain info once; after that a
// Client is immutable and any number of goroutines may use it concurrently.
type Client struct {
	baseURL   string
	scheme    crypto.Scheme
	transport drand.Transport
	info      *chain.Info
	cache     Cache
	clock     clock.Clock
	log       log.Logger
}

// New creates a client for the chain served at baseURL, verifying every
// beacon with the given scheme. It fetches and parses the chain info before
// returning; if that fails, no client is produced.
func New(ctx context.Context, baseURL string, scheme crypto.Scheme, options ...Option) (*Client, error) {
	cfg := clientConfig{
		cacheSize: 32,
	}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.log == nil {
		cfg.log = log.DefaultLogger()
	}
	if cfg.transport == nil {
		cfg.transport = http.NewTransport(nil)
	}
	if cfg.clock == nil {
		cfg.clock = clock.NewRealClock()
	}

	info := cfg.chainInfo
	if info == nil {
		var err error
		info, err = chain.FetchInfo(ctx, cfg.transport, baseURL)
		if err != nil {
			cfg.log.Errorw("", "client", "failed to fetch chain info", "url", baseURL, "err", err)
			return nil, err
		}
	}
	if cfg.chainHash != nil && !bytes.Equal(cfg.chainHash, info.Hash()) {
		return nil, fmt.Errorf("chain at %s has hash %s, expected %s: %w",
			baseURL, info.HashString(), hex.EncodeToString(cfg.chainHash), drand.ErrInvalidChainInfo)
	}

	cache := cfg.cache
	if cache == nil {
		var err error
		cache, err = makeCache(cfg.cacheSize)
		if err != nil {
			return nil, err
		}
	}

	if cfg.prometheus != nil {
		// registration errors are ignored; callers may re-use registries
		// across clients
		_ = metrics.RegisterClientMetrics(cfg.prometheus)
	}

	return &Client{
		baseURL:   baseURL,
		scheme:    scheme,
		transport: cfg.transport,
		info:      info,
		cache:     cache,
		clock:     cfg.clock,
		log:       cfg.log,
	}, nil
}

// NewChained creates a client for a chain running the chained scheme.
func NewChained(ctx context.Context, baseURL string, options ...Option) (*Client, error) {
	return New(ctx, baseURL, crypto.NewChainedScheme(), options...)
}

// NewUnchained creates a client for a chain running an unchained scheme.
func NewUnchained(ctx context.Context, baseURL string, options ...Option) (*Client, error) {
	return New(ctx, baseURL, crypto.NewUnchainedScheme(), options...)
}

func (c *Client) String() string {
	return fmt.Sprintf("HTTP(%s, %s)", c.baseURL, c.scheme)
}

// Info returns the chain info fetched at construction time. Shared read-only;
// callers must not mutate it.
func (c *Client) Info() *chain.Info {
	return c.info
}

// LatestRandomness fetches and verifies the most recent beacon.
func (c *Client) LatestRandomness(ctx context.Context) (*drand.Beacon, error) {
	b, err := c.fetchBeacon(ctx, "latest")
	if err != nil {
		return nil, err
	}
	c.cache.Add(b.Round, b)
	return b, nil
}

// Randomness fetches and verifies the beacon of the given round. Round 0
// identifies the genesis seed, never randomness, and fails before any
// network call is made.
func (c *Client) Randomness(ctx context.Context, round uint64) (*drand.Beacon, error) {
	if round == 0 {
		return nil, fmt.Errorf("round 0 is the genesis seed: %w", drand.ErrInvalidRound)
	}
	if b := c.cache.TryGet(round); b != nil {
		return b, nil
	}
	b, err := c.fetchBeacon(ctx, strconv.FormatUint(round, 10))
	if err != nil {
		return nil, err
	}
	if b.Round != round {
		c.log.Warnw("", "client", "round mismatch", "expected", round, "got", b.Round)
		return nil, fmt.Errorf("round mismatch (malicious relay): %d != %d: %w", b.Round, round, drand.ErrInvalidBeacon)
	}
	c.cache.Add(round, b)
	return b, nil
}

// fetchBeacon is the shared fetch-and-verify path for both entry points.
// Whatever the scheme layer found wrong with a beacon is narrowed to
// ErrInvalidBeacon at this boundary.
func (c *Client) fetchBeacon(ctx context.Context, tag string) (*drand.Beacon, error) {
	url := fmt.Sprintf("%s/public/%s", c.baseURL, tag)
	body, err := c.transport.Fetch(ctx, url)
	if err != nil {
		c.log.Debugw("", "client", "fetch failed", "url", url, "err", err)
		return nil, fmt.Errorf("fetching %s: %w", url, drand.ErrNotResponding)
	}

	b := new(drand.Beacon)
	if err := json.Unmarshal(body, b); err != nil {
		return nil, fmt.Errorf("decoding beacon %q: %w", tag, drand.ErrInvalidBeacon)
	}

	if err := c.scheme.Verify(c.info, b); err != nil {
		metrics.VerificationFailure()
		c.log.Warnw("", "client", "rejected beacon", "round", b.Round, "scheme", c.scheme.String(), "err", err)
		return nil, fmt.Errorf("verifying beacon %q: %w", tag, drand.ErrInvalidBeacon)
	}
	return b, nil
}

// RoundAt returns the round of this chain emitted most recently before t.
func (c *Client) RoundAt(t time.Time) uint64 {
	return c.info.RoundAt(t)
}

// Close frees resources held by the transport, if any.
func (c *Client) Close() error {
	if closer, ok := c.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
