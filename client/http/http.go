package http

import (
	"context"
	"fmt"
	"io"
	nhttp "net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randa-mu/drand-client-go/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Transport fetches beacon API documents over HTTP. A non-2xx response is a
// failure; one call is one GET, retries are the caller's business.
type Transport struct {
	client *nhttp.Client
}

// NewTransport wraps the given HTTP client; pass nil for a default client
// with a request timeout.
func NewTransport(client *nhttp.Client) *Transport {
	if client == nil {
		client = &nhttp.Client{Timeout: defaultTimeout}
	}
	return &Transport{client: client}
}

// Fetch issues one GET and returns the raw body.
func (t *Transport) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, span := otel.Tracer("client/http").Start(ctx, "fetch")
	span.SetAttributes(attribute.String("url", url))
	defer span.End()

	req, err := nhttp.NewRequestWithContext(ctx, nhttp.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		metrics.FetchFailure()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nhttp.StatusOK {
		metrics.FetchFailure()
		return nil, fmt.Errorf("unexpected HTTP status %d fetching %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FetchFailure()
		return nil, err
	}
	metrics.FetchSuccess()
	return body, nil
}

// Close frees the idle connections kept by the underlying pool.
func (t *Transport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// IsServerReady probes the health endpoint of a beacon API server.
func IsServerReady(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req, err := nhttp.NewRequestWithContext(ctx, nhttp.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := nhttp.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nhttp.StatusOK {
		return fmt.Errorf("server %s not ready: status %d", baseURL, resp.StatusCode)
	}
	return nil
}
