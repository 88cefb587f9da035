package http_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drand/drand/v2/common/log"

	"github.com/randa-mu/drand-client-go/chain"
	"github.com/randa-mu/drand-client-go/client"
	"github.com/randa-mu/drand-client-go/client/http"
	httpmock "github.com/randa-mu/drand-client-go/client/test/http/mock"
)

func TestFetchChainInfo(t *testing.T) {
	baseURL, info, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 3)
	defer shutdown()

	transport := http.NewTransport(nil)
	defer transport.Close()

	fetched, err := chain.FetchInfo(context.Background(), transport, baseURL)
	require.NoError(t, err)
	require.Equal(t, info.Hash(), fetched.Hash())
}

func TestFetchMissingRoundFails(t *testing.T) {
	baseURL, _, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 3)
	defer shutdown()

	transport := http.NewTransport(nil)
	defer transport.Close()

	_, err := transport.Fetch(context.Background(), baseURL+"/public/42")
	require.Error(t, err)
}

func TestIsServerReady(t *testing.T) {
	baseURL, _, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 1)

	require.NoError(t, http.IsServerReady(context.Background(), baseURL))

	shutdown()
	require.Error(t, http.IsServerReady(context.Background(), baseURL))
}

func TestClientOverHTTP(t *testing.T) {
	baseURL, _, beacons, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 4)
	defer shutdown()

	c, err := client.NewUnchained(context.Background(), baseURL,
		client.WithLogger(log.New(nil, log.DebugLevel, true)))
	require.NoError(t, err)
	defer c.Close()

	b, err := c.Randomness(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, &beacons[1], b)

	latest, err := c.LatestRandomness(context.Background())
	require.NoError(t, err)
	require.Equal(t, beacons[3].Round, latest.Round)
}

func TestClientOverHTTPChained(t *testing.T) {
	baseURL, _, beacons, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.DefaultSchemeID, 3)
	defer shutdown()

	c, err := client.NewChained(context.Background(), baseURL,
		client.WithLogger(log.New(nil, log.DebugLevel, true)))
	require.NoError(t, err)
	defer c.Close()

	b, err := c.Randomness(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, beacons[1].Signature, b.GetPreviousSignature())
}
