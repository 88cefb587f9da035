package drand

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randa-mu/drand-client-go/chain"
	httpmock "github.com/randa-mu/drand-client-go/client/test/http/mock"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := CLI()
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"drand-client"}, args...))
	return out.String(), err
}

func TestGetPublicRound(t *testing.T) {
	baseURL, _, beacons, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 3)
	defer shutdown()

	out, err := runCLI(t, "get", "public", "--url", baseURL, "--scheme", "unchained", "--round", "3")
	require.NoError(t, err)
	require.Contains(t, out, "round 3 randomness ")
	require.Contains(t, out, fmt.Sprintf("%x", beacons[2].Randomness))
}

func TestGetPublicLatest(t *testing.T) {
	baseURL, _, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 4)
	defer shutdown()

	out, err := runCLI(t, "get", "public", "--url", baseURL, "--scheme", "unchained")
	require.NoError(t, err)
	require.Contains(t, out, "round 4 randomness ")
}

func TestGetPublicJSON(t *testing.T) {
	baseURL, _, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 2)
	defer shutdown()

	out, err := runCLI(t, "get", "public", "--url", baseURL, "--scheme", "unchained", "--round", "1", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"round": 1`)
	require.Contains(t, out, `"signature"`)
}

func TestGetChainInfo(t *testing.T) {
	baseURL, info, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 1)
	defer shutdown()

	out, err := runCLI(t, "get", "chain-info", "--url", baseURL, "--scheme", "unchained")
	require.NoError(t, err)
	require.Contains(t, out, info.HashString())

	out, err = runCLI(t, "get", "chain-info", "--url", baseURL, "--scheme", "unchained", "--hash")
	require.NoError(t, err)
	require.Equal(t, info.HashString(), strings.TrimSpace(out))
}

func TestGetPublicSchemeMismatch(t *testing.T) {
	baseURL, _, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 2)
	defer shutdown()

	_, err := runCLI(t, "get", "public", "--url", baseURL, "--round", "1")
	require.Error(t, err)
}

func TestGroupConfTrustRoot(t *testing.T) {
	baseURL, info, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 2)
	defer shutdown()

	path := filepath.Join(t.TempDir(), "group.json")
	var buff bytes.Buffer
	require.NoError(t, info.ToJSON(&buff))
	require.NoError(t, os.WriteFile(path, buff.Bytes(), 0o600))

	out, err := runCLI(t, "get", "public", "--url", baseURL, "--scheme", "unchained",
		"--group-conf", path, "--round", "2")
	require.NoError(t, err)
	require.Contains(t, out, "round 2 randomness ")
}

func TestChainHashPinning(t *testing.T) {
	baseURL, info, _, shutdown := httpmock.NewMockHTTPPublicServer(t, chain.UnchainedSchemeID, 2)
	defer shutdown()

	out, err := runCLI(t, "get", "public", "--url", baseURL, "--scheme", "unchained",
		"--chain-hash", info.HashString(), "--round", "1")
	require.NoError(t, err)
	require.Contains(t, out, "round 1 randomness ")

	_, err = runCLI(t, "get", "public", "--url", baseURL, "--scheme", "unchained",
		"--chain-hash", strings.Repeat("00", 32), "--round", "1")
	require.Error(t, err)
}

func TestNoURLFails(t *testing.T) {
	_, err := runCLI(t, "get", "public", "--scheme", "unchained")
	require.Error(t, err)
	require.Contains(t, err.Error(), "url")
}

func TestUnknownSchemeFails(t *testing.T) {
	_, err := runCLI(t, "get", "public", "--url", "http://localhost:0", "--scheme", "wat")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown scheme")
}
