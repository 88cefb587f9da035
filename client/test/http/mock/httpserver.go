package mock

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	json "github.com/nikkolasg/hexjson"

	"github.com/randa-mu/drand-client-go/chain"
	resultmock "github.com/randa-mu/drand-client-go/client/test/result/mock"
	"github.com/randa-mu/drand-client-go/drand"
)

// NewMockHTTPPublicServer serves a freshly generated beacon chain over the
// drand public HTTP API: /info, /public/latest, /public/{round} and /health.
// It returns the base URL, the chain info, the beacons it serves, and a
// function shutting it down.
func NewMockHTTPPublicServer(t *testing.T, schemeID string, count int) (string, *chain.Info, []drand.Beacon, func()) {
	t.Helper()

	info, beacons := resultmock.VerifiableBeacons(count, schemeID)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/info", func(w http.ResponseWriter, _ *http.Request) {
		if err := info.ToJSON(w); err != nil {
			t.Errorf("serving chain info: %v", err)
		}
	})
	mux.HandleFunc("/public/", func(w http.ResponseWriter, r *http.Request) {
		tag := strings.TrimPrefix(r.URL.Path, "/public/")
		var beacon *drand.Beacon
		if tag == "latest" {
			beacon = &beacons[len(beacons)-1]
		} else {
			round, err := strconv.ParseUint(tag, 10, 64)
			if err != nil || round == 0 || round > uint64(len(beacons)) {
				http.NotFound(w, r)
				return
			}
			beacon = &beacons[round-1]
		}
		body, err := json.Marshal(beacon)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(body)
	})

	server := httptest.NewServer(mux)
	return server.URL, info, beacons, server.Close
}
