package mock

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	json "github.com/nikkolasg/hexjson"

	"github.com/randa-mu/drand-client-go/chain"
	"github.com/randa-mu/drand-client-go/drand"
)

// Transport is a mocked drand.Transport serving canned bodies keyed by URL
// path. It records every URL it is asked for, so tests can assert which
// requests were (or were not) made.
type Transport struct {
	sync.Mutex
	// Responses maps a URL path suffix, e.g. "/public/latest", to the body
	// served for it.
	Responses map[string][]byte
	// Err, when set, fails every fetch. Used to simulate a dead endpoint.
	Err error
	// Requests collects the URLs fetched, in order.
	Requests []string
}

// Fetch serves the canned body whose key suffixes the URL.
func (t *Transport) Fetch(_ context.Context, url string) ([]byte, error) {
	t.Lock()
	defer t.Unlock()
	t.Requests = append(t.Requests, url)
	if t.Err != nil {
		return nil, t.Err
	}
	for suffix, body := range t.Responses {
		if strings.HasSuffix(url, suffix) {
			return body, nil
		}
	}
	return nil, fmt.Errorf("no canned response for %s", url)
}

// RequestCount returns how many fetches were issued so far.
func (t *Transport) RequestCount() int {
	t.Lock()
	defer t.Unlock()
	return len(t.Requests)
}

// SetResponse replaces the body served for one path suffix.
func (t *Transport) SetResponse(suffix string, body []byte) {
	t.Lock()
	defer t.Unlock()
	if t.Responses == nil {
		t.Responses = make(map[string][]byte)
	}
	t.Responses[suffix] = body
}

// NewTransport builds a transport serving the given chain info on /info and
// each beacon on /public/{round}, with the last beacon doubling as
// /public/latest.
func NewTransport(info *chain.Info, beacons []drand.Beacon) *Transport {
	responses := make(map[string][]byte)

	var buff bytes.Buffer
	if err := info.ToJSON(&buff); err != nil {
		panic(err)
	}
	responses["/info"] = buff.Bytes()

	for i := range beacons {
		body, err := json.Marshal(&beacons[i])
		if err != nil {
			panic(err)
		}
		responses[fmt.Sprintf("/public/%d", beacons[i].Round)] = body
		if i == len(beacons)-1 {
			responses["/public/latest"] = body
		}
	}
	return &Transport{Responses: responses}
}
