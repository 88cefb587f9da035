package drand

import (
	"context"
)

// Transport issues a single GET against a fully formed URL and hands back the
// raw body. A non-2xx status is a transport failure; retries, headers and
// connection pooling are the implementation's concern, never the caller's.
type Transport interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
