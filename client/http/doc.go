/*
Package http provides the HTTP transport used to reach drand's JSON API
(https://drand.love/developer/http-api/).

The transport is deliberately thin: it issues a single GET per call and
hands the raw body back to the client, which does all decoding and
verification. Wrap your own *http.Client with NewTransport to control
timeouts, proxies or connection pooling.
*/
package http
