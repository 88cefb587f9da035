/*
Package client retrieves and verifies publicly verifiable randomness from a
drand beacon chain over its HTTP API.

A client is bound to one scheme at construction time, either chained
(crypto.NewChainedScheme) or unchained (crypto.NewUnchainedScheme), and to
one chain whose info document is fetched exactly once when the client is
created. Every beacon returned by LatestRandomness or Randomness has already
passed the scheme's signature verification against that chain's public key;
anything that does not verify surfaces as drand.ErrInvalidBeacon.

WARNING: when talking to untrusted relays you should use the WithChainHash
option so that the chain info fetched at construction is validated against a
hash you obtained out of band.

Options you are likely to customize:

	WithCacheSize()
		how many verified beacons to keep locally; 0 disables caching.

	WithChainHash() / WithChainInfo()
		pin or provide the root of trust instead of accepting whatever
		the endpoint serves.

	WithPrometheus()
		enables fetch and verification metrics on a provided registry.
*/
package client
