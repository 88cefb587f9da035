package drand

import (
	"errors"
)

// ErrInvalidRound means a caller asked for round 0, which only ever
// identifies the genesis seed and never carries randomness.
var ErrInvalidRound = errors.New("invalid round")

// ErrNotResponding means the remote endpoint could not complete the request.
var ErrNotResponding = errors.New("not responding")

// ErrInvalidChainInfo means the chain info document failed to decode or is
// structurally incomplete. Client construction fails outright on it.
var ErrInvalidChainInfo = errors.New("invalid chain info")

// ErrInvalidBeacon covers every way a fetched beacon can be unusable: a body
// that fails to decode, a missing or unexpected previous signature, a scheme
// id the client was not built for, or a failed signature verification.
// Callers deliberately cannot tell these apart from this error alone.
var ErrInvalidBeacon = errors.New("invalid beacon")
