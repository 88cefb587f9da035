package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/randa-mu/drand-client-go/chain"
	"github.com/randa-mu/drand-client-go/drand"
)

// ErrInvalidScheme means the chain declares a scheme id the active scheme
// variant does not support.
var ErrInvalidScheme = errors.New("invalid scheme")

// ErrInvalidBeacon means the beacon itself is unusable: wrong structure for
// the scheme, a failed pairing check, or randomness that does not derive
// from the signature.
var ErrInvalidBeacon = errors.New("invalid beacon")

// Scheme is one beacon protocol variant. It declares which scheme ids it
// accepts and how the signed message for a round is built, and it gates
// beacons on the pairing check: Verify returns nil and leaves the beacon
// untouched, or an error and the beacon must be discarded.
//
// Verification is pure; a Scheme carries no state between calls and may be
// shared across goroutines.
type Scheme interface {
	fmt.Stringer
	// Supports reports whether this variant verifies beacons of chains
	// declaring the given scheme id.
	Supports(schemeID string) bool
	// Verify checks beacon against the chain's public key, or explains why
	// it must be rejected with an error wrapping ErrInvalidScheme or
	// ErrInvalidBeacon.
	Verify(info *chain.Info, beacon *drand.Beacon) error
}

// NewChainedScheme returns the scheme in which every round's signature
// commits to the previous round's signature, giving the chain its
// append-only ordering. Only the presented signature is checked; linkage
// trust is one hop deep and rooted in whatever round the caller trusted
// first. The full chain is deliberately not re-verified here.
func NewChainedScheme() Scheme {
	return chainedScheme{}
}

// NewUnchainedScheme returns the scheme in which every round signs its round
// number alone, so rounds verify independently and in any order.
func NewUnchainedScheme() Scheme {
	return unchainedScheme{}
}

type chainedScheme struct{}

func (chainedScheme) String() string {
	return "chained"
}

func (chainedScheme) Supports(schemeID string) bool {
	// chains created before scheme ids existed are chained
	return schemeID == "" || schemeID == chain.DefaultSchemeID
}

func (s chainedScheme) Verify(info *chain.Info, beacon *drand.Beacon) error {
	if !s.Supports(info.Scheme) {
		return fmt.Errorf("chain declares scheme %q: %w", info.Scheme, ErrInvalidScheme)
	}
	if len(beacon.PreviousSignature) == 0 {
		return fmt.Errorf("chained beacon for round %d has no previous signature: %w", beacon.Round, ErrInvalidBeacon)
	}
	return verifyBeacon(info, beacon, chainedBeaconMessage(beacon.PreviousSignature, beacon.Round))
}

type unchainedScheme struct{}

func (unchainedScheme) String() string {
	return "unchained"
}

func (unchainedScheme) Supports(schemeID string) bool {
	return schemeID == chain.UnchainedSchemeID ||
		schemeID == chain.UnchainedOnG1SchemeID ||
		schemeID == chain.ShortSigSchemeID
}

func (s unchainedScheme) Verify(info *chain.Info, beacon *drand.Beacon) error {
	if !s.Supports(info.Scheme) {
		return fmt.Errorf("chain declares scheme %q: %w", info.Scheme, ErrInvalidScheme)
	}
	// a previous signature on an unchained beacon is surplus, not an error
	return verifyBeacon(info, beacon, unchainedBeaconMessage(beacon.Round))
}

// verifyBeacon runs the pairing check shared by both variants and, when the
// record carries a randomness field, checks it derives from the signature.
func verifyBeacon(info *chain.Info, beacon *drand.Beacon, msg []byte) error {
	v, err := VerifierFor(info.Scheme)
	if err != nil {
		return err
	}
	if !v.Verify(info.PublicKey, msg, beacon.Signature) {
		return fmt.Errorf("signature of round %d does not verify: %w", beacon.Round, ErrInvalidBeacon)
	}
	if len(beacon.Randomness) > 0 && !bytes.Equal(beacon.Randomness, RandomnessFromSignature(beacon.Signature)) {
		return fmt.Errorf("randomness of round %d does not derive from its signature: %w", beacon.Round, ErrInvalidBeacon)
	}
	return nil
}

// RandomnessFromSignature derives the publishable randomness of a round from
// its signature.
func RandomnessFromSignature(sig []byte) []byte {
	out := sha256.Sum256(sig)
	return out[:]
}

// chainedBeaconMessage is H(previousSignature || round), the message signed
// by chains running the chained scheme.
func chainedBeaconMessage(prevSig []byte, round uint64) []byte {
	h := sha256.New()
	_, _ = h.Write(prevSig)
	_, _ = h.Write(roundToBytes(round))
	return h.Sum(nil)
}

// unchainedBeaconMessage is H(round), the message signed by chains running
// any unchained scheme.
func unchainedBeaconMessage(round uint64) []byte {
	h := sha256.New()
	_, _ = h.Write(roundToBytes(round))
	return h.Sum(nil)
}

func roundToBytes(r uint64) []byte {
	buff := make([]byte, 8)
	binary.BigEndian.PutUint64(buff, r)
	return buff
}
