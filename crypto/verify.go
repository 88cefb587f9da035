package crypto

import (
	"github.com/drand/kyber"
	bls12381 "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/sign"
	signBls "github.com/drand/kyber/sign/bls"

	"github.com/randa-mu/drand-client-go/chain"
)

// hash-to-curve domain separation tags from RFC 9380
var (
	domainG1 = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_")
	domainG2 = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")
)

// Verifier performs the pairing check for one scheme id. It fixes the group
// public keys live on, the group signatures live on, and the domain
// separation used to hash messages to the curve. A Verifier has no state and
// is safe for use by any number of goroutines.
type Verifier struct {
	keyGroup kyber.Group
	sig      sign.Scheme
}

// VerifierFor returns the pairing configuration declared by the given scheme
// id, or ErrInvalidScheme for ids this client knows nothing about. The empty
// id is the legacy alias for the original chained scheme.
func VerifierFor(schemeID string) (*Verifier, error) {
	switch schemeID {
	case "", chain.DefaultSchemeID, chain.UnchainedSchemeID:
		suite := bls12381.NewBLS12381Suite()
		return &Verifier{keyGroup: suite.G1(), sig: signBls.NewSchemeOnG2(suite)}, nil
	case chain.UnchainedOnG1SchemeID:
		// the first swapped-group deployments hashed to G1 with the G2
		// domain; the tag is kept so their signatures stay verifiable
		suite := bls12381.NewBLS12381SuiteWithDST(domainG2, nil)
		return &Verifier{keyGroup: suite.G2(), sig: signBls.NewSchemeOnG1(suite)}, nil
	case chain.ShortSigSchemeID:
		suite := bls12381.NewBLS12381SuiteWithDST(domainG1, nil)
		return &Verifier{keyGroup: suite.G2(), sig: signBls.NewSchemeOnG1(suite)}, nil
	}
	return nil, ErrInvalidScheme
}

// Verify reports whether signature is a valid BLS signature of message under
// publicKey. Malformed or wrong-length group element encodings are reported
// as not verified, never as a panic: signature validity is a boolean
// outcome.
func (v *Verifier) Verify(publicKey, message, signature []byte) bool {
	pub := v.keyGroup.Point()
	if err := pub.UnmarshalBinary(publicKey); err != nil {
		return false
	}
	return v.sig.Verify(pub, message, signature) == nil
}
