package crypto_test

import (
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/randa-mu/drand-client-go/chain"
	resultmock "github.com/randa-mu/drand-client-go/client/test/result/mock"
	"github.com/randa-mu/drand-client-go/crypto"
	"github.com/randa-mu/drand-client-go/drand"
)

func schemeFor(schemeID string) crypto.Scheme {
	if schemeID == "" || schemeID == chain.DefaultSchemeID {
		return crypto.NewChainedScheme()
	}
	return crypto.NewUnchainedScheme()
}

func TestVerifyAcrossSchemes(t *testing.T) {
	for _, id := range []string{
		"",
		chain.DefaultSchemeID,
		chain.UnchainedSchemeID,
		chain.UnchainedOnG1SchemeID,
		chain.ShortSigSchemeID,
	} {
		id := id
		name := id
		if name == "" {
			name = "legacy-empty-id"
		}
		t.Run(name, func(t *testing.T) {
			info, beacons := resultmock.VerifiableBeacons(3, id)
			scheme := schemeFor(id)
			for i := range beacons {
				require.NoError(t, scheme.Verify(info, &beacons[i]))
			}
		})
	}
}

func TestFlippedSignatureBitFails(t *testing.T) {
	info, beacons := resultmock.VerifiableBeacons(1, chain.UnchainedSchemeID)
	scheme := crypto.NewUnchainedScheme()
	require.NoError(t, scheme.Verify(info, &beacons[0]))

	beacons[0].Signature[0] ^= 0x01
	beacons[0].Randomness = nil
	err := scheme.Verify(info, &beacons[0])
	require.ErrorIs(t, err, crypto.ErrInvalidBeacon)
}

func TestChainedRequiresPreviousSignature(t *testing.T) {
	secret, pub := resultmock.Keygen(chain.DefaultSchemeID)
	info := &chain.Info{
		PublicKey:   pub,
		Period:      time.Second,
		GenesisTime: time.Now().Unix(),
		Scheme:      chain.DefaultSchemeID,
	}

	// an otherwise valid signature over the adjusted, previous-less message
	// must still be rejected before any pairing work happens
	msg := sha256.New()
	msg.Write(resultmock.RoundToBytes(5))
	sig := resultmock.Sign(secret, chain.DefaultSchemeID, msg.Sum(nil))

	beacon := &drand.Beacon{Round: 5, Signature: sig}
	err := crypto.NewChainedScheme().Verify(info, beacon)
	require.ErrorIs(t, err, crypto.ErrInvalidBeacon)
}

func TestUnchainedIgnoresPreviousSignature(t *testing.T) {
	info, beacons := resultmock.VerifiableBeacons(2, chain.UnchainedSchemeID)
	scheme := crypto.NewUnchainedScheme()

	beacons[1].PreviousSignature = beacons[0].Signature
	require.NoError(t, scheme.Verify(info, &beacons[1]))
}

func TestSchemeIDMismatchRejected(t *testing.T) {
	chainedInfo, chainedBeacons := resultmock.VerifiableBeacons(1, chain.DefaultSchemeID)
	unchainedInfo, unchainedBeacons := resultmock.VerifiableBeacons(1, chain.UnchainedSchemeID)

	err := crypto.NewUnchainedScheme().Verify(chainedInfo, &chainedBeacons[0])
	require.ErrorIs(t, err, crypto.ErrInvalidScheme)

	err = crypto.NewChainedScheme().Verify(unchainedInfo, &unchainedBeacons[0])
	require.ErrorIs(t, err, crypto.ErrInvalidScheme)
}

// A signature computed over the chained message construction must not
// verify on a chain declaring an unchained scheme, even under the right
// keypair.
func TestChainedMessageOnUnchainedChainFails(t *testing.T) {
	info, beacons := resultmock.VerifiableBeacons(2, chain.DefaultSchemeID)

	unchainedInfo := *info
	unchainedInfo.Scheme = chain.UnchainedSchemeID

	beacon := beacons[1]
	beacon.PreviousSignature = nil

	err := crypto.NewUnchainedScheme().Verify(&unchainedInfo, &beacon)
	require.ErrorIs(t, err, crypto.ErrInvalidBeacon)
}

func TestRandomnessMustDeriveFromSignature(t *testing.T) {
	info, beacons := resultmock.VerifiableBeacons(1, chain.UnchainedSchemeID)
	scheme := crypto.NewUnchainedScheme()

	beacons[0].Randomness[0] ^= 0x01
	err := scheme.Verify(info, &beacons[0])
	require.ErrorIs(t, err, crypto.ErrInvalidBeacon)
}

func TestVerifyIsIdempotent(t *testing.T) {
	info, beacons := resultmock.VerifiableBeacons(1, chain.ShortSigSchemeID)
	scheme := crypto.NewUnchainedScheme()

	require.NoError(t, scheme.Verify(info, &beacons[0]))
	require.NoError(t, scheme.Verify(info, &beacons[0]))

	beacons[0].Signature[3] ^= 0x80
	beacons[0].Randomness = nil
	require.ErrorIs(t, scheme.Verify(info, &beacons[0]), crypto.ErrInvalidBeacon)
	require.ErrorIs(t, scheme.Verify(info, &beacons[0]), crypto.ErrInvalidBeacon)
}

func TestVerifierRejectsMalformedEncodings(t *testing.T) {
	v, err := crypto.VerifierFor(chain.UnchainedSchemeID)
	require.NoError(t, err)

	info, beacons := resultmock.VerifiableBeacons(1, chain.UnchainedSchemeID)

	msg := sha256.New()
	msg.Write(resultmock.RoundToBytes(1))

	// garbage public key
	require.False(t, v.Verify([]byte("junk"), msg.Sum(nil), beacons[0].Signature))
	// garbage signature
	require.False(t, v.Verify(info.PublicKey, msg.Sum(nil), []byte{0x00}))
	// empty everything
	require.False(t, v.Verify(nil, nil, nil))
}

func TestVerifierForUnknownScheme(t *testing.T) {
	_, err := crypto.VerifierFor("not-a-scheme")
	require.ErrorIs(t, err, crypto.ErrInvalidScheme)
}

func TestRandomnessFromSignature(t *testing.T) {
	sig := []byte{0x01, 0x02}
	expected := sha256.Sum256(sig)
	require.Equal(t, expected[:], crypto.RandomnessFromSignature(sig))
}
