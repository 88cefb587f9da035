package mock

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/drand/kyber"
	bls12381 "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/share"
	"github.com/drand/kyber/sign"
	"github.com/drand/kyber/sign/tbls"
	"github.com/drand/kyber/util/random"

	"github.com/randa-mu/drand-client-go/chain"
	"github.com/randa-mu/drand-client-go/crypto"
	"github.com/randa-mu/drand-client-go/drand"
)

var domainG2 = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

// VerifiableBeacons creates a fresh keypair and a run of beacons, starting
// at round 1, that verify under the returned chain info.
func VerifiableBeacons(count int, schemeID string) (*chain.Info, []drand.Beacon) {
	keyGroup, tscheme := groupsFor(schemeID)
	secret := keyGroup.Scalar().Pick(random.New())
	public := keyGroup.Point().Mul(secret, nil)
	pub, err := public.MarshalBinary()
	if err != nil {
		panic(err)
	}

	chained := schemeID == "" || schemeID == chain.DefaultSchemeID
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		panic(err)
	}
	previous := seed

	out := make([]drand.Beacon, count)
	for i := range out {
		round := uint64(i + 1)
		var msg []byte
		if chained {
			msg = sha256Hash(previous, round)
		} else {
			msg = sha256Hash(nil, round)
		}

		sshare := share.PriShare{I: 0, V: secret}
		tsig, err := tscheme.Sign(&sshare, msg)
		if err != nil {
			panic(err)
		}
		tshare := tbls.SigShare(tsig)
		sig := tshare.Value()

		out[i] = drand.Beacon{
			Round:      round,
			Signature:  sig,
			Randomness: crypto.RandomnessFromSignature(sig),
		}
		if chained {
			out[i].PreviousSignature = previous
			previous = sig
		}
	}

	info := &chain.Info{
		PublicKey:   pub,
		Period:      time.Second,
		GenesisTime: time.Now().Unix() - int64(count),
		GroupHash:   seed,
		Scheme:      schemeID,
	}
	return info, out
}

// Sign signs an arbitrary message the way the chain behind info would,
// letting tests craft beacons with deliberately wrong message constructions.
func Sign(secret kyber.Scalar, schemeID string, msg []byte) []byte {
	_, tscheme := groupsFor(schemeID)
	sshare := share.PriShare{I: 0, V: secret}
	tsig, err := tscheme.Sign(&sshare, msg)
	if err != nil {
		panic(err)
	}
	tshare := tbls.SigShare(tsig)
	return tshare.Value()
}

// Keygen returns a keypair on the key group of the given scheme id.
func Keygen(schemeID string) (kyber.Scalar, []byte) {
	keyGroup, _ := groupsFor(schemeID)
	secret := keyGroup.Scalar().Pick(random.New())
	public := keyGroup.Point().Mul(secret, nil)
	pub, err := public.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return secret, pub
}

// groupsFor mirrors the pairing configuration the verifier derives from a
// scheme id, so generated signatures land on the group the client checks.
func groupsFor(schemeID string) (kyber.Group, sign.ThresholdScheme) {
	switch schemeID {
	case "", chain.DefaultSchemeID, chain.UnchainedSchemeID:
		suite := bls12381.NewBLS12381Suite()
		return suite.G1(), tbls.NewThresholdSchemeOnG2(suite)
	case chain.UnchainedOnG1SchemeID:
		suite := bls12381.NewBLS12381SuiteWithDST(domainG2, nil)
		return suite.G2(), tbls.NewThresholdSchemeOnG1(suite)
	case chain.ShortSigSchemeID:
		suite := bls12381.NewBLS12381Suite()
		return suite.G2(), tbls.NewThresholdSchemeOnG1(suite)
	}
	panic("unknown scheme id " + schemeID)
}

func sha256Hash(prev []byte, round uint64) []byte {
	h := sha256.New()
	if prev != nil {
		_, _ = h.Write(prev)
	}
	_ = binary.Write(h, binary.BigEndian, round)
	return h.Sum(nil)
}

// RoundToBytes exposes the fixed-width big endian round encoding used in
// beacon messages.
func RoundToBytes(r uint64) []byte {
	buff := make([]byte, 8)
	binary.BigEndian.PutUint64(buff, r)
	return buff
}
