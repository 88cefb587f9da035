package chain

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	json "github.com/nikkolasg/hexjson"

	"github.com/randa-mu/drand-client-go/drand"
)

// Scheme ids a chain can declare in its info document. Chains created before
// scheme ids existed advertise an empty id and run the chained scheme.
const (
	// DefaultSchemeID is the original chained scheme, keys on G1 and
	// signatures on G2.
	DefaultSchemeID = "pedersen-bls-chained"
	// UnchainedSchemeID is the unchained scheme with the same group layout
	// as the default one.
	UnchainedSchemeID = "pedersen-bls-unchained"
	// UnchainedOnG1SchemeID is the unchained scheme with swapped groups:
	// keys on G2 and short signatures on G1.
	UnchainedOnG1SchemeID = "bls-unchained-on-g1"
	// ShortSigSchemeID is the RFC 9380 variant of the swapped-group
	// unchained scheme, using the proper G1 domain separation tag.
	ShortSigSchemeID = "bls-unchained-g1-rfc9380"
)

// Info is the immutable descriptor of a beacon chain: the trust anchor every
// beacon fetched from that chain is verified against. It is parsed once per
// client lifetime and only ever shared read-only afterwards.
type Info struct {
	PublicKey   []byte
	Period      time.Duration
	GenesisTime int64
	GroupHash   []byte
	Scheme      string
}

// group element sizes on BLS12-381, the only valid public key encodings
const (
	sizeG1 = 48
	sizeG2 = 96
)

type infoJSON struct {
	PublicKey   []byte `json:"public_key"`
	Period      uint32 `json:"period"`
	GenesisTime int64  `json:"genesis_time"`
	Hash        []byte `json:"hash,omitempty"`
	GroupHash   []byte `json:"groupHash,omitempty"`
	Scheme      string `json:"schemeID,omitempty"`
}

// infoTOML mirrors the fields of a chain info document for trust roots kept
// on disk, with byte fields hex encoded.
type infoTOML struct {
	PublicKey   string
	Period      uint32
	GenesisTime int64
	GroupHash   string
	SchemeID    string
}

// InfoFromJSON decodes a chain info document as served on the /info
// endpoint. A document whose hash field does not match the digest recomputed
// from its own content is rejected.
func InfoFromJSON(r io.Reader) (*Info, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading chain info: %w", drand.ErrInvalidChainInfo)
	}

	w := infoJSON{}
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decoding chain info: %w", drand.ErrInvalidChainInfo)
	}

	info := &Info{
		PublicKey:   w.PublicKey,
		Period:      time.Duration(w.Period) * time.Second,
		GenesisTime: w.GenesisTime,
		GroupHash:   w.GroupHash,
		Scheme:      w.Scheme,
	}
	if err := info.validate(); err != nil {
		return nil, err
	}
	if len(w.Hash) > 0 && !bytes.Equal(w.Hash, info.Hash()) {
		return nil, fmt.Errorf("chain info hash does not match its content: %w", drand.ErrInvalidChainInfo)
	}
	return info, nil
}

// InfoFromTOML reads a chain info trust root from a TOML file.
func InfoFromTOML(path string) (*Info, error) {
	w := infoTOML{}
	if _, err := toml.DecodeFile(path, &w); err != nil {
		return nil, fmt.Errorf("decoding chain info file %q: %w", path, drand.ErrInvalidChainInfo)
	}
	pk, err := hex.DecodeString(w.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decoding public key in %q: %w", path, drand.ErrInvalidChainInfo)
	}
	gh, err := hex.DecodeString(w.GroupHash)
	if err != nil {
		return nil, fmt.Errorf("decoding group hash in %q: %w", path, drand.ErrInvalidChainInfo)
	}

	info := &Info{
		PublicKey:   pk,
		Period:      time.Duration(w.Period) * time.Second,
		GenesisTime: w.GenesisTime,
		GroupHash:   gh,
		Scheme:      w.SchemeID,
	}
	if err := info.validate(); err != nil {
		return nil, err
	}
	return info, nil
}

// InfoFromFile reads a chain info trust root from disk, trying TOML first
// and falling back to the JSON wire format.
func InfoFromFile(path string) (*Info, error) {
	info, tomlErr := InfoFromTOML(path)
	if tomlErr == nil {
		return info, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chain info file %q: %w", path, drand.ErrInvalidChainInfo)
	}
	defer f.Close()
	return InfoFromJSON(f)
}

// FetchInfo issues a single GET on {baseURL}/info and decodes the result. It
// never retries and never caches.
func FetchInfo(ctx context.Context, t drand.Transport, baseURL string) (*Info, error) {
	body, err := t.Fetch(ctx, baseURL+"/info")
	if err != nil {
		return nil, fmt.Errorf("fetching %s/info: %w", baseURL, drand.ErrNotResponding)
	}
	return InfoFromJSON(bytes.NewReader(body))
}

func (i *Info) validate() error {
	if len(i.PublicKey) != sizeG1 && len(i.PublicKey) != sizeG2 {
		return fmt.Errorf("public key of %d bytes is not a group element: %w", len(i.PublicKey), drand.ErrInvalidChainInfo)
	}
	if i.Period <= 0 {
		return fmt.Errorf("chain period must be positive: %w", drand.ErrInvalidChainInfo)
	}
	return nil
}

// Hash returns the digest identifying this chain. The scheme id is part of
// the digest except for chains on the original scheme, which predate ids.
func (i *Info) Hash() []byte {
	h := sha256.New()
	_ = binary.Write(h, binary.BigEndian, uint32(i.Period/time.Second))
	_ = binary.Write(h, binary.BigEndian, i.GenesisTime)
	_, _ = h.Write(i.PublicKey)
	_, _ = h.Write(i.GroupHash)
	if i.Scheme != "" && i.Scheme != DefaultSchemeID {
		_, _ = h.Write([]byte(i.Scheme))
	}
	return h.Sum(nil)
}

// HashString returns the chain hash in hex, as used in URLs and logs.
func (i *Info) HashString() string {
	return hex.EncodeToString(i.Hash())
}

// ToJSON writes the chain info in the /info wire format.
func (i *Info) ToJSON(w io.Writer) error {
	buff, err := json.Marshal(&infoJSON{
		PublicKey:   i.PublicKey,
		Period:      uint32(i.Period / time.Second),
		GenesisTime: i.GenesisTime,
		Hash:        i.Hash(),
		GroupHash:   i.GroupHash,
		Scheme:      i.Scheme,
	})
	if err != nil {
		return fmt.Errorf("could not JSON marshal chain info: %w", err)
	}
	_, err = w.Write(buff)
	return err
}
