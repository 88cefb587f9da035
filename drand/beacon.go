package drand

// Beacon holds one round of randomness as served by the drand HTTP API,
// including the data needed for validation. Signature-ish fields are hex
// strings on the wire and should be decoded with hexjson rather than
// encoding/json.
type Beacon struct {
	Round             uint64 `json:"round"`
	Signature         []byte `json:"signature"`
	PreviousSignature []byte `json:"previous_signature,omitempty"`
	Randomness        []byte `json:"randomness,omitempty"`
}

// GetRound provides the round number of this beacon.
func (b *Beacon) GetRound() uint64 {
	return b.Round
}

// GetSignature provides the group signature over this round's message.
func (b *Beacon) GetSignature() []byte {
	return b.Signature
}

// GetPreviousSignature provides the previous round's signature. It is nil
// for beacons issued by chains running an unchained scheme.
func (b *Beacon) GetPreviousSignature() []byte {
	return b.PreviousSignature
}

// GetRandomness exports the randomness using the legacy SHA256 derivation path.
func (b *Beacon) GetRandomness() []byte {
	return b.Randomness
}
