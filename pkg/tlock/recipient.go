package tlock

import (
	"encoding/binary"
	"fmt"

	"filippo.io/age"

	"github.com/driftlock/tlock/pkg/tlock/internal/bech32"
	"github.com/driftlock/tlock/pkg/tlock/internal/gbls"
)

// recipientHRP is the fixed bech32 human-readable part for recipient blobs.
const recipientHRP = "age1tlock"

// Recipient implements age.Recipient, encrypting a file key under a chain's
// public key for a specific round via IBE, and wrapping the triple in a
// single "tlock" stanza.
//
// Round is not part of the bech32-encoded recipient blob (see ParseRecipient);
// callers set it on the parsed value before handing the Recipient to
// age.Encrypt, once for each target round.
type Recipient struct {
	ChainHash ChainHash
	PublicKey []byte
	Genesis   uint64
	Period    uint32
	Round     Round
}

var _ age.Recipient = &Recipient{}

// Wrap implements age.Recipient. It IBE-encrypts fileKey against r's chain
// public key and round, and returns a single "tlock" stanza.
func (r *Recipient) Wrap(fileKey []byte) ([]*age.Stanza, error) {
	if len(fileKey) != 16 {
		return nil, fmt.Errorf("tlock: unexpected file key size %d", len(fileKey))
	}

	var pt [16]byte

	copy(pt[:], fileKey)

	ct, err := IBEEncrypt(r.PublicKey, r.Round, pt)
	if err != nil {
		return nil, err
	}

	stanza := &age.Stanza{
		Type: stanzaType,
		Args: []string{
			formatRound(r.Round),
			formatChainHash(r.ChainHash),
		},
		Body: EncodeCiphertext(ct),
	}

	return []*age.Stanza{stanza}, nil
}

// String returns the bech32 encoding of r's chain metadata (chain hash,
// chain public key, genesis time, period), with HRP "age1tlock". The target
// round is not included, matching the recipient blob's wire format.
func (r *Recipient) String() string {
	payload := recipientPayload(r.ChainHash, r.PublicKey, r.Genesis, r.Period)

	s, err := bech32.Encode(recipientHRP, payload)
	if err != nil {
		// Encode only fails on malformed input, which recipientPayload never
		// produces; a panic here indicates a programming error, not bad data.
		panic(err)
	}

	return s
}

// ParseRecipient decodes a bech32 recipient blob. The returned value's
// Round field is always zero; callers must set it before use.
func ParseRecipient(s string) (*Recipient, error) {
	hrp, payload, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	if hrp != recipientHRP {
		return nil, fmt.Errorf("%w: unexpected hrp %q", ErrEncoding, hrp)
	}

	return decodeRecipientPayload(payload)
}

func recipientPayload(chainHash ChainHash, pk []byte, genesis uint64, period uint32) []byte {
	out := make([]byte, 0, 32+len(pk)+8+4)
	out = append(out, chainHash[:]...)
	out = append(out, pk...)

	var genesisBuf [8]byte
	binary.BigEndian.PutUint64(genesisBuf[:], genesis)
	out = append(out, genesisBuf[:]...)

	var periodBuf [4]byte
	binary.BigEndian.PutUint32(periodBuf[:], period)

	return append(out, periodBuf[:]...)
}

func decodeRecipientPayload(payload []byte) (*Recipient, error) {
	const fixedLen = 32 + 8 + 4

	if len(payload) <= fixedLen {
		return nil, fmt.Errorf("%w: recipient payload too short", ErrEncoding)
	}

	pkLen := len(payload) - fixedLen
	if pkLen != gbls.G1Size && pkLen != gbls.G2Size {
		return nil, fmt.Errorf("%w: unexpected public key length %d", ErrEncoding, pkLen)
	}

	var r Recipient

	copy(r.ChainHash[:], payload[:32])
	r.PublicKey = append([]byte(nil), payload[32:32+pkLen]...)
	r.Genesis = binary.BigEndian.Uint64(payload[32+pkLen : 32+pkLen+8])
	r.Period = binary.BigEndian.Uint32(payload[32+pkLen+8:])

	if r.Genesis == 0 && r.Period == 0 {
		return nil, fmt.Errorf("%w: genesis=0, period=0 sentinel for unset metadata", ErrEncoding)
	}

	return &r, nil
}
