package tlock

import (
	"github.com/driftlock/tlock/pkg/tlock/internal/gbls"
	"github.com/driftlock/tlock/pkg/tlock/internal/ibe"
)

// Ciphertext is the IBE primitive's wire-level output: a group element U in
// the same group as the chain public key used to encrypt, a 32-byte masked
// nonce V, and a 16-byte masked payload W.
type Ciphertext struct {
	U []byte
	V [32]byte
	W [16]byte
}

// bodyLength for the two orientations: G1-PK chains produce 48+32+16 = 96
// bytes; G2-PK chains produce 96+32+16 = 144 bytes.
const (
	bodyLengthG1PK = gbls.G1Size + 32 + 16
	bodyLengthG2PK = gbls.G2Size + 32 + 16
)

// EncodeCiphertext serializes ct as compress(U) || V || W, the layout a
// tlock stanza body carries.
func EncodeCiphertext(ct Ciphertext) []byte {
	out := make([]byte, 0, len(ct.U)+len(ct.V)+len(ct.W))
	out = append(out, ct.U...)
	out = append(out, ct.V[:]...)

	return append(out, ct.W[:]...)
}

// DecodeCiphertext parses a stanza body into a Ciphertext, inferring the
// orientation (and therefore U's group) from the body's total length.
func DecodeCiphertext(body []byte) (Ciphertext, error) {
	var uLen int

	switch len(body) {
	case bodyLengthG1PK:
		uLen = gbls.G1Size
	case bodyLengthG2PK:
		uLen = gbls.G2Size
	default:
		return Ciphertext{}, ErrInvalidCiphertext
	}

	var ct Ciphertext

	ct.U = append([]byte(nil), body[:uLen]...)
	copy(ct.V[:], body[uLen:uLen+32])
	copy(ct.W[:], body[uLen+32:uLen+32+16])

	return ct, nil
}

func toInternal(ct Ciphertext) ibe.Ciphertext {
	return ibe.Ciphertext{U: ct.U, V: ct.V, W: ct.W}
}

func fromInternal(ct ibe.Ciphertext) Ciphertext {
	return Ciphertext{U: ct.U, V: ct.V, W: ct.W}
}
