// Package ibe implements the Boneh–Franklin identity-based encryption
// transform over BLS12-381, fixed to a 16-byte plaintext and instantiated
// once per pairing orientation.
//
// Orientation is resolved once, at the package boundary, by the caller (the
// root tlock package infers it from public key byte length); the functions
// below never branch on it internally — there is one monomorphic
// implementation per orientation, following the design note to keep
// conditional dispatch out of the inner primitives.
package ibe

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/driftlock/tlock/pkg/tlock/internal/dstlock"
	"github.com/driftlock/tlock/pkg/tlock/internal/gbls"
	"github.com/driftlock/tlock/pkg/tlock/internal/rng"
)

// ErrInvalidCiphertext is returned when the decrypt-side consistency check
// (recomputing r and comparing r*G to U) fails. The root package maps this
// to its own exported ErrInvalidCiphertext sentinel.
var ErrInvalidCiphertext = errors.New("ibe: ciphertext failed consistency check")

// Ciphertext is the IBE primitive's output triple. U is a compressed point
// in the same group as the public key used to encrypt; V and W are fixed
// width regardless of orientation.
type Ciphertext struct {
	U []byte
	V [32]byte
	W [16]byte
}

// Plaintext is the IBE primitive's fixed-width input and output.
type Plaintext = [16]byte

// EncryptG1PK runs the Boneh–Franklin transform for a public key in G1; U
// lies in G1 alongside the public key, while the signature and Qid live in
// G2.
func EncryptG1PK(pk *blst.P1Affine, round uint64, msg Plaintext) (Ciphertext, error) {
	qid := dstlock.H1G2(round)

	var nonce [32]byte
	if _, err := rng.Read(nonce[:]); err != nil {
		return Ciphertext{}, err
	}

	r := dstlock.H3(nonce, msg)

	u := gbls.G1ScalarBaseMult(r)

	pkR := gbls.G1ScalarMult(pk, r)
	gidR := gbls.Pair(pkR, qid)

	h2 := dstlock.H2(gidR)

	var v [32]byte
	xor32(&v, nonce, h2)

	h4 := dstlock.H4(nonce)

	var w [16]byte
	xor16(&w, msg, h4)

	return Ciphertext{U: gbls.CompressG1(u), V: v, W: w}, nil
}

// DecryptG1PK reverses EncryptG1PK given a G2 signature and the triple it
// produced.
func DecryptG1PK(sig *blst.P2Affine, ct Ciphertext) (Plaintext, error) {
	u, err := gbls.ParseG1(ct.U)
	if err != nil {
		return Plaintext{}, err
	}

	gidR := gbls.Pair(u, sig)
	h2 := dstlock.H2(gidR)

	var nonce [32]byte
	xor32(&nonce, ct.V, h2)

	h4 := dstlock.H4(nonce)

	var msg [16]byte
	xor16(&msg, ct.W, h4)

	rPrime := dstlock.H3(nonce, msg)
	uPrime := gbls.G1ScalarBaseMult(rPrime)

	if !uPrime.Equals(u) {
		return Plaintext{}, ErrInvalidCiphertext
	}

	return msg, nil
}

// EncryptG2PK runs the Boneh–Franklin transform for a public key in G2; U
// lies in G2, the signature and Qid lie in G1.
func EncryptG2PK(pk *blst.P2Affine, round uint64, msg Plaintext) (Ciphertext, error) {
	qid := dstlock.H1G1(round)

	var nonce [32]byte
	if _, err := rng.Read(nonce[:]); err != nil {
		return Ciphertext{}, err
	}

	r := dstlock.H3(nonce, msg)

	u := gbls.G2ScalarBaseMult(r)

	pkR := gbls.G2ScalarMult(pk, r)
	gidR := gbls.Pair(qid, pkR)

	h2 := dstlock.H2(gidR)

	var v [32]byte
	xor32(&v, nonce, h2)

	h4 := dstlock.H4(nonce)

	var w [16]byte
	xor16(&w, msg, h4)

	return Ciphertext{U: gbls.CompressG2(u), V: v, W: w}, nil
}

// DecryptG2PK reverses EncryptG2PK given a G1 signature and the triple it
// produced.
func DecryptG2PK(sig *blst.P1Affine, ct Ciphertext) (Plaintext, error) {
	u, err := gbls.ParseG2(ct.U)
	if err != nil {
		return Plaintext{}, err
	}

	gidR := gbls.Pair(sig, u)
	h2 := dstlock.H2(gidR)

	var nonce [32]byte
	xor32(&nonce, ct.V, h2)

	h4 := dstlock.H4(nonce)

	var msg [16]byte
	xor16(&msg, ct.W, h4)

	rPrime := dstlock.H3(nonce, msg)
	uPrime := gbls.G2ScalarBaseMult(rPrime)

	if !uPrime.Equals(u) {
		return Plaintext{}, ErrInvalidCiphertext
	}

	return msg, nil
}

func xor32(dst *[32]byte, a, b [32]byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

func xor16(dst *[16]byte, a, b [16]byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}
