package tlock

import (
	"errors"
	"fmt"

	"github.com/driftlock/tlock/pkg/tlock/internal/gbls"
	"github.com/driftlock/tlock/pkg/tlock/internal/ibe"
)

// IBEEncrypt encrypts a 16-byte plaintext against a chain public key and a
// target round, using the Boneh–Franklin transform over BLS12-381. The
// orientation (which group carries the public key) is inferred from the
// public key's compressed byte length: 48 bytes selects G1, 96 selects G2.
func IBEEncrypt(chainPK []byte, round Round, plaintext [16]byte) (Ciphertext, error) {
	switch len(chainPK) {
	case gbls.G1Size:
		pk, err := gbls.ParseG1(chainPK)
		if err != nil {
			return Ciphertext{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}

		ct, err := ibe.EncryptG1PK(pk, uint64(round), plaintext)
		if err != nil {
			return Ciphertext{}, fmt.Errorf("%w: %v", ErrRngFailure, err)
		}

		return fromInternal(ct), nil
	case gbls.G2Size:
		pk, err := gbls.ParseG2(chainPK)
		if err != nil {
			return Ciphertext{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}

		ct, err := ibe.EncryptG2PK(pk, uint64(round), plaintext)
		if err != nil {
			return Ciphertext{}, fmt.Errorf("%w: %v", ErrRngFailure, err)
		}

		return fromInternal(ct), nil
	default:
		return Ciphertext{}, ErrInvalidPublicKey
	}
}

// IBEDecrypt reverses IBEEncrypt given a beacon signature for the
// ciphertext's round. The orientation is inferred from the signature's
// compressed byte length, and cross-checked against U's length before any
// pairing is computed.
func IBEDecrypt(signature []byte, ct Ciphertext) ([16]byte, error) {
	switch len(signature) {
	case gbls.G2Size:
		// Signature in G2 means the public key (and U) were in G1.
		if len(ct.U) != gbls.G1Size {
			return [16]byte{}, ErrInvalidCiphertext
		}

		sig, err := gbls.ParseG2(signature)
		if err != nil {
			return [16]byte{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}

		return decryptAndTranslate(ibe.DecryptG1PK(sig, toInternal(ct)))
	case gbls.G1Size:
		// Signature in G1 means the public key (and U) were in G2.
		if len(ct.U) != gbls.G2Size {
			return [16]byte{}, ErrInvalidCiphertext
		}

		sig, err := gbls.ParseG1(signature)
		if err != nil {
			return [16]byte{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}

		return decryptAndTranslate(ibe.DecryptG2PK(sig, toInternal(ct)))
	default:
		return [16]byte{}, ErrInvalidSignature
	}
}

func decryptAndTranslate(plaintext ibe.Plaintext, err error) ([16]byte, error) {
	if errors.Is(err, ibe.ErrInvalidCiphertext) {
		return [16]byte{}, ErrInvalidCiphertext
	}

	if err != nil {
		// The only other failure is U not parsing as a valid point.
		return [16]byte{}, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	return plaintext, nil
}
