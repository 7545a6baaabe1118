package ibe_test

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	blst "github.com/supranational/blst/bindings/go"

	"github.com/driftlock/tlock/pkg/tlock/internal/dstlock"
	"github.com/driftlock/tlock/pkg/tlock/internal/gbls"
	"github.com/driftlock/tlock/pkg/tlock/internal/ibe"
)

func testScalar(t *testing.T, seed byte) *blst.Scalar {
	t.Helper()

	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed
	}

	s := blst.KeyGen(ikm)
	if s == nil {
		t.Fatal("failed to derive a test scalar")
	}

	return s
}

func TestRoundTripG1PK(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x11)
	pk := gbls.G1ScalarBaseMult(secret)

	const round = 1000

	sig := gbls.G2ScalarMult(dstlock.H1G2(round), secret)

	var msg ibe.Plaintext
	copy(msg[:], "sixteen-byte-msg")

	ct, err := ibe.EncryptG1PK(pk, round, msg)
	if err != nil {
		t.Fatal(err)
	}

	got, err := ibe.DecryptG1PK(sig, ct)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", msg, got)
}

func TestRoundTripG2PK(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x22)
	pk := gbls.G2ScalarBaseMult(secret)

	const round = 1000

	sig := gbls.G1ScalarMult(dstlock.H1G1(round), secret)

	var msg ibe.Plaintext
	copy(msg[:], "another-16-bytes")

	ct, err := ibe.EncryptG2PK(pk, round, msg)
	if err != nil {
		t.Fatal(err)
	}

	got, err := ibe.DecryptG2PK(sig, ct)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", msg, got)
}

func TestDecryptG1PKRejectsBitFlippedW(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x33)
	pk := gbls.G1ScalarBaseMult(secret)

	const round = 1000

	sig := gbls.G2ScalarMult(dstlock.H1G2(round), secret)

	var msg ibe.Plaintext
	copy(msg[:], "sixteen-byte-msg")

	ct, err := ibe.EncryptG1PK(pk, round, msg)
	if err != nil {
		t.Fatal(err)
	}

	ct.W[len(ct.W)-1] ^= 0x01

	if _, err := ibe.DecryptG1PK(sig, ct); err == nil {
		t.Fatal("expected consistency check failure after bit flip")
	}
}

func TestDecryptG1PKRejectsWrongRoundSignature(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x44)
	pk := gbls.G1ScalarBaseMult(secret)

	var msg ibe.Plaintext
	copy(msg[:], "sixteen-byte-msg")

	ct, err := ibe.EncryptG1PK(pk, 1000, msg)
	if err != nil {
		t.Fatal(err)
	}

	wrongSig := gbls.G2ScalarMult(dstlock.H1G2(1001), secret)

	if _, err := ibe.DecryptG1PK(wrongSig, ct); err == nil {
		t.Fatal("expected failure decrypting with a signature for the wrong round")
	}
}
