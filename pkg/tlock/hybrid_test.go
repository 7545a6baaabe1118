package tlock_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/codahale/gubbins/assert"

	"github.com/driftlock/tlock/pkg/tlock"
)

func TestHybridEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x31)
	pk := testG2PK(secret)

	const round = 123

	chainHash := testChainHash(0x10)

	sig := testG1Sig(secret, round)

	identity, recipient, err := tlock.GenerateIdentityRecipient(chainHash, pk, 1595431050, 30, sig, "")
	if err != nil {
		t.Fatal(err)
	}

	recipient.Round = round

	plaintext := []byte("the launch window opens at dawn")

	var ciphertext bytes.Buffer
	if err := tlock.HybridEncrypt(&ciphertext, bytes.NewReader(plaintext), recipient); err != nil {
		t.Fatalf("HybridEncrypt: %v", err)
	}

	var decrypted bytes.Buffer
	if err := tlock.HybridDecrypt(&decrypted, &ciphertext, identity); err != nil {
		t.Fatalf("HybridDecrypt: %v", err)
	}

	assert.Equal(t, "decrypted plaintext", plaintext, decrypted.Bytes())
}

func TestHybridDecryptFailsBeforeRoundSignatureKnown(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x32)
	pk := testG1PK(secret)

	const round = 55

	chainHash := testChainHash(0x11)

	recipient := &tlock.Recipient{ChainHash: chainHash, PublicKey: pk, Round: round}

	var ciphertext bytes.Buffer
	if err := tlock.HybridEncrypt(&ciphertext, bytes.NewReader([]byte("secret")), recipient); err != nil {
		t.Fatal(err)
	}

	// A signature for the wrong round cannot recover the file key.
	wrongSig := testG2Sig(secret, round+1)
	identity := tlock.NewRawIdentity(wrongSig).WithChainHash(chainHash)

	var decrypted bytes.Buffer

	err := tlock.HybridDecrypt(&decrypted, bytes.NewReader(ciphertext.Bytes()), identity)
	if err == nil {
		t.Fatal("expected decryption to fail without the matching round's signature")
	}

	if errors.Is(err, tlock.ErrChainMismatch) {
		t.Fatalf("unexpected chain mismatch error: %v", err)
	}
}
