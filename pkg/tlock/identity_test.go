package tlock_test

import (
	"context"
	"errors"
	"testing"

	"filippo.io/age"
	"github.com/codahale/gubbins/assert"

	"github.com/driftlock/tlock/pkg/tlock"
)

func TestIdentityRawStringParseRoundTrip(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x21)
	sig := testG2Sig(secret, 100)

	want := tlock.NewRawIdentity(sig)

	got, err := tlock.ParseIdentity(want.String())
	if err != nil {
		t.Fatalf("ParseIdentity: %v", err)
	}

	assert.Equal(t, "signature", want.Signature, got.Signature)
}

func TestIdentityHTTPStringParseRoundTrip(t *testing.T) {
	t.Parallel()

	want := tlock.NewHTTPIdentity("https://api.drand.sh/chainhash", nil)

	got, err := tlock.ParseIdentity(want.String())
	if err != nil {
		t.Fatalf("ParseIdentity: %v", err)
	}

	assert.Equal(t, "URL", want.URL, got.URL)
}

func TestIdentityUnwrapSkipsForeignStanzasAndSucceeds(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x23)
	pk := testG1PK(secret)

	const round = 55

	recipient := &tlock.Recipient{ChainHash: testChainHash(0x55), PublicKey: pk, Round: round}

	fileKey := make([]byte, 16)
	for i := range fileKey {
		fileKey[i] = byte(i)
	}

	stanzas, err := recipient.Wrap(fileKey)
	if err != nil {
		t.Fatal(err)
	}

	all := append([]*age.Stanza{{Type: "not-tlock", Args: []string{"whatever"}, Body: []byte("ignored")}}, stanzas...)

	identity := tlock.NewRawIdentity(testG2Sig(secret, round))

	got, err := identity.Unwrap(all)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}

	assert.Equal(t, "unwrapped file key", fileKey, got)
}

func TestIdentityUnwrapWithNoTlockStanzaReturnsIncorrectIdentity(t *testing.T) {
	t.Parallel()

	identity := tlock.NewRawIdentity(make([]byte, 96))

	stanzas := []*age.Stanza{{Type: "other", Args: nil, Body: []byte("x")}}

	if _, err := identity.Unwrap(stanzas); !errors.Is(err, age.ErrIncorrectIdentity) {
		t.Fatalf("expected age.ErrIncorrectIdentity, got %v", err)
	}
}

func TestIdentityUnwrapDetectsChainMismatch(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x24)
	pk := testG1PK(secret)

	const round = 77

	recipient := &tlock.Recipient{ChainHash: testChainHash(0xAA), PublicKey: pk, Round: round}

	fileKey := make([]byte, 16)

	stanzas, err := recipient.Wrap(fileKey)
	if err != nil {
		t.Fatal(err)
	}

	identity := tlock.NewRawIdentity(testG2Sig(secret, round)).WithChainHash(testChainHash(0xBB))

	if _, err := identity.Unwrap(stanzas); !errors.Is(err, tlock.ErrChainMismatch) {
		t.Fatalf("expected ErrChainMismatch, got %v", err)
	}
}

func TestIdentityUnwrapWrapsFetcherFailure(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x25)
	pk := testG1PK(secret)

	const round = 3

	recipient := &tlock.Recipient{ChainHash: testChainHash(0x01), PublicKey: pk, Round: round}

	stanzas, err := recipient.Wrap(make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}

	failing := func(ctx context.Context, baseURL string, r tlock.Round) ([]byte, error) {
		return nil, errors.New("beacon is down")
	}

	identity := tlock.NewHTTPIdentity("https://example.invalid", failing)

	if _, err := identity.Unwrap(stanzas); !errors.Is(err, tlock.ErrBeaconUnavailable) {
		t.Fatalf("expected ErrBeaconUnavailable, got %v", err)
	}
}

func TestIdentityUnwrapFetchesSignatureForRound(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x26)
	pk := testG1PK(secret)

	const round = 9001

	recipient := &tlock.Recipient{ChainHash: testChainHash(0x02), PublicKey: pk, Round: round}

	fileKey := make([]byte, 16)
	fileKey[0] = 0x42

	stanzas, err := recipient.Wrap(fileKey)
	if err != nil {
		t.Fatal(err)
	}

	fetcher := func(ctx context.Context, baseURL string, r tlock.Round) ([]byte, error) {
		if r != round {
			t.Fatalf("fetcher called with unexpected round %d", r)
		}

		return testG2Sig(secret, uint64(r)), nil
	}

	identity := tlock.NewHTTPIdentity("https://example.invalid", fetcher)

	got, err := identity.Unwrap(stanzas)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}

	assert.Equal(t, "unwrapped file key", fileKey, got)
}

func TestIdentityUnwrapSucceedsDespiteImplausibleRound(t *testing.T) {
	t.Parallel()

	secret := testScalar(t, 0x27)
	pk := testG1PK(secret)

	const round = 50_000_000 // far past genesis+period*round for the values below

	recipient := &tlock.Recipient{ChainHash: testChainHash(0x03), PublicKey: pk, Round: round}

	fileKey := make([]byte, 16)
	fileKey[1] = 0x07

	stanzas, err := recipient.Wrap(fileKey)
	if err != nil {
		t.Fatal(err)
	}

	// Genesis/period make this round implausibly far in the future; the
	// plausibility check is advisory only and must not block decryption.
	identity := tlock.NewRawIdentity(testG2Sig(secret, round)).WithGenesisPeriod(1595431050, 30)

	got, err := identity.Unwrap(stanzas)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}

	assert.Equal(t, "unwrapped file key", fileKey, got)
}
