package tlock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"filippo.io/age"

	"github.com/driftlock/tlock/pkg/tlock/internal/bech32"
)

// identityHRP is the fixed bech32 human-readable part for identity blobs.
const identityHRP = "AGE-PLUGIN-TLOCK-"

// Identity blob type tags, per the wire format in the data model.
const (
	identityTypeRaw  byte = 0
	identityTypeHTTP byte = 1
)

// Fetcher retrieves a beacon's signature for round from the chain at
// baseURL. The core never embeds an HTTP client; callers inject one,
// keeping the cryptography deterministic and testable offline.
type Fetcher func(ctx context.Context, baseURL string, round Round) ([]byte, error)

// Identity implements age.Identity, recovering a file key from a "tlock"
// stanza by obtaining a beacon signature for the stanza's round — either
// already in hand (RAW) or fetched over HTTP at Unwrap time.
//
// ChainHash is optional and is set via WithChainHash (which
// GenerateIdentityRecipient calls with the Recipient's own chain hash).
// Unwrap's mismatch check runs only for identities built with
// WithChainHash; setting the ChainHash field directly does not enable it,
// and the identity blob's own wire format carries no chain hash to compare
// against.
//
// Genesis and Period are likewise optional and are set via
// WithGenesisPeriod (which GenerateIdentityRecipient calls with the
// Recipient's own chain schedule). They are never a hard gate:
// Unwrap only uses them, when set, to log a best-effort plausibility
// warning when a stanza's round looks implausible for the chain's
// schedule (e.g. far in the future), since a beacon signature for a
// genuinely future round simply won't exist yet to fetch or verify
// against.
type Identity struct {
	Signature []byte // set when this is a RAW identity
	URL       string // set when this is an HTTP identity
	Fetcher   Fetcher
	ChainHash ChainHash
	hasChain  bool
	Genesis   uint64 // chain genesis time, unix seconds; 0 if unknown
	Period    uint32 // chain round period, seconds; 0 if unknown
	ctx       context.Context
}

var _ age.Identity = &Identity{}

// NewRawIdentity returns a RAW identity wrapping an already-known beacon
// signature, usable offline.
func NewRawIdentity(signature []byte) *Identity {
	return &Identity{Signature: append([]byte(nil), signature...)}
}

// NewHTTPIdentity returns an HTTP identity that fetches a round's signature
// from baseURL via fetcher at Unwrap time.
func NewHTTPIdentity(baseURL string, fetcher Fetcher) *Identity {
	return &Identity{URL: baseURL, Fetcher: fetcher, ctx: context.Background()}
}

// WithChainHash returns a copy of i that rejects stanzas whose chain hash
// argument disagrees with h.
func (i *Identity) WithChainHash(h ChainHash) *Identity {
	j := *i
	j.ChainHash = h
	j.hasChain = true

	return &j
}

// WithGenesisPeriod returns a copy of i carrying the chain's genesis time
// and round period, enabling Unwrap's best-effort round-plausibility log
// line. It is never required for correct decryption.
func (i *Identity) WithGenesisPeriod(genesis uint64, period uint32) *Identity {
	j := *i
	j.Genesis = genesis
	j.Period = period

	return &j
}

// WithContext returns a copy of i that uses ctx for any HTTP beacon fetch.
func (i *Identity) WithContext(ctx context.Context) *Identity {
	j := *i
	j.ctx = ctx

	return &j
}

// Unwrap implements age.Identity. It tries every "tlock" stanza in order
// and returns the file key from the first that succeeds; non-"tlock"
// stanzas are ignored. If every "tlock" stanza fails, the last error is
// returned.
func (i *Identity) Unwrap(stanzas []*age.Stanza) ([]byte, error) {
	var lastErr error

	tried := false

	for _, s := range stanzas {
		if s.Type != stanzaType {
			continue
		}

		tried = true

		fileKey, err := i.unwrapOne(s)
		if err == nil {
			return fileKey, nil
		}

		lastErr = err
	}

	if !tried {
		return nil, age.ErrIncorrectIdentity
	}

	return nil, lastErr
}

func (i *Identity) unwrapOne(s *age.Stanza) ([]byte, error) {
	if len(s.Args) != 2 {
		return nil, fmt.Errorf("%w: expected 2 stanza arguments, got %d", ErrInvalidRound, len(s.Args))
	}

	roundNum, err := strconv.ParseUint(s.Args[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRound, err)
	}

	round := Round(roundNum)

	chainHash, ok := parseChainHash(s.Args[1])
	if !ok {
		return nil, fmt.Errorf("%w: malformed chain hash argument", ErrEncoding)
	}

	if i.hasChain && chainHash != i.ChainHash {
		return nil, ErrChainMismatch
	}

	i.logImplausibleRound(round)

	sig, err := i.signatureFor(round)
	if err != nil {
		return nil, err
	}

	ct, err := DecodeCiphertext(s.Body)
	if err != nil {
		return nil, err
	}

	fileKey, err := IBEDecrypt(sig, ct)
	if err != nil {
		return nil, err
	}

	return fileKey[:], nil
}

// logImplausibleRound writes a best-effort diagnostic to os.Stderr when a
// stanza's round looks implausible against the chain schedule carried by
// Genesis/Period (set via WithGenesisPeriod). It never
// rejects the stanza: the schedule is advisory, and Unwrap proceeds to
// attempt decryption regardless.
func (i *Identity) logImplausibleRound(round Round) {
	if i.Genesis == 0 || i.Period == 0 {
		return
	}

	roundTime := time.Unix(int64(i.Genesis), 0).Add(time.Duration(uint64(round)) * time.Duration(i.Period) * time.Second)

	if roundTime.After(time.Now().Add(24 * time.Hour)) {
		fmt.Fprintf(os.Stderr, "tlock: stanza targets round %d (~%s), more than a day past the chain's schedule; decryption will likely fail until then\n", round, roundTime.UTC().Format(time.RFC3339))
	}
}

func (i *Identity) signatureFor(round Round) ([]byte, error) {
	if i.Signature != nil {
		return i.Signature, nil
	}

	if i.Fetcher == nil {
		return nil, errors.New("tlock: HTTP identity has no fetcher configured")
	}

	ctx := i.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	sig, err := i.Fetcher(ctx, i.URL, round)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBeaconUnavailable, err)
	}

	return sig, nil
}

// String returns the bech32 encoding of i, with HRP "AGE-PLUGIN-TLOCK-".
func (i *Identity) String() string {
	var payload []byte

	if i.Signature != nil {
		payload = append([]byte{identityTypeRaw}, i.Signature...)
	} else {
		payload = append([]byte{identityTypeHTTP}, []byte(i.URL)...)
	}

	// bech32.Encode takes a lowercase HRP; the whole string is uppercased
	// afterwards so it carries identityHRP in its own case without mixing.
	s, err := bech32.Encode(strings.ToLower(identityHRP), payload)
	if err != nil {
		panic(err)
	}

	return strings.ToUpper(s)
}

// ParseIdentity decodes a bech32 identity blob. HTTP identities are
// returned without a Fetcher configured; callers must set one (or call
// WithFetcher) before calling Unwrap.
func ParseIdentity(s string) (*Identity, error) {
	hrp, payload, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	if hrp != strings.ToLower(identityHRP) {
		return nil, fmt.Errorf("%w: unexpected hrp %q", ErrEncoding, hrp)
	}

	if len(payload) < 1 {
		return nil, fmt.Errorf("%w: empty identity payload", ErrEncoding)
	}

	switch payload[0] {
	case identityTypeRaw:
		return &Identity{Signature: append([]byte(nil), payload[1:]...)}, nil
	case identityTypeHTTP:
		return &Identity{URL: string(payload[1:]), ctx: context.Background()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown identity type tag %d", ErrEncoding, payload[0])
	}
}

// WithFetcher returns a copy of i using fetcher for its HTTP beacon fetch.
func (i *Identity) WithFetcher(fetcher Fetcher) *Identity {
	j := *i
	j.Fetcher = fetcher

	return &j
}
