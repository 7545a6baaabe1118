package tlock

import "errors"

// Sentinel errors returned by this package. Callers should compare against
// these with errors.Is; wrapped occurrences carry additional context via
// fmt.Errorf's %w verb, exactly as the rest of this codebase wraps errors.
var (
	// ErrInvalidPublicKey is returned when a chain public key is not a
	// canonical compressed point, or does not lie in the prime-order
	// subgroup.
	ErrInvalidPublicKey = errors.New("tlock: invalid public key")

	// ErrInvalidSignature is returned when a beacon signature is not a
	// canonical compressed point, or does not lie in the prime-order
	// subgroup.
	ErrInvalidSignature = errors.New("tlock: invalid signature")

	// ErrInvalidCiphertext is returned when a ciphertext is the wrong
	// length, contains a non-canonical point, or fails the IBE decrypt-side
	// consistency check.
	ErrInvalidCiphertext = errors.New("tlock: invalid ciphertext")

	// ErrInvalidRound is returned when a stanza's round argument is not a
	// decimal, non-negative integer within u64 range.
	ErrInvalidRound = errors.New("tlock: invalid round")

	// ErrChainMismatch is returned when a stanza's chain hash argument
	// disagrees with the identity's chain hash.
	ErrChainMismatch = errors.New("tlock: chain hash mismatch")

	// ErrBeaconUnavailable is returned when an HTTP identity's beacon fetch
	// fails. A fetched signature is not checked against the round here; one
	// that is invalid surfaces from decryption as ErrInvalidSignature or
	// ErrInvalidCiphertext instead.
	ErrBeaconUnavailable = errors.New("tlock: beacon unavailable")

	// ErrRngFailure is returned when the entropy source used to sample an
	// IBE nonce, or EncryptIdentity's salt or nonce, returns an error. File
	// keys are sampled by the age layer, not by this package.
	ErrRngFailure = errors.New("tlock: entropy source failure")

	// ErrEncoding is returned for a bech32 parse failure, an unrecognized
	// HRP, or a truncated payload.
	ErrEncoding = errors.New("tlock: encoding error")
)
