// Package tlock implements timelock encryption: a sender encrypts a message
// addressed to a future moment in time, and the ciphertext becomes
// decryptable only once a public, periodically-updated threshold-signing
// network (a drand-style randomness beacon) publishes its signature for
// that round.
//
// The package provides a pairing-based identity-based encryption (IBE)
// scheme (Boneh–Franklin, over BLS12-381) in two symmetric variants
// depending on which side of the pairing carries the chain's public key,
// plus a hybrid wrapper that hands a 16-byte file key to that IBE and
// delegates stream encryption to an age-format container via a single
// custom "tlock" recipient stanza.
//
// This package does not fetch beacon rounds, public keys, or signatures
// over HTTP, and it does not implement the age-plugin stdio state machine;
// it provides the age.Recipient and age.Identity values an age-plugin
// binary or a direct caller would drive.
package tlock

// Round identifies a beacon tick. It is encoded as an 8-byte big-endian
// value wherever it is fed to a hash gadget.
type Round uint64

// ChainHash identifies a beacon chain. It is opaque to the cryptography and
// carried only for routing and mismatch detection.
type ChainHash [32]byte
