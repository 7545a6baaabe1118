// Package rng provides the STROBE-keyed CSPRNG tlock uses for sampling IBE
// nonces.
//
// At startup, a STROBE protocol is initialized:
//
//     INIT('tlock.rng', level=256)
//
// When a block of random data is required, a block B of equivalent size is
// read from the host machine's RNG, and the following operations performed:
//
//     AD(LE_U64(LEN(B)), meta=true)
//     KEY(B)
//     PRF(LEN(B)) -> B
//     RATCHET(32)
//
// This insulates the generator somewhat against a compromised host RNG, but
// at the end of the day this is still a deterministic process seeded by it.
//
// The AD/KEY/PRF/RATCHET sequence is a fixed construction, not a stylistic
// choice: absorbing the request length as associated data before keying
// binds the ratchet to how much output was drawn, and the final RATCHET
// irreversibly destroys the state an attacker would need to predict future
// output from a past compromise. Reordering these four calls, or dropping
// the ratchet, changes the security argument the construction provides, not
// just its shape. Only the protocol label ("tlock.rng") is specific to this
// package; the sequence itself is not something a caller should vary.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"

	"github.com/sammyne/strobe"
)

// RatchetSize is the number of bytes of internal state reset on each read.
const RatchetSize = 32

//nolint:gochecknoglobals // need a singleton
// Reader is a global, shared instance of a cryptographically secure random
// number generator.
var Reader io.Reader = &reader{rng: newStrobe("tlock.rng")}

// Read is a helper function that calls Reader.Read using io.ReadFull. On
// return, n == len(b) if and only if err == nil.
func Read(b []byte) (int, error) {
	return io.ReadFull(Reader, b)
}

type reader struct {
	mu     sync.Mutex
	rng    *strobe.Strobe
	lenBuf [8]byte
}

func (r *reader) Read(p []byte) (n int, err error) {
	// Reader is shared; serialize access to the STROBE state.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Include the length of the PRF request as associated data.
	binary.LittleEndian.PutUint64(r.lenBuf[:], uint64(len(p)))
	must(r.rng.AD(r.lenBuf[:], &strobe.Options{Meta: true}))

	// Read a new block of data from the underlying RNG.
	if _, err := rand.Read(p); err != nil {
		return 0, err
	}

	// Re-key the protocol with the block.
	must(r.rng.KEY(p, false))

	// Return the results of the PRF.
	must(r.rng.PRF(p, false))

	// Ratchet the state of the RNG to prevent rollback.
	must(r.rng.RATCHET(RatchetSize))

	return len(p), nil
}

func newStrobe(proto string) *strobe.Strobe {
	s, err := strobe.New(proto, strobe.Bit256)
	if err != nil {
		panic(err)
	}

	return s
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
