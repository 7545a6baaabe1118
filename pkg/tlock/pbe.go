package tlock

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2idParams contains the parameters of the Argon2id passphrase-based
// KDF used to protect a RAW identity's signature at rest.
type Argon2idParams struct {
	Time, Memory uint32
	Parallelism  uint8
}

func defaultArgon2idParams() *Argon2idParams {
	return &Argon2idParams{
		// As recommended in https://tools.ietf.org/html/draft-irtf-cfrg-argon2-12#section-7.4.
		Time:        1,
		Memory:      1 * 1024 * 1024, // 1GiB
		Parallelism: 4,
	}
}

const saltSize = 16 // per https://tools.ietf.org/html/draft-irtf-cfrg-argon2-12#section-3.1

// EncryptIdentity passphrase-protects a RAW identity's signature so it can
// be written to disk between when a round elapses and when it's used to
// decrypt. Only RAW identities can be protected this way; HTTP identities
// carry no secret to protect.
func EncryptIdentity(identity *Identity, passphrase []byte, params *Argon2idParams) ([]byte, error) {
	if identity.Signature == nil {
		return nil, fmt.Errorf("tlock: only a RAW identity's signature can be passphrase-protected")
	}

	if params == nil {
		params = defaultArgon2idParams()
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRngFailure, err)
	}

	key := argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Parallelism, chacha20poly1305.KeySize)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRngFailure, err)
	}

	ciphertext := aead.Seal(nil, nonce, identity.Signature, nil)

	out := make([]byte, 0, 9+saltSize+len(nonce)+len(ciphertext))

	var timeBuf, memBuf [4]byte

	binary.BigEndian.PutUint32(timeBuf[:], params.Time)
	binary.BigEndian.PutUint32(memBuf[:], params.Memory)

	out = append(out, timeBuf[:]...)
	out = append(out, memBuf[:]...)
	out = append(out, params.Parallelism)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	return out, nil
}

// DecryptIdentity decrypts a blob produced by EncryptIdentity, returning the
// RAW identity it protected.
func DecryptIdentity(blob, passphrase []byte) (*Identity, error) {
	const headerSize = 4 + 4 + 1 + saltSize

	if len(blob) < headerSize+chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("%w: encrypted identity too short", ErrEncoding)
	}

	params := Argon2idParams{
		Time:        binary.BigEndian.Uint32(blob[0:4]),
		Memory:      binary.BigEndian.Uint32(blob[4:8]),
		Parallelism: blob[8],
	}

	salt := blob[9 : 9+saltSize]
	rest := blob[9+saltSize:]
	nonce := rest[:chacha20poly1305.NonceSize]
	ciphertext := rest[chacha20poly1305.NonceSize:]

	key := argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Parallelism, chacha20poly1305.KeySize)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("tlock: incorrect passphrase or corrupted identity: %w", err)
	}

	return NewRawIdentity(plaintext), nil
}
