package tlock

import (
	"io"

	"filippo.io/age"
)

// HybridEncrypt reads plaintext from src and writes an age-format container
// to dst, addressed to recipient's chain and round. The file key itself
// never touches this function's caller; it is generated by the age layer,
// IBE-wrapped by recipient.Wrap, and the stream cipher is driven entirely by
// the age layer.
func HybridEncrypt(dst io.Writer, src io.Reader, recipient *Recipient) error {
	w, err := age.Encrypt(dst, recipient)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}
