package tlock

import (
	"encoding/base64"
	"io"

	"github.com/emersion/go-textwrapper"
)

// armorColumns is the line width armored tlock containers wrap at, matching
// the age ASCII-armor convention so encrypted files paste cleanly into
// text-only channels (chat, email, pull request descriptions) that a
// 48-byte-per-line age stanza body would otherwise break.
const armorColumns = 76

// NewArmorEncoder returns an io.WriteCloser that base64-encodes an age
// container (headers, stanzas, and payload alike) before writing it to dst,
// wrapping lines at armorColumns. Close must be called to flush the final
// base64 padding.
func NewArmorEncoder(dst io.Writer) io.WriteCloser {
	return base64.NewEncoder(base64.URLEncoding, textwrapper.New(dst, "\n", armorColumns))
}

// NewArmorDecoder returns an io.ReadCloser that reverses NewArmorEncoder,
// decoding base64 read from src back into the raw age container bytes
// HybridDecrypt expects.
func NewArmorDecoder(src io.Reader) io.ReadCloser {
	return io.NopCloser(base64.NewDecoder(base64.URLEncoding, src))
}
