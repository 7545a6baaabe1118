// Package bech32 implements the bech32 encoding (BIP-173), adapted from its
// checksum algorithm only.
//
// Most third-party bech32 packages (e.g. the ones blockchain wallets use)
// enforce BIP-173's 90-character total-length cap, because that cap exists to
// keep on-chain addresses comfortably inside a QR code. tlock's recipient
// blobs carry a chain hash, a variable-length group element, and a
// genesis/period pair, and its identity blobs a beacon signature or a URL;
// both routinely exceed 90 characters. filippo.io/age
// hit the same wall and forked its own bech32 rather than depend on an
// address library that would reject its longer strings — this package follows
// the same reasoning, so it is the one component of this repository with no
// third-party equivalent to reach for.
package bech32

import (
	"errors"
	"strings"
)

// ErrInvalidChecksum is returned when a decoded string's checksum does not
// verify against its data.
var ErrInvalidChecksum = errors.New("bech32: invalid checksum")

// ErrInvalidCharacter is returned when a string contains a byte outside the
// bech32 charset or mixes upper and lower case.
var ErrInvalidCharacter = errors.New("bech32: invalid character")

// ErrInvalidLength is returned when a string is too short to contain both a
// human-readable part and a checksum.
var ErrInvalidLength = errors.New("bech32: invalid length")

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Encode returns the bech32 encoding of data with the given human-readable
// part. hrp must already be lowercase.
func Encode(hrp string, data []byte) (string, error) {
	values, err := convertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}

	checksum := createChecksum(hrp, values)
	combined := append(values, checksum...)

	var sb strings.Builder

	sb.WriteString(hrp)
	sb.WriteByte('1')

	for _, v := range combined {
		sb.WriteByte(charset[v])
	}

	return sb.String(), nil
}

// Decode splits s into its human-readable part and payload, verifying the
// checksum. s may be all lowercase or all uppercase (mixed-case input is
// rejected); the human-readable part is always returned lowercase.
func Decode(s string) (hrp string, data []byte, err error) {
	if hasMixedCase(s) {
		return "", nil, ErrInvalidCharacter
	}

	s = strings.ToLower(s)

	pos := strings.LastIndexByte(s, '1')
	if pos < 1 || pos+7 > len(s) {
		return "", nil, ErrInvalidLength
	}

	hrp = s[:pos]
	payload := s[pos+1:]

	values := make([]int, len(payload))

	for i, c := range payload {
		v := strings.IndexRune(charset, c)
		if v == -1 {
			return "", nil, ErrInvalidCharacter
		}

		values[i] = v
	}

	if !verifyChecksum(hrp, values) {
		return "", nil, ErrInvalidChecksum
	}

	converted, err := convertBits(values5to8(values[:len(values)-6]), 5, 8, false)
	if err != nil {
		return "", nil, err
	}

	data = values5to8(converted)

	return hrp, data, nil
}

func hasMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}

func values5to8(values []int) []byte {
	b := make([]byte, len(values))
	for i, v := range values {
		b[i] = byte(v)
	}

	return b
}

// convertBits regroups a bitstream between 8-bit bytes and 5-bit groups.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]int, error) {
	var acc uint32

	var bits uint

	maxv := uint32(1<<toBits) - 1
	out := make([]int, 0, len(data)*int(fromBits)/int(toBits)+1)

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, ErrInvalidCharacter
		}

		acc = acc<<fromBits | uint32(b)
		bits += fromBits

		for bits >= toBits {
			bits -= toBits
			out = append(out, int((acc>>bits)&maxv))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, int((acc<<(toBits-bits))&maxv))
		}
	} else if bits >= fromBits || ((acc<<(toBits-bits))&maxv) != 0 {
		return nil, ErrInvalidLength
	}

	return out, nil
}

func polymod(values []int) int {
	gen := [5]int{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := 1

	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ v

		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}

	return chk
}

func hrpExpand(hrp string) []int {
	out := make([]int, 0, len(hrp)*2+1)

	for _, c := range hrp {
		out = append(out, int(c)>>5)
	}

	out = append(out, 0)

	for _, c := range hrp {
		out = append(out, int(c)&31)
	}

	return out
}

func createChecksum(hrp string, data []int) []int {
	values := append(hrpExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)

	mod := polymod(values) ^ 1
	checksum := make([]int, 6)

	for i := range checksum {
		checksum[i] = (mod >> uint(5*(5-i))) & 31
	}

	return checksum
}

func verifyChecksum(hrp string, data []int) bool {
	return polymod(append(hrpExpand(hrp), data...)) == 1
}
