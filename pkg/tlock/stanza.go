package tlock

import (
	"encoding/hex"
	"strconv"
)

// stanzaType is the age stanza type tag this package produces and consumes.
// Grounded on the tlock-age reference's own literal STANZA_TAG constant.
const stanzaType = "tlock"

func formatRound(r Round) string {
	return strconv.FormatUint(uint64(r), 10)
}

func formatChainHash(h ChainHash) string {
	return hex.EncodeToString(h[:])
}

func parseChainHash(s string) (ChainHash, bool) {
	var h ChainHash

	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return h, false
	}

	copy(h[:], b)

	return h, true
}
