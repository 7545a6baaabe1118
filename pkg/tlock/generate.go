package tlock

// GenerateIdentityRecipient builds a Recipient for the given chain metadata,
// and, when signature is non-nil, a matching RAW Identity for a round whose
// signature the caller already possesses. When remoteURL is non-empty
// instead, it builds an HTTP Identity parameterized by that base URL (the
// caller supplies a Fetcher separately via Identity.WithFetcher before
// decrypting).
//
// Both returned values share chainHash, so the Identity's mismatch check in
// Unwrap is always enabled for identities this function produces. The
// Identity also carries genesis and period, enabling Unwrap's best-effort
// round-plausibility log line.
func GenerateIdentityRecipient(chainHash ChainHash, pk []byte, genesis uint64, period uint32, signature []byte, remoteURL string) (*Identity, *Recipient, error) {
	recipient := &Recipient{
		ChainHash: chainHash,
		PublicKey: append([]byte(nil), pk...),
		Genesis:   genesis,
		Period:    period,
	}

	var identity *Identity

	switch {
	case signature != nil:
		identity = NewRawIdentity(signature).WithChainHash(chainHash)
	case remoteURL != "":
		identity = NewHTTPIdentity(remoteURL, nil).WithChainHash(chainHash)
	}

	if identity != nil {
		identity = identity.WithGenesisPeriod(genesis, period)
	}

	return identity, recipient, nil
}
