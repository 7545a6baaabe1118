package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/driftlock/tlock/cmd/tlock/httpbeacon"
	"github.com/driftlock/tlock/pkg/tlock"
)

type generateCmd struct {
	Remote string `required:"" help:"The base URL of the beacon's HTTP API."`
	Round  uint64 `help:"Also emit a RAW identity for this round, fetching its signature first."`
}

func (cmd *generateCmd) Run(_ *kong.Context) error {
	ctx := context.Background()

	info, err := httpbeacon.FetchChainInfo(ctx, nil, cmd.Remote)
	if err != nil {
		return err
	}

	var chainHash tlock.ChainHash

	copy(chainHash[:], info.Hash[:])

	httpIdentity, recipient, err := tlock.GenerateIdentityRecipient(
		chainHash, info.PublicKey, info.Genesis, info.Period, nil, cmd.Remote,
	)
	if err != nil {
		return err
	}

	fmt.Println(httpIdentity.String())
	fmt.Println(recipient.String())

	if cmd.Round > 0 {
		fetch := httpbeacon.New(nil)

		signature, err := fetch(ctx, cmd.Remote, tlock.Round(cmd.Round))
		if err != nil {
			return err
		}

		rawIdentity, _, err := tlock.GenerateIdentityRecipient(
			chainHash, info.PublicKey, info.Genesis, info.Period, signature, "",
		)
		if err != nil {
			return err
		}

		fmt.Println(rawIdentity.String())
	}

	_, _ = fmt.Fprintf(
		os.Stderr, "chain hash %s, genesis %d, period %ds\n", hex.EncodeToString(chainHash[:]), info.Genesis, info.Period,
	)

	return nil
}
