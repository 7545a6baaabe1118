package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/driftlock/tlock/pkg/tlock"
)

type encryptCmd struct {
	Recipient  string `arg:"" help:"The bech32 recipient blob to encrypt towards."`
	Plaintext  string `arg:"" type:"existingfile" help:"The path to the plaintext file, or '-' for stdin."`
	Ciphertext string `arg:"" type:"path" help:"The path to the ciphertext file, or '-' for stdout."`

	Round string `help:"The target round, as a decimal integer or a duration suffixed with s/m/h/d. Defaults to the ROUND environment variable."`
	Armor bool   `help:"Encode the ciphertext as base64."`
}

func (cmd *encryptCmd) Run(_ *kong.Context) error {
	recipient, err := tlock.ParseRecipient(cmd.Recipient)
	if err != nil {
		return err
	}

	roundSpec := cmd.Round
	if roundSpec == "" {
		roundSpec = os.Getenv("ROUND")
	}

	round, err := resolveRound(roundSpec, recipient.Genesis, recipient.Period)
	if err != nil {
		return err
	}

	recipient.Round = round

	src, err := openInput(cmd.Plaintext, false)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	dst, err := openOutput(cmd.Ciphertext, cmd.Armor)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	return tlock.HybridEncrypt(dst, src, recipient)
}
