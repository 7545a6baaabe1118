package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/driftlock/tlock/cmd/tlock/httpbeacon"
	"github.com/driftlock/tlock/pkg/tlock"
)

type decryptCmd struct {
	Identity   string `arg:"" help:"The bech32 identity blob to decrypt with (ignored when EncryptedIdentity is set)."`
	Ciphertext string `arg:"" type:"existingfile" help:"The path to the ciphertext file, or '-' for stdin."`
	Plaintext  string `arg:"" type:"path" help:"The path to the plaintext file, or '-' for stdout."`

	Armor             bool   `help:"Decode the ciphertext as base64 before decrypting."`
	EncryptedIdentity string `type:"existingfile" help:"Path to a passphrase-protected identity file in the format written by tlock.EncryptIdentity ('tlock generate' does not write one); overrides Identity."`
}

func (cmd *decryptCmd) Run(_ *kong.Context) error {
	identity, err := cmd.resolveIdentity()
	if err != nil {
		return err
	}

	if identity.URL != "" {
		identity = identity.WithFetcher(httpbeacon.New(nil))
	}

	src, err := openInput(cmd.Ciphertext, cmd.Armor)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	dst, err := openOutput(cmd.Plaintext, false)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	return tlock.HybridDecrypt(dst, src, identity)
}

func (cmd *decryptCmd) resolveIdentity() (*tlock.Identity, error) {
	if cmd.EncryptedIdentity != "" {
		blob, err := os.ReadFile(cmd.EncryptedIdentity)
		if err != nil {
			return nil, err
		}

		passphrase, err := askPassphrase("Enter passphrase: ")
		if err != nil {
			return nil, err
		}

		return tlock.DecryptIdentity(blob, passphrase)
	}

	return tlock.ParseIdentity(cmd.Identity)
}
