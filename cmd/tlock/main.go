package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/driftlock/tlock/pkg/tlock"
)

type cli struct {
	Generate generateCmd `cmd:"" help:"Fetch a beacon's chain info and print recipient/identity blobs."`
	Encrypt  encryptCmd  `cmd:"" help:"Encrypt a message for a recipient and a target round."`
	Decrypt  decryptCmd  `cmd:"" help:"Decrypt a message given an identity."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func askPassphrase(prompt string) ([]byte, error) {
	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(int(os.Stdin.Fd()))
}

func openOutput(path string, armored bool) (io.WriteCloser, error) {
	dst := io.WriteCloser(os.Stdout)

	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}

		dst = f
	}

	if armored {
		enc := tlock.NewArmorEncoder(dst)
		return &chainedWriteCloser{Writer: enc, closers: []io.Closer{enc, dst}}, nil
	}

	return dst, nil
}

func openInput(path string, armored bool) (io.ReadCloser, error) {
	src := io.ReadCloser(os.Stdin)

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		src = f
	}

	if armored {
		return &chainedReadCloser{Reader: tlock.NewArmorDecoder(src), closers: []io.Closer{src}}, nil
	}

	return src, nil
}

// chainedWriteCloser closes the armor encoder before the underlying
// destination, flushing any buffered base64 padding first.
type chainedWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (c *chainedWriteCloser) Close() error {
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			return err
		}
	}

	return nil
}

type chainedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainedReadCloser) Close() error {
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			return err
		}
	}

	return nil
}
