package tlock_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/codahale/gubbins/assert"

	"github.com/driftlock/tlock/pkg/tlock"
)

func TestArmorRoundTrip(t *testing.T) {
	t.Parallel()

	dst := bytes.NewBuffer(nil)
	enc := tlock.NewArmorEncoder(dst)

	if _, err := enc.Write(bytes.Repeat([]byte("tlock container bytes "), 12)); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	dec := tlock.NewArmorDecoder(bytes.NewReader(dst.Bytes()))

	got := bytes.NewBuffer(nil)
	if _, err := io.Copy(got, dec); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", bytes.Repeat([]byte("tlock container bytes "), 12), got.Bytes())
}

func TestArmorWrapsAtSeventySixColumns(t *testing.T) {
	t.Parallel()

	dst := bytes.NewBuffer(nil)
	enc := tlock.NewArmorEncoder(dst)

	if _, err := enc.Write(bytes.Repeat([]byte("x"), 200)); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	for _, line := range bytes.Split(dst.Bytes(), []byte("\n")) {
		assert.Equal(t, "line within 76 columns", true, len(line) <= 76)
	}
}
