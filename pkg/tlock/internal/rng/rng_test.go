package rng_test

import (
	"bytes"
	"testing"

	"github.com/codahale/gubbins/assert"

	"github.com/driftlock/tlock/pkg/tlock/internal/rng"
)

func TestReadFillsBuffer(t *testing.T) {
	t.Parallel()

	b := make([]byte, 64)

	n, err := rng.Read(b)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "bytes read", len(b), n)

	if bytes.Equal(b, make([]byte, 64)) {
		t.Fatal("buffer was not randomized")
	}
}

func TestReadIsNotRepeating(t *testing.T) {
	t.Parallel()

	a := make([]byte, 32)
	b := make([]byte, 32)

	if _, err := rng.Read(a); err != nil {
		t.Fatal(err)
	}

	if _, err := rng.Read(b); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a, b) {
		t.Fatal("two consecutive reads produced identical output")
	}
}
