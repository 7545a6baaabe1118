package main

import (
	"testing"
	"time"

	"github.com/codahale/gubbins/assert"

	"github.com/driftlock/tlock/pkg/tlock"
)

func TestResolveRoundAcceptsDecimal(t *testing.T) {
	t.Parallel()

	got, err := resolveRound("1000", 1595431050, 30)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round", tlock.Round(1000), got)
}

func TestResolveRoundAcceptsDuration(t *testing.T) {
	t.Parallel()

	genesis := uint64(time.Now().Add(-time.Hour).Unix())

	got, err := resolveRound("1h", genesis, 30)
	if err != nil {
		t.Fatal(err)
	}

	// One hour elapsed already (120 rounds at a 30s period), plus roughly
	// another hour's worth (120 rounds) requested.
	if got < tlock.Round(200) {
		t.Fatalf("expected a round comfortably past 200, got %d", got)
	}
}

func TestResolveRoundRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := resolveRound("not-a-round", 0, 30); err == nil {
		t.Fatal("expected an error for an unparseable round spec")
	}
}

func TestParseDurationAcceptsDaySuffix(t *testing.T) {
	t.Parallel()

	got, err := parseDuration("2d")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "duration", 48*time.Hour, got)
}

func TestCurrentRoundBeforeGenesisIsOne(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(time.Hour)

	assert.Equal(t, "round", uint64(1), currentRound(uint64(future.Unix()), 30, time.Now()))
}
