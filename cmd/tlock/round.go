package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/driftlock/tlock/pkg/tlock"
)

// currentRound returns the beacon round current at t, given a chain's
// genesis time and period, using drand's own convention: round 1 begins at
// genesis, and a new round begins every period seconds thereafter.
func currentRound(genesis uint64, period uint32, t time.Time) uint64 {
	now := uint64(t.Unix())
	if now <= genesis {
		return 1
	}

	return (now-genesis)/uint64(period) + 1
}

// resolveRound parses s as either a decimal round number or a duration with
// an 's', 'm', 'h', or 'd' suffix, in which case it returns the current
// round plus the number of periods the duration spans, rounded up.
func resolveRound(s string, genesis uint64, period uint32) (tlock.Round, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return tlock.Round(n), nil
	}

	d, err := parseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("tlock: invalid round %q: %w", s, err)
	}

	periods := uint64(math.Ceil(d.Seconds() / float64(period)))

	return tlock.Round(currentRound(genesis, period, time.Now()) + periods), nil
}

// parseDuration extends time.ParseDuration with a 'd' (day) suffix, since
// timelock delays are commonly expressed in days.
func parseDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, err
		}

		return time.Duration(days * 24 * float64(time.Hour)), nil
	}

	return time.ParseDuration(s)
}
