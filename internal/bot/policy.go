// Package bot implements a weighted-random decision policy for
// automated players. A bot never looks at its cards: it samples an
// action from a weight table restricted to the legal actions, then
// sizes raises from its personality's multiplier range.
package bot

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/coder/quartz"

	"holdem/internal/game"
)

// Profile is the configurable part of a bot: a temperament plus an
// action weight table.
type Profile struct {
	Personality Personality
	Weights     Weights
}

// DefaultProfile returns a balanced bot with the default weight table
func DefaultProfile() Profile {
	return Profile{Personality: Balanced, Weights: DefaultWeights()}
}

// Policy decides actions for one seat. It implements game.Decider.
// The random source is injected so simulations replay deterministically;
// the clock is injected so tests never sleep.
type Policy struct {
	profile Profile
	rng     *rand.Rand
	clock   quartz.Clock
}

// New returns a policy for the given profile backed by rng
func New(profile Profile, rng *rand.Rand) *Policy {
	return &Policy{
		profile: profile,
		rng:     rng,
		clock:   quartz.NewReal(),
	}
}

// WithClock replaces the policy's clock and returns the policy
func (p *Policy) WithClock(clock quartz.Clock) *Policy {
	p.clock = clock
	return p
}

// Profile returns the profile this policy was built from
func (p *Policy) Profile() Profile {
	return p.profile
}

// Decide picks an action from the legal set using the profile's
// weights. Actions with zero weight are excluded; if every legal
// action is excluded the bot checks when it can and folds otherwise.
func (p *Policy) Decide(snap game.Snapshot, self game.PlayerView, valid []game.Action) (game.Action, int) {
	var pool []game.Action
	total := 0
	for _, a := range valid {
		w := p.profile.Weights[a]
		if w <= 0 {
			continue
		}
		total += w
		for i := 0; i < w; i++ {
			pool = append(pool, a)
		}
	}

	if total == 0 {
		for _, a := range valid {
			if a == game.Check {
				return game.Check, 0
			}
		}
		return game.Fold, 0
	}

	action := pool[p.rng.IntN(len(pool))]
	if action == game.Raise {
		return game.Raise, p.raiseAmount(snap, self)
	}
	return action, 0
}

// raiseAmount sizes a raise as a personality-dependent fraction of the
// chips left after covering the call, clamped to the legal range and
// rounded to the nearest 5 chips.
func (p *Policy) raiseAmount(snap game.Snapshot, self game.PlayerView) int {
	call := snap.CurrentBet - self.RoundBet
	avail := self.Chips - call
	if avail <= snap.MinRaise {
		return snap.MinRaise
	}

	lo, hi := p.profile.Personality.raiseInterval()
	mult := lo + p.rng.Float64()*(hi-lo)
	amount := int(float64(avail) * mult)
	if amount < snap.MinRaise {
		amount = snap.MinRaise
	}
	amount = (amount + 2) / 5 * 5
	if amount > avail {
		amount = avail
	}
	return amount
}

// Think blocks for a human-feeling pause scaled by the personality, or
// until ctx is cancelled. Real play uses it between actions; the
// simulator skips it entirely.
func (p *Policy) Think(ctx context.Context) error {
	base := 600 + p.rng.IntN(800)
	delay := time.Duration(float64(base)*p.profile.Personality.delayFactor()) * time.Millisecond

	done := make(chan struct{})
	timer := p.clock.AfterFunc(delay, func() {
		close(done)
	})
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
