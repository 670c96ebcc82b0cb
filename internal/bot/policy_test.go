package bot

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem/internal/game"
	"holdem/internal/randutil"
)

func testSnapshot() game.Snapshot {
	return game.Snapshot{
		State:      game.StatePreFlop,
		Pot:        15,
		CurrentBet: 10,
		MinRaise:   10,
	}
}

func testView(chips, roundBet int) game.PlayerView {
	return game.PlayerView{ID: "p1", Name: "Bot", Chips: chips, RoundBet: roundBet}
}

func TestDecideOnlyReturnsValidActions(t *testing.T) {
	p := New(DefaultProfile(), randutil.New(1))
	valid := []game.Action{game.Fold, game.Call, game.Raise, game.AllIn}

	for i := 0; i < 200; i++ {
		action, _ := p.Decide(testSnapshot(), testView(100, 0), valid)
		assert.Contains(t, valid, action)
	}
}

func TestZeroWeightExcludesAction(t *testing.T) {
	// Only fold carries weight; every decision must fold.
	profile := Profile{
		Personality: Balanced,
		Weights:     WeightsFromMap(map[string]int{"fold": 1, "check": 0, "call": 0, "raise": 0, "allin": 0}),
	}
	p := New(profile, randutil.New(1))
	valid := []game.Action{game.Fold, game.Call, game.Raise, game.AllIn}

	for i := 0; i < 100; i++ {
		action, amount := p.Decide(testSnapshot(), testView(100, 0), valid)
		require.Equal(t, game.Fold, action)
		require.Zero(t, amount)
	}
}

func TestEmptyPoolChecksWhenPossible(t *testing.T) {
	// No valid action carries any weight. The bot checks if it can.
	profile := Profile{Personality: Balanced, Weights: WeightsFromMap(map[string]int{
		"fold": 0, "check": 0, "call": 0, "raise": 0, "allin": 0,
	})}
	p := New(profile, randutil.New(1))

	action, _ := p.Decide(testSnapshot(), testView(100, 10), []game.Action{game.Check, game.Raise})
	assert.Equal(t, game.Check, action)

	action, _ = p.Decide(testSnapshot(), testView(100, 0), []game.Action{game.Fold, game.Call})
	assert.Equal(t, game.Fold, action)
}

func TestWeightedSelectionFavoursHeavierActions(t *testing.T) {
	profile := Profile{Personality: Balanced, Weights: WeightsFromMap(map[string]int{
		"fold": 1, "check": 0, "call": 9, "raise": 0, "allin": 0,
	})}
	p := New(profile, randutil.New(7))
	valid := []game.Action{game.Fold, game.Call}

	calls := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		action, _ := p.Decide(testSnapshot(), testView(100, 0), valid)
		if action == game.Call {
			calls++
		}
	}

	// Expected 90%, allow a generous margin for sampling noise.
	assert.Greater(t, calls, trials*8/10)
	assert.Less(t, calls, trials*98/100)
}

func TestRaiseAmountStaysWithinBounds(t *testing.T) {
	for _, personality := range []Personality{Balanced, Aggressive, Passive, Tight, Loose, Reckless} {
		p := New(Profile{Personality: personality, Weights: DefaultWeights()}, randutil.New(3))
		snap := testSnapshot()

		for i := 0; i < 100; i++ {
			self := testView(200, 0)
			amount := p.raiseAmount(snap, self)
			avail := self.Chips - (snap.CurrentBet - self.RoundBet)
			assert.GreaterOrEqual(t, amount, snap.MinRaise, "%s raised below minimum", personality)
			assert.LessOrEqual(t, amount, avail, "%s raised beyond stack", personality)
		}
	}
}

func TestRaiseAmountShortStackReturnsMinRaise(t *testing.T) {
	p := New(DefaultProfile(), randutil.New(1))
	snap := testSnapshot()

	// After calling 10 only 8 chips remain, below the minimum raise.
	amount := p.raiseAmount(snap, testView(18, 0))
	assert.Equal(t, snap.MinRaise, amount)
}

func TestDecideIsDeterministicForSeed(t *testing.T) {
	valid := []game.Action{game.Fold, game.Call, game.Raise, game.AllIn}

	a := New(DefaultProfile(), randutil.New(11))
	b := New(DefaultProfile(), randutil.New(11))
	for i := 0; i < 50; i++ {
		actionA, amountA := a.Decide(testSnapshot(), testView(100, 0), valid)
		actionB, amountB := b.Decide(testSnapshot(), testView(100, 0), valid)
		require.Equal(t, actionA, actionB)
		require.Equal(t, amountA, amountB)
	}
}

func TestThinkCompletesWhenTimerFires(t *testing.T) {
	mockClock := quartz.NewMock(t)
	p := New(DefaultProfile(), randutil.New(1)).WithClock(mockClock)

	trap := mockClock.Trap().AfterFunc()
	defer trap.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Think(ctx) }()

	call := trap.MustWait(ctx)
	call.MustRelease(ctx)

	// The delay never exceeds 1400ms times the slowest factor.
	_, w := mockClock.AdvanceNext()
	w.MustWait(ctx)
	require.NoError(t, <-done)
}

func TestThinkHonoursCancellation(t *testing.T) {
	mockClock := quartz.NewMock(t)
	p := New(DefaultProfile(), randutil.New(1)).WithClock(mockClock)

	trap := mockClock.Trap().AfterFunc()
	defer trap.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Think(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	call := trap.MustWait(waitCtx)
	call.MustRelease(waitCtx)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
