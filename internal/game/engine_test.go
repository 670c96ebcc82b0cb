package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem/internal/randutil"
)

func newTestEngine(seed int64, chips ...int) *Engine {
	players := make([]*Player, len(chips))
	for i, c := range chips {
		players[i] = NewPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("P%d", i), c)
	}
	return New(randutil.New(seed), Config{SmallBlind: 5, BigBlind: 10}, players)
}

// callDown plays the current betting round to completion with the most
// passive legal action for every seat.
func callDown(t *testing.T, e *Engine) {
	t.Helper()
	for !e.IsRoundComplete() {
		p := e.CurrentPlayer()
		require.NotNil(t, p)
		if e.CurrentBet() > p.RoundBet {
			require.NoError(t, e.Apply(p, Call, 0))
		} else {
			require.NoError(t, e.Apply(p, Check, 0))
		}
		e.NextPlayer()
	}
}

func totalChips(e *Engine) int {
	total := e.Pot()
	for _, p := range e.Players() {
		total += p.Chips
	}
	return total
}

func TestStartHandRequiresTwoFundedPlayers(t *testing.T) {
	e := newTestEngine(1, 100, 0)
	err := e.StartHand()
	assert.True(t, errors.Is(err, ErrInsufficientPlayers))
	assert.Equal(t, StateWaiting, e.State())
}

func TestStartHandPostsBlinds(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	assert.Equal(t, StatePreFlop, e.State())
	assert.Equal(t, 15, e.Pot())
	assert.Equal(t, 10, e.CurrentBet())

	// The dealer advances to seat 1 on the first hand, putting the
	// blinds on seats 2 and 0.
	active := e.ActivePlayers()
	assert.Equal(t, 1, e.Dealer())
	assert.Equal(t, 95, active[2].Chips)
	assert.Equal(t, 5, active[2].RoundBet)
	assert.Equal(t, 90, active[0].Chips)
	assert.Equal(t, 10, active[0].RoundBet)
}

func TestHoleCardsAreDealtAndReproducible(t *testing.T) {
	a := newTestEngine(42, 100, 100, 100, 100)
	b := newTestEngine(42, 100, 100, 100, 100)
	require.NoError(t, a.StartHand())
	require.NoError(t, b.StartHand())

	seen := make(map[string]bool)
	for i, p := range a.ActivePlayers() {
		require.Len(t, p.HoleCards, 2)
		assert.Equal(t, p.HoleCards, b.ActivePlayers()[i].HoleCards)
		for _, c := range p.HoleCards {
			assert.False(t, seen[c.String()], "card %s dealt twice", c)
			seen[c.String()] = true
		}
	}
}

func TestFirstToActPreFlopIsPastTheBlinds(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100, 100)
	require.NoError(t, e.StartHand())

	// Dealer is seat 1, blinds on 2 and 3, so seat 0 opens.
	require.Equal(t, 1, e.Dealer())
	assert.Equal(t, "P0", e.CurrentPlayer().Name)
}

func TestValidActions(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	// First actor faces the big blind.
	p := e.CurrentPlayer()
	assert.Equal(t, []Action{Fold, Call, Raise, AllIn}, e.ValidActions(p))

	require.NoError(t, e.Apply(p, Call, 0))
	e.NextPlayer()
	require.NoError(t, e.Apply(e.CurrentPlayer(), Call, 0))
	e.NextPlayer()

	// The big blind has already matched and may check.
	bb := e.CurrentPlayer()
	assert.Equal(t, 10, bb.RoundBet)
	assert.Equal(t, []Action{Check, Raise, AllIn}, e.ValidActions(bb))
}

func TestRaiseBelowMinimumIsClampedUp(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	p := e.CurrentPlayer()
	require.NoError(t, e.Apply(p, Raise, 3))

	// A raise request below the minimum raises by exactly the minimum.
	assert.Equal(t, 20, e.CurrentBet())
	assert.Equal(t, 10, e.MinRaise())
	assert.Equal(t, 20, p.RoundBet)
	assert.Equal(t, 80, p.Chips)
}

func TestRaiseSetsNewMinimum(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	p := e.CurrentPlayer()
	require.NoError(t, e.Apply(p, Raise, 30))

	assert.Equal(t, 40, e.CurrentBet())
	assert.Equal(t, 30, e.MinRaise())
}

func TestInvalidActionMutatesNothing(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	p := e.CurrentPlayer()
	potBefore, chipsBefore := e.Pot(), p.Chips

	// Checking while facing a bet is illegal.
	err := e.Apply(p, Check, 0)
	assert.True(t, errors.Is(err, ErrInvalidAction))
	assert.Equal(t, potBefore, e.Pot())
	assert.Equal(t, chipsBefore, p.Chips)
	assert.Equal(t, 0, e.History().Len())
}

func TestUnaffordableRaiseIsRejected(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	p := e.CurrentPlayer()
	err := e.Apply(p, Raise, 95)
	assert.True(t, errors.Is(err, ErrInvalidAction))
	assert.Equal(t, 100, p.Chips)
}

func TestAllInAboveBetActsAsRaise(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	p := e.CurrentPlayer()
	require.NoError(t, e.Apply(p, AllIn, 0))
	assert.Equal(t, 100, e.CurrentBet())
	assert.True(t, p.IsAllIn())
	e.NextPlayer()

	// The short-stacked small blind can only fold, call all-in or shove.
	sb := e.CurrentPlayer()
	assert.Equal(t, 95, sb.Chips)
	assert.Equal(t, []Action{Fold, Call, AllIn}, e.ValidActions(sb))
}

func TestRoundCompletionAndStreetAdvance(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	assert.False(t, e.IsRoundComplete())
	callDown(t, e)
	assert.True(t, e.IsRoundComplete())

	require.NoError(t, e.AdvanceState())
	assert.Equal(t, StateFlop, e.State())
	assert.Len(t, e.Community(), 3)
	assert.Equal(t, 0, e.CurrentBet())

	// Post-flop action starts one past the dealer.
	first := e.CurrentPlayer()
	assert.Equal(t, e.ActivePlayers()[(e.Dealer()+1)%3], first)
}

func TestRaiseReopensAction(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	require.NoError(t, e.Apply(e.CurrentPlayer(), Call, 0))
	e.NextPlayer()
	require.NoError(t, e.Apply(e.CurrentPlayer(), Call, 0))
	e.NextPlayer()

	// The big blind raises instead of checking; the round reopens.
	require.NoError(t, e.Apply(e.CurrentPlayer(), Raise, 10))
	e.NextPlayer()
	assert.False(t, e.IsRoundComplete())
}

func TestCheckdownToShowdown(t *testing.T) {
	e := newTestEngine(3, 100, 100, 100)
	require.NoError(t, e.StartHand())

	for _, want := range []State{StateFlop, StateTurn, StateRiver, StateShowdown} {
		callDown(t, e)
		require.NoError(t, e.AdvanceState())
		require.Equal(t, want, e.State())
	}
	assert.Len(t, e.Community(), 5)

	payouts, err := e.Settle()
	require.NoError(t, err)
	require.NotEmpty(t, payouts)
	assert.Equal(t, StateEnded, e.State())
	assert.Equal(t, 0, e.Pot())
	assert.Equal(t, 300, totalChips(e))
}

func TestEveryoneFoldsEndsHandEarly(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	require.NoError(t, e.Apply(e.CurrentPlayer(), Fold, 0))
	e.NextPlayer()
	require.NoError(t, e.Apply(e.CurrentPlayer(), Fold, 0))

	winner := e.EarlyWinner()
	require.NotNil(t, winner)
	assert.True(t, e.ShouldEndEarly())

	chipsBefore := winner.Chips
	pot := e.Pot()
	e.AwardPot(winner)

	assert.Equal(t, chipsBefore+pot, winner.Chips)
	assert.Equal(t, StateEnded, e.State())
	assert.Equal(t, 300, totalChips(e))
}

func TestDealerRotatesBetweenHands(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)

	require.NoError(t, e.StartHand())
	first := e.Dealer()
	require.NoError(t, e.Apply(e.CurrentPlayer(), Fold, 0))
	e.NextPlayer()
	require.NoError(t, e.Apply(e.CurrentPlayer(), Fold, 0))
	e.AwardPot(e.EarlyWinner())

	require.NoError(t, e.StartHand())
	assert.Equal(t, (first+1)%3, e.Dealer())
	assert.Equal(t, 2, e.HandNumber())
}

func TestHistoryRecordsActionsInOrder(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())
	require.NotEmpty(t, e.History().HandID)

	callDown(t, e)
	records := e.History().Records()
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, i, r.Seq)
		assert.Equal(t, StatePreFlop, r.Street)
	}
	assert.Equal(t, Call, records[0].Action)
	assert.Equal(t, Check, records[2].Action)
}

func TestSnapshotIsDetached(t *testing.T) {
	e := newTestEngine(1, 100, 100, 100)
	require.NoError(t, e.StartHand())

	snap := e.Snapshot()
	snap.Players[0].Chips = 0

	assert.NotEqual(t, 0, e.ActivePlayers()[0].Chips)
	assert.Equal(t, StatePreFlop, snap.State)
	assert.Equal(t, 15, snap.Pot)
}

type recordingObserver struct {
	states  []State
	actions []Action
	pots    []int
}

func (r *recordingObserver) StateChanged(state State, snap Snapshot) { r.states = append(r.states, state) }
func (r *recordingObserver) PlayerActed(p PlayerView, a Action, amount int) {
	r.actions = append(r.actions, a)
}
func (r *recordingObserver) PotChanged(pot int) { r.pots = append(r.pots, pot) }

func TestObserverNotifications(t *testing.T) {
	obs := &recordingObserver{}
	e := newTestEngine(1, 100, 100, 100)
	e.AddObserver(obs)

	require.NoError(t, e.StartHand())
	assert.Equal(t, []State{StatePreFlop}, obs.states)

	callDown(t, e)
	assert.Equal(t, []Action{Call, Call, Check}, obs.actions)

	require.NoError(t, e.AdvanceState())
	assert.Equal(t, []State{StatePreFlop, StateFlop}, obs.states)
}
