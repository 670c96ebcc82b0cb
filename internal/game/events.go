package game

import "holdem/internal/deck"

// PlayerView is a read-only copy of a player's state
type PlayerView struct {
	ID         string
	Name       string
	Chips      int
	RoundBet   int
	TotalBet   int
	Status     Status
	LastAction string
	HoleCards  []deck.Card
}

// Snapshot is a read-only copy of the table state, handed to observers
// and deciders after each mutating operation.
type Snapshot struct {
	State      State
	HandNumber int
	Pot        int
	CurrentBet int
	MinRaise   int
	Community  []deck.Card
	Dealer     int
	Acting     int
	Players    []PlayerView
}

// Observer receives synchronous notifications after each mutating
// engine operation. Observers must not call back into the engine from
// within a callback.
type Observer interface {
	StateChanged(state State, snap Snapshot)
	PlayerActed(player PlayerView, action Action, amount int)
	PotChanged(pot int)
}

func (e *Engine) notifyState() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, o := range e.observers {
		o.StateChanged(e.state, snap)
	}
}

func (e *Engine) notifyAction(p *Player, action Action, amount int) {
	view := p.View()
	for _, o := range e.observers {
		o.PlayerActed(view, action, amount)
	}
}

func (e *Engine) notifyPot() {
	for _, o := range e.observers {
		o.PotChanged(e.pot)
	}
}
