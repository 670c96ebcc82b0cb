package game

import (
	"holdem/internal/deck"
)

// Status represents a player's standing within the current hand
type Status int

const (
	StatusActive Status = iota
	StatusFolded
	StatusAllIn
	StatusOut
	StatusWaiting
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "allin"
	case StatusOut:
		return "out"
	case StatusWaiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// Decider chooses an action for a seat when it is that seat's turn.
// Implementations receive read-only views and must not touch the engine.
// A nil Decider marks a human-controlled seat.
type Decider interface {
	Decide(snap Snapshot, self PlayerView, valid []Action) (Action, int)
}

// Player holds per-seat financial and status state. Players are created
// once at seating and live across hands; chips persist, everything else
// resets at hand start.
type Player struct {
	ID   string
	Name string

	Chips      int
	RoundBet   int // contribution in the current betting round
	TotalBet   int // total contribution in the current hand
	Status     Status
	HoleCards  []deck.Card
	LastAction string

	// Decider drives this seat automatically; nil means a human seat.
	Decider Decider
}

// NewPlayer creates a seated player
func NewPlayer(id, name string, chips int) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Chips:  chips,
		Status: StatusWaiting,
	}
}

// ResetForHand clears per-hand state. Chips carry over; a player with
// no chips left sits out as StatusOut.
func (p *Player) ResetForHand() {
	p.HoleCards = p.HoleCards[:0]
	p.RoundBet = 0
	p.TotalBet = 0
	p.LastAction = ""

	if p.Chips > 0 {
		p.Status = StatusActive
	} else {
		p.Status = StatusOut
	}
}

// PlaceBet contributes min(amount, chips) to the current round and
// returns the amount actually contributed. Callers must use the return
// value to update the pot: a short stack contributes less than asked.
// Running out of chips flips the player to all-in.
func (p *Player) PlaceBet(amount int) int {
	actual := min(amount, p.Chips)
	p.Chips -= actual
	p.RoundBet += actual
	p.TotalBet += actual

	if p.Chips == 0 {
		p.Status = StatusAllIn
	}
	return actual
}

// AddChips credits won chips
func (p *Player) AddChips(amount int) {
	p.Chips += amount
}

// Fold folds the hand
func (p *Player) Fold() {
	p.Status = StatusFolded
	p.LastAction = "fold"
}

// Check passes the action without betting
func (p *Player) Check() {
	p.LastAction = "check"
}

// DealCard adds a hole card
func (p *Player) DealCard(c deck.Card) {
	p.HoleCards = append(p.HoleCards, c)
}

// CanAct returns true if the player may take an action this round
func (p *Player) CanAct() bool {
	return p.Status == StatusActive && p.Chips > 0
}

// IsInHand returns true if the player still contests the pot. All-in
// players stay in hand for showdown even though they can no longer act.
func (p *Player) IsInHand() bool {
	return p.Status != StatusFolded && p.Status != StatusOut
}

// IsAllIn returns true if the player has committed their whole stack
func (p *Player) IsAllIn() bool {
	return p.Status == StatusAllIn
}

// HasFolded returns true if the player folded this hand
func (p *Player) HasFolded() bool {
	return p.Status == StatusFolded
}

// View returns a read-only copy of the player's public state plus their
// own hole cards.
func (p *Player) View() PlayerView {
	cards := make([]deck.Card, len(p.HoleCards))
	copy(cards, p.HoleCards)
	return PlayerView{
		ID:         p.ID,
		Name:       p.Name,
		Chips:      p.Chips,
		RoundBet:   p.RoundBet,
		TotalBet:   p.TotalBet,
		Status:     p.Status,
		LastAction: p.LastAction,
		HoleCards:  cards,
	}
}
