// Package game implements the core Texas Hold'em logic: the per-seat
// player state machine, the betting/street state machine and pot
// settlement. The Engine owns the deck and the players for one table
// and is strictly turn-based: exactly one decision is outstanding at
// any instant and all mutation happens on the caller's goroutine.
package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"holdem/internal/deck"
)

// Config holds the table stakes
type Config struct {
	SmallBlind int
	BigBlind   int
}

// DefaultConfig returns the default 5/10 stakes
func DefaultConfig() Config {
	return Config{SmallBlind: 5, BigBlind: 10}
}

// Engine drives hands at a single table. All methods must be called
// from one goroutine; the engine never spawns its own.
type Engine struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	players []*Player // all seated players
	active  []*Player // funded players in the current hand
	deck    *deck.Deck

	state     State
	community []deck.Card

	pot         int
	currentBet  int
	minRaise    int
	dealerIdx   int // index into active
	actingIdx   int // index into active
	actionCount int // actions since the last raise this street

	handNumber int
	history    *History
	observers  []Observer
}

// Option configures an Engine during creation
type Option func(*Engine)

// WithLogger sets a structured logger for engine debug output
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers an observer at creation time
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// New creates an engine for the given seated players. The RNG is
// required so shuffles are reproducible under a fixed seed.
func New(rng *rand.Rand, cfg Config, players []*Player, opts ...Option) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= 0 {
		cfg = DefaultConfig()
	}

	e := &Engine{
		cfg:       cfg,
		rng:       rng,
		logger:    log.New(io.Discard),
		players:   players,
		deck:      deck.New(rng),
		state:     StateWaiting,
		minRaise:  cfg.BigBlind,
		community: make([]deck.Card, 0, 5),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddObserver registers an observer for subsequent notifications
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// StartHand begins a new hand: resets the deck and players, rotates the
// dealer among funded players, posts blinds and deals hole cards.
// Fails with ErrInsufficientPlayers (no state change) when fewer than
// two players have chips.
func (e *Engine) StartHand() error {
	funded := 0
	for _, p := range e.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return fmt.Errorf("%w: have %d", ErrInsufficientPlayers, funded)
	}

	e.handNumber++
	e.history = newHistory()
	e.community = e.community[:0]
	e.pot = 0
	e.currentBet = 0
	e.minRaise = e.cfg.BigBlind
	e.actionCount = 0

	e.deck.Reset()
	e.deck.Shuffle()

	e.active = e.active[:0]
	for _, p := range e.players {
		p.ResetForHand()
		if p.Chips > 0 {
			e.active = append(e.active, p)
		}
	}

	e.dealerIdx = (e.dealerIdx + 1) % len(e.active)

	e.postBlinds()
	if err := e.dealHoleCards(); err != nil {
		e.state = StateEnded
		return err
	}

	e.state = StatePreFlop
	e.actingIdx = e.firstToAct()

	e.logger.Debug("hand started",
		"hand", e.handNumber,
		"id", e.history.HandID,
		"players", len(e.active),
		"dealer", e.active[e.dealerIdx].Name,
		"pot", e.pot)

	e.notifyState()
	return nil
}

func (e *Engine) postBlinds() {
	n := len(e.active)
	sb := e.active[(e.dealerIdx+1)%n]
	bb := e.active[(e.dealerIdx+2)%n]

	e.pot += sb.PlaceBet(e.cfg.SmallBlind)
	sb.LastAction = "small blind"

	e.pot += bb.PlaceBet(e.cfg.BigBlind)
	bb.LastAction = "big blind"

	e.currentBet = e.cfg.BigBlind
}

// dealHoleCards deals one card to each funded player in seat order,
// twice in a row. The interleaved order is load-bearing: replaying a
// seeded shuffle must produce identical holdings.
func (e *Engine) dealHoleCards() error {
	for round := 0; round < 2; round++ {
		for _, p := range e.active {
			card, err := e.deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", ErrDeckExhausted)
			}
			p.DealCard(card)
		}
	}
	return nil
}

// firstToAct returns the first seat able to act on the current street:
// three after the dealer preflop (past the blinds), one after the
// dealer on later streets.
func (e *Engine) firstToAct() int {
	offset := 1
	if e.state == StatePreFlop {
		offset = 3
	}

	n := len(e.active)
	for i := 0; i < n; i++ {
		idx := (e.dealerIdx + offset + i) % n
		if e.active[idx].CanAct() {
			return idx
		}
	}
	return -1
}

// CurrentPlayer returns the acting player, or nil if no seat can act
func (e *Engine) CurrentPlayer() *Player {
	if e.actingIdx < 0 || e.actingIdx >= len(e.active) {
		return nil
	}
	return e.active[e.actingIdx]
}

// NextPlayer advances the acting seat to the next player able to act
func (e *Engine) NextPlayer() {
	n := len(e.active)
	for i := 0; i < n; i++ {
		e.actingIdx = (e.actingIdx + 1) % n
		if e.active[e.actingIdx].CanAct() {
			return
		}
	}
	e.actingIdx = -1
}

// ValidActions returns the actions currently open to the player.
// Call is never offered when the call amount exceeds the player's
// chips; AllIn is always offered while chips remain.
func (e *Engine) ValidActions(p *Player) []Action {
	if !p.CanAct() {
		return nil
	}

	var actions []Action
	callAmount := e.currentBet - p.RoundBet

	if callAmount == 0 {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Fold)
		if p.Chips >= callAmount {
			actions = append(actions, Call)
		}
	}

	if p.Chips+p.RoundBet > e.currentBet+e.minRaise {
		actions = append(actions, Raise)
	}
	if p.Chips > 0 {
		actions = append(actions, AllIn)
	}
	return actions
}

// Apply applies one action for the player. Invalid or unaffordable
// actions fail with ErrInvalidAction and mutate nothing. Successful
// actions append one history record and notify observers.
func (e *Engine) Apply(p *Player, action Action, amount int) error {
	if !containsAction(e.ValidActions(p), action) {
		return fmt.Errorf("%w: %s by %s", ErrInvalidAction, action, p.Name)
	}

	switch action {
	case Fold:
		p.Fold()

	case Check:
		p.Check()

	case Call:
		callAmount := e.currentBet - p.RoundBet
		e.pot += p.PlaceBet(callAmount)
		p.LastAction = "call"

	case Raise:
		// Total commitment is the call plus at least the minimum raise.
		callAmount := e.currentBet - p.RoundBet
		raiseBy := max(amount, e.minRaise)
		total := callAmount + raiseBy
		if p.Chips < total {
			return fmt.Errorf("%w: %s cannot afford raise of %d", ErrInvalidAction, p.Name, total)
		}
		e.pot += p.PlaceBet(total)
		e.currentBet = p.RoundBet
		e.minRaise = raiseBy
		p.LastAction = "raise"
		e.actionCount = 0 // a raise reopens action for everyone

	case AllIn:
		e.pot += p.PlaceBet(p.Chips)
		p.LastAction = "allin"
		if p.RoundBet > e.currentBet {
			// An all-in above the table bet acts as a raise.
			e.currentBet = p.RoundBet
			e.actionCount = 0
		}
	}

	e.history.append(Record{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Action:     action,
		Amount:     amount,
		Pot:        e.pot,
		Street:     e.state,
	})
	e.actionCount++

	e.logger.Debug("action applied",
		"player", p.Name,
		"action", action,
		"amount", amount,
		"pot", e.pot,
		"street", e.state)

	e.notifyAction(p, action, amount)
	e.notifyPot()
	return nil
}

// IsRoundComplete reports whether the current betting round is over:
// nobody can act, only one player remains in hand, or everyone still
// acting has matched the table bet and has acted since the last raise.
func (e *Engine) IsRoundComplete() bool {
	var canAct int
	for _, p := range e.active {
		if p.CanAct() {
			canAct++
		}
	}
	if canAct == 0 {
		return true
	}

	inHand := 0
	for _, p := range e.active {
		if p.IsInHand() {
			inHand++
		}
	}
	if inHand == 1 {
		return true
	}

	for _, p := range e.active {
		if p.CanAct() && p.RoundBet != e.currentBet {
			return false
		}
	}
	return e.actionCount >= canAct
}

// AdvanceState closes the current betting round and moves the hand
// forward: dealing the flop, turn or river (burning one card before
// each deal), or moving through Showdown to Ended.
func (e *Engine) AdvanceState() error {
	e.resetBets()

	switch e.state {
	case StatePreFlop:
		if err := e.dealCommunity(3); err != nil {
			return err
		}
		e.state = StateFlop
	case StateFlop:
		if err := e.dealCommunity(1); err != nil {
			return err
		}
		e.state = StateTurn
	case StateTurn:
		if err := e.dealCommunity(1); err != nil {
			return err
		}
		e.state = StateRiver
	case StateRiver:
		e.state = StateShowdown
	case StateShowdown:
		e.state = StateEnded
	default:
		return nil
	}

	if e.state != StateShowdown && e.state != StateEnded {
		e.actingIdx = e.firstToAct()
	}

	e.logger.Debug("street advanced", "street", e.state, "community", e.community)
	e.notifyState()
	return nil
}

// dealCommunity burns one card then deals n to the board
func (e *Engine) dealCommunity(n int) error {
	if _, err := e.deck.Draw(); err != nil {
		e.state = StateEnded
		return fmt.Errorf("burning card: %w", ErrDeckExhausted)
	}
	cards, err := e.deck.DrawN(n)
	if err != nil {
		e.state = StateEnded
		return fmt.Errorf("dealing community cards: %w", ErrDeckExhausted)
	}
	e.community = append(e.community, cards...)
	return nil
}

// resetBets clears round betting state for a new street
func (e *Engine) resetBets() {
	e.currentBet = 0
	e.minRaise = e.cfg.BigBlind
	e.actionCount = 0
	for _, p := range e.active {
		p.RoundBet = 0
	}
}

// ShouldEndEarly reports whether exactly one player remains in hand
func (e *Engine) ShouldEndEarly() bool {
	return e.EarlyWinner() != nil
}

// EarlyWinner returns the sole remaining in-hand player, or nil
func (e *Engine) EarlyWinner() *Player {
	var winner *Player
	for _, p := range e.active {
		if p.IsInHand() {
			if winner != nil {
				return nil
			}
			winner = p
		}
	}
	return winner
}

// AwardPot transfers the whole pot to winner and ends the hand
func (e *Engine) AwardPot(winner *Player) {
	e.logger.Debug("pot awarded", "winner", winner.Name, "amount", e.pot)
	winner.AddChips(e.pot)
	e.pot = 0
	e.state = StateEnded
	e.notifyPot()
	e.notifyState()
}

// Accessors

// State returns the current hand state
func (e *Engine) State() State { return e.state }

// Pot returns the current pot size
func (e *Engine) Pot() int { return e.pot }

// CurrentBet returns the table bet to match this round
func (e *Engine) CurrentBet() int { return e.currentBet }

// MinRaise returns the minimum raise increment
func (e *Engine) MinRaise() int { return e.minRaise }

// HandNumber returns the number of the current hand, starting at 1
func (e *Engine) HandNumber() int { return e.handNumber }

// Players returns the seated players
func (e *Engine) Players() []*Player { return e.players }

// ActivePlayers returns the players dealt into the current hand
func (e *Engine) ActivePlayers() []*Player { return e.active }

// Dealer returns the dealer seat index within the active players
func (e *Engine) Dealer() int { return e.dealerIdx }

// Community returns a copy of the community cards
func (e *Engine) Community() []deck.Card {
	out := make([]deck.Card, len(e.community))
	copy(out, e.community)
	return out
}

// History returns the current hand's action history
func (e *Engine) History() *History { return e.history }

// Snapshot returns a read-only copy of the full table state
func (e *Engine) Snapshot() Snapshot {
	players := make([]PlayerView, len(e.active))
	for i, p := range e.active {
		players[i] = p.View()
	}
	return Snapshot{
		State:      e.state,
		HandNumber: e.handNumber,
		Pot:        e.pot,
		CurrentBet: e.currentBet,
		MinRaise:   e.minRaise,
		Community:  e.Community(),
		Dealer:     e.dealerIdx,
		Acting:     e.actingIdx,
		Players:    players,
	}
}

func containsAction(actions []Action, a Action) bool {
	for _, action := range actions {
		if action == a {
			return true
		}
	}
	return false
}
