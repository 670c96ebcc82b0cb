// Package sim drives complete hands on a game engine without human
// input and aggregates the results.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"holdem/internal/game"
)

// maxActionsPerHand bounds a single hand's betting. A well-formed hand
// at a full table ends in far fewer actions; hitting the bound means
// the action loop is stuck and the run must fail loudly.
const maxActionsPerHand = 1000

// Runner plays hands to completion on one engine. Players must have a
// Decider attached; a seat without one checks when possible and folds
// otherwise.
type Runner struct {
	engine *game.Engine
	logger *log.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets a structured logger for per-hand debug output
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a runner for the given engine
func New(engine *game.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine: engine,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays up to hands hands, stopping early when fewer than two
// players can fund a blind or ctx is cancelled. A started hand always
// runs to completion so chips are never left in a pot: once ctx is
// cancelled every remaining decision degrades to check-or-fold.
func (r *Runner) Run(ctx context.Context, hands int) (*Statistics, error) {
	stats := NewStatistics()
	names := make(map[string]string)
	for _, p := range r.engine.Players() {
		names[p.ID] = p.Name
	}

	for i := 0; i < hands; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		result, err := r.PlayHand(ctx)
		if errors.Is(err, game.ErrInsufficientPlayers) {
			r.logger.Debug("table exhausted", "hands", stats.Hands)
			break
		}
		if err != nil {
			return stats, fmt.Errorf("hand %d: %w", i+1, err)
		}
		stats.Add(result, names)
	}

	if stats.Hands > 0 {
		if err := stats.Validate(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// PlayHand runs a single hand from deal to settlement and returns the
// per-player chip deltas. If ctx is cancelled mid-hand the remaining
// seats check or fold so the pot still settles.
func (r *Runner) PlayHand(ctx context.Context) (HandResult, error) {
	before := make(map[string]int)
	for _, p := range r.engine.Players() {
		before[p.ID] = p.Chips
	}

	if err := r.engine.StartHand(); err != nil {
		return HandResult{}, err
	}

	result := HandResult{
		HandID: r.engine.History().HandID,
		Net:    make(map[string]int),
	}

	actions := 0
	for r.engine.State() != game.StateEnded {
		if actions > maxActionsPerHand {
			return HandResult{}, fmt.Errorf("hand %s exceeded %d actions", result.HandID, maxActionsPerHand)
		}

		if r.engine.State() == game.StateShowdown {
			result.Showdown = true
			result.PotSize = r.engine.Pot()
			if _, err := r.engine.Settle(); err != nil {
				return HandResult{}, err
			}
			continue
		}

		if winner := r.engine.EarlyWinner(); winner != nil {
			result.PotSize = r.engine.Pot()
			r.engine.AwardPot(winner)
			continue
		}

		if r.engine.IsRoundComplete() {
			if err := r.engine.AdvanceState(); err != nil {
				return HandResult{}, err
			}
			continue
		}

		p := r.engine.CurrentPlayer()
		if p == nil {
			if err := r.engine.AdvanceState(); err != nil {
				return HandResult{}, err
			}
			continue
		}

		valid := r.engine.ValidActions(p)
		action, amount := r.decide(ctx, p, valid)
		if err := r.engine.Apply(p, action, amount); err != nil {
			// A decider picked an amount the engine rejects. Degrade to
			// the safest legal action instead of aborting the hand.
			action, amount = fallbackAction(valid)
			if err := r.engine.Apply(p, action, amount); err != nil {
				return HandResult{}, err
			}
		}
		actions++
		r.engine.NextPlayer()
	}

	result.StreetReached = streetName(r.engine)
	for _, p := range r.engine.Players() {
		result.Net[p.ID] = p.Chips - before[p.ID]
	}
	return result, nil
}

func (r *Runner) decide(ctx context.Context, p *game.Player, valid []game.Action) (game.Action, int) {
	if p.Decider == nil || ctx.Err() != nil {
		return fallbackAction(valid)
	}
	return p.Decider.Decide(r.engine.Snapshot(), p.View(), valid)
}

// fallbackAction returns the most passive legal action
func fallbackAction(valid []game.Action) (game.Action, int) {
	for _, a := range valid {
		if a == game.Check {
			return game.Check, 0
		}
	}
	return game.Fold, 0
}

func streetName(e *game.Engine) string {
	switch len(e.Community()) {
	case 0:
		return "preflop"
	case 3:
		return "flop"
	case 4:
		return "turn"
	default:
		return "river"
	}
}
