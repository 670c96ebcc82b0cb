package game

import "errors"

var (
	// ErrInvalidAction rejects an action outside the current valid set.
	// The attempt mutates nothing.
	ErrInvalidAction = errors.New("action not valid for player")

	// ErrInsufficientPlayers means fewer than 2 funded players; the
	// hand does not start.
	ErrInsufficientPlayers = errors.New("not enough funded players")

	// ErrDeckExhausted is a fatal internal-invariant violation: the
	// deck ran out mid-hand. Unreachable given seat-count bounds.
	ErrDeckExhausted = errors.New("deck exhausted during hand")
)
